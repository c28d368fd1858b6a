package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/point"
	"github.com/hupe1980/lloyd/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig([]string{"-k", "2", "--input", "a.txt"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, cfg.Inputs)
	assert.Equal(t, 2, cfg.K)
	assert.False(t, cfg.Seeded)
	assert.Equal(t, lloyd.CentroidTruncate, cfg.Centroid)
	assert.Equal(t, lloyd.EmptyDrop, cfg.Empty)
	assert.Equal(t, "local", cfg.Store)
	assert.Equal(t, codec.Default.Name(), cfg.Codec.Name())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoadConfig_Flags(t *testing.T) {
	cfg, err := loadConfig([]string{
		"-k", "3", "--input", "a.txt", "--input", "b.txt.zst", "c.lz4",
		"--seed", "42", "--centroid", "exact", "--empty", "reseed",
		"--codec", "json", "--log-level", "debug", "--max-iterations", "10",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.txt.zst", "c.lz4"}, cfg.Inputs)
	assert.True(t, cfg.Seeded)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, lloyd.CentroidExact, cfg.Centroid)
	assert.Equal(t, lloyd.EmptyReseedFarthest, cfg.Empty)
	assert.Equal(t, "json", cfg.Codec.Name())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 10, cfg.MaxIterations)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("LLOYD_K", "5")
	t.Setenv("LLOYD_INPUT", "x.txt")
	t.Setenv("LLOYD_MAX_ITERATIONS", "7")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.K)
	assert.Equal(t, []string{"x.txt"}, cfg.Inputs)
	assert.Equal(t, 7, cfg.MaxIterations)
}

func TestLoadConfig_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "lloyd.yaml")
	require.NoError(t, os.WriteFile(file, []byte("k: 4\ninput:\n  - one.txt\n  - two.txt\nplot: true\n"), 0o600))

	cfg, err := loadConfig([]string{"--config", file, "--output-prefix", "out"})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.K)
	assert.Equal(t, []string{"one.txt", "two.txt"}, cfg.Inputs)
	assert.True(t, cfg.Plot)
	assert.Equal(t, "out", cfg.OutputPrefix)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"NoInput", []string{"-k", "2"}, "--input"},
		{"NoK", []string{"--input", "a.txt"}, "-k must be positive"},
		{"BadStore", []string{"-k", "2", "--input", "a", "--store", "ftp"}, "unknown store"},
		{"NoBucket", []string{"-k", "2", "--input", "a", "--store", "s3"}, "--bucket"},
		{"MinioEndpoint", []string{"-k", "2", "--input", "a", "--store", "minio", "--bucket", "b"}, "--endpoint"},
		{"BadCentroid", []string{"-k", "2", "--input", "a", "--centroid", "round"}, "centroid"},
		{"BadCodec", []string{"-k", "2", "--input", "a", "--codec", "xml"}, "unknown codec"},
		{"BadLevel", []string{"-k", "2", "--input", "a", "--log-level", "loud"}, "log level"},
		{"BadFormat", []string{"-k", "2", "--input", "a", "--log-format", "xml"}, "log format"},
		{"UnknownFlag", []string{"--nope"}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOutputBase(t *testing.T) {
	assert.Equal(t, "reports/blobs", outputBase("reports", "data/blobs.txt.zst"))
	assert.Equal(t, "reports/pts", outputBase("reports", "pts.lz4"))
	assert.Equal(t, "pts", outputBase("", "pts.txt"))
}

func TestRun_Local(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	cacheDir := t.TempDir()
	store := blobstore.NewLocalStore(root)

	pts := []point.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
		{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 10, Y: 11},
	}
	require.NoError(t, dataset.Save(ctx, store, "data/two.txt.zst", pts))

	metricsFile := filepath.Join(t.TempDir(), "lloyd.prom")
	cfg, err := loadConfig([]string{
		"-k", "2", "--seed", "1", "--input", "data/two.txt.zst",
		"--root", root, "--cache-dir", cacheDir, "--rate-limit", "100",
		"--plot", "--metrics-file", metricsFile,
	})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(ctx, cfg, &stdout, &stderr))

	assert.Contains(t, stdout.String(), "data/two.txt.zst: points=6")
	assert.Contains(t, stdout.String(), "converged=true")
	assert.Contains(t, stderr.String(), "clustering converged")

	rep, err := report.Load(ctx, store, "reports/two.json")
	require.NoError(t, err)
	assert.Equal(t, "data/two.txt.zst", rep.Dataset)
	assert.Equal(t, 6, len(rep.Labels))
	assert.True(t, rep.Converged)

	html, err := blobstore.ReadAll(ctx, store, "reports/two.html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "Cluster 0")

	cached, err := blobstore.NewLocalStore(cacheDir).List(ctx, "data/")
	require.NoError(t, err)
	assert.Equal(t, []string{"data/two.txt.zst"}, cached)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "lloyd_runs_total")
}

func TestRun_MissingInput(t *testing.T) {
	cfg, err := loadConfig([]string{"-k", "2", "--input", "nope.txt", "--root", t.TempDir()})
	require.NoError(t, err)

	err = run(context.Background(), cfg, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
