// Command lloyd clusters 2-D point datasets with Lloyd's k-means.
//
// Usage:
//
//	lloyd -k 3 --input blobs.txt --input more.txt.zst --plot
//	LLOYD_STORE=s3 LLOYD_BUCKET=data lloyd -k 2 --input points.lz4
//
// Datasets are read from the configured blob store; a JSON report (and
// optionally an HTML plot) is written back under --output-prefix.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/dataset"
	lloydprom "github.com/hupe1980/lloyd/metrics/prometheus"
	"github.com/hupe1980/lloyd/plot"
	"github.com/hupe1980/lloyd/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lloyd:", err)
		os.Exit(2)
	}

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "lloyd:", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config, w io.Writer) *lloyd.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return lloyd.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return lloyd.NewLogger(slog.NewTextHandler(w, opts))
}

func run(ctx context.Context, cfg *config, stdout, stderr io.Writer) (err error) {
	logger := newLogger(cfg, stderr)

	reg := prometheus.NewRegistry()
	mc, err := lloydprom.NewCollector(reg)
	if err != nil {
		return err
	}
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := prometheus.WriteToTextfile(cfg.MetricsFile, reg); werr != nil && err == nil {
				err = fmt.Errorf("write metrics: %w", werr)
			}
		}()
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}

	sets, err := dataset.LoadAll(ctx, store, cfg.Inputs, cfg.Concurrency)
	if err != nil {
		return err
	}

	for _, set := range sets {
		if err := clusterOne(ctx, cfg, store, logger, mc, set, stdout); err != nil {
			return fmt.Errorf("%s: %w", set.Name, err)
		}
	}
	return nil
}

func clusterOne(ctx context.Context, cfg *config, store blobstore.BlobStore, logger *lloyd.Logger,
	mc lloyd.MetricsCollector, set dataset.Named, stdout io.Writer) error {
	opts := []lloyd.Option{
		lloyd.WithLogger(logger.WithDataset(set.Name)),
		lloyd.WithMetricsCollector(mc),
		lloyd.WithMaxIterations(cfg.MaxIterations),
		lloyd.WithCentroidMode(cfg.Centroid),
		lloyd.WithEmptyClusterPolicy(cfg.Empty),
	}
	if cfg.Seeded {
		opts = append(opts, lloyd.WithSeed(cfg.Seed))
	}

	res, err := lloyd.Cluster(ctx, set.Points, cfg.K, opts...)
	if err != nil {
		return err
	}
	if err := res.VerifyPartition(len(set.Points)); err != nil {
		return err
	}

	rep := report.New(set.Name, res)
	base := outputBase(cfg.OutputPrefix, set.Name)
	if err := report.Save(ctx, store, base+".json", rep, cfg.Codec); err != nil {
		return err
	}
	written := []string{base + ".json"}

	if cfg.Plot {
		title := fmt.Sprintf("%s (k=%d)", set.Name, res.K())
		if err := plot.Save(ctx, store, base+".html", title, rep.Groups(), rep.MeanPoints()); err != nil {
			return err
		}
		written = append(written, base+".html")
	}

	_, err = fmt.Fprintf(stdout, "%s: points=%d clusters=%d iterations=%d converged=%t sse=%g -> %s\n",
		set.Name, len(set.Points), res.K(), res.Iterations, res.Converged, res.SSE(), strings.Join(written, ", "))
	return err
}

// outputBase maps "data/blobs.txt.zst" to "<prefix>/blobs".
func outputBase(prefix, name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, ".zst")
	base = strings.TrimSuffix(base, ".lz4")
	base = strings.TrimSuffix(base, path.Ext(base))
	return path.Join(prefix, base)
}
