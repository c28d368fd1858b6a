package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "LLOYD"

type config struct {
	Inputs        []string
	K             int
	Seed          int64
	Seeded        bool
	MaxIterations int
	Centroid      lloyd.CentroidMode
	Empty         lloyd.EmptyClusterPolicy

	Store     string
	Root      string
	Bucket    string
	Prefix    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Secure    bool
	CacheDir  string
	RateLimit float64

	OutputPrefix string
	Plot         bool
	Codec        codec.Codec
	LogFormat    string
	LogLevel     slog.Level
	MetricsFile  string
	Concurrency  int
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("lloyd", pflag.ContinueOnError)
	fs.SortFlags = false

	fs.String("config", "", "config file (yaml, json or toml)")
	fs.StringSlice("input", nil, "dataset blob name; repeatable (.zst and .lz4 are decompressed)")
	fs.IntP("k", "k", 0, "number of clusters")
	fs.Int64("seed", 0, "seed for the initial means (default: time based)")
	fs.Int("max-iterations", 0, "stop after this many iterations (0 = until convergence)")
	fs.String("centroid", lloyd.CentroidTruncate.String(), "centroid arithmetic: truncate or exact")
	fs.String("empty", lloyd.EmptyDrop.String(), "empty cluster policy: drop or reseed")

	fs.String("store", "local", "blob store: local, s3 or minio")
	fs.String("root", ".", "root directory of the local store")
	fs.String("bucket", "", "bucket for s3 and minio stores")
	fs.String("prefix", "", "key prefix inside the bucket")
	fs.String("endpoint", "", "custom s3 endpoint or minio host:port")
	fs.String("region", "", "bucket region")
	fs.String("access-key", "", "minio access key")
	fs.String("secret-key", "", "minio secret key")
	fs.Bool("secure", true, "use TLS for minio")
	fs.String("cache-dir", "", "cache remote blobs in this local directory")
	fs.Float64("rate-limit", 0, "max store requests per second (0 = unlimited)")

	fs.String("output-prefix", "reports", "blob prefix for reports and plots")
	fs.Bool("plot", false, "also write an HTML scatter plot per dataset")
	fs.String("codec", codec.Default.Name(), "report codec: "+strings.Join(codec.Names(), " or "))
	fs.String("log-format", "text", "log format: text or json")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("metrics-file", "", "write prometheus metrics to this file on exit")
	fs.Int("concurrency", 4, "datasets loaded in parallel")
	return fs
}

func loadConfig(args []string) (*config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &config{
		Inputs:        v.GetStringSlice("input"),
		K:             v.GetInt("k"),
		Seed:          v.GetInt64("seed"),
		Seeded:        v.IsSet("seed"),
		MaxIterations: v.GetInt("max-iterations"),
		Store:         v.GetString("store"),
		Root:          v.GetString("root"),
		Bucket:        v.GetString("bucket"),
		Prefix:        v.GetString("prefix"),
		Endpoint:      v.GetString("endpoint"),
		Region:        v.GetString("region"),
		AccessKey:     v.GetString("access-key"),
		SecretKey:     v.GetString("secret-key"),
		Secure:        v.GetBool("secure"),
		CacheDir:      v.GetString("cache-dir"),
		RateLimit:     v.GetFloat64("rate-limit"),
		OutputPrefix:  v.GetString("output-prefix"),
		Plot:          v.GetBool("plot"),
		LogFormat:     v.GetString("log-format"),
		MetricsFile:   v.GetString("metrics-file"),
		Concurrency:   v.GetInt("concurrency"),
	}
	cfg.Inputs = append(cfg.Inputs, fs.Args()...)

	var err error
	if cfg.Centroid, err = lloyd.ParseCentroidMode(v.GetString("centroid")); err != nil {
		return nil, err
	}
	if cfg.Empty, err = lloyd.ParseEmptyClusterPolicy(v.GetString("empty")); err != nil {
		return nil, err
	}
	if cfg.Codec, err = codec.Lookup(v.GetString("codec")); err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	return cfg, cfg.validate()
}

func (c *config) validate() error {
	var errs []error
	if len(c.Inputs) == 0 {
		errs = append(errs, errors.New("at least one --input is required"))
	}
	if c.K <= 0 {
		errs = append(errs, fmt.Errorf("-k must be positive, got %d", c.K))
	}
	switch c.Store {
	case "local":
	case "s3", "minio":
		if c.Bucket == "" {
			errs = append(errs, fmt.Errorf("--bucket is required for the %s store", c.Store))
		}
		if c.Store == "minio" && c.Endpoint == "" {
			errs = append(errs, errors.New("--endpoint is required for the minio store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("--rate-limit must not be negative, got %g", c.RateLimit))
	}
	return errors.Join(errs...)
}
