package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	kafkaadapter "github.com/couchcryptid/met-office-stac/internal/adapter/kafka"
	s3adapter "github.com/couchcryptid/met-office-stac/internal/adapter/s3"
	"github.com/couchcryptid/met-office-stac/internal/adapter/stdout"
	"github.com/couchcryptid/met-office-stac/internal/config"
	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/observability"
	"github.com/couchcryptid/met-office-stac/internal/pipeline"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

// app carries state shared by every subcommand.
type app struct {
	v      *viper.Viper
	tables *domain.Tables

	metricsOnce sync.Once
	metrics     *observability.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), tables: domain.DefaultTables()}

	root := &cobra.Command{
		Use:   "metoffice-stac",
		Short: "STAC metadata for Met Office deterministic forecasts on AWS",
		Long: `metoffice-stac decodes the object keys of the Met Office atmospheric
model bucket and builds STAC collections and items from them.

Every setting can be given as a flag or as the environment variable
named in its help text.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	a.stringFlag(flags, "log-level", config.KeyLogLevel, "log level: debug, info, warn or error")
	a.stringFlag(flags, "log-format", config.KeyLogFormat, "log format: json or text")
	a.stringFlag(flags, "source-bucket", config.KeySourceBucket, "bucket holding the forecast objects")
	a.stringFlag(flags, "source-region", config.KeySourceRegion, "region of the source bucket")
	a.stringFlag(flags, "s3-endpoint", config.KeyS3Endpoint, "S3-compatible endpoint override")
	a.stringFlag(flags, "collections", config.KeyCollections, "comma-separated model collection tokens")
	a.stringFlag(flags, "list-rps", config.KeyListRPS, "maximum list requests per second")
	a.stringFlag(flags, "sink", config.KeySink, "item destination: stdout, kafka or s3")
	a.stringFlag(flags, "kafka-brokers", config.KeyKafkaBrokers, "comma-separated Kafka brokers")
	a.stringFlag(flags, "kafka-topic", config.KeyKafkaTopic, "Kafka topic for items")
	a.stringFlag(flags, "output-bucket", config.KeyOutputBucket, "bucket for the s3 sink")
	a.stringFlag(flags, "output-prefix", config.KeyOutputPrefix, "key prefix for the s3 sink")

	root.AddCommand(
		a.newParseCmd(),
		a.newCollectionCmd(),
		a.newItemCmd(),
		a.newItemsCmd(),
		a.newServeCmd(),
	)
	return root
}

// stringFlag registers a flag that overrides the config key when set.
func (a *app) stringFlag(flags *pflag.FlagSet, name, key, usage string) {
	flags.String(name, "", fmt.Sprintf("%s (env %s)", usage, key))
	_ = a.v.BindPFlag(key, flags.Lookup(name))
}

func (a *app) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, observability.NewLogger(cfg.LogLevel, cfg.LogFormat), nil
}

func (a *app) sharedMetrics() *observability.Metrics {
	a.metricsOnce.Do(func() {
		a.metrics = observability.NewMetrics()
	})
	return a.metrics
}

// selectModels resolves collection tokens such as "uk-deterministic-2km".
func selectModels(tables *domain.Tables, tokens []string) ([]domain.ModelDefinition, error) {
	defs := make([]domain.ModelDefinition, 0, len(tokens))
	for _, token := range tokens {
		def, ok := tables.ModelByToken(token)
		if !ok {
			return nil, fmt.Errorf("unknown model collection %q", token)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (a *app) newPipeline(ctx context.Context, cfg *config.Config, loader pipeline.Loader, logger *slog.Logger) (*pipeline.Pipeline, []domain.ModelDefinition, error) {
	defs, err := selectModels(a.tables, cfg.Collections)
	if err != nil {
		return nil, nil, err
	}

	client, err := s3adapter.NewClient(ctx, s3adapter.ClientOptions{
		Region:    cfg.SourceRegion,
		Endpoint:  cfg.S3Endpoint,
		Anonymous: true,
	})
	if err != nil {
		return nil, nil, err
	}
	metrics := a.sharedMetrics()
	lister := s3adapter.NewLister(client, cfg.SourceBucket, cfg.SourceURL(), cfg.ListRPS, logger, metrics)
	transformer := pipeline.NewTransformer(a.tables, nil, logger, metrics)

	p, err := pipeline.New(lister, transformer, loader, logger, metrics, pipeline.Options{
		Models:        defs,
		PollInterval:  cfg.PollInterval,
		LookbackRuns:  cfg.LookbackRuns,
		SeenCacheSize: cfg.SeenCacheSize,
	})
	if err != nil {
		return nil, nil, err
	}
	return p, defs, nil
}

// sink is the configured item destination.
type sink struct {
	pipeline.Loader
	// putCollection is nil when the destination only takes items.
	putCollection func(context.Context, stac.Collection) error
	close         func() error
}

func newSink(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) (*sink, error) {
	switch cfg.Sink {
	case config.SinkKafka:
		w := kafkaadapter.NewWriter(cfg, logger)
		return &sink{Loader: w, close: w.Close}, nil
	case config.SinkS3:
		client, err := s3adapter.NewClient(ctx, s3adapter.ClientOptions{
			Region:   cfg.SourceRegion,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		w := s3adapter.NewWriter(client, cfg.OutputBucket, cfg.OutputPrefix, logger)
		return &sink{Loader: w, putCollection: w.PutCollection, close: noClose}, nil
	default:
		if out == nil {
			out = os.Stdout
		}
		return &sink{Loader: stdout.NewWriter(out), close: noClose}, nil
	}
}

func noClose() error { return nil }
