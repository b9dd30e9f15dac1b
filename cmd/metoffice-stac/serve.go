package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/met-office-stac/internal/adapter/http"
	"github.com/couchcryptid/met-office-stac/internal/config"
	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Poll recent model runs and publish their items",
		Long: `Poll the most recent runs of every configured model, publish new or
changed items to the configured sink and serve /healthz, /readyz,
/metrics and /collections until interrupted.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
	flags := cmd.Flags()
	a.stringFlag(flags, "http-addr", config.KeyHTTPAddr, "listen address")
	a.stringFlag(flags, "poll-interval", config.KeyPollInterval, "time between poll cycles")
	a.stringFlag(flags, "lookback-runs", config.KeyLookbackRuns, "recent runs polled per model")
	a.stringFlag(flags, "seen-cache-size", config.KeySeenCacheSize, "items remembered between cycles")
	a.stringFlag(flags, "shutdown-timeout", config.KeyShutdownTimeout, "graceful shutdown limit")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := a.load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := newSink(ctx, cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.close(); err != nil {
			logger.Error("sink close error", "error", err)
		}
	}()

	p, defs, err := a.newPipeline(ctx, cfg, out, logger)
	if err != nil {
		return err
	}

	builder := stac.NewBuilder(domain.NewAssembler(a.tables), nil)
	models := make([]domain.Model, 0, len(defs))
	for _, def := range defs {
		models = append(models, def.Model)
	}
	if out.putCollection != nil {
		if err := publishCollections(ctx, builder, models, out.putCollection); err != nil {
			return err
		}
		logger.Info("collections published", "models", len(models))
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, builder, models, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return p.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("shutdown complete")
	return err
}

func publishCollections(ctx context.Context, builder *stac.Builder, models []domain.Model, put func(context.Context, stac.Collection) error) error {
	for _, model := range models {
		for _, theme := range domain.Themes() {
			c, err := builder.Collection(model, theme)
			if err != nil {
				return err
			}
			if err := put(ctx, c); err != nil {
				return fmt.Errorf("publish collection %s: %w", c.ID, err)
			}
		}
	}
	return nil
}
