package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/observability"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second

	defaultPollInterval = 5 * time.Minute
	defaultLookbackRuns = 2
	defaultSeenSize     = 4096
)

// Lister enumerates the forecast objects under a key prefix.
type Lister interface {
	ListObjects(ctx context.Context, prefix string) ([]domain.RawObject, error)
}

// Transformer converts listed objects into catalog items.
type Transformer interface {
	Transform(ctx context.Context, objects []domain.RawObject) ([]stac.Item, error)
}

// Loader writes items to the destination.
type Loader interface {
	LoadItems(ctx context.Context, items []stac.Item) error
}

// Options tunes the polling loop. Zero values select defaults.
type Options struct {
	Models        []domain.ModelDefinition
	PollInterval  time.Duration
	LookbackRuns  int
	SeenCacheSize int
	Clock         clockwork.Clock
}

// Pipeline orchestrates the list-transform-load cycle.
type Pipeline struct {
	lister      Lister
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool

	models   []domain.ModelDefinition
	interval time.Duration
	lookback int
	clock    clockwork.Clock

	// seen maps item IDs to the fingerprint last loaded, so unchanged items
	// are not republished every cycle.
	seen *lru.Cache[string, string]
}

// New creates a Pipeline with the given stages and observability.
func New(l Lister, t Transformer, ld Loader, logger *slog.Logger, metrics *observability.Metrics, opts Options) (*Pipeline, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.LookbackRuns <= 0 {
		opts.LookbackRuns = defaultLookbackRuns
	}
	if opts.SeenCacheSize <= 0 {
		opts.SeenCacheSize = defaultSeenSize
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	seen, err := lru.New[string, string](opts.SeenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create seen-item cache: %w", err)
	}

	return &Pipeline{
		lister:      l,
		transformer: t,
		loader:      ld,
		logger:      logger,
		metrics:     metrics,
		models:      opts.Models,
		interval:    opts.PollInterval,
		lookback:    opts.LookbackRuns,
		clock:       opts.Clock,
		seen:        seen,
	}, nil
}

// CheckReadiness returns nil once a poll cycle or one-shot run has completed,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a cycle yet")
	}
	return nil
}

// Collect lists prefix and transforms the objects into items without
// loading them. It returns stac.ErrNoAssets when nothing under prefix
// decodes into an item.
func (p *Pipeline) Collect(ctx context.Context, prefix string) ([]stac.Item, error) {
	start := p.clock.Now()
	objects, err := p.lister.ListObjects(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	p.metrics.ListDuration.Observe(p.clock.Since(start).Seconds())
	p.metrics.ObjectsListed.Add(float64(len(objects)))

	items, err := p.transformer.Transform(ctx, objects)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", prefix, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w for prefix %s", stac.ErrNoAssets, prefix)
	}
	return items, nil
}

// RunOnce collects the items under prefix and loads those that are new or
// changed since they were last loaded. An empty prefix is not an error.
func (p *Pipeline) RunOnce(ctx context.Context, prefix string) (int, error) {
	items, err := p.Collect(ctx, prefix)
	if errors.Is(err, stac.ErrNoAssets) {
		p.logger.Debug("no items yet", "prefix", prefix)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	fresh := make([]stac.Item, 0, len(items))
	for _, item := range items {
		if fp, ok := p.seen.Get(item.ID); ok && fp == fingerprint(item) {
			p.metrics.ItemsSkipped.Inc()
			continue
		}
		fresh = append(fresh, item)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	if err := p.loader.LoadItems(ctx, fresh); err != nil {
		return 0, fmt.Errorf("load %d items: %w", len(fresh), err)
	}
	for _, item := range fresh {
		p.seen.Add(item.ID, fingerprint(item))
		p.metrics.ItemsProduced.WithLabelValues(item.Collection).Inc()
	}
	p.ready.Store(true)
	return len(fresh), nil
}

// Run polls the most recent runs of every configured model until the
// context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "poll_interval", p.interval, "lookback_runs", p.lookback, "models", len(p.models))
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	backoff := initialBackoff
	for {
		if err := p.poll(ctx); err != nil {
			if ctx.Err() != nil {
				p.logger.Info("pipeline stopping", "reason", ctx.Err())
				return nil
			}
			p.logger.Error("poll cycle failed", "error", err, "retry_in", backoff)
			if !p.sleep(ctx, backoff) {
				p.logger.Info("pipeline stopping", "reason", ctx.Err())
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = initialBackoff

		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}

// poll runs one cycle over the lookback window of every model.
func (p *Pipeline) poll(ctx context.Context) error {
	start := p.clock.Now()
	logger := p.logger.With("cycle_id", uuid.NewString())

	loaded := 0
	for _, def := range p.models {
		for _, run := range def.RecentRuns(start, p.lookback) {
			prefix := domain.Prefix(def, run)
			n, err := p.RunOnce(ctx, prefix)
			if err != nil {
				return fmt.Errorf("%s run %s: %w", def.Model, domain.FormatReferenceTime(run), err)
			}
			if n > 0 {
				logger.Info("items loaded", "prefix", prefix, "count", n)
			}
			loaded += n
		}
	}

	p.metrics.CycleDuration.Observe(p.clock.Since(start).Seconds())
	p.ready.Store(true)
	logger.Debug("poll cycle complete", "items", loaded)
	return nil
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-p.clock.After(d):
		return true
	}
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

// fingerprint changes whenever an asset is added or an object is rewritten.
func fingerprint(item stac.Item) string {
	var latest time.Time
	for _, a := range item.Assets {
		if a.Updated != nil && a.Updated.After(latest) {
			latest = *a.Updated
		}
	}
	return strconv.Itoa(len(item.Assets)) + "|" + latest.Format(time.RFC3339Nano)
}
