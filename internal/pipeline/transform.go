package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/observability"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

// ItemTransformer implements Transformer by decoding each key, grouping the
// assets of one model run step and building a STAC item per group.
type ItemTransformer struct {
	decoder *domain.Decoder
	builder *stac.Builder
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates an ItemTransformer over the given tables. Items are
// stamped as created at clock's current time; nil selects the real clock.
func NewTransformer(tables *domain.Tables, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *ItemTransformer {
	return &ItemTransformer{
		decoder: domain.NewDecoder(tables),
		builder: stac.NewBuilder(domain.NewAssembler(tables), clock),
		logger:  logger,
		metrics: metrics,
	}
}

// Transform skips keys that fail to decode and items whose metadata cannot
// be assembled; neither aborts the batch. Items are returned in the order
// their first asset was listed.
func (t *ItemTransformer) Transform(ctx context.Context, objects []domain.RawObject) ([]stac.Item, error) {
	var order []string
	groups := make(map[string][]stac.Source)

	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := t.decoder.Parse(obj.Href)
		if err != nil {
			field := ""
			var pe *domain.ParseError
			if errors.As(err, &pe) {
				field = pe.Field
			}
			t.logger.Warn("skipping undecodable key", "key", obj.Key, "field", field, "error", err)
			t.metrics.ParseErrors.WithLabelValues(field).Inc()
			continue
		}

		id := domain.ItemID(d.Model, d.Theme, d.ReferenceTime, d.ForecastStep)
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], stac.Source{
			Descriptor:   d,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	items := make([]stac.Item, 0, len(order))
	for _, id := range order {
		item, warnings, err := t.builder.Item(groups[id])
		if err != nil {
			t.logger.Error("skipping item", "item_id", id, "error", err)
			t.metrics.AssemblyErrors.Inc()
			continue
		}
		for _, w := range warnings {
			var uv *domain.UnknownVariableWarning
			if errors.As(w, &uv) {
				t.metrics.UnknownVars.WithLabelValues(string(uv.Model)).Inc()
			}
			t.logger.Warn("asset metadata incomplete", "item_id", id, "warning", w)
		}
		items = append(items, item)
	}
	return items, nil
}
