package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/met-office-stac/internal/config"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

// Writer publishes STAC items to a Kafka topic, one message per item.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured item topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadItems publishes items in a single WriteMessages call. Items are keyed
// by ID so every revision of an item lands on the same partition.
func (w *Writer) LoadItems(ctx context.Context, items []stac.Item) error {
	if len(items) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(items))
	for i := range items {
		msg, err := serializeToMessage(items[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d items to %s: %w", len(msgs), w.writer.Topic, err)
	}
	w.logger.Debug("published items", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func serializeToMessage(item stac.Item) (kafkago.Message, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize item %s: %w", item.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(item.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "collection", Value: []byte(item.Collection)},
			{Key: "reference_datetime", Value: []byte(item.Properties.ForecastReferenceDatetime.Format(time.RFC3339))},
			{Key: "horizon", Value: []byte(item.Properties.ForecastHorizon)},
		},
	}, nil
}
