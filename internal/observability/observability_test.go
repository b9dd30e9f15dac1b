package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "json")

	logger.Debug("decoded key", "key", "uk-deterministic-2km/20251121T0000Z/x.nc")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "decoded key", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "metoffice-stac", rec["service"])
}

func TestNewLogger_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "TEXT")

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.ParseErrors.WithLabelValues("collection").Inc()
	a.ItemsProduced.WithLabelValues("met-office-uk-deterministic-surface").Add(3)

	assert.InDelta(t, 1, testutil.ToFloat64(a.ParseErrors.WithLabelValues("collection")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(a.ItemsProduced.WithLabelValues("met-office-uk-deterministic-surface")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.ParseErrors.WithLabelValues("collection")), 0)
}
