package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/met-office-stac/internal/adapter/http"
	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type failingCollections struct{ err error }

func (f failingCollections) Collection(domain.Model, domain.Theme) (stac.Collection, error) {
	return stac.Collection{}, f.err
}

func newTestServer(readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, stac.NewBuilder(nil, nil),
		[]domain.Model{domain.ModelUK}, slog.Default())
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(newTestServer(nil), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(newTestServer(nil), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(newTestServer(fmt.Errorf("no poll cycle completed")), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no poll cycle completed", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(newTestServer(nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestCollectionReturnsDocument(t *testing.T) {
	rec := get(newTestServer(nil), "/collections/met-office-uk-deterministic-surface")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Collection", body["type"])
	assert.Equal(t, "met-office-uk-deterministic-surface", body["id"])
	assert.Contains(t, body, "cube:variables")
}

func TestCollectionNotFound(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"malformed id", "/collections/uk-surface"},
		{"unconfigured model", "/collections/met-office-global-deterministic-surface"},
		{"unknown theme", "/collections/met-office-uk-deterministic-ocean"},
	}

	srv := newTestServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(srv, tt.path)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestCollectionConfigurationGapIsNotFound(t *testing.T) {
	gap := fmt.Errorf("describe collection: %w", &domain.ConfigurationGap{Model: domain.ModelUK, Theme: domain.ThemeSurface, Field: "grid"})
	srv := httpadapter.NewServer(":0", &mockReadiness{}, failingCollections{err: gap}, []domain.Model{domain.ModelUK}, slog.Default())

	rec := get(srv, "/collections/met-office-uk-deterministic-surface")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollectionBuildFailureIs500(t *testing.T) {
	srv := httpadapter.NewServer(":0", &mockReadiness{}, failingCollections{err: errors.New("boom")}, []domain.Model{domain.ModelUK}, slog.Default())

	assert.Equal(t, http.StatusInternalServerError, get(srv, "/collections/met-office-uk-deterministic-surface").Code)
	assert.Equal(t, http.StatusInternalServerError, get(srv, "/collections").Code)
}

func TestCollectionsListsEveryTheme(t *testing.T) {
	rec := get(newTestServer(nil), "/collections")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Collections []struct {
			ID string `json:"id"`
		} `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	ids := make([]string, 0, len(body.Collections))
	for _, c := range body.Collections {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{
		"met-office-uk-deterministic-surface",
		"met-office-uk-deterministic-pressure-level",
		"met-office-uk-deterministic-height-level",
	}, ids)
}
