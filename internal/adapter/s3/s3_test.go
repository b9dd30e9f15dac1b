package s3

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/met-office-stac/internal/observability"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

const (
	testBucket = "met-office-atmospheric-model-data"
	testPrefix = "uk-deterministic-2km/20251121T0000Z/"

	testBaseURL = "s3://" + testBucket + "/"
)

// Verify the mocks implement the client interfaces.
var (
	_ s3.ListObjectsV2APIClient = (*mockListClient)(nil)
	_ PutObjectAPI              = (*mockPutClient)(nil)
)

type mockListClient struct {
	pages  []*s3.ListObjectsV2Output
	err    error
	inputs []*s3.ListObjectsV2Input
}

func (m *mockListClient) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	page := m.pages[len(m.inputs)-1]
	return page, nil
}

type mockPutClient struct {
	puts map[string][]byte
	err  error
}

func (m *mockPutClient) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	if m.puts == nil {
		m.puts = map[string][]byte{}
	}
	m.puts[aws.ToString(params.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func s3Object(key string, size int64, modified time.Time) types.Object {
	return types.Object{Key: aws.String(key), Size: aws.Int64(size), LastModified: aws.Time(modified)}
}

func TestLister_ListObjects_Paginates(t *testing.T) {
	modified := time.Date(2025, 11, 21, 0, 40, 0, 0, time.UTC)
	client := &mockListClient{pages: []*s3.ListObjectsV2Output{
		{
			Contents:              []types.Object{s3Object(testPrefix+"a.nc", 10, modified)},
			IsTruncated:           aws.Bool(true),
			NextContinuationToken: aws.String("page-2"),
		},
		{
			Contents:    []types.Object{s3Object(testPrefix+"b.nc", 20, modified)},
			IsTruncated: aws.Bool(false),
		},
	}}
	metrics := observability.NewMetricsForTesting()
	lister := NewLister(client, testBucket, testBaseURL, 100, slog.Default(), metrics)

	objects, err := lister.ListObjects(context.Background(), testPrefix)
	require.NoError(t, err)

	require.Len(t, objects, 2)
	assert.Equal(t, testPrefix+"a.nc", objects[0].Key)
	assert.Equal(t, "s3://"+testBucket+"/"+testPrefix+"a.nc", objects[0].Href)
	assert.Equal(t, int64(10), objects[0].Size)
	assert.Equal(t, modified, objects[0].LastModified)
	assert.Equal(t, int64(20), objects[1].Size)

	require.Len(t, client.inputs, 2)
	assert.Equal(t, testBucket, aws.ToString(client.inputs[0].Bucket))
	assert.Equal(t, testPrefix, aws.ToString(client.inputs[0].Prefix))
	assert.Nil(t, client.inputs[0].ContinuationToken)
	assert.Equal(t, "page-2", aws.ToString(client.inputs[1].ContinuationToken))
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.ListRequests.WithLabelValues("success")), 0)
}

func TestLister_ListObjects_Error(t *testing.T) {
	client := &mockListClient{err: errors.New("access denied")}
	metrics := observability.NewMetricsForTesting()
	lister := NewLister(client, testBucket, testBaseURL, 100, slog.Default(), metrics)

	_, err := lister.ListObjects(context.Background(), testPrefix)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.Contains(t, err.Error(), testPrefix)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ListRequests.WithLabelValues("error")), 0)
}

func TestLister_ListObjects_HrefUsesBaseURL(t *testing.T) {
	client := &mockListClient{pages: []*s3.ListObjectsV2Output{{
		Contents: []types.Object{s3Object(testPrefix+"a.nc", 10, time.Now())},
	}}}
	lister := NewLister(client, testBucket, "https://mirror.example.com/models/", 100, slog.Default(), observability.NewMetricsForTesting())

	objects, err := lister.ListObjects(context.Background(), testPrefix)
	require.NoError(t, err)

	require.Len(t, objects, 1)
	assert.Equal(t, "https://mirror.example.com/models/"+testPrefix+"a.nc", objects[0].Href)
	assert.Equal(t, testBucket, aws.ToString(client.inputs[0].Bucket))
}

func TestLister_ListObjects_CanceledWhileRateLimited(t *testing.T) {
	client := &mockListClient{pages: []*s3.ListObjectsV2Output{{}}}
	lister := NewLister(client, testBucket, testBaseURL, 0.001, slog.Default(), observability.NewMetricsForTesting())
	lister.limiter.Allow() // drain the single burst token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lister.ListObjects(ctx, testPrefix)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait canceled")
	assert.Empty(t, client.inputs)
}

func TestNewClient_ListsFromEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+testBucket, r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("list-type"))
		assert.Empty(t, r.Header.Get("Authorization"), "anonymous requests are unsigned")

		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>%s</Name>
  <Prefix>%s</Prefix>
  <KeyCount>1</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>false</IsTruncated>
  <Contents>
    <Key>%s20251121T0300Z-PT0003H00M-temperature_at_screen_level.nc</Key>
    <LastModified>2025-11-21T03:40:00.000Z</LastModified>
    <Size>4096</Size>
    <StorageClass>STANDARD</StorageClass>
  </Contents>
</ListBucketResult>`, testBucket, r.URL.Query().Get("prefix"), r.URL.Query().Get("prefix"))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), ClientOptions{Region: "eu-west-2", Endpoint: srv.URL, Anonymous: true})
	require.NoError(t, err)

	lister := NewLister(client, testBucket, testBaseURL, 100, slog.Default(), observability.NewMetricsForTesting())
	objects, err := lister.ListObjects(context.Background(), testPrefix)
	require.NoError(t, err)

	require.Len(t, objects, 1)
	assert.Equal(t, int64(4096), objects[0].Size)
	assert.Equal(t, time.Date(2025, 11, 21, 3, 40, 0, 0, time.UTC), objects[0].LastModified)
}

func TestWriter_LoadItems(t *testing.T) {
	client := &mockPutClient{}
	w := NewWriter(client, "catalog", "stac/", slog.Default())

	items := []stac.Item{
		{Type: "Feature", ID: "uk-surface-20251121T0000Z-PT0003H00M", Collection: "met-office-uk-deterministic-surface"},
		{Type: "Feature", ID: "uk-surface-20251121T0000Z-PT0004H00M", Collection: "met-office-uk-deterministic-surface"},
	}
	require.NoError(t, w.LoadItems(context.Background(), items))

	require.Len(t, client.puts, 2)
	body, ok := client.puts["stac/met-office-uk-deterministic-surface/uk-surface-20251121T0000Z-PT0003H00M.json"]
	require.True(t, ok)

	var got stac.Item
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, items[0].ID, got.ID)
}

func TestWriter_PutCollection(t *testing.T) {
	client := &mockPutClient{}
	w := NewWriter(client, "catalog", "", slog.Default())

	require.NoError(t, w.PutCollection(context.Background(), stac.Collection{Type: "Collection", ID: "met-office-global-deterministic-surface"}))
	assert.Contains(t, client.puts, "met-office-global-deterministic-surface/collection.json")
}

func TestWriter_Error(t *testing.T) {
	w := NewWriter(&mockPutClient{err: errors.New("slow down")}, "catalog", "", slog.Default())

	err := w.LoadItems(context.Background(), []stac.Item{{ID: "x", Collection: "c"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://catalog/c/x.json")
}
