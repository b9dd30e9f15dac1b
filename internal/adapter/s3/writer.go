package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/couchcryptid/met-office-stac/internal/stac"
)

// PutObjectAPI is the subset of the S3 client the Writer needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Writer stores STAC documents as JSON objects laid out as a static catalog:
// "<prefix><collection>/collection.json" and "<prefix><collection>/<item>.json".
// It implements pipeline.Loader.
type Writer struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger *slog.Logger
}

// NewWriter creates a Writer for bucket under prefix.
func NewWriter(client PutObjectAPI, bucket, prefix string, logger *slog.Logger) *Writer {
	return &Writer{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// LoadItems writes each item to its own object.
func (w *Writer) LoadItems(ctx context.Context, items []stac.Item) error {
	for i := range items {
		key := w.prefix + path.Join(items[i].Collection, items[i].ID+".json")
		if err := w.put(ctx, key, "application/geo+json", items[i]); err != nil {
			return err
		}
	}
	w.logger.Debug("stored items", "bucket", w.bucket, "count", len(items))
	return nil
}

// PutCollection writes the collection document.
func (w *Writer) PutCollection(ctx context.Context, c stac.Collection) error {
	return w.put(ctx, w.prefix+path.Join(c.ID, "collection.json"), "application/json", c)
}

func (w *Writer) put(ctx context.Context, key, contentType string, doc any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("saving s3://%s/%s: %w", w.bucket, key, err)
	}
	return nil
}
