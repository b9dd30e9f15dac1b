// Package stdout writes STAC items as JSON lines.
package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/couchcryptid/met-office-stac/internal/stac"
)

// Writer emits one JSON document per line. It implements pipeline.Loader.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter creates a Writer on w, typically os.Stdout.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// LoadItems writes each item on its own line.
func (w *Writer) LoadItems(ctx context.Context, items []stac.Item) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.enc.Encode(items[i]); err != nil {
			return fmt.Errorf("write item %s: %w", items[i].ID, err)
		}
	}
	return nil
}

// Write emits any other document, such as a collection, as one line.
func (w *Writer) Write(doc any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(doc)
}
