package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

// ErrMultipleItems is returned by SelectItem when the filter is ambiguous.
var ErrMultipleItems = errors.New("expected single item")

// SelectItem picks the one item of collectionID valid at the given time.
func SelectItem(items []stac.Item, collectionID string, valid time.Time) (stac.Item, error) {
	var matches []stac.Item
	for _, item := range items {
		if item.Collection == collectionID && item.Properties.Datetime.Equal(valid) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 0:
		return stac.Item{}, fmt.Errorf("%w in %s with valid time %s",
			stac.ErrNoAssets, collectionID, domain.FormatReferenceTime(valid))
	case 1:
		return matches[0], nil
	default:
		return stac.Item{}, fmt.Errorf("%w but found %d", ErrMultipleItems, len(matches))
	}
}
