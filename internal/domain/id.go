package domain

import (
	"fmt"
	"time"
)

// ItemIDVersion identifies the ItemID scheme. Downstream catalogs key on item
// IDs, so any change to ItemID must bump this value.
const ItemIDVersion = 1

// ItemID derives the item identifier for a model run step, e.g.
// "uk-surface-20251121T0000Z-PT0003H00M". Model and theme tokens contain no
// timestamps and both time fields are fixed width, so distinct inputs never
// produce the same ID.
func ItemID(model Model, theme Theme, reference time.Time, step time.Duration) string {
	return fmt.Sprintf("%s-%s-%s-%s", model, theme, FormatReferenceTime(reference), FormatHorizon(step))
}
