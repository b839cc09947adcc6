// Package viewmodel holds the pure transformers between wire records and
// the shapes the presentation layer consumes. Nothing here performs I/O.
package viewmodel

import "fitcheck/internal/model"

// WardrobeItem is the display shape of a wardrobe record.
type WardrobeItem struct {
	ID          string
	Image       string
	Category    string
	Description string
}

// WardrobeItemFromRecord renames the wire fields (_id to id, imageUrl to
// image) without touching values.
func WardrobeItemFromRecord(rec model.WardrobeRecord) WardrobeItem {
	return WardrobeItem{
		ID:          rec.ID,
		Image:       rec.ImageURL,
		Category:    rec.Category,
		Description: rec.Description,
	}
}

// WardrobeItems maps a record list into view items. A nil list degrades to
// an empty collection, never an error.
func WardrobeItems(recs []model.WardrobeRecord) []WardrobeItem {
	items := make([]WardrobeItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, WardrobeItemFromRecord(rec))
	}
	return items
}
