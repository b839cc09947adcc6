package viewmodel

import (
	"testing"

	"fitcheck/internal/model"
)

func TestWardrobeItemFromRecord_RenamesOnly(t *testing.T) {
	rec := model.WardrobeRecord{
		ID:          "w1",
		ImageURL:    "https://media.fitcheck.test/wardrobe/w1.jpg",
		Category:    "tops",
		Description: "linen shirt",
	}

	item := WardrobeItemFromRecord(rec)

	if item.ID != rec.ID {
		t.Errorf("id = %q, want %q", item.ID, rec.ID)
	}
	if item.Image != rec.ImageURL {
		t.Errorf("image = %q, want %q", item.Image, rec.ImageURL)
	}
	if item.Category != rec.Category || item.Description != rec.Description {
		t.Errorf("item = %+v, want values carried unchanged", item)
	}
}

func TestWardrobeItems_TotalMapping(t *testing.T) {
	recs := []model.WardrobeRecord{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	items := WardrobeItems(recs)
	if len(items) != len(recs) {
		t.Fatalf("items = %d, want %d (every record maps, none dropped)", len(items), len(recs))
	}
	for i := range recs {
		if items[i].ID != recs[i].ID {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, recs[i].ID)
		}
	}
}

func TestWardrobeItems_NilDegradesToEmpty(t *testing.T) {
	if items := WardrobeItems(nil); items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty non-nil slice", items)
	}
}
