package model

import "errors"

// Category is a wardrobe slot. The set is fixed by the backend.
type Category string

const (
	CategoryFullOutfit Category = "fulloutfit"
	CategoryTops       Category = "tops"
	CategoryBottoms    Category = "bottoms"
	CategoryOuterwear  Category = "outerwear"
	CategoryShoes      Category = "shoes"
	CategoryJewelry    Category = "jewelry"
	CategoryHats       Category = "hats"
)

// Categories lists every wardrobe category in display order.
var Categories = []Category{
	CategoryFullOutfit,
	CategoryTops,
	CategoryBottoms,
	CategoryOuterwear,
	CategoryShoes,
	CategoryJewelry,
	CategoryHats,
}

// ValidCategory reports whether c is one of the known wardrobe slots.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// WardrobeRecord is the wire shape of a wardrobe item.
type WardrobeRecord struct {
	ID          string `json:"_id"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// WardrobeListResponse wraps list results. Data may be null or absent; the
// view layer degrades that to an empty collection.
type WardrobeListResponse struct {
	Data []WardrobeRecord `json:"data"`
}

// WardrobeItemResponse wraps a single created item.
type WardrobeItemResponse struct {
	Data *WardrobeRecord `json:"data"`
}

var (
	// ErrMissingImage is raised before any network call when no image was
	// selected for an upload.
	ErrMissingImage = errors.New("an image is required")

	// ErrMissingCategory is raised before any network call when no category
	// was chosen.
	ErrMissingCategory = errors.New("a category is required")

	// ErrInvalidCategory is raised for a category outside the known set.
	ErrInvalidCategory = errors.New("unknown wardrobe category")

	// ErrWardrobeItemNotFound is mapped from a 404 on wardrobe operations.
	ErrWardrobeItemNotFound = errors.New("wardrobe item not found")
)
