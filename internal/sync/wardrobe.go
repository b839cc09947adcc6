package sync

import (
	"context"
	stdsync "sync"

	"fitcheck/internal/model"
	"fitcheck/internal/viewmodel"
)

// WardrobeSource is the slice of the wardrobe service the board needs.
type WardrobeSource interface {
	List(ctx context.Context, category model.Category, username string) ([]model.WardrobeRecord, error)
	Add(ctx context.Context, imagePath string, category model.Category, description string) (*model.WardrobeRecord, error)
	Delete(ctx context.Context, id string) error
}

// WardrobeBoard synchronizes the per-category wardrobe lists. Category
// fetches fan out concurrently with no ordering guarantee between them; the
// board waits for all to settle before the combined result is rendered.
type WardrobeBoard struct {
	source WardrobeSource

	mu          stdsync.Mutex
	collections map[model.Category]*Collection[viewmodel.WardrobeItem]
}

func NewWardrobeBoard(source WardrobeSource) *WardrobeBoard {
	collections := make(map[model.Category]*Collection[viewmodel.WardrobeItem], len(model.Categories))
	for _, c := range model.Categories {
		collections[c] = &Collection[viewmodel.WardrobeItem]{}
	}
	return &WardrobeBoard{
		source:      source,
		collections: collections,
	}
}

// LoadAll fetches every requested category concurrently. The first error is
// returned after all fetches settle; categories that succeeded keep their
// loaded items.
func (b *WardrobeBoard) LoadAll(ctx context.Context, username string, categories ...model.Category) error {
	if len(categories) == 0 {
		categories = model.Categories
	}

	var wg stdsync.WaitGroup
	errs := make([]error, len(categories))

	for i, category := range categories {
		wg.Add(1)
		go func(i int, category model.Category) {
			defer wg.Done()
			errs[i] = b.Category(category).Load(ctx, func(ctx context.Context) ([]viewmodel.WardrobeItem, error) {
				recs, err := b.source.List(ctx, category, username)
				if err != nil {
					return nil, err
				}
				return viewmodel.WardrobeItems(recs), nil
			})
		}(i, category)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Category returns the collection for one wardrobe slot.
func (b *WardrobeBoard) Category(category model.Category) *Collection[viewmodel.WardrobeItem] {
	b.mu.Lock()
	defer b.mu.Unlock()

	col, ok := b.collections[category]
	if !ok {
		col = &Collection[viewmodel.WardrobeItem]{}
		b.collections[category] = col
	}
	return col
}

// AddItem validates locally, uploads, and appends to the category list only
// after the server confirms. A failed upload leaves the list unchanged.
func (b *WardrobeBoard) AddItem(ctx context.Context, imagePath string, category model.Category, description string) (*viewmodel.WardrobeItem, error) {
	if imagePath == "" {
		return nil, model.ErrMissingImage
	}
	if category == "" {
		return nil, model.ErrMissingCategory
	}
	if !model.ValidCategory(category) {
		return nil, model.ErrInvalidCategory
	}

	rec, err := b.source.Add(ctx, imagePath, category, description)
	if err != nil {
		return nil, err
	}

	item := viewmodel.WardrobeItemFromRecord(*rec)
	b.Category(category).Append(item)
	return &item, nil
}

// DeleteItem removes the item from the category list only after the server
// confirms the delete.
func (b *WardrobeBoard) DeleteItem(ctx context.Context, category model.Category, id string) error {
	if err := b.source.Delete(ctx, id); err != nil {
		return err
	}
	b.Category(category).Remove(func(item viewmodel.WardrobeItem) bool {
		return item.ID == id
	})
	return nil
}
