package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fitcheck/internal/model"
)

// =============================================================================
// MOCK WARDROBE SOURCE
// =============================================================================

type mockWardrobeSource struct {
	listFn   func(ctx context.Context, category model.Category, username string) ([]model.WardrobeRecord, error)
	addFn    func(ctx context.Context, imagePath string, category model.Category, description string) (*model.WardrobeRecord, error)
	deleteFn func(ctx context.Context, id string) error

	addCalls    int
	deleteCalls int
}

func (m *mockWardrobeSource) List(ctx context.Context, category model.Category, username string) ([]model.WardrobeRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, category, username)
	}
	return nil, nil
}

func (m *mockWardrobeSource) Add(ctx context.Context, imagePath string, category model.Category, description string) (*model.WardrobeRecord, error) {
	m.addCalls++
	if m.addFn != nil {
		return m.addFn(ctx, imagePath, category, description)
	}
	return &model.WardrobeRecord{ID: "new", Category: string(category)}, nil
}

func (m *mockWardrobeSource) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// =============================================================================
// TESTS
// =============================================================================

func TestWardrobeBoard_LoadAllFillsEveryCategory(t *testing.T) {
	source := &mockWardrobeSource{
		listFn: func(ctx context.Context, category model.Category, username string) ([]model.WardrobeRecord, error) {
			return []model.WardrobeRecord{
				{ID: "item-" + string(category), Category: string(category)},
			}, nil
		},
	}
	board := NewWardrobeBoard(source)

	if err := board.LoadAll(context.Background(), "ava"); err != nil {
		t.Fatalf("load all failed: %v", err)
	}

	for _, c := range model.Categories {
		items := board.Category(c).Items()
		if len(items) != 1 {
			t.Errorf("category %s: items = %d, want 1", c, len(items))
			continue
		}
		if items[0].ID != "item-"+string(c) {
			t.Errorf("category %s: id = %q, want %q", c, items[0].ID, "item-"+string(c))
		}
	}
}

func TestWardrobeBoard_FailedCategoryDoesNotBlankOthers(t *testing.T) {
	boom := errors.New("shelf collapsed")
	source := &mockWardrobeSource{
		listFn: func(ctx context.Context, category model.Category, username string) ([]model.WardrobeRecord, error) {
			if category == model.CategoryShoes {
				return nil, boom
			}
			return []model.WardrobeRecord{{ID: string(category) + "-1"}}, nil
		},
	}
	board := NewWardrobeBoard(source)

	err := board.LoadAll(context.Background(), "")
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}

	if got := board.Category(model.CategoryTops).Len(); got != 1 {
		t.Errorf("tops = %d items, want 1 (successful category keeps its load)", got)
	}
	if phase := board.Category(model.CategoryShoes).Phase(); phase != PhaseFailed {
		t.Errorf("shoes phase = %v, want PhaseFailed", phase)
	}
}

func TestWardrobeBoard_AddItemValidatesBeforeUpload(t *testing.T) {
	source := &mockWardrobeSource{}
	board := NewWardrobeBoard(source)
	ctx := context.Background()

	cases := []struct {
		name     string
		image    string
		category model.Category
		wantErr  error
	}{
		{"missing image", "", model.CategoryTops, model.ErrMissingImage},
		{"missing category", "fit.jpg", "", model.ErrMissingCategory},
		{"unknown category", "fit.jpg", "capes", model.ErrInvalidCategory},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := board.AddItem(ctx, tc.image, tc.category, "")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	if source.addCalls != 0 {
		t.Errorf("add calls = %d, want 0 (validation runs before any upload)", source.addCalls)
	}
}

func TestWardrobeBoard_AddItemAppendsAfterConfirm(t *testing.T) {
	source := &mockWardrobeSource{
		addFn: func(ctx context.Context, imagePath string, category model.Category, description string) (*model.WardrobeRecord, error) {
			return &model.WardrobeRecord{
				ID:          "w1",
				ImageURL:    "https://media.fitcheck.test/wardrobe/w1.jpg",
				Category:    string(category),
				Description: description,
			}, nil
		},
	}
	board := NewWardrobeBoard(source)

	item, err := board.AddItem(context.Background(), "fit.jpg", model.CategoryTops, "linen shirt")
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if item.ID != "w1" {
		t.Errorf("id = %q, want w1", item.ID)
	}

	items := board.Category(model.CategoryTops).Items()
	if len(items) != 1 || items[0].ID != "w1" {
		t.Errorf("tops = %v, want the confirmed item appended", items)
	}
}

func TestWardrobeBoard_FailedAddLeavesListUntouched(t *testing.T) {
	source := &mockWardrobeSource{
		addFn: func(ctx context.Context, imagePath string, category model.Category, description string) (*model.WardrobeRecord, error) {
			return nil, fmt.Errorf("upload rejected")
		},
	}
	board := NewWardrobeBoard(source)

	if _, err := board.AddItem(context.Background(), "fit.jpg", model.CategoryTops, ""); err == nil {
		t.Fatal("expected an error from the rejected upload")
	}
	if got := board.Category(model.CategoryTops).Len(); got != 0 {
		t.Errorf("tops = %d items, want 0 after a failed add", got)
	}
}

func TestWardrobeBoard_FailedDeleteLeavesListUntouched(t *testing.T) {
	source := &mockWardrobeSource{
		listFn: func(ctx context.Context, category model.Category, username string) ([]model.WardrobeRecord, error) {
			return []model.WardrobeRecord{{ID: "w1"}}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			return model.ErrWardrobeItemNotFound
		},
	}
	board := NewWardrobeBoard(source)
	ctx := context.Background()

	if err := board.LoadAll(ctx, "", model.CategoryHats); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	err := board.DeleteItem(ctx, model.CategoryHats, "w1")
	if !errors.Is(err, model.ErrWardrobeItemNotFound) {
		t.Fatalf("error = %v, want ErrWardrobeItemNotFound", err)
	}
	if got := board.Category(model.CategoryHats).Len(); got != 1 {
		t.Errorf("hats = %d items, want 1 (item stays until the server confirms)", got)
	}
}

func TestWardrobeBoard_DeleteRemovesConfirmedItem(t *testing.T) {
	source := &mockWardrobeSource{
		listFn: func(ctx context.Context, category model.Category, username string) ([]model.WardrobeRecord, error) {
			return []model.WardrobeRecord{{ID: "w1"}, {ID: "w2"}}, nil
		},
	}
	board := NewWardrobeBoard(source)
	ctx := context.Background()

	if err := board.LoadAll(ctx, "", model.CategoryHats); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := board.DeleteItem(ctx, model.CategoryHats, "w1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	items := board.Category(model.CategoryHats).Items()
	if len(items) != 1 || items[0].ID != "w2" {
		t.Errorf("hats = %v, want only w2", items)
	}
}
