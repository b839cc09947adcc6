package sync

import (
	"context"
	"sync"
)

// DefaultPageSize matches the explore feed's fixed page size.
const DefaultPageSize = 10

// FetchPage loads one page of items.
type FetchPage[T any] func(ctx context.Context, page, limit int) ([]T, error)

// Pager drives page-based pagination with the explore feed's termination
// rule: a page shorter than the page size means there is no more data, and
// further load-more calls are no-ops until a refresh resets the flag.
type Pager[T any] struct {
	mu       sync.Mutex
	fetch    FetchPage[T]
	pageSize int

	page    int
	items   []T
	hasMore bool
	loading bool
	err     error
}

func NewPager[T any](pageSize int, fetch FetchPage[T]) *Pager[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager[T]{
		fetch:    fetch,
		pageSize: pageSize,
		hasMore:  true,
	}
}

// Refresh loads page one and replaces the collection, resetting the
// exhaustion flag.
func (p *Pager[T]) Refresh(ctx context.Context) error {
	return p.load(ctx, 1, true)
}

// LoadMore fetches the next page and appends it. It is a no-op when a load
// is in flight or the feed is exhausted.
func (p *Pager[T]) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if p.loading || !p.hasMore {
		p.mu.Unlock()
		return nil
	}
	next := p.page + 1
	p.mu.Unlock()

	return p.load(ctx, next, false)
}

func (p *Pager[T]) load(ctx context.Context, page int, replace bool) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	p.mu.Unlock()

	items, err := p.fetch(ctx, page, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		p.err = err
		return err
	}
	p.err = nil

	// Shorter-than-requested page means the server ran out.
	if len(items) < p.pageSize {
		p.hasMore = false
	} else if replace {
		p.hasMore = true
	}

	if replace {
		p.items = items
	} else {
		p.items = append(p.items, items...)
	}
	p.page = page
	return nil
}

// Items returns a copy of everything loaded so far.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// HasMore reports whether another page may exist.
func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Page returns the last loaded page number.
func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Err returns the last load error, if any.
func (p *Pager[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
