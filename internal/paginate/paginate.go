// Package paginate assembles paged listings into one ordered slice.
package paginate

import (
	"context"
	"fmt"

	"FleetConsole/internal/model"
)

// MaxPageSize is the largest page the API serves.
const MaxPageSize = 20

// PageFunc fetches one page of a listing.
type PageFunc[T any] func(ctx context.Context, page, limit int) ([]T, *model.Meta, error)

// CollectAll requests pages starting at 1 until the reported page count or
// maxPages is reached, or a page comes back empty. The page count is the
// running maximum of all values reported so far. Item order is preserved.
func CollectAll[T any](ctx context.Context, fetch PageFunc[T], pageSize, maxPages int) ([]T, error) {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if maxPages <= 0 {
		maxPages = 1
	}

	var items []T
	totalPages := 1
	for page := 1; page <= maxPages && page <= totalPages; page++ {
		batch, meta, err := fetch(ctx, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		items = append(items, batch...)
		if p := meta.Pages(); p > totalPages {
			totalPages = p
		}
		if len(batch) == 0 {
			break
		}
	}
	return items, nil
}
