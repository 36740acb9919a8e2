// Package pageable implements the pagination cursor used by all list
// queries: a caller-supplied (from, size) pair with a page-number view of it.
package pageable

import "github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"

// OffsetPage is an immutable (offset, limit) pagination cursor.
type OffsetPage struct {
	from int
	size int
}

// New validates and builds an OffsetPage. from must be non-negative and size
// at least 1.
func New(from, size int) (OffsetPage, error) {
	if from < 0 {
		return OffsetPage{}, apperror.InvalidArgument("from must not be negative, got %d", from)
	}
	if size < 1 {
		return OffsetPage{}, apperror.InvalidArgument("size must be positive, got %d", size)
	}
	return OffsetPage{from: from, size: size}, nil
}

// Offset returns the number of records to skip.
func (p OffsetPage) Offset() int { return p.from }

// Limit returns the maximum number of records to return.
func (p OffsetPage) Limit() int { return p.size }

// PageNumber returns the zero-based page this cursor falls on.
func (p OffsetPage) PageNumber() int { return p.from / p.size }

// PageSize returns the page size.
func (p OffsetPage) PageSize() int { return p.size }

// Next returns the cursor for the following page.
func (p OffsetPage) Next() OffsetPage {
	return OffsetPage{from: p.from + p.size, size: p.size}
}
