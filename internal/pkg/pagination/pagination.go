// Package pagination normalizes offset paging parameters for list queries.
package pagination

import (
	"math"

	"fulfillment/internal/pkg/errs"
)

const (
	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 25
	// MaxLimit caps how many rows a single page may hold.
	MaxLimit = 100
)

// Params is a 1-based page number and a normalized page size.
type Params struct {
	Page  int
	Limit int
}

// NewParams rejects pages below 1 and normalizes the limit.
func NewParams(page, limit int) (Params, error) {
	if page < 1 {
		return Params{}, errs.NewValueIsOutOfRangeError("page", page, 1, math.MaxInt)
	}
	return Params{Page: page, Limit: NormalizeLimit(limit)}, nil
}

// NormalizeLimit enforces the default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one slice of a larger result set. Total counts every match.
type Page[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int64
}

func NewPage[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: p.Page, Limit: p.Limit, Total: total}
}
