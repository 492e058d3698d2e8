package domain

import (
	"math"
	"strings"
)

// Direction is the ordering applied to a sort property.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// ParseDirection maps "asc"/"desc" in any case to a Direction.
func ParseDirection(val string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "asc":
		return Ascending, true
	case "desc":
		return Descending, true
	}
	return "", false
}

// Order is a single sort criterion.
type Order struct {
	Property  string
	Direction Direction
}

// Sort is an ordered list of criteria. The zero value means unsorted.
type Sort []Order

// IsSorted reports whether any criteria were requested.
func (s Sort) IsSorted() bool {
	return len(s) > 0
}

// PageRequest describes a zero-based page of a listing.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset returns the number of rows preceding the page. It saturates at
// math.MaxInt instead of wrapping, so a huge page index lands past the end.
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is a bounded slice of a listing plus the totals needed to navigate it.
type Page[T any] struct {
	Items   []T
	Total   int64
	Request PageRequest
}

// NewPage builds a page, never returning a nil item slice.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Request: req}
}

// TotalPages is ceil(total/size); an empty listing has zero pages.
func (p Page[T]) TotalPages() int {
	if p.Request.Size <= 0 {
		return 1
	}
	return int((p.Total + int64(p.Request.Size) - 1) / int64(p.Request.Size))
}

// NumberOfElements is the length of the current slice.
func (p Page[T]) NumberOfElements() int {
	return len(p.Items)
}

// IsFirst reports whether no page precedes this one.
func (p Page[T]) IsFirst() bool {
	return p.Request.Page == 0
}

// IsLast reports whether no page follows this one.
func (p Page[T]) IsLast() bool {
	return p.Request.Page >= p.TotalPages()-1
}
