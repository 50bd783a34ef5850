package repository

// Pagination bounds a List call. Limit is clamped to a sane maximum by each
// implementation; a zero Limit is treated as DefaultLimit.
type Pagination struct {
	Offset int
	Limit  int
}

// DefaultLimit is applied when Pagination.Limit is zero.
const DefaultLimit = 50

// MaxLimit is the hard ceiling an implementation clamps Limit to.
const MaxLimit = 200

// Normalize returns a Pagination with Offset/Limit adjusted into range.
func (p Pagination) Normalize() Pagination {
	if p.Offset < 0 {
		p.Offset = 0
	}
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// Page is a single page of results with the total row count across all
// pages, so callers can compute whether more pages remain.
type Page[T any] struct {
	Items []T
	Total int
}
