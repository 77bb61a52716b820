package store

// Pagination bounds for list endpoints.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page selects a window of an ordered listing.
type Page struct {
	Offset int
	Limit  int
}

// NewPage returns a normalized Page: a negative offset becomes 0, a
// non-positive limit becomes DefaultLimit, and the limit is capped at MaxLimit.
func NewPage(offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Offset: offset, Limit: limit}
}
