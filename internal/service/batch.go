package service

// BatchResult is the outcome of a bulk operation that silently skips ids the
// caller may not touch. Requested counts the distinct ids asked for; Excluded
// counts those that were missing or owned by someone else.
type BatchResult[T any] struct {
	Items     []T
	Requested int
	Excluded  int
}

// PageResult is one page of an ordered listing plus the total available.
type PageResult[T any] struct {
	Items []T
	Total int
}
