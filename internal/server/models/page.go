package models

// PageQuery selects one page of a collection. Search is matched as a
// case-insensitive substring of the name; empty matches everything.
type PageQuery struct {
	Search string
	Limit  int
	Offset int
}

// Page is one slice of a collection plus the size of the whole filtered
// collection.
type Page[T any] struct {
	Rows  []*T
	Total int
}
