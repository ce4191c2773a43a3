package book

import "time"

// Record is the canonical, normalized representation of one ISBN's
// data. Optional scalars are pointers so "no data" stays distinct from
// a zero value; list fields are always non-nil so length checks are
// well-defined. Records are immutable once normalized.
type Record struct {
	ISBN          string
	Title         *string
	Authors       []string
	Publishers    []string
	PublishDate   *time.Time
	NumberOfPages *int
	GoodreadsIDs  []string
	LastModified  *time.Time
	Description   string
	FirstSentence string
}
