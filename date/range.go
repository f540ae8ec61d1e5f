package date

import "fmt"

// Range represents a range of dates, boundaries included.
//
// A zero boundary is open: Range{To: d} holds every date up to d.
type Range struct{ From, To Date }

// NewRange returns the range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// IsUnbounded reports whether the range holds every date.
func (r Range) IsUnbounded() bool { return r.From.IsZero() && r.To.IsZero() }

func (r Range) String() string {
	if r.IsUnbounded() {
		return "all"
	}
	return fmt.Sprintf("%s..%s", r.From, r.To)
}
