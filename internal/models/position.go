package models

// Position names where an item should land inside its collection: at one of
// the ends, or relative to an existing sibling.
type Position struct {
	Place  string `json:"place"`            // "start", "end", "before", "after"
	Anchor string `json:"anchor,omitempty"` // sibling id, required for before/after
}

const (
	PlaceStart  = "start"
	PlaceEnd    = "end"
	PlaceBefore = "before"
	PlaceAfter  = "after"
)

func (p Position) Valid() bool {
	switch p.Place {
	case PlaceStart, PlaceEnd:
		return p.Anchor == ""
	case PlaceBefore, PlaceAfter:
		return p.Anchor != ""
	case "":
		// zero value means "end"
		return p.Anchor == ""
	}
	return false
}

// Relative reports whether the position is anchored to a sibling.
func (p Position) Relative() bool {
	return p.Place == PlaceBefore || p.Place == PlaceAfter
}
