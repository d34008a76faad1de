// Package sectionorder reorders the top-level resume sections. The pinned
// section (personal) owns position 0 and never moves; every other section can
// travel within positions 1..len-1.
package sectionorder

import "github.com/goliatone/go-resumegen/pkg/record"

// Direction selects which way a section moves.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// ParseDirection accepts "up" and "down".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Affordance is the exposed move state of one section.
type Affordance struct {
	Section     record.SectionID `json:"section"`
	Position    int              `json:"position"`
	Pinned      bool             `json:"pinned"`
	CanMoveUp   bool             `json:"canMoveUp"`
	CanMoveDown bool             `json:"canMoveDown"`
}

// Move relocates id one step in dir by removing it and reinserting it at the
// candidate position. It is a no-op for the pinned section, unknown ids and
// candidates outside [1, len-1].
func Move(order []record.SectionID, id record.SectionID, dir Direction) bool {
	if id == record.PinnedSection || (dir != Up && dir != Down) {
		return false
	}
	from := indexOf(order, id)
	if from < 0 {
		return false
	}
	to := from + int(dir)
	if to < 1 || to > len(order)-1 {
		return false
	}

	moved := order[from]
	if to < from {
		copy(order[to+1:from+1], order[to:from])
	} else {
		copy(order[from:to], order[from+1:to+1])
	}
	order[to] = moved
	return true
}

// Affordances reports move enablement for every section in order. Move up is
// disabled for the first movable position, move down for the last index.
func Affordances(order []record.SectionID) []Affordance {
	pinned := indexOf(order, record.PinnedSection)
	out := make([]Affordance, len(order))
	for i, id := range order {
		isPinned := id == record.PinnedSection
		out[i] = Affordance{
			Section:     id,
			Position:    i,
			Pinned:      isPinned,
			CanMoveUp:   !isPinned && i > pinned+1,
			CanMoveDown: !isPinned && i < len(order)-1,
		}
	}
	return out
}

// For returns the affordance of a single section.
func For(order []record.SectionID, id record.SectionID) (Affordance, bool) {
	for _, a := range Affordances(order) {
		if a.Section == id {
			return a, true
		}
	}
	return Affordance{}, false
}

func indexOf(order []record.SectionID, id record.SectionID) int {
	for i, candidate := range order {
		if candidate == id {
			return i
		}
	}
	return -1
}
