// Package collection implements the add/remove/move lifecycle shared by the
// repeatable resume sections (experience, education, project). Every operation
// works the same regardless of the entry type.
package collection

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-resumegen/pkg/fieldpath"
	"github.com/goliatone/go-resumegen/pkg/record"
)

// ErrNotListSection is returned when a scalar or unknown section is targeted.
var ErrNotListSection = errors.New("collection: not a list section")

// Direction selects the neighbour used by Move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" and "down".
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), true
	default:
		return "", false
	}
}

// Slot describes the position-derived state of one entry after Reindex.
type Slot struct {
	Section     record.SectionID `json:"section"`
	Index       int              `json:"index"`
	ID          string           `json:"id"`
	Label       string           `json:"label"`
	CanMoveUp   bool             `json:"canMoveUp"`
	CanMoveDown bool             `json:"canMoveDown"`
}

// Values seeds a new entry keyed by field name.
type Values map[string]string

// Add appends an entry to section and returns its index (the prior length).
func Add(rec *record.Record, section record.SectionID, initial Values) (int, error) {
	seq, err := sequence(rec, section)
	if err != nil {
		return -1, err
	}
	return seq.Append(initial), nil
}

// Remove deletes the entry at index, shifting later entries down. Out of range
// indexes are a no-op.
func Remove(rec *record.Record, section record.SectionID, index int) bool {
	seq, err := sequence(rec, section)
	if err != nil {
		return false
	}
	if index < 0 || index >= seq.Len() {
		return false
	}
	seq.Remove(index)
	return true
}

// Move swaps the entry at index with its neighbour in dir. Moving past either
// boundary is a no-op.
func Move(rec *record.Record, section record.SectionID, index int, dir Direction) bool {
	seq, err := sequence(rec, section)
	if err != nil {
		return false
	}
	if index < 0 || index >= seq.Len() {
		return false
	}
	target := index
	switch dir {
	case Up:
		target--
	case Down:
		target++
	default:
		return false
	}
	if target < 0 || target >= seq.Len() {
		return false
	}
	seq.Swap(index, target)
	return true
}

// Reindex rebuilds the position-derived slots of every entry in section:
// identifiers follow the array index, the first entry cannot move up and the
// last cannot move down.
func Reindex(rec *record.Record, section record.SectionID) ([]Slot, error) {
	seq, err := sequence(rec, section)
	if err != nil {
		return nil, err
	}
	n := seq.Len()
	slots := make([]Slot, n)
	for i := 0; i < n; i++ {
		slots[i] = Slot{
			Section:     section,
			Index:       i,
			ID:          fmt.Sprintf("%s[%d]", section, i),
			Label:       fmt.Sprintf("%s #%d", label(section), i+1),
			CanMoveUp:   i > 0,
			CanMoveDown: i < n-1,
		}
	}
	return slots, nil
}

// FieldID returns the input identifier for a field inside a slot.
func (s Slot) FieldID(field string) string {
	return fieldpath.Identifier(s.Section, s.Index, field)
}

func sequence(rec *record.Record, section record.SectionID) (record.Sequence, error) {
	if rec == nil {
		return nil, errors.New("collection: record is nil")
	}
	seq, ok := rec.Sequence(section)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotListSection, section)
	}
	return seq, nil
}

func label(section record.SectionID) string {
	switch section {
	case record.SectionExperience:
		return "Experience"
	case record.SectionEducation:
		return "Education"
	case record.SectionProject:
		return "Project"
	default:
		return string(section)
	}
}
