package record

// SectionID names a top-level section of the Record.
type SectionID string

const (
	SectionPersonal   SectionID = "personal"
	SectionSummary    SectionID = "summary"
	SectionExperience SectionID = "experience"
	SectionEducation  SectionID = "education"
	SectionSkills     SectionID = "skills"
	SectionProject    SectionID = "project"
)

// PinnedSection always occupies index 0 of the section order.
const PinnedSection = SectionPersonal

// MaxEntries bounds the length a list section may be grown to by addressing
// an index past its end.
const MaxEntries = 100

var defaultOrder = []SectionID{
	SectionPersonal,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProject,
}

// DefaultOrder returns a fresh copy of the canonical section ordering.
func DefaultOrder() []SectionID {
	return append([]SectionID(nil), defaultOrder...)
}

// Valid reports whether id is one of the six known sections.
func (id SectionID) Valid() bool {
	for _, known := range defaultOrder {
		if id == known {
			return true
		}
	}
	return false
}

// IsList reports whether id is a repeatable list section.
func (id SectionID) IsList() bool {
	switch id {
	case SectionExperience, SectionEducation, SectionProject:
		return true
	default:
		return false
	}
}

// ListSections returns the repeatable sections in canonical order.
func ListSections() []SectionID {
	return []SectionID{SectionExperience, SectionEducation, SectionProject}
}

// IsPermutation reports whether order holds each known section exactly once
// with the pinned section first.
func IsPermutation(order []SectionID) bool {
	if len(order) != len(defaultOrder) || order[0] != PinnedSection {
		return false
	}
	seen := make(map[SectionID]struct{}, len(order))
	for _, id := range order {
		if !id.Valid() {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}
