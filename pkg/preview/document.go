// Package preview projects a Record into the ordered blocks that make up the
// rendered resume. Build is pure: it never mutates the Record and never reads
// state back out of rendered output.
package preview

import "github.com/goliatone/go-resumegen/pkg/record"

// Document is the rendered form of a Record, tagged with the active template so
// a preset can attach its styling.
type Document struct {
	Template record.Template `json:"template"`
	Blocks   []Block         `json:"blocks"`
}

// Block is one visible section. Exactly one of Personal, Text, Items or
// Entries carries content depending on Section.
type Block struct {
	Section  record.SectionID `json:"section"`
	Heading  string           `json:"heading,omitempty"`
	Personal *PersonalBlock   `json:"personal,omitempty"`
	Text     string           `json:"text,omitempty"`
	Items    []string         `json:"items,omitempty"`
	Entries  []EntryBlock     `json:"entries,omitempty"`
}

// PersonalBlock is the header of the document.
type PersonalBlock struct {
	Name             string    `json:"name"`
	Contacts         []Contact `json:"contacts,omitempty"`
	Image            string    `json:"image,omitempty"`
	ImagePlaceholder bool      `json:"imagePlaceholder"`
	Initials         string    `json:"initials,omitempty"`
}

// Contact is one non-empty contact line.
type Contact struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Value string `json:"value"`
	Href  string `json:"href,omitempty"`
}

// EntryBlock is one visible entry of a list section. Index is the entry's
// position in the Record, which may differ from its position in the block
// when placeholders were filtered.
type EntryBlock struct {
	Index int      `json:"index"`
	Title string   `json:"title,omitempty"`
	Dates string   `json:"dates,omitempty"`
	Link  string   `json:"link,omitempty"`
	Items []string `json:"items,omitempty"`
}

// Block returns the first block for section.
func (d Document) Block(section record.SectionID) (Block, bool) {
	for _, b := range d.Blocks {
		if b.Section == section {
			return b, true
		}
	}
	return Block{}, false
}

// Sections lists the visible sections in render order.
func (d Document) Sections() []record.SectionID {
	out := make([]record.SectionID, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		out = append(out, b.Section)
	}
	return out
}

// Headings used for each section.
var Headings = map[record.SectionID]string{
	record.SectionSummary:    "Summary",
	record.SectionExperience: "Experience",
	record.SectionEducation:  "Education",
	record.SectionSkills:     "Skills",
	record.SectionProject:    "Projects",
}
