package session

import (
	"github.com/goliatone/go-resumegen/pkg/collection"
	"github.com/goliatone/go-resumegen/pkg/fieldpath"
	"github.com/goliatone/go-resumegen/pkg/preview"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/sectionorder"
)

// Form is the editable projection of the Record: one group per section in
// display order, each carrying its inputs and move affordances.
type Form struct {
	Template  record.Template   `json:"template"`
	Templates []record.Template `json:"templates"`
	Groups    []Group           `json:"groups"`
	HasImage  bool              `json:"hasImage"`
	Busy      bool              `json:"busy"`
}

// Group is one section of the form.
type Group struct {
	Section  record.SectionID        `json:"section"`
	Heading  string                  `json:"heading"`
	Position sectionorder.Affordance `json:"position"`
	Fields   []Field                 `json:"fields,omitempty"`
	Entries  []Entry                 `json:"entries,omitempty"`
}

// Entry is one list item with its slot state.
type Entry struct {
	Slot   collection.Slot `json:"slot"`
	Fields []Field         `json:"fields"`
}

// Field is a single input. ID is the legacy identifier accepted by SetField.
type Field struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	Multiline bool   `json:"multiline,omitempty"`
}

var fieldLabels = map[string]string{
	"name":             "Full name",
	"email":            "Email",
	"phone":            "Phone",
	"linkedin":         "LinkedIn",
	"github":           "GitHub",
	"portfolio":        "Portfolio",
	"summary":          "Summary",
	"skills":           "Skills (comma separated)",
	"title":            "Job title",
	"company":          "Company",
	"startDate":        "Start date",
	"endDate":          "End date",
	"responsibilities": "Responsibilities (one per line)",
	"degree":           "Degree",
	"university":       "University",
	"url":              "URL",
	"description":      "Description (one per line)",
}

var multiline = map[string]bool{
	"summary":          true,
	"responsibilities": true,
	"description":      true,
}

var personalFields = []string{"name", "email", "phone", "linkedin", "github", "portfolio"}

// FieldLabel returns the human label of a field name.
func FieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return name
}

// Form projects the current Record.
func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.rec
	form := Form{
		Template:  rec.CurrentTemplate,
		Templates: record.Templates(),
		HasImage:  rec.Personal.ProfileImage != "",
		Busy:      s.busy.Load(),
	}

	for i, affordance := range sectionorder.Affordances(rec.SectionOrder) {
		id := rec.SectionOrder[i]
		group := Group{
			Section:  id,
			Heading:  heading(id),
			Position: affordance,
		}
		switch id {
		case record.SectionPersonal:
			group.Fields = scalarFields(rec, personalFields...)
		case record.SectionSummary, record.SectionSkills:
			group.Fields = scalarFields(rec, string(id))
		default:
			group.Entries = entries(rec, id)
		}
		form.Groups = append(form.Groups, group)
	}
	return form
}

func heading(id record.SectionID) string {
	if id == record.SectionPersonal {
		return "Personal"
	}
	return preview.Headings[id]
}

func scalarFields(rec *record.Record, names ...string) []Field {
	out := make([]Field, 0, len(names))
	for _, name := range names {
		out = append(out, Field{
			ID:        name,
			Name:      name,
			Label:     FieldLabel(name),
			Value:     *rec.ScalarPtr(name),
			Multiline: multiline[name],
		})
	}
	return out
}

func entries(rec *record.Record, section record.SectionID) []Entry {
	slots, err := collection.Reindex(rec, section)
	if err != nil {
		return nil
	}
	seq, _ := rec.Sequence(section)

	out := make([]Entry, 0, len(slots))
	for _, slot := range slots {
		values := seq.Values(slot.Index)
		entry := Entry{Slot: slot}
		for _, name := range record.FieldsOf(section) {
			entry.Fields = append(entry.Fields, Field{
				ID:        fieldpath.Identifier(section, slot.Index, name),
				Name:      name,
				Label:     FieldLabel(name),
				Value:     values[name],
				Multiline: multiline[name],
			})
		}
		out = append(out, entry)
	}
	return out
}
