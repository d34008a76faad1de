package preview

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-resumegen/pkg/record"
)

const (
	titleSeparator = ", "
	dateSeparator  = " - "
)

// Build walks rec.SectionOrder and returns the visible blocks. Each section id
// is visited at most once; suppressed sections produce no block.
func Build(rec *record.Record) Document {
	if rec == nil {
		return Document{Template: record.TemplateDefault}
	}

	doc := Document{Template: rec.CurrentTemplate}
	if !doc.Template.Valid() {
		doc.Template = record.TemplateDefault
	}

	seen := make(map[record.SectionID]struct{}, len(rec.SectionOrder))
	for _, id := range rec.SectionOrder {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if block, ok := buildBlock(rec, id); ok {
			doc.Blocks = append(doc.Blocks, block)
		}
	}
	return doc
}

func buildBlock(rec *record.Record, id record.SectionID) (Block, bool) {
	block := Block{Section: id, Heading: Headings[id]}

	switch id {
	case record.SectionPersonal:
		block.Personal = personalBlock(rec.Personal)
		return block, true
	case record.SectionSummary:
		text := strings.TrimSpace(rec.Summary)
		if text == "" {
			return Block{}, false
		}
		block.Text = text
		return block, true
	case record.SectionSkills:
		block.Items = SplitSkills(rec.Skills)
		if len(block.Items) == 0 {
			return Block{}, false
		}
		return block, true
	case record.SectionExperience:
		for i, e := range rec.Experience {
			if e.IsEmpty() {
				continue
			}
			block.Entries = append(block.Entries, EntryBlock{
				Index: i,
				Title: JoinTitle(e.Title, e.Company),
				Dates: DateRange(e.StartDate, e.EndDate),
				Items: SplitLines(e.Responsibilities),
			})
		}
	case record.SectionEducation:
		for i, e := range rec.Education {
			if e.IsEmpty() {
				continue
			}
			block.Entries = append(block.Entries, EntryBlock{
				Index: i,
				Title: JoinTitle(e.Degree, e.University),
				Dates: DateRange(e.StartDate, e.EndDate),
			})
		}
	case record.SectionProject:
		for i, p := range rec.Project {
			if p.IsEmpty() {
				continue
			}
			block.Entries = append(block.Entries, EntryBlock{
				Index: i,
				Title: strings.TrimSpace(p.Name),
				Link:  strings.TrimSpace(p.URL),
				Items: SplitLines(p.Description),
			})
		}
	default:
		return Block{}, false
	}

	return block, len(block.Entries) > 0
}

func personalBlock(p record.Personal) *PersonalBlock {
	out := &PersonalBlock{
		Name:     strings.TrimSpace(p.Name),
		Initials: Initials(p.Name),
	}
	if img := strings.TrimSpace(p.ProfileImage); img != "" {
		out.Image = img
	} else {
		out.ImagePlaceholder = true
	}

	add := func(kind, label, value, href string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if href != "" {
			href += value
		}
		out.Contacts = append(out.Contacts, Contact{Kind: kind, Label: label, Value: value, Href: href})
	}
	add("email", "Email", p.Email, "mailto:")
	add("phone", "Phone", p.Phone, "tel:")
	add("linkedin", "LinkedIn", p.LinkedIn, "")
	add("github", "GitHub", p.GitHub, "")
	add("portfolio", "Portfolio", p.Portfolio, "")

	for i := range out.Contacts {
		c := &out.Contacts[i]
		if c.Href == "" && looksLikeURL(c.Value) {
			c.Href = c.Value
		}
	}
	return out
}

// SplitLines turns a multi-line field into list items: one per non-blank line,
// trimmed, in original order.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// SplitSkills splits the comma-delimited skills field.
func SplitSkills(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DateRange renders "start - end" when both are present, otherwise whichever
// one is set.
func DateRange(start, end string) string {
	return join(dateSeparator, start, end)
}

// JoinTitle renders "left, right" when both are present, otherwise whichever
// one is set.
func JoinTitle(left, right string) string {
	return join(titleSeparator, left, right)
}

func join(sep, a, b string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch {
	case a != "" && b != "":
		return a + sep + b
	case a != "":
		return a
	default:
		return b
	}
}

// Initials returns up to two upper-case initials for the image placeholder.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) > 2 {
		fields = []string{fields[0], fields[len(fields)-1]}
	}
	var b strings.Builder
	for _, f := range fields {
		r := []rune(f)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
