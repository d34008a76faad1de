package record

// Template identifies the visual preset applied to the preview.
type Template string

const (
	TemplateDefault    Template = "default"
	TemplateModern     Template = "modern"
	TemplateMinimalist Template = "minimalist"
)

// Templates lists the closed set of presets.
func Templates() []Template {
	return []Template{TemplateDefault, TemplateModern, TemplateMinimalist}
}

// Valid reports whether t is a known preset.
func (t Template) Valid() bool {
	switch t {
	case TemplateDefault, TemplateModern, TemplateMinimalist:
		return true
	default:
		return false
	}
}

// ParseTemplate returns the preset named by s.
func ParseTemplate(s string) (Template, bool) {
	t := Template(s)
	return t, t.Valid()
}
