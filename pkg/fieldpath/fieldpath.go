// Package fieldpath turns form input identifiers into typed edits against a
// record.Record. Bare identifiers (name, email, summary, ...) address scalar
// fields; list fields use the `<section>[<index>].<field>` form.
package fieldpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goliatone/go-resumegen/pkg/record"
)

var (
	// ErrUnknownField is returned for identifiers that do not address a field.
	ErrUnknownField = errors.New("fieldpath: unknown field")
	// ErrInvalidIndex is returned for negative list indexes and indexes at or
	// beyond record.MaxEntries.
	ErrInvalidIndex = errors.New("fieldpath: invalid index")
)

var listPattern = regexp.MustCompile(`^(experience|education|project)\[(\d+)\]\.(\w+)$`)

// Edit mutates exactly one leaf of a Record.
type Edit interface {
	// Path renders the edit target using the input identifier syntax.
	Path() string
	apply(rec *record.Record) bool
}

// ScalarEdit sets a top-level text field.
type ScalarEdit struct {
	Field string
	Value string
}

// ListFieldEdit sets a field of one entry in a list section.
type ListFieldEdit struct {
	Section record.SectionID
	Index   int
	Field   string
	Value   string
}

// NewScalarEdit validates field against the known scalar identifiers.
func NewScalarEdit(field, value string) (ScalarEdit, error) {
	if !isScalar(field) {
		return ScalarEdit{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return ScalarEdit{Field: field, Value: value}, nil
}

// NewListFieldEdit validates the section, index and field name.
func NewListFieldEdit(section record.SectionID, index int, field, value string) (ListFieldEdit, error) {
	if !section.IsList() {
		return ListFieldEdit{}, fmt.Errorf("%w: section %q", ErrUnknownField, section)
	}
	if index < 0 || index >= record.MaxEntries {
		return ListFieldEdit{}, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	if !hasField(record.FieldsOf(section), field) {
		return ListFieldEdit{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
	}
	return ListFieldEdit{Section: section, Index: index, Field: field, Value: value}, nil
}

// Parse converts an input identifier into an Edit. Identifiers that do not
// match either form return ErrUnknownField.
func Parse(identifier, value string) (Edit, error) {
	if isScalar(identifier) {
		return ScalarEdit{Field: identifier, Value: value}, nil
	}

	match := listPattern.FindStringSubmatch(identifier)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, identifier)
	}
	index, err := strconv.Atoi(match[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIndex, match[2])
	}
	edit, err := NewListFieldEdit(record.SectionID(match[1]), index, match[3], value)
	if err != nil {
		return nil, err
	}
	return edit, nil
}

// Apply performs edit on rec and reports whether a leaf was written.
func Apply(rec *record.Record, edit Edit) bool {
	if rec == nil || edit == nil {
		return false
	}
	return edit.apply(rec)
}

// Identifier renders the input identifier of a list field.
func Identifier(section record.SectionID, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", section, index, field)
}

func (e ScalarEdit) Path() string { return e.Field }

func (e ScalarEdit) apply(rec *record.Record) bool {
	ptr := rec.ScalarPtr(e.Field)
	if ptr == nil {
		return false
	}
	*ptr = e.Value
	return true
}

func (e ListFieldEdit) Path() string { return Identifier(e.Section, e.Index, e.Field) }

// apply grows the section with placeholders when Index is past the end so
// inputs rendered ahead of their backing entry still land. Growth stops at
// record.MaxEntries; existing entries beyond it stay editable.
func (e ListFieldEdit) apply(rec *record.Record) bool {
	if e.Index < 0 {
		return false
	}
	seq, ok := rec.Sequence(e.Section)
	if !ok || !hasField(record.FieldsOf(e.Section), e.Field) {
		return false
	}
	if e.Index >= seq.Len() {
		if e.Index >= record.MaxEntries {
			return false
		}
		seq.Grow(e.Index + 1)
	}
	return seq.Set(e.Index, e.Field, e.Value)
}

func isScalar(field string) bool {
	return hasField(record.ScalarFields, field)
}

func hasField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
