package fieldpath_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-resumegen/pkg/fieldpath"
	"github.com/goliatone/go-resumegen/pkg/record"
)

func TestParse(t *testing.T) {
	tests := []struct {
		identifier string
		wantPath   string
		wantErr    error
	}{
		{identifier: "name", wantPath: "name"},
		{identifier: "skills", wantPath: "skills"},
		{identifier: "experience[0].title", wantPath: "experience[0].title"},
		{identifier: "education[12].university", wantPath: "education[12].university"},
		{identifier: "project[1].url", wantPath: "project[1].url"},
		{identifier: "profileImage", wantErr: fieldpath.ErrUnknownField},
		{identifier: "experience[0].degree", wantErr: fieldpath.ErrUnknownField},
		{identifier: "awards[0].title", wantErr: fieldpath.ErrUnknownField},
		{identifier: "experience[-1].title", wantErr: fieldpath.ErrUnknownField},
		{identifier: "experience[x].title", wantErr: fieldpath.ErrUnknownField},
		{identifier: "", wantErr: fieldpath.ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			edit, err := fieldpath.Parse(tt.identifier, "v")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if edit.Path() != tt.wantPath {
				t.Fatalf("path mismatch: want %q, got %q", tt.wantPath, edit.Path())
			}
		})
	}
}

func TestApply_Scalar(t *testing.T) {
	rec := record.New()

	edit, err := fieldpath.Parse("github", "adal")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !fieldpath.Apply(rec, edit) {
		t.Fatalf("expected scalar edit to apply")
	}
	if rec.Personal.GitHub != "adal" {
		t.Fatalf("expected github set, got %q", rec.Personal.GitHub)
	}
}

func TestApply_GrowsSparseIndex(t *testing.T) {
	rec := &record.Record{}

	edit, err := fieldpath.Parse("experience[2].title", "X")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !fieldpath.Apply(rec, edit) {
		t.Fatalf("expected list edit to apply")
	}

	if len(rec.Experience) != 3 {
		t.Fatalf("expected experience length 3, got %d", len(rec.Experience))
	}
	if rec.Experience[2].Title != "X" {
		t.Fatalf("expected index 2 title X, got %q", rec.Experience[2].Title)
	}
	for i := 0; i < 2; i++ {
		if !rec.Experience[i].IsEmpty() {
			t.Fatalf("expected placeholder at %d, got %+v", i, rec.Experience[i])
		}
	}
}

func TestApply_ExistingIndexDoesNotGrow(t *testing.T) {
	rec := record.New()

	edit, err := fieldpath.NewListFieldEdit(record.SectionProject, 0, "description", "line one\nline two")
	if err != nil {
		t.Fatalf("new edit: %v", err)
	}
	fieldpath.Apply(rec, edit)

	if len(rec.Project) != 1 {
		t.Fatalf("expected project length to stay 1, got %d", len(rec.Project))
	}
	if rec.Project[0].Description != "line one\nline two" {
		t.Fatalf("unexpected description %q", rec.Project[0].Description)
	}
}

func TestNewEdits_ValidateAtConstruction(t *testing.T) {
	if _, err := fieldpath.NewScalarEdit("profileImage", "x"); !errors.Is(err, fieldpath.ErrUnknownField) {
		t.Fatalf("expected unknown scalar to fail, got %v", err)
	}
	if _, err := fieldpath.NewListFieldEdit(record.SectionSummary, 0, "title", "x"); !errors.Is(err, fieldpath.ErrUnknownField) {
		t.Fatalf("expected scalar section to fail, got %v", err)
	}
	if _, err := fieldpath.NewListFieldEdit(record.SectionEducation, -1, "degree", "x"); !errors.Is(err, fieldpath.ErrInvalidIndex) {
		t.Fatalf("expected negative index to fail, got %v", err)
	}
}

func TestApply_ZeroValueEditIsNoop(t *testing.T) {
	rec := record.New()
	before := rec.Clone()

	if fieldpath.Apply(rec, fieldpath.ListFieldEdit{Section: record.SectionExperience, Index: 5, Field: "bogus"}) {
		t.Fatalf("expected unvalidated edit with unknown field to be rejected")
	}
	if len(rec.Experience) != len(before.Experience) {
		t.Fatalf("rejected edit must not grow the section")
	}
	if fieldpath.Apply(rec, fieldpath.ScalarEdit{Field: "bogus"}) {
		t.Fatalf("expected unknown scalar to be rejected")
	}
}

func TestIndexBeyondMaxEntriesRejected(t *testing.T) {
	for _, identifier := range []string{
		fmt.Sprintf("experience[%d].title", record.MaxEntries),
		"experience[3000000].title",
		"project[99999999999999999999].name",
	} {
		if _, err := fieldpath.Parse(identifier, "x"); !errors.Is(err, fieldpath.ErrInvalidIndex) {
			t.Fatalf("%s: expected ErrInvalidIndex, got %v", identifier, err)
		}
	}
	if _, err := fieldpath.NewListFieldEdit(record.SectionEducation, record.MaxEntries, "degree", "x"); !errors.Is(err, fieldpath.ErrInvalidIndex) {
		t.Fatalf("expected constructor to reject index, got %v", err)
	}

	rec := record.New()
	if fieldpath.Apply(rec, fieldpath.ListFieldEdit{Section: record.SectionExperience, Index: 3000000, Field: "title", Value: "x"}) {
		t.Fatalf("expected hand-built edit past the cap to be refused")
	}
	if len(rec.Experience) != 1 {
		t.Fatalf("expected no growth, got %d entries", len(rec.Experience))
	}

	edit, err := fieldpath.Parse(fmt.Sprintf("experience[%d].title", record.MaxEntries-1), "last")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !fieldpath.Apply(rec, edit) || len(rec.Experience) != record.MaxEntries {
		t.Fatalf("expected growth up to the cap, got %d entries", len(rec.Experience))
	}
}
