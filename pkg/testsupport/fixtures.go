package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resumegen/pkg/record"
)

// SampleRecord returns a fully populated Record used across package tests.
func SampleRecord() *record.Record {
	rec := record.New()
	rec.Personal = record.Personal{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Phone:     "+44 20 7946 0000",
		LinkedIn:  "https://linkedin.com/in/ada",
		GitHub:    "https://github.com/ada",
		Portfolio: "https://ada.example.com",
	}
	rec.Summary = "Analyst of engines."
	rec.Skills = "Mathematics, Programming, Poetry"
	rec.Experience = []record.ExperienceEntry{{
		Title:            "Engineer",
		Company:          "Acme",
		StartDate:        "1842",
		EndDate:          "1843",
		Responsibilities: "Translated the memoir\nWrote the first program",
	}}
	rec.Education = []record.EducationEntry{{
		Degree:     "Private tuition",
		University: "London",
		StartDate:  "1828",
	}}
	rec.Project = []record.ProjectEntry{{
		Name:        "Analytical Engine Notes",
		URL:         "https://example.com/notes",
		Description: "Note G",
	}}
	return rec
}

// LoadRecord reads a snapshot fixture. Missing fields keep their zero values;
// callers decide whether to Repair.
func LoadRecord(t *testing.T, path string) *record.Record {
	t.Helper()

	rec, err := LoadRecordFromPath(path)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return rec
}

// LoadRecordFromPath returns a Record without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadRecordFromPath(path string) (*record.Record, error) {
	if path == "" {
		return nil, errors.New("testsupport: record path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read record: %w", err)
	}
	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal record: %w", err)
	}
	return &rec, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
