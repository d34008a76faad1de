package preview_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resumegen/pkg/collection"
	"github.com/goliatone/go-resumegen/pkg/fieldpath"
	"github.com/goliatone/go-resumegen/pkg/preview"
	"github.com/goliatone/go-resumegen/pkg/record"
)

func TestBuild_DefaultsShowOnlyPersonal(t *testing.T) {
	doc := preview.Build(record.New())

	if diff := cmp.Diff([]record.SectionID{record.SectionPersonal}, doc.Sections()); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
	personal, _ := doc.Block(record.SectionPersonal)
	if !personal.Personal.ImagePlaceholder || personal.Personal.Image != "" {
		t.Fatalf("expected image placeholder, got %+v", personal.Personal)
	}
	if doc.Template != record.TemplateDefault {
		t.Fatalf("expected default template tag, got %q", doc.Template)
	}
}

func TestBuild_Suppression(t *testing.T) {
	rec := record.New()
	rec.Summary = "   \n "
	rec.Skills = " , ,"
	rec.Experience = []record.ExperienceEntry{{}, {}, {}}

	doc := preview.Build(rec)
	if _, ok := doc.Block(record.SectionExperience); ok {
		t.Fatalf("experience block must be suppressed when every entry is empty")
	}
	if _, ok := doc.Block(record.SectionSummary); ok {
		t.Fatalf("blank summary must be suppressed")
	}
	if _, ok := doc.Block(record.SectionSkills); ok {
		t.Fatalf("blank skills must be suppressed")
	}

	rec.Experience[1].Title = "Engineer"
	doc = preview.Build(rec)
	block, ok := doc.Block(record.SectionExperience)
	if !ok {
		t.Fatalf("expected experience block")
	}
	want := []preview.EntryBlock{{Index: 1, Title: "Engineer"}}
	if diff := cmp.Diff(want, block.Entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_FollowsSectionOrder(t *testing.T) {
	rec := record.New()
	rec.Summary = "Analyst"
	rec.Skills = "Go, SQL"
	rec.Project[0].Name = "Engine"
	rec.SectionOrder = []record.SectionID{"personal", "project", "skills", "summary", "experience", "education", "project"}

	got := preview.Build(rec).Sections()
	want := []record.SectionID{"personal", "project", "skills", "summary"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_EntryFormatting(t *testing.T) {
	rec := record.New()
	rec.Skills = " Go,, SQL ,Rust "
	rec.Experience[0] = record.ExperienceEntry{
		Company:          "Acme",
		StartDate:        "2020",
		Responsibilities: "Ship things\r\n\r\n  Fix bugs  \n",
	}
	rec.Education[0] = record.EducationEntry{Degree: "BSc", University: "Cambridge", StartDate: "2014", EndDate: "2018"}
	rec.Project[0] = record.ProjectEntry{Name: "Engine", URL: "https://example.com", Description: "Line one\nLine two"}

	doc := preview.Build(rec)

	skills, _ := doc.Block(record.SectionSkills)
	if diff := cmp.Diff([]string{"Go", "SQL", "Rust"}, skills.Items); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}

	exp, _ := doc.Block(record.SectionExperience)
	wantExp := []preview.EntryBlock{{Index: 0, Title: "Acme", Dates: "2020", Items: []string{"Ship things", "Fix bugs"}}}
	if diff := cmp.Diff(wantExp, exp.Entries); diff != "" {
		t.Fatalf("experience mismatch (-want +got):\n%s", diff)
	}

	edu, _ := doc.Block(record.SectionEducation)
	wantEdu := []preview.EntryBlock{{Index: 0, Title: "BSc, Cambridge", Dates: "2014 - 2018"}}
	if diff := cmp.Diff(wantEdu, edu.Entries); diff != "" {
		t.Fatalf("education mismatch (-want +got):\n%s", diff)
	}

	proj, _ := doc.Block(record.SectionProject)
	wantProj := []preview.EntryBlock{{Index: 0, Title: "Engine", Link: "https://example.com", Items: []string{"Line one", "Line two"}}}
	if diff := cmp.Diff(wantProj, proj.Entries); diff != "" {
		t.Fatalf("project mismatch (-want +got):\n%s", diff)
	}
}

func TestDateRangeAndTitle(t *testing.T) {
	tests := []struct {
		a, b       string
		wantDates  string
		wantTitles string
	}{
		{"", "", "", ""},
		{"2020", "", "2020", "2020"},
		{"", "2021", "2021", "2021"},
		{"2020", "2021", "2020 - 2021", "2020, 2021"},
		{"  ", "2021", "2021", "2021"},
	}
	for _, tt := range tests {
		if got := preview.DateRange(tt.a, tt.b); got != tt.wantDates {
			t.Errorf("DateRange(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.wantDates)
		}
		if got := preview.JoinTitle(tt.a, tt.b); got != tt.wantTitles {
			t.Errorf("JoinTitle(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.wantTitles)
		}
	}
}

func TestBuild_PersonalContacts(t *testing.T) {
	rec := record.New()
	rec.Personal = record.Personal{
		Name:         "Ada Byron Lovelace",
		Email:        "ada@example.com",
		GitHub:       "https://github.com/ada",
		Phone:        " ",
		ProfileImage: "data:image/png;base64,AAAA",
	}

	block, _ := preview.Build(rec).Block(record.SectionPersonal)
	p := block.Personal
	if p.ImagePlaceholder || p.Image != rec.Personal.ProfileImage {
		t.Fatalf("expected image to be carried, got %+v", p)
	}
	if p.Initials != "AL" {
		t.Fatalf("expected initials AL, got %q", p.Initials)
	}
	want := []preview.Contact{
		{Kind: "email", Label: "Email", Value: "ada@example.com", Href: "mailto:ada@example.com"},
		{Kind: "github", Label: "GitHub", Value: "https://github.com/ada", Href: "https://github.com/ada"},
	}
	if diff := cmp.Diff(want, p.Contacts); diff != "" {
		t.Fatalf("contacts mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	rec := record.New()

	edit, err := fieldpath.Parse("name", "Ada Lovelace")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fieldpath.Apply(rec, edit)

	idx, err := collection.Add(rec, record.SectionExperience, collection.Values{"title": "Engineer", "company": "Acme"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	doc := preview.Build(rec)
	personal, _ := doc.Block(record.SectionPersonal)
	if personal.Personal.Name != "Ada Lovelace" {
		t.Fatalf("expected heading Ada Lovelace, got %q", personal.Personal.Name)
	}
	exp, ok := doc.Block(record.SectionExperience)
	if !ok || len(exp.Entries) != 1 || exp.Entries[0].Title != "Engineer, Acme" {
		t.Fatalf("expected one experience entry 'Engineer, Acme', got %+v", exp.Entries)
	}

	collection.Remove(rec, record.SectionExperience, idx)
	if _, ok := preview.Build(rec).Block(record.SectionExperience); ok {
		t.Fatalf("experience block should disappear after removing the entry")
	}
}

func TestBuild_TemplateSwapIsPure(t *testing.T) {
	rec := record.New()
	rec.Personal.Name = "Ada"
	rec.Summary = "Analyst"

	before, err := json.Marshal(contentOnly(rec))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec.CurrentTemplate = record.TemplateModern
	modern := preview.Build(rec)
	rec.CurrentTemplate = record.TemplateDefault
	def := preview.Build(rec)

	after, _ := json.Marshal(contentOnly(rec))
	if string(before) != string(after) {
		t.Fatalf("non-presentation fields changed:\n%s\n%s", before, after)
	}
	if modern.Template != record.TemplateModern || def.Template != record.TemplateDefault {
		t.Fatalf("unexpected template tags %q/%q", modern.Template, def.Template)
	}
	if diff := cmp.Diff(modern.Blocks, def.Blocks); diff != "" {
		t.Fatalf("blocks should only differ by template tag (-modern +default):\n%s", diff)
	}
}

func contentOnly(rec *record.Record) *record.Record {
	c := rec.Clone()
	c.CurrentTemplate = ""
	return c
}
