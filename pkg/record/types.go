package record

import "strings"

// Personal holds the contact block. ProfileImage is an embeddable data URI;
// the empty string means no image.
type Personal struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	LinkedIn     string `json:"linkedin"`
	GitHub       string `json:"github"`
	Portfolio    string `json:"portfolio"`
	ProfileImage string `json:"profileImage"`
}

// ExperienceEntry is one job. Responsibilities holds one item per line.
type ExperienceEntry struct {
	Title            string `json:"title"`
	Company          string `json:"company"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Responsibilities string `json:"responsibilities"`
}

// EducationEntry is one degree.
type EducationEntry struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// ProjectEntry is one project. Description holds one item per line.
type ProjectEntry struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Record is the root aggregate edited by a session.
type Record struct {
	Personal        Personal          `json:"personal"`
	Summary         string            `json:"summary"`
	Skills          string            `json:"skills"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []EducationEntry  `json:"education"`
	Project         []ProjectEntry    `json:"project"`
	CurrentTemplate Template          `json:"currentTemplate"`
	SectionOrder    []SectionID       `json:"sectionOrder"`
}

// Field names per list section, in form order.
var (
	ExperienceFields = []string{"title", "company", "startDate", "endDate", "responsibilities"}
	EducationFields  = []string{"degree", "university", "startDate", "endDate"}
	ProjectFields    = []string{"name", "url", "description"}
)

// ScalarFields are the top-level text inputs addressable by bare identifier.
var ScalarFields = []string{"name", "email", "phone", "linkedin", "github", "portfolio", "summary", "skills"}

// FieldsOf returns the entry field names of a list section.
func FieldsOf(section SectionID) []string {
	switch section {
	case SectionExperience:
		return ExperienceFields
	case SectionEducation:
		return EducationFields
	case SectionProject:
		return ProjectFields
	default:
		return nil
	}
}

// New returns a first-run Record: empty personal data, default template,
// canonical order and one placeholder entry per list section.
func New() *Record {
	return &Record{
		Experience:      []ExperienceEntry{{}},
		Education:       []EducationEntry{{}},
		Project:         []ProjectEntry{{}},
		CurrentTemplate: TemplateDefault,
		SectionOrder:    DefaultOrder(),
	}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Experience = append([]ExperienceEntry(nil), r.Experience...)
	out.Education = append([]EducationEntry(nil), r.Education...)
	out.Project = append([]ProjectEntry(nil), r.Project...)
	out.SectionOrder = append([]SectionID(nil), r.SectionOrder...)
	if out.Experience == nil {
		out.Experience = []ExperienceEntry{}
	}
	if out.Education == nil {
		out.Education = []EducationEntry{}
	}
	if out.Project == nil {
		out.Project = []ProjectEntry{}
	}
	return &out
}

// ScalarPtr returns the storage for a top-level scalar identifier.
func (r *Record) ScalarPtr(field string) *string {
	switch field {
	case "name":
		return &r.Personal.Name
	case "email":
		return &r.Personal.Email
	case "phone":
		return &r.Personal.Phone
	case "linkedin":
		return &r.Personal.LinkedIn
	case "github":
		return &r.Personal.GitHub
	case "portfolio":
		return &r.Personal.Portfolio
	case "summary":
		return &r.Summary
	case "skills":
		return &r.Skills
	default:
		return nil
	}
}

// FieldPtr returns the storage for a named field, nil when unknown.
func (e *ExperienceEntry) FieldPtr(name string) *string {
	switch name {
	case "title":
		return &e.Title
	case "company":
		return &e.Company
	case "startDate":
		return &e.StartDate
	case "endDate":
		return &e.EndDate
	case "responsibilities":
		return &e.Responsibilities
	default:
		return nil
	}
}

// FieldPtr returns the storage for a named field, nil when unknown.
func (e *EducationEntry) FieldPtr(name string) *string {
	switch name {
	case "degree":
		return &e.Degree
	case "university":
		return &e.University
	case "startDate":
		return &e.StartDate
	case "endDate":
		return &e.EndDate
	default:
		return nil
	}
}

// FieldPtr returns the storage for a named field, nil when unknown.
func (e *ProjectEntry) FieldPtr(name string) *string {
	switch name {
	case "name":
		return &e.Name
	case "url":
		return &e.URL
	case "description":
		return &e.Description
	default:
		return nil
	}
}

// IsEmpty reports whether every field is blank.
func (e ExperienceEntry) IsEmpty() bool {
	return blank(e.Title, e.Company, e.StartDate, e.EndDate, e.Responsibilities)
}

// IsEmpty reports whether every field is blank.
func (e EducationEntry) IsEmpty() bool {
	return blank(e.Degree, e.University, e.StartDate, e.EndDate)
}

// IsEmpty reports whether every field is blank.
func (e ProjectEntry) IsEmpty() bool {
	return blank(e.Name, e.URL, e.Description)
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
