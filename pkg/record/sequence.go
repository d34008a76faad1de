package record

// Sequence gives positional access to a list section without knowing its entry
// type. Indexes are display positions.
type Sequence interface {
	Section() SectionID
	Len() int
	// Append adds an entry seeded from values (unknown keys are ignored) and
	// returns its index.
	Append(values map[string]string) int
	// Grow appends placeholders until Len() >= n.
	Grow(n int)
	Remove(i int)
	Swap(i, j int)
	Get(i int, field string) (string, bool)
	Set(i int, field, value string) bool
	IsEmpty(i int) bool
	Values(i int) map[string]string
}

type entryPtr[T any] interface {
	*T
	FieldPtr(name string) *string
}

type sequence[T any, P entryPtr[T]] struct {
	section SectionID
	items   *[]T
	empty   func(T) bool
}

// Sequence returns the list section named by id; ok is false for scalar or
// unknown sections.
func (r *Record) Sequence(id SectionID) (Sequence, bool) {
	switch id {
	case SectionExperience:
		return &sequence[ExperienceEntry, *ExperienceEntry]{section: id, items: &r.Experience, empty: ExperienceEntry.IsEmpty}, true
	case SectionEducation:
		return &sequence[EducationEntry, *EducationEntry]{section: id, items: &r.Education, empty: EducationEntry.IsEmpty}, true
	case SectionProject:
		return &sequence[ProjectEntry, *ProjectEntry]{section: id, items: &r.Project, empty: ProjectEntry.IsEmpty}, true
	default:
		return nil, false
	}
}

func (s *sequence[T, P]) Section() SectionID { return s.section }

func (s *sequence[T, P]) Len() int { return len(*s.items) }

func (s *sequence[T, P]) Append(values map[string]string) int {
	var entry T
	for field, value := range values {
		if ptr := P(&entry).FieldPtr(field); ptr != nil {
			*ptr = value
		}
	}
	*s.items = append(*s.items, entry)
	return len(*s.items) - 1
}

func (s *sequence[T, P]) Grow(n int) {
	for len(*s.items) < n {
		var entry T
		*s.items = append(*s.items, entry)
	}
}

func (s *sequence[T, P]) Remove(i int) {
	items := *s.items
	*s.items = append(items[:i:i], items[i+1:]...)
}

func (s *sequence[T, P]) Swap(i, j int) {
	items := *s.items
	items[i], items[j] = items[j], items[i]
}

func (s *sequence[T, P]) Get(i int, field string) (string, bool) {
	if i < 0 || i >= len(*s.items) {
		return "", false
	}
	ptr := P(&(*s.items)[i]).FieldPtr(field)
	if ptr == nil {
		return "", false
	}
	return *ptr, true
}

func (s *sequence[T, P]) Set(i int, field, value string) bool {
	if i < 0 || i >= len(*s.items) {
		return false
	}
	ptr := P(&(*s.items)[i]).FieldPtr(field)
	if ptr == nil {
		return false
	}
	*ptr = value
	return true
}

func (s *sequence[T, P]) IsEmpty(i int) bool {
	return s.empty((*s.items)[i])
}

func (s *sequence[T, P]) Values(i int) map[string]string {
	fields := FieldsOf(s.section)
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		out[field], _ = s.Get(i, field)
	}
	return out
}
