package record

// Repair normalises a reconstituted Record in place: the section order becomes
// a permutation of the six sections with personal first (an empty order falls
// back to the canonical default), unknown templates fall back to default, and
// missing list sections become empty sequences. It reports whether anything
// changed.
func (r *Record) Repair() bool {
	if r == nil {
		return false
	}
	changed := false

	if order := repairOrder(r.SectionOrder); !equalOrder(order, r.SectionOrder) {
		r.SectionOrder = order
		changed = true
	}
	if !r.CurrentTemplate.Valid() {
		r.CurrentTemplate = TemplateDefault
		changed = true
	}
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
		changed = true
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
		changed = true
	}
	if r.Project == nil {
		r.Project = []ProjectEntry{}
		changed = true
	}
	return changed
}

func repairOrder(order []SectionID) []SectionID {
	if len(order) == 0 {
		return DefaultOrder()
	}
	if IsPermutation(order) {
		return order
	}

	out := make([]SectionID, 0, len(defaultOrder))
	out = append(out, PinnedSection)
	seen := map[SectionID]struct{}{PinnedSection: {}}
	for _, id := range order {
		if !id.Valid() {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range defaultOrder {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func equalOrder(a, b []SectionID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
