package collection_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resumegen/pkg/collection"
	"github.com/goliatone/go-resumegen/pkg/record"
)

func titles(rec *record.Record) []string {
	out := make([]string, 0, len(rec.Experience))
	for _, e := range rec.Experience {
		out = append(out, e.Title)
	}
	return out
}

func seeded(t *testing.T, names ...string) *record.Record {
	t.Helper()
	rec := &record.Record{}
	for _, name := range names {
		if _, err := collection.Add(rec, record.SectionExperience, collection.Values{"title": name}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return rec
}

func TestAdd_ReturnsPriorLength(t *testing.T) {
	rec := record.New()

	idx, err := collection.Add(rec, record.SectionEducation, collection.Values{"degree": "BSc"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected index 1 after the default placeholder, got %d", idx)
	}
	if rec.Education[1].Degree != "BSc" {
		t.Fatalf("initial data not applied: %+v", rec.Education[1])
	}

	idx, err = collection.Add(rec, record.SectionEducation, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if idx != 2 || !rec.Education[2].IsEmpty() {
		t.Fatalf("expected empty entry at 2, got idx=%d entry=%+v", idx, rec.Education[idx])
	}
}

func TestAdd_RejectsScalarSection(t *testing.T) {
	_, err := collection.Add(record.New(), record.SectionSkills, nil)
	if !errors.Is(err, collection.ErrNotListSection) {
		t.Fatalf("expected ErrNotListSection, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	rec := seeded(t, "a", "b", "c")

	if collection.Remove(rec, record.SectionExperience, 3) {
		t.Fatalf("expected out of range remove to be a no-op")
	}
	if collection.Remove(rec, record.SectionExperience, -1) {
		t.Fatalf("expected negative remove to be a no-op")
	}
	if !collection.Remove(rec, record.SectionExperience, 1) {
		t.Fatalf("expected remove to succeed")
	}
	if diff := cmp.Diff([]string{"a", "c"}, titles(rec)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}

	slots, err := collection.Reindex(rec, record.SectionExperience)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if slots[1].ID != "experience[1]" || slots[1].FieldID("title") != "experience[1].title" {
		t.Fatalf("expected gapless renumbering, got %+v", slots[1])
	}
}

func TestMove(t *testing.T) {
	rec := seeded(t, "a", "b", "c")

	if collection.Move(rec, record.SectionExperience, 0, collection.Up) {
		t.Fatalf("expected move up at 0 to be a no-op")
	}
	if collection.Move(rec, record.SectionExperience, 2, collection.Down) {
		t.Fatalf("expected move down at last index to be a no-op")
	}
	if !collection.Move(rec, record.SectionExperience, 0, collection.Down) {
		t.Fatalf("expected move down to succeed")
	}
	if !collection.Move(rec, record.SectionExperience, 2, collection.Up) {
		t.Fatalf("expected move up to succeed")
	}
	if diff := cmp.Diff([]string{"b", "c", "a"}, titles(rec)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestReindex_AffordancesAndIdempotence(t *testing.T) {
	rec := seeded(t, "a", "b", "c")

	first, err := collection.Reindex(rec, record.SectionExperience)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	second, err := collection.Reindex(rec, record.SectionExperience)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("reindex not idempotent (-first +second):\n%s", diff)
	}

	want := []struct{ up, down bool }{{false, true}, {true, true}, {true, false}}
	for i, w := range want {
		if first[i].CanMoveUp != w.up || first[i].CanMoveDown != w.down {
			t.Fatalf("slot %d affordances: want up=%v down=%v, got %+v", i, w.up, w.down, first[i])
		}
		if first[i].Index != i {
			t.Fatalf("slot %d index mismatch: %d", i, first[i].Index)
		}
	}
}

func TestReindex_SingleEntryCannotMove(t *testing.T) {
	rec := record.New()

	slots, err := collection.Reindex(rec, record.SectionProject)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if len(slots) != 1 || slots[0].CanMoveUp || slots[0].CanMoveDown {
		t.Fatalf("unexpected slots: %+v", slots)
	}
	if slots[0].Label != "Project #1" {
		t.Fatalf("unexpected label %q", slots[0].Label)
	}
}
