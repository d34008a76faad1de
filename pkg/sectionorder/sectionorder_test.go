package sectionorder_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/sectionorder"
)

func TestMove_PinnedSectionNeverMoves(t *testing.T) {
	order := record.DefaultOrder()

	for _, dir := range []sectionorder.Direction{sectionorder.Up, sectionorder.Down} {
		if sectionorder.Move(order, record.SectionPersonal, dir) {
			t.Fatalf("personal moved %s", dir)
		}
	}
	if diff := cmp.Diff(record.DefaultOrder(), order); diff != "" {
		t.Fatalf("order changed (-want +got):\n%s", diff)
	}
}

func TestMove_Boundaries(t *testing.T) {
	order := record.DefaultOrder()

	if sectionorder.Move(order, record.SectionSummary, sectionorder.Up) {
		t.Fatalf("summary at position 1 must not move above personal")
	}
	if sectionorder.Move(order, record.SectionProject, sectionorder.Down) {
		t.Fatalf("last section must not move down")
	}
	if sectionorder.Move(order, record.SectionID("awards"), sectionorder.Down) {
		t.Fatalf("unknown section must not move")
	}
	if diff := cmp.Diff(record.DefaultOrder(), order); diff != "" {
		t.Fatalf("order changed (-want +got):\n%s", diff)
	}
}

func TestMove_Reorders(t *testing.T) {
	order := record.DefaultOrder()

	if !sectionorder.Move(order, record.SectionSkills, sectionorder.Up) {
		t.Fatalf("expected skills to move up")
	}
	if !sectionorder.Move(order, record.SectionSummary, sectionorder.Down) {
		t.Fatalf("expected summary to move down")
	}

	want := []record.SectionID{"personal", "experience", "summary", "skills", "education", "project"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMove_PreservesPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	order := record.DefaultOrder()
	ids := record.DefaultOrder()

	for i := 0; i < 500; i++ {
		dir := sectionorder.Up
		if rng.Intn(2) == 0 {
			dir = sectionorder.Down
		}
		sectionorder.Move(order, ids[rng.Intn(len(ids))], dir)
		if !record.IsPermutation(order) {
			t.Fatalf("step %d broke the permutation invariant: %v", i, order)
		}
	}
}

func TestAffordances(t *testing.T) {
	got := sectionorder.Affordances(record.DefaultOrder())

	want := []sectionorder.Affordance{
		{Section: "personal", Position: 0, Pinned: true},
		{Section: "summary", Position: 1, CanMoveDown: true},
		{Section: "experience", Position: 2, CanMoveUp: true, CanMoveDown: true},
		{Section: "education", Position: 3, CanMoveUp: true, CanMoveDown: true},
		{Section: "skills", Position: 4, CanMoveUp: true, CanMoveDown: true},
		{Section: "project", Position: 5, CanMoveUp: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("affordances mismatch (-want +got):\n%s", diff)
	}

	a, ok := sectionorder.For(record.DefaultOrder(), record.SectionSkills)
	if !ok || a.Position != 4 {
		t.Fatalf("unexpected affordance for skills: %+v", a)
	}
}
