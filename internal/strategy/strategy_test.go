package strategy

import (
	"testing"

	"github.com/campsched/campsched/internal/domain"
)

func testKeys() []AssignmentKey {
	return []AssignmentKey{
		{StaffID: 3, ActivityID: 2, Slot: domain.TimeSlot{Day: domain.Tuesday, Period: 1}, GroupID: 1},
		{StaffID: 1, ActivityID: 1, Slot: domain.TimeSlot{Day: domain.Monday, Period: 1}, GroupID: 1},
		{StaffID: 2, ActivityID: 1, Slot: domain.TimeSlot{Day: domain.Monday, Period: 1}, GroupID: 1},
	}
}

func TestLexicographicOrderIsDeterministic(t *testing.T) {
	s := &Lexicographic{}
	first := s.Order(nil, testKeys())
	second := s.Order(nil, testKeys())
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Order() is not stable across calls: %+v vs %+v", first, second)
		}
	}
	if !first[0].Slot.Less(first[1].Slot) && first[0].Slot != first[1].Slot {
		t.Errorf("expected slot-major ordering, got %+v", first)
	}
}

func TestScarceFirstPostsLeastQualifiedActivityFirst(t *testing.T) {
	cd := &domain.CampData{
		Staff: []domain.Staff{{ID: 1}, {ID: 2}, {ID: 3}},
		Activities: []domain.Activity{
			{ID: 1, Name: "arts"},
			{ID: 2, Name: "archery"},
		},
		Leads: map[int]map[int]bool{
			1: {1: true},
			2: {1: true},
			3: {2: true},
		},
	}

	s := &ScarceFirst{}
	ordered := s.Order(cd, testKeys())
	if ordered[0].ActivityID != 2 {
		t.Errorf("expected the single-qualified-staff activity (2) first, got %+v", ordered[0])
	}
}

func TestGetUnknownStrategy(t *testing.T) {
	if _, err := Get("not-a-strategy"); err == nil {
		t.Fatal("expected an error for an unknown strategy name")
	}
}
