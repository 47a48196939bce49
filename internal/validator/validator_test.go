package validator

import (
	"testing"

	"github.com/campsched/campsched/internal/domain"
	"github.com/campsched/campsched/internal/extractor"
)

func testCampData() *domain.CampData {
	return &domain.CampData{
		Staff: []domain.Staff{{ID: 1, Name: "Alex Morgan"}, {ID: 2, Name: "Jordan Lee"}},
		Activities: []domain.Activity{
			{ID: 1, Name: "arts", Category: "creative", Duration: 1, MinStaff: 1, MaxStaff: 2},
		},
		Groups: []domain.Group{{ID: 1}},
		Leads: map[int]map[int]bool{
			1: {1: true},
		},
		OffSlots: map[int]map[domain.TimeSlot]bool{
			1: {{Day: domain.Tuesday, Period: 1}: true},
			2: {},
		},
	}
}

func TestCheckStaffNonOverlapFindsDoubleBooking(t *testing.T) {
	entries := []extractor.Entry{
		{Activity: "arts", Staff: []string{"Alex Morgan"}, Group: "1", Slot: domain.TimeSlot{Day: domain.Monday, Period: 1}},
		{Activity: "inspection", Staff: []string{"Alex Morgan"}, Group: domain.LocationNone, Slot: domain.TimeSlot{Day: domain.Monday, Period: 1}},
	}
	violations := checkStaffNonOverlap(entries)
	if len(violations) != 1 {
		t.Fatalf("want 1 violation, got %d: %+v", len(violations), violations)
	}
}

func TestCheckOffSlotsRespectedFlagsViolation(t *testing.T) {
	cd := testCampData()
	entries := []extractor.Entry{
		{Activity: "arts", Staff: []string{"Alex Morgan"}, Group: "1", Slot: domain.TimeSlot{Day: domain.Tuesday, Period: 1}},
	}
	violations := checkOffSlotsRespected(cd, entries)
	if len(violations) != 1 {
		t.Fatalf("want 1 violation for off-slot assignment, got %d", len(violations))
	}
}

func TestCheckStaffingBoundsFlagsUnderStaffed(t *testing.T) {
	cd := testCampData()
	entries := []extractor.Entry{
		{Activity: "arts", Staff: nil, Group: "1", Slot: domain.TimeSlot{Day: domain.Monday, Period: 1}},
	}
	violations := checkStaffingBounds(cd, entries)
	if len(violations) != 1 {
		t.Fatalf("want 1 violation for zero staff (min 1), got %d", len(violations))
	}
}

func TestCheckLeadRequirementFlagsMissingLead(t *testing.T) {
	cd := testCampData()
	entries := []extractor.Entry{
		{Activity: "arts", Staff: []string{"Jordan Lee"}, Group: "1", Slot: domain.TimeSlot{Day: domain.Monday, Period: 1}},
	}
	violations := checkLeadRequirement(cd, entries)
	if len(violations) != 1 {
		t.Fatalf("want 1 violation (Jordan Lee cannot lead arts), got %d", len(violations))
	}
}

func TestCheckInspectionCoverFlagsMissingDay(t *testing.T) {
	entries := []extractor.Entry{
		{Activity: "inspection", Staff: []string{"Alex Morgan"}, Group: domain.LocationNone, Slot: domain.TimeSlot{Day: domain.Monday, Period: 1}},
	}
	violations := checkInspectionCover(entries)
	// 6 weekdays, only Monday covered -> 5 violations.
	if len(violations) != 5 {
		t.Fatalf("want 5 violations (5 weekdays uncovered), got %d", len(violations))
	}
}

func TestValidateAggregatesAllChecks(t *testing.T) {
	cd := testCampData()
	violations := Validate(cd, nil)
	if len(violations) == 0 {
		t.Fatal("expected violations for an empty schedule (missing inspections, missing DR days, etc.)")
	}
}
