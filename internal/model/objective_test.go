package model

import (
	"testing"

	"github.com/campsched/campsched/internal/domain"
	"github.com/campsched/campsched/internal/strategy"
)

// buildStaffRepetitionExcess only creates a CNT/excess pair for a
// (staff, activity) pair staff members can actually ever be assigned —
// i.e. qualified for, and available at least one slot. testCampData has
// staff 1 qualified for waterfront+waterskiing and staff 2 qualified
// for arts only, so exactly those three pairs should appear.
func TestBuildStaffRepetitionExcessSkipsNeverAssignablePairs(t *testing.T) {
	cd := testCampData()
	v := BuildVariables(cd, &strategy.Lexicographic{})

	excess, cnt := buildStaffRepetitionExcess(v.Builder, v, cd)

	want := []staffActivityKey{
		{StaffID: 1, ActivityID: 1},
		{StaffID: 1, ActivityID: 2},
		{StaffID: 2, ActivityID: 3},
	}
	if len(excess) != len(want) {
		t.Fatalf("len(excess) = %d, want %d: %+v", len(excess), len(want), excess)
	}
	if len(cnt) != len(want) {
		t.Fatalf("len(cnt) = %d, want %d: %+v", len(cnt), len(want), cnt)
	}
	for _, key := range want {
		if _, ok := excess[key]; !ok {
			t.Errorf("excess missing expected key %+v", key)
		}
		if _, ok := cnt[key]; !ok {
			t.Errorf("cnt missing expected key %+v", key)
		}
	}
	if _, ok := excess[staffActivityKey{StaffID: 2, ActivityID: 1}]; ok {
		t.Error("excess should not have an entry for a staff/activity pair with no possible assignment")
	}
}

// buildGroupWeeklyVariety creates one HASACT boolean per (group,
// activity) pair, regardless of qualification — it is an OR over C, not X.
func TestBuildGroupWeeklyVarietyCoversEveryGroupActivityPair(t *testing.T) {
	cd := testCampData()
	v := BuildVariables(cd, &strategy.Lexicographic{})

	hasAct, flat := buildGroupWeeklyVariety(v.Builder, v, cd)

	want := len(cd.Groups) * len(cd.Activities)
	if len(hasAct) != want {
		t.Errorf("len(hasAct) = %d, want %d", len(hasAct), want)
	}
	if len(flat) != want {
		t.Errorf("len(flat) = %d, want %d", len(flat), want)
	}
}

// buildGroupCategoryVariety excludes the "fixed" category entirely;
// testCampData's waterfront/waterskiing are both fixed, leaving only
// "creative" (arts), so exactly one category participates.
func TestBuildGroupCategoryVarietyExcludesFixedCategory(t *testing.T) {
	cd := testCampData()
	v := BuildVariables(cd, &strategy.Lexicographic{})

	hasCat, flat := buildGroupCategoryVariety(v.Builder, v, cd)

	const categoryCount = 1 // only "creative" survives the fixed-category filter
	want := len(cd.Groups) * len(domain.Weekdays) * 3 * categoryCount
	if len(hasCat) != want {
		t.Errorf("len(hasCat) = %d, want %d", len(hasCat), want)
	}
	if len(flat) != want {
		t.Errorf("len(flat) = %d, want %d", len(flat), want)
	}
	for key := range hasCat {
		if key.Category == "fixed" {
			t.Errorf("hasCat should never key on the fixed category, got %+v", key)
		}
	}
}

// buildUnassignedDeviation creates exactly one DEV and one TOT variable
// per staff member, independent of activity or group count.
func TestBuildUnassignedDeviationOneEntryPerStaff(t *testing.T) {
	cd := testCampData()
	v := BuildVariables(cd, &strategy.Lexicographic{})

	dev, tot := buildUnassignedDeviation(v.Builder, v, cd)

	if len(dev) != len(cd.Staff) {
		t.Errorf("len(dev) = %d, want %d", len(dev), len(cd.Staff))
	}
	if len(tot) != len(cd.Staff) {
		t.Errorf("len(tot) = %d, want %d", len(tot), len(cd.Staff))
	}
}

// PostObjective must build a model with no error and a non-empty
// objective whenever any weight is non-zero, since every REP/CAT/WKA/UNB
// term is wired into the minimized expression.
func TestPostObjectiveBuildsWithoutError(t *testing.T) {
	cd := testCampData()
	v := BuildVariables(cd, &strategy.Lexicographic{})
	PostConstraints(v, cd)

	obj := PostObjective(v, cd)
	if len(obj.ExcessByStaffActivity) == 0 {
		t.Error("Objective.ExcessByStaffActivity should not be empty for a camp with qualified staff")
	}
	if len(obj.HasActivity) == 0 {
		t.Error("Objective.HasActivity should not be empty")
	}

	m, err := v.Builder.Model()
	if err != nil {
		t.Fatalf("Model() returned an error: %v", err)
	}
	if m.GetObjective() == nil {
		t.Error("Model().GetObjective() should not be nil after PostObjective")
	}
}
