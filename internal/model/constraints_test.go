package model

import (
	"testing"

	"github.com/campsched/campsched/internal/domain"
	"github.com/campsched/campsched/internal/strategy"
)

// freshVariables gives each test its own CpModelBuilder so one posted
// constraint function's proto output can be inspected without another
// function's constraints mixed in.
func freshVariables(cd *domain.CampData) *Variables {
	return BuildVariables(cd, &strategy.Lexicographic{})
}

func constraintCount(t *testing.T, v *Variables) int {
	t.Helper()
	m, err := v.Builder.Model()
	if err != nil {
		t.Fatalf("Model() returned an error: %v", err)
	}
	return len(m.GetConstraints())
}

// C1 posts exactly one AddAtMostOne per (activity, slot), regardless of
// how many groups exist.
func TestPostC1ActivityExclusivityPostsOnePerActivitySlot(t *testing.T) {
	cd := testCampData()
	v := freshVariables(cd)
	slots := domain.AllTimeSlots()

	postC1ActivityExclusivity(v.Builder, v, cd, slots)

	want := len(cd.Activities) * len(slots)
	if got := constraintCount(t, v); got != want {
		t.Errorf("len(constraints) = %d, want %d (one AddAtMostOne per activity*slot)", got, want)
	}
}

// C4 links Y to C with one AddEquality per (activity, slot, group), with
// no skips — Y is simply absent for invalid locations, which the sum
// already accounts for.
func TestPostC4ValidLocationPostsOnePerActivitySlotGroup(t *testing.T) {
	cd := testCampData()
	v := freshVariables(cd)
	slots := domain.AllTimeSlots()

	postC4ValidLocation(v.Builder, v, cd, slots)

	want := len(cd.Activities) * len(slots) * len(cd.Groups)
	if got := constraintCount(t, v); got != want {
		t.Errorf("len(constraints) = %d, want %d (one AddEquality per activity*slot*group)", got, want)
	}
}

// C8 posts three constraints per (activity, slot, group) cell: the
// N=ΣX linkage, the min-staffing lower bound, and the zero-when-unused
// equality.
func TestPostC8MinStaffingPostsThreePerCell(t *testing.T) {
	cd := testCampData()
	v := freshVariables(cd)
	slots := domain.AllTimeSlots()

	postC8MinStaffing(v.Builder, v, cd, slots)

	want := 3 * len(cd.Activities) * len(slots) * len(cd.Groups)
	if got := constraintCount(t, v); got != want {
		t.Errorf("len(constraints) = %d, want %d (three constraints per activity*slot*group)", got, want)
	}
}

// C13 posts exactly one weekly-count constraint per group.
func TestPostC13WeeklyGTCountPostsOnePerGroup(t *testing.T) {
	cd := testCampData()
	v := freshVariables(cd)

	postC13WeeklyGTCount(v.Builder, v, cd)

	want := len(cd.Groups)
	if got := constraintCount(t, v); got != want {
		t.Errorf("len(constraints) = %d, want %d (one per group)", got, want)
	}
}

// C14 posts one daily-limit constraint per (group, weekday).
func TestPostC14DailyGTLimitPostsOnePerGroupDay(t *testing.T) {
	cd := testCampData()
	v := freshVariables(cd)

	postC14DailyGTLimit(v.Builder, v, cd)

	want := len(cd.Groups) * len(domain.Weekdays)
	if got := constraintCount(t, v); got != want {
		t.Errorf("len(constraints) = %d, want %d (one per group*weekday)", got, want)
	}
}

// C15 posts one inspection-cover equality per weekday, independent of
// how many groups or activities exist.
func TestPostC15InspectionCoverPostsOnePerWeekday(t *testing.T) {
	cd := testCampData()
	v := freshVariables(cd)

	postC15InspectionCover(v.Builder, v, cd)

	want := len(domain.Weekdays)
	if got := constraintCount(t, v); got != want {
		t.Errorf("len(constraints) = %d, want %d (one per weekday)", got, want)
	}
}

// C17 posts exactly one weekly-frequency equality per group, regardless
// of whether a driving-range activity exists in the catalog — DRD
// variables are always created.
func TestPostC17DRWeeklyFrequencyPostsOnePerGroup(t *testing.T) {
	cd := testCampData()
	v := freshVariables(cd)

	postC17DRWeeklyFrequency(v.Builder, v, cd)

	want := len(cd.Groups)
	if got := constraintCount(t, v); got != want {
		t.Errorf("len(constraints) = %d, want %d (one per group)", got, want)
	}
}

// C25 only fires for duration-1 activities; testCampData's three
// activities are all duration 1, and a duration-2 driving range is added
// here, so only the three duration-1 activities get one bound per
// (group, weekday).
func TestPostC25NoIntraDayRepeatSkipsNonDurationOneActivities(t *testing.T) {
	cd := testCampData()
	cd.Activities = append(cd.Activities, domain.Activity{ID: 4, Name: domain.ActivityDrivingRange, Category: "sport", Duration: 2, MinStaff: 1, MaxStaff: 1})
	v := freshVariables(cd)

	postC25NoIntraDayRepeat(v.Builder, v, cd)

	durationOne := 0
	for _, a := range cd.Activities {
		if a.Duration == 1 {
			durationOne++
		}
	}
	want := durationOne * len(cd.Groups) * len(domain.Weekdays)
	if got := constraintCount(t, v); got != want {
		t.Errorf("len(constraints) = %d, want %d (one per duration-1 activity*group*weekday)", got, want)
	}
}

// C26 posts one max-staffing bound per (activity, slot, group) cell,
// with no skips.
func TestPostC26MaxStaffingPostsOnePerCell(t *testing.T) {
	cd := testCampData()
	v := freshVariables(cd)
	slots := domain.AllTimeSlots()

	postC26MaxStaffing(v.Builder, v, cd, slots)

	want := len(cd.Activities) * len(slots) * len(cd.Groups)
	if got := constraintCount(t, v); got != want {
		t.Errorf("len(constraints) = %d, want %d (one per activity*slot*group)", got, want)
	}
}
