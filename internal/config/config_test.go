package config

import (
	"testing"

	"github.com/campsched/campsched/internal/domain"
)

const testConfigYAML = `
staff:
  - id: 1
    name: "Alex Morgan"
  - id: 2
    name: "Jordan Lee"
  - id: 3
    name: "Sam Rivera"

activities:
  - id: 1
    name: waterfront
    category: fixed
    duration: 1
    min_staff: 1
    max_staff: 2
  - id: 2
    name: waterskiing
    category: fixed
    duration: 1
    min_staff: 1
    max_staff: 1
  - id: 3
    name: arts
    category: creative
    duration: 1
    min_staff: 1
    max_staff: 2

locations:
  - id: 1
    name: "North Dock"
  - id: 2
    name: "Arts Cabin"

location_options:
  - activity_id: 1
    location_id: 1
  - activity_id: 2
    location_id: 1
  - activity_id: 3
    location_id: 2

groups:
  - id: 1

leads:
  - staff_id: 1
    activity_id: 1
  - staff_id: 2
    activity_id: 2
  - staff_id: 3
    activity_id: 3

off_days:
  - staff_id: 1
    date: "07/04/2026"

trips:
  - trip_name: museum
    staff_id: 2
    date: "07/08/2026"
    start_period: 2
    end_period: 3

waterfront_pattern:
  - group_id: 1
    slots: ["Tuesday/3"]

weights:
  staff_repetition: 0.5

solver:
  time_limit_seconds: 30
`

func TestLoadFromBytesValid(t *testing.T) {
	cd, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("LoadFromBytes() error: %v", err)
	}

	t.Run("staff loaded in id order", func(t *testing.T) {
		if len(cd.Staff) != 3 || cd.Staff[0].Name != "Alex Morgan" {
			t.Errorf("staff = %+v", cd.Staff)
		}
	})

	t.Run("off-day expands to all three periods", func(t *testing.T) {
		// 07/04/2026 is a Saturday.
		for p := 1; p <= 3; p++ {
			if !cd.IsOff(1, domain.TimeSlot{Day: domain.Saturday, Period: p}) {
				t.Errorf("staff 1 should be off Saturday period %d", p)
			}
		}
	})

	t.Run("trip expands across its period range", func(t *testing.T) {
		// 07/08/2026 is a Wednesday.
		trips := cd.Trips[2]
		if len(trips) != 2 {
			t.Fatalf("want 2 expanded trip periods, got %d", len(trips))
		}
		if trips[0].Slot.Period != 2 || trips[1].Slot.Period != 3 {
			t.Errorf("trip periods = %v, %v", trips[0].Slot.Period, trips[1].Slot.Period)
		}
	})

	t.Run("weights fall back to defaults when unset", func(t *testing.T) {
		if cd.Weights.StaffRepetition != 0.5 {
			t.Errorf("StaffRepetition = %v, want 0.5 (overridden)", cd.Weights.StaffRepetition)
		}
		if cd.Weights.GroupCategory != 0.75 {
			t.Errorf("GroupCategory = %v, want 0.75 (default)", cd.Weights.GroupCategory)
		}
	})

	t.Run("solver time limit honored", func(t *testing.T) {
		if cd.SolverTimeLimitSeconds != 30 {
			t.Errorf("SolverTimeLimitSeconds = %d, want 30", cd.SolverTimeLimitSeconds)
		}
	})
}

func TestLoadFromBytesMissingWaterfrontPattern(t *testing.T) {
	yaml := `
staff:
  - id: 1
    name: "Alex Morgan"
activities:
  - id: 1
    name: waterfront
    category: fixed
    duration: 1
    min_staff: 1
    max_staff: 1
  - id: 2
    name: waterskiing
    category: fixed
    duration: 1
    min_staff: 1
    max_staff: 1
locations:
  - id: 1
    name: "North Dock"
location_options:
  - activity_id: 1
    location_id: 1
  - activity_id: 2
    location_id: 1
groups:
  - id: 1
leads:
  - staff_id: 1
    activity_id: 1
`
	if _, err := LoadFromBytes([]byte(yaml)); err == nil {
		t.Fatal("expected an error for a group missing its waterfront pattern")
	}
}
