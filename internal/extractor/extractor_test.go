package extractor

import (
	"sort"
	"testing"

	"github.com/campsched/campsched/internal/domain"
)

func TestEntryLessOrdersBySlotThenGroupThenActivityThenStaff(t *testing.T) {
	mon1 := domain.TimeSlot{Day: domain.Monday, Period: 1}
	mon2 := domain.TimeSlot{Day: domain.Monday, Period: 2}

	entries := []Entry{
		{Activity: "tennis", Staff: []string{"Zed"}, Group: "2", Slot: mon1},
		{Activity: "arts", Staff: []string{"Alex"}, Group: "1", Slot: mon2},
		{Activity: "arts", Staff: []string{"Bex"}, Group: "1", Slot: mon1},
		{Activity: "arts", Staff: []string{"Alex"}, Group: "1", Slot: mon1},
	}
	sort.Slice(entries, func(i, j int) bool { return entryLess(entries[i], entries[j]) })

	want := []string{"Alex", "Bex", "Zed"}
	got := make([]string, 0, 3)
	for _, e := range entries {
		if e.Slot == mon1 {
			got = append(got, firstStaffName(e))
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if entries[len(entries)-1].Slot != mon2 {
		t.Error("mon2 entry should sort after every mon1 entry")
	}
}

func TestFirstStaffNameEmptyForUnassignedEntry(t *testing.T) {
	e := Entry{Activity: "inspection", Staff: nil}
	if got := firstStaffName(e); got != "" {
		t.Errorf("firstStaffName() = %q, want empty string", got)
	}
}

func TestGroupLabelMatchesDomain(t *testing.T) {
	if got := groupLabel(3); got != domain.GroupLabel(3) {
		t.Errorf("groupLabel(3) = %q, want %q", got, domain.GroupLabel(3))
	}
}
