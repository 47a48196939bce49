package domain

import "testing"

func TestParseDayRejectsSunday(t *testing.T) {
	if _, ok := ParseDay("Sunday"); ok {
		t.Error("ParseDay(\"Sunday\") should return false")
	}
	if _, ok := ParseDay("Someday"); ok {
		t.Error("ParseDay(\"Someday\") should return false")
	}
	for _, name := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"} {
		if _, ok := ParseDay(name); !ok {
			t.Errorf("ParseDay(%q) should succeed", name)
		}
	}
}

func TestTimeSlotLessOrdersByDayThenPeriod(t *testing.T) {
	cases := []struct {
		a, b TimeSlot
		want bool
	}{
		{TimeSlot{Monday, 1}, TimeSlot{Monday, 2}, true},
		{TimeSlot{Monday, 2}, TimeSlot{Monday, 1}, false},
		{TimeSlot{Monday, 3}, TimeSlot{Tuesday, 1}, true},
		{TimeSlot{Tuesday, 1}, TimeSlot{Monday, 3}, false},
		{TimeSlot{Monday, 1}, TimeSlot{Monday, 1}, false},
	}
	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.want {
			t.Errorf("%v.Less(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestAllTimeSlotsCoversEighteenSlotsInOrder(t *testing.T) {
	slots := AllTimeSlots()
	if len(slots) != 18 {
		t.Fatalf("len(AllTimeSlots()) = %d, want 18", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i-1].Less(slots[i]) {
			t.Errorf("slots[%d]=%v should sort before slots[%d]=%v", i-1, slots[i-1], i, slots[i])
		}
	}
}

func TestInspectionSlotsAreAllPeriodOne(t *testing.T) {
	for _, k := range InspectionSlots() {
		if k.Period != 1 {
			t.Errorf("inspection slot %v has period != 1", k)
		}
	}
}

func TestIsAllowedDRDay(t *testing.T) {
	if !IsAllowedDRDay(Monday) {
		t.Error("Monday should be an allowed DR day")
	}
	if IsAllowedDRDay(Saturday) {
		t.Error("Saturday should not be an allowed DR day (only Monday-Thursday are)")
	}
}
