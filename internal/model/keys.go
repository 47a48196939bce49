package model

import "github.com/campsched/campsched/internal/domain"

// Key types for every variable table in the Variable Factory (spec §4.1).
// Each is a small comparable struct so it can key a Go map directly.

// XKey identifies X[s,a,k,g].
type XKey struct {
	StaffID    int
	ActivityID int
	Slot       domain.TimeSlot
	GroupID    int
}

// YKey identifies Y[l,a,k,g].
type YKey struct {
	LocationID int
	ActivityID int
	Slot       domain.TimeSlot
	GroupID    int
}

// AKGKey identifies a (activity, slot, group) triple: N, C.
type AKGKey struct {
	ActivityID int
	Slot       domain.TimeSlot
	GroupID    int
}

// KGKey identifies a (slot, group) pair: GT.
type KGKey struct {
	Slot    domain.TimeSlot
	GroupID int
}

// SKKey identifies a (staff, slot) pair: I (period-1 slots only).
type SKKey struct {
	StaffID int
	Slot    domain.TimeSlot
}

// GDayKey identifies a (group, day) pair: DRD.
type GDayKey struct {
	GroupID int
	Day     domain.Day
}

// GDaySKey identifies a (group, day, staff) triple: DRS.
type GDaySKey struct {
	GroupID int
	Day     domain.Day
	StaffID int
}

// TripKey identifies a (staff, slot, trip name) triple: TRP.
type TripKey struct {
	StaffID int
	Slot    domain.TimeSlot
	Name    string
}

// SDayKey identifies a (staff, day) pair: WSD.
type SDayKey struct {
	StaffID int
	Day     domain.Day
}
