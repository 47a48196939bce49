// Package model is the Variable Factory, Constraint Builder and Objective
// Builder of spec §4: it turns a domain.CampData into a fully-posted
// OR-Tools CP-SAT model (github.com/google/or-tools/ortools/sat/go/cpmodel),
// ready for internal/solver to hand to the backend.
package model

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/campsched/campsched/internal/domain"
	"github.com/campsched/campsched/internal/strategy"
)

// Variables holds every decision variable table of spec §4.1, keyed by
// the tuple it represents. Nothing here is ever written to after
// BuildVariables returns; internal/solver and internal/extractor only read it.
type Variables struct {
	Builder *cpmodel.CpModelBuilder

	X   map[XKey]cpmodel.BoolVar
	Y   map[YKey]cpmodel.BoolVar
	N   map[AKGKey]cpmodel.IntVar
	C   map[AKGKey]cpmodel.BoolVar
	GT  map[KGKey]cpmodel.BoolVar
	I   map[SKKey]cpmodel.BoolVar
	DRD map[GDayKey]cpmodel.BoolVar
	DRS map[GDaySKey]cpmodel.BoolVar
	TRP map[TripKey]cpmodel.BoolVar
	WSD map[SDayKey]cpmodel.BoolVar

	// XOrder is the deterministic creation order for X, produced by the
	// active strategy.Strategy (spec §5: ordering must be reproducible
	// across builds of equal inputs). It is not passed to the solver as a
	// hint or decision strategy.
	XOrder []XKey

	cd *domain.CampData
}

// BuildVariables creates every variable table in deterministic key order.
// Cartesian-product cells that C9 (qualification), C7 (off-slots), or
// C22 (DR staff availability) would force to zero are never created —
// spec §4.1 explicitly allows this pruning as long as the read-back
// semantics match a full Cartesian product.
func BuildVariables(cd *domain.CampData, strat strategy.Strategy) *Variables {
	b := cpmodel.NewCpModelBuilder()
	v := &Variables{
		Builder: b,
		X:       map[XKey]cpmodel.BoolVar{},
		Y:       map[YKey]cpmodel.BoolVar{},
		N:       map[AKGKey]cpmodel.IntVar{},
		C:       map[AKGKey]cpmodel.BoolVar{},
		GT:      map[KGKey]cpmodel.BoolVar{},
		I:       map[SKKey]cpmodel.BoolVar{},
		DRD:     map[GDayKey]cpmodel.BoolVar{},
		DRS:     map[GDaySKey]cpmodel.BoolVar{},
		TRP:     map[TripKey]cpmodel.BoolVar{},
		WSD:     map[SDayKey]cpmodel.BoolVar{},
		cd:      cd,
	}

	slots := domain.AllTimeSlots()

	// C[a,k,g] and N[a,k,g]: full (activity, slot, group) product.
	for _, a := range cd.Activities {
		for _, k := range slots {
			for _, g := range cd.Groups {
				key := AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}
				v.C[key] = b.NewBoolVar()
				v.N[key] = b.NewIntVar(0, int64(a.MaxStaff))
			}
		}
	}

	// Y[l,a,k,g]: only for locations valid for that activity (C4 forces
	// the rest to zero anyway).
	for _, a := range cd.Activities {
		validLocs := sortedKeys(cd.ValidLocations[a.ID])
		for _, k := range slots {
			for _, g := range cd.Groups {
				for _, locID := range validLocs {
					v.Y[YKey{LocationID: locID, ActivityID: a.ID, Slot: k, GroupID: g.ID}] = b.NewBoolVar()
				}
			}
		}
	}

	// GT[k,g]: full (slot, group) product.
	for _, k := range slots {
		for _, g := range cd.Groups {
			v.GT[KGKey{Slot: k, GroupID: g.ID}] = b.NewBoolVar()
		}
	}

	// X[s,a,k,g]: pruned to qualified, available staff. Ordered by the
	// active posting strategy for reproducibility and decision hints.
	var xKeys []strategy.AssignmentKey
	for _, s := range cd.Staff {
		for _, a := range cd.Activities {
			if !cd.Qualified(s.ID, a.ID) {
				continue // C9
			}
			for _, k := range slots {
				if cd.IsOff(s.ID, k) {
					continue // C7
				}
				for _, g := range cd.Groups {
					xKeys = append(xKeys, strategy.AssignmentKey{
						StaffID: s.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID,
					})
				}
			}
		}
	}
	xKeys = strat.Order(cd, xKeys)
	v.XOrder = make([]XKey, len(xKeys))
	for i, ak := range xKeys {
		key := XKey{StaffID: ak.StaffID, ActivityID: ak.ActivityID, Slot: ak.Slot, GroupID: ak.GroupID}
		v.X[key] = b.NewBoolVar()
		v.XOrder[i] = key
	}

	// I[s,k]: period-1 slots only, pruned to available staff (C7).
	for _, s := range cd.Staff {
		for _, k := range domain.InspectionSlots() {
			if cd.IsOff(s.ID, k) {
				continue
			}
			v.I[SKKey{StaffID: s.ID, Slot: k}] = b.NewBoolVar()
		}
	}

	// DRD[g,day]: allowed DR days only.
	for _, g := range cd.Groups {
		for _, d := range domain.AllowedDRDays {
			v.DRD[GDayKey{GroupID: g.ID, Day: d}] = b.NewBoolVar()
		}
	}

	// DRS[g,day,s]: pruned to staff available for both DR periods (C22).
	for _, g := range cd.Groups {
		for _, d := range domain.AllowedDRDays {
			p1, p2 := domain.TimeSlot{Day: d, Period: 1}, domain.TimeSlot{Day: d, Period: 2}
			for _, s := range cd.Staff {
				if cd.IsOff(s.ID, p1) || cd.IsOff(s.ID, p2) {
					continue
				}
				v.DRS[GDaySKey{GroupID: g.ID, Day: d, StaffID: s.ID}] = b.NewBoolVar()
			}
		}
	}

	// TRP[s,k,name]: only for actually pre-committed trip pairs.
	for _, s := range cd.Staff {
		for _, trip := range cd.Trips[s.ID] {
			v.TRP[TripKey{StaffID: s.ID, Slot: trip.Slot, Name: trip.Name}] = b.NewBoolVar()
		}
	}

	// WSD[s,day]: only for days any group's waterfront pattern touches;
	// C11B fixes WSD at 0 for every other day, so there is nothing to
	// create (and nothing to read back) for them.
	waterskiDays := map[domain.Day]bool{}
	for _, slots := range cd.WaterfrontPattern {
		for _, k := range slots {
			waterskiDays[k.Day] = true
		}
	}
	for _, s := range cd.Staff {
		for _, d := range domain.Weekdays {
			if !waterskiDays[d] {
				continue
			}
			v.WSD[SDayKey{StaffID: s.ID, Day: d}] = b.NewBoolVar()
		}
	}

	return v
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
