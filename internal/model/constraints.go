package model

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/campsched/campsched/internal/domain"
)

// PostConstraints posts C1 through C26 against v.Builder. Order follows
// the numbering in the constraint catalog, not a performance ordering —
// posting order does not affect the feasible set, only solver search,
// and a fixed order keeps two builds over equal inputs byte-identical.
func PostConstraints(v *Variables, cd *domain.CampData) {
	b := v.Builder
	slots := domain.AllTimeSlots()

	postC1ActivityExclusivity(b, v, cd, slots)
	postC2StaffNonOverlap(b, v, cd, slots)
	postC3LocationNonOverlap(b, v, cd, slots)
	postC4ValidLocation(b, v, cd, slots)
	postC5PerGroupSlotCount(b, v, cd, slots)
	postC6ChosenLinking(b, v, cd, slots)
	postC7OffDays(b, v, cd)
	postC8MinStaffing(b, v, cd, slots)
	postC9Qualification() // enforced at factory time: unqualified X never exists.
	postC10LeadRequirement(b, v, cd, slots)
	postC11WaterfrontPattern(b, v, cd)
	postC11AWaterskiingConfinement(b, v, cd, slots)
	postC11BWaterskiContinuity(b, v, cd)
	postC12GolfTennisPairing(b, v, cd, slots)
	postC13WeeklyGTCount(b, v, cd)
	postC14DailyGTLimit(b, v, cd)
	postC15InspectionCover(b, v, cd)
	postC16InspectionExclusivity(b, v, cd)
	postC17DRWeeklyFrequency(b, v, cd)
	postC18DRSchedulingWindow(b, v, cd)
	postC19DRPeriodContinuity(b, v, cd)
	postC20DRStaffing(b, v, cd)
	postC21DRStaffContinuity(b, v, cd)
	postC22DRStaffAvailability() // enforced at factory time: DRS never exists for an off staff member.
	postC23TripEnforcement(b, v, cd)
	postC24TripExclusivity(b, v, cd)
	postC25NoIntraDayRepeat(b, v, cd)
	postC26MaxStaffing(b, v, cd, slots)
}

func sumX(v *Variables, cd *domain.CampData, k domain.TimeSlot, filter func(staffID, activityID, groupID int) bool) []cpmodel.BoolVar {
	var lits []cpmodel.BoolVar
	for _, s := range cd.Staff {
		for _, a := range cd.Activities {
			for _, g := range cd.Groups {
				if filter != nil && !filter(s.ID, a.ID, g.ID) {
					continue
				}
				if x, ok := v.X[XKey{StaffID: s.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID}]; ok {
					lits = append(lits, x)
				}
			}
		}
	}
	return lits
}

// C1: Σ_g C[a,k,g] ≤ 1 for every (a,k).
func postC1ActivityExclusivity(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	for _, a := range cd.Activities {
		for _, k := range slots {
			var lits []cpmodel.BoolVar
			for _, g := range cd.Groups {
				lits = append(lits, v.C[AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}])
			}
			b.AddAtMostOne(lits...)
		}
	}
}

// C2: Σ_{a,g} X[s,a,k,g] ≤ 1 for every (s,k).
func postC2StaffNonOverlap(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	for _, s := range cd.Staff {
		for _, k := range slots {
			lits := sumX(v, cd, k, func(staffID, _, _ int) bool { return staffID == s.ID })
			if k.Period == 1 {
				if i, ok := v.I[SKKey{StaffID: s.ID, Slot: k}]; ok {
					lits = append(lits, i) // C16 folded in directly.
				}
			}
			if len(lits) > 1 {
				b.AddAtMostOne(lits...)
			}
		}
	}
}

// C3: Σ_{a,g} Y[ℓ,a,k,g] ≤ 1 for every (ℓ,k).
func postC3LocationNonOverlap(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	for _, l := range cd.Locations {
		for _, k := range slots {
			var lits []cpmodel.BoolVar
			for _, a := range cd.Activities {
				for _, g := range cd.Groups {
					if y, ok := v.Y[YKey{LocationID: l.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID}]; ok {
						lits = append(lits, y)
					}
				}
			}
			if len(lits) > 1 {
				b.AddAtMostOne(lits...)
			}
		}
	}
}

// C4: Σ_{ℓ∈ValidLocations(a)} Y[ℓ,a,k,g] = C[a,k,g]; Y undefined (absent) for
// ℓ∉ValidLocations(a), which already encodes "=0" for those cells.
func postC4ValidLocation(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	for _, a := range cd.Activities {
		for _, k := range slots {
			for _, g := range cd.Groups {
				c := v.C[AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}]
				expr := cpmodel.NewLinearExpr()
				for _, l := range cd.Locations {
					if y, ok := v.Y[YKey{LocationID: l.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID}]; ok {
						expr = expr.AddTerm(y, 1)
					}
				}
				b.AddEquality(expr, c)
			}
		}
	}
}

// C5: outside the waterfront pattern, Σ_a C[a,k,g] = 4 if GT[k,g]=0, = 2 if
// GT[k,g]=1. Waterfront-pattern slots are governed entirely by C11.
func postC5PerGroupSlotCount(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	for _, g := range cd.Groups {
		pattern := waterfrontSlotSet(cd, g.ID)
		for _, k := range slots {
			if pattern[k] {
				continue // C11 owns this (k,g).
			}
			gt := v.GT[KGKey{Slot: k, GroupID: g.ID}]
			total := cpmodel.NewLinearExpr()
			for _, a := range cd.Activities {
				total = total.AddTerm(v.C[AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}], 1)
			}
			four := b.AddEquality(total, cpmodel.NewConstant(4))
			four.OnlyEnforceIf(gt.Not())
			two := b.AddEquality(total, cpmodel.NewConstant(2))
			two.OnlyEnforceIf(gt)
		}
	}
}

func waterfrontSlotSet(cd *domain.CampData, groupID int) map[domain.TimeSlot]bool {
	set := map[domain.TimeSlot]bool{}
	for _, k := range cd.WaterfrontPattern[groupID] {
		set[k] = true
	}
	return set
}

// C6: Σ_ℓ Y[ℓ,a,k,g] = C[a,k,g] (shared with C4's equality); N > 0 whenever any
// Y=1 is implied by C8's min-staffing lower bound once C=1, so the only
// additional relation here is Y=0 ⇒ nothing (already covered by C4's sum).
// The "N[a,k,g] > 0 whenever any Y=1" clause reduces, given C4 and C8, to:
// C=1 ⇒ N ≥ minStaff(a) ≥ 1, which C8 posts directly. Nothing further to add.
func postC6ChosenLinking(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	_ = b
	_ = v
	_ = cd
	_ = slots
}

// C7: X[s,a,k,g]=0, I[s,k]=0 for k∈O[s] — enforced at factory time by never
// creating those variables for off-slots.
func postC7OffDays(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	_ = b
	_ = v
	_ = cd
}

// C8: C[a,k,g]=1 ⇒ N[a,k,g] ≥ minStaff(a); C[a,k,g]=0 ⇒ N[a,k,g] = 0. N is
// also linked to X by N = Σ_s X (the N=Σ_s X contract from §4.1).
func postC8MinStaffing(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	for _, a := range cd.Activities {
		for _, k := range slots {
			for _, g := range cd.Groups {
				key := AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}
				c, n := v.C[key], v.N[key]

				sumX := cpmodel.NewLinearExpr()
				for _, s := range cd.Staff {
					if x, ok := v.X[XKey{StaffID: s.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID}]; ok {
						sumX = sumX.AddTerm(x, 1)
					}
				}
				b.AddEquality(n, sumX)

				min := b.AddGreaterOrEqual(n, cpmodel.NewConstant(int64(a.MinStaff)))
				min.OnlyEnforceIf(c)
				zero := b.AddEquality(n, cpmodel.NewConstant(0))
				zero.OnlyEnforceIf(c.Not())
			}
		}
	}
}

// C9: enforced at factory time — X is never created for an unqualified
// (staff, activity) pair.
func postC9Qualification() {}

// C10: C[a,k,g]=1 ⇒ Σ_{s: can_lead(s,a)} X[s,a,k,g] ≥ 1.
func postC10LeadRequirement(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	for _, a := range cd.Activities {
		for _, k := range slots {
			for _, g := range cd.Groups {
				c := v.C[AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}]
				leads := cpmodel.NewLinearExpr()
				any := false
				for _, s := range cd.Staff {
					if !cd.Leads[s.ID][a.ID] {
						continue
					}
					if x, ok := v.X[XKey{StaffID: s.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID}]; ok {
						leads = leads.AddTerm(x, 1)
						any = true
					}
				}
				if !any {
					// No staff can ever lead this activity: C must be forced
					// to 0 here, or the model is unsatisfiable by C10 alone.
					b.AddEquality(c, cpmodel.NewConstant(0))
					continue
				}
				ct := b.AddGreaterOrEqual(leads, cpmodel.NewConstant(1))
				ct.OnlyEnforceIf(c)
			}
		}
	}
}

// C11 / C11A: waterfront pattern slots are mandatory and exclusive; all
// other slots are forbidden from waterskiing.
func postC11WaterfrontPattern(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	wf, _ := cd.ActivityByName(domain.ActivityWaterfront)
	ws, _ := cd.ActivityByName(domain.ActivityWaterskiing)

	for _, g := range cd.Groups {
		for _, k := range cd.WaterfrontPattern[g.ID] {
			cWF := v.C[AKGKey{ActivityID: wf.ID, Slot: k, GroupID: g.ID}]
			cWS := v.C[AKGKey{ActivityID: ws.ID, Slot: k, GroupID: g.ID}]
			b.AddEquality(cWF, cpmodel.NewConstant(1))
			b.AddEquality(cWS, cpmodel.NewConstant(1))

			total := cpmodel.NewLinearExpr()
			for _, a := range cd.Activities {
				total = total.AddTerm(v.C[AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}], 1)
			}
			b.AddEquality(total, cpmodel.NewConstant(2))
		}
	}
}

// C11A: C[waterskiing,k,g]=0 for k∉W[g].
func postC11AWaterskiingConfinement(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	ws, ok := cd.ActivityByName(domain.ActivityWaterskiing)
	if !ok {
		return
	}
	for _, g := range cd.Groups {
		pattern := waterfrontSlotSet(cd, g.ID)
		for _, k := range slots {
			if pattern[k] {
				continue
			}
			b.AddEquality(v.C[AKGKey{ActivityID: ws.ID, Slot: k, GroupID: g.ID}], cpmodel.NewConstant(0))
		}
	}
}

// C11B: every X[s,waterskiing,k,g] with k∈W[g] on day d equals WSD[s,d]; days
// untouched by any pattern have WSD pinned at 0.
func postC11BWaterskiContinuity(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	ws, ok := cd.ActivityByName(domain.ActivityWaterskiing)
	if !ok {
		return
	}

	slotsByDay := map[domain.Day][]struct {
		Slot    domain.TimeSlot
		GroupID int
	}{}
	for _, g := range cd.Groups {
		for _, k := range cd.WaterfrontPattern[g.ID] {
			slotsByDay[k.Day] = append(slotsByDay[k.Day], struct {
				Slot    domain.TimeSlot
				GroupID int
			}{Slot: k, GroupID: g.ID})
		}
	}

	for _, s := range cd.Staff {
		for _, d := range domain.Weekdays {
			cells := slotsByDay[d]
			for _, cell := range cells {
				wsd, ok := v.WSD[SDayKey{StaffID: s.ID, Day: d}]
				if !ok {
					continue
				}
				x, hasX := v.X[XKey{StaffID: s.ID, ActivityID: ws.ID, Slot: cell.Slot, GroupID: cell.GroupID}]
				if !hasX {
					b.AddEquality(wsd, cpmodel.NewConstant(0))
					continue
				}
				b.AddEquality(x, wsd)
			}
			if len(cells) == 0 {
				if wsd, ok := v.WSD[SDayKey{StaffID: s.ID, Day: d}]; ok {
					b.AddEquality(wsd, cpmodel.NewConstant(0))
				}
			}
		}
	}
}

// C12 (golf+tennis pairing): GT=1 ⇒ Σ_a C=2 and C[golf]+C[tennis]=2;
// GT=0 ⇒ C[golf]+C[tennis] ≤ 1.
func postC12GolfTennisPairing(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	golf, hasGolf := cd.ActivityByName(domain.ActivityGolf)
	tennis, hasTennis := cd.ActivityByName(domain.ActivityTennis)
	if !hasGolf || !hasTennis {
		return
	}

	for _, g := range cd.Groups {
		for _, k := range slots {
			gt := v.GT[KGKey{Slot: k, GroupID: g.ID}]
			cGolf := v.C[AKGKey{ActivityID: golf.ID, Slot: k, GroupID: g.ID}]
			cTennis := v.C[AKGKey{ActivityID: tennis.ID, Slot: k, GroupID: g.ID}]

			pair := cpmodel.NewLinearExpr().AddTerm(cGolf, 1).AddTerm(cTennis, 1)
			eq2 := b.AddEquality(pair, cpmodel.NewConstant(2))
			eq2.OnlyEnforceIf(gt)

			total := cpmodel.NewLinearExpr()
			for _, a := range cd.Activities {
				total = total.AddTerm(v.C[AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}], 1)
			}
			totalEq2 := b.AddEquality(total, cpmodel.NewConstant(2))
			totalEq2.OnlyEnforceIf(gt)

			le1 := b.AddLessOrEqual(pair, cpmodel.NewConstant(1))
			le1.OnlyEnforceIf(gt.Not())
		}
	}
}

// C13 (weekly GT count): Σ_k GT[k,g] ≥ 2 for every g.
func postC13WeeklyGTCount(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	for _, g := range cd.Groups {
		total := cpmodel.NewLinearExpr()
		for _, k := range domain.AllTimeSlots() {
			total = total.AddTerm(v.GT[KGKey{Slot: k, GroupID: g.ID}], 1)
		}
		b.AddGreaterOrEqual(total, cpmodel.NewConstant(2))
	}
}

// C14 (daily GT limit): Σ_{k:k.day=d} GT[k,g] ≤ 1 for every (g,d).
func postC14DailyGTLimit(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	for _, g := range cd.Groups {
		for _, d := range domain.Weekdays {
			total := cpmodel.NewLinearExpr()
			for p := 1; p <= 3; p++ {
				total = total.AddTerm(v.GT[KGKey{Slot: domain.TimeSlot{Day: d, Period: p}, GroupID: g.ID}], 1)
			}
			b.AddLessOrEqual(total, cpmodel.NewConstant(1))
		}
	}
}

// C15 (inspection cover): Σ_s I[s,(d,1)] = 1 for every weekday d.
func postC15InspectionCover(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	for _, d := range domain.Weekdays {
		k := domain.TimeSlot{Day: d, Period: 1}
		total := cpmodel.NewLinearExpr()
		for _, s := range cd.Staff {
			if i, ok := v.I[SKKey{StaffID: s.ID, Slot: k}]; ok {
				total = total.AddTerm(i, 1)
			}
		}
		b.AddEquality(total, cpmodel.NewConstant(1))
	}
}

// C16 (inspection/activity exclusivity) is folded directly into C2's
// AddAtMostOne call above, since both constrain the same (s,k) cell.
func postC16InspectionExclusivity(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	_ = b
	_ = v
	_ = cd
}

// C17 (DR weekly frequency): Σ_{d∈AllowedDRDays} DRD[g,d] = 1 per g.
func postC17DRWeeklyFrequency(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	for _, g := range cd.Groups {
		total := cpmodel.NewLinearExpr()
		for _, d := range domain.AllowedDRDays {
			total = total.AddTerm(v.DRD[GDayKey{GroupID: g.ID, Day: d}], 1)
		}
		b.AddEquality(total, cpmodel.NewConstant(1))
	}
}

// C18 (DR scheduling window): C[drivingRange,(d,p),g]=0 when d∉AllowedDRDays
// or p∉{1,2}.
func postC18DRSchedulingWindow(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	dr, ok := cd.ActivityByName(domain.ActivityDrivingRange)
	if !ok {
		return
	}
	for _, g := range cd.Groups {
		for _, k := range domain.AllTimeSlots() {
			if domain.IsAllowedDRDay(k.Day) && (k.Period == 1 || k.Period == 2) {
				continue
			}
			b.AddEquality(v.C[AKGKey{ActivityID: dr.ID, Slot: k, GroupID: g.ID}], cpmodel.NewConstant(0))
		}
	}
}

// C19 (DR period continuity): DRD[g,d]=1 ⇔ C[dr,(d,1),g]=1 ∧ C[dr,(d,2),g]=1.
func postC19DRPeriodContinuity(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	dr, ok := cd.ActivityByName(domain.ActivityDrivingRange)
	if !ok {
		return
	}
	for _, g := range cd.Groups {
		for _, d := range domain.AllowedDRDays {
			drd := v.DRD[GDayKey{GroupID: g.ID, Day: d}]
			c1 := v.C[AKGKey{ActivityID: dr.ID, Slot: domain.TimeSlot{Day: d, Period: 1}, GroupID: g.ID}]
			c2 := v.C[AKGKey{ActivityID: dr.ID, Slot: domain.TimeSlot{Day: d, Period: 2}, GroupID: g.ID}]

			both := b.AddEquality(cpmodel.NewLinearExpr().AddTerm(c1, 1).AddTerm(c2, 1), cpmodel.NewConstant(2))
			both.OnlyEnforceIf(drd)
			eitherZero := b.AddLessOrEqual(cpmodel.NewLinearExpr().AddTerm(c1, 1).AddTerm(c2, 1), cpmodel.NewConstant(1))
			eitherZero.OnlyEnforceIf(drd.Not())

			b.AddImplication(c1, drd)
			b.AddImplication(c2, drd)
		}
	}
}

// C20 (DR staffing): DRD[g,d]=1 ⇒ Σ_s DRS[g,d,s] ≥ 1; else Σ_s DRS[g,d,s]=0.
func postC20DRStaffing(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	for _, g := range cd.Groups {
		for _, d := range domain.AllowedDRDays {
			drd := v.DRD[GDayKey{GroupID: g.ID, Day: d}]
			total := cpmodel.NewLinearExpr()
			for _, s := range cd.Staff {
				if drs, ok := v.DRS[GDaySKey{GroupID: g.ID, Day: d, StaffID: s.ID}]; ok {
					total = total.AddTerm(drs, 1)
				}
			}
			atLeastOne := b.AddGreaterOrEqual(total, cpmodel.NewConstant(1))
			atLeastOne.OnlyEnforceIf(drd)
			zero := b.AddEquality(total, cpmodel.NewConstant(0))
			zero.OnlyEnforceIf(drd.Not())
		}
	}
}

// C21 (DR staff continuity): X[s,dr,(d,1),g]=X[s,dr,(d,2),g]=DRS[g,d,s] when
// DRD[g,d]=1; zero when DRD[g,d]=0.
func postC21DRStaffContinuity(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	dr, ok := cd.ActivityByName(domain.ActivityDrivingRange)
	if !ok {
		return
	}
	for _, g := range cd.Groups {
		for _, d := range domain.AllowedDRDays {
			drd := v.DRD[GDayKey{GroupID: g.ID, Day: d}]
			p1, p2 := domain.TimeSlot{Day: d, Period: 1}, domain.TimeSlot{Day: d, Period: 2}
			for _, s := range cd.Staff {
				drs, hasDRS := v.DRS[GDaySKey{GroupID: g.ID, Day: d, StaffID: s.ID}]
				x1, hasX1 := v.X[XKey{StaffID: s.ID, ActivityID: dr.ID, Slot: p1, GroupID: g.ID}]
				x2, hasX2 := v.X[XKey{StaffID: s.ID, ActivityID: dr.ID, Slot: p2, GroupID: g.ID}]
				if !hasX1 || !hasX2 {
					// Staff unavailable for one of the two DR periods (C22
					// already removed DRS) or not qualified for driving range
					// (X never created): an absent X is 0, so DRS is too.
					if hasDRS {
						b.AddEquality(drs, cpmodel.NewConstant(0))
					}
					continue
				}
				if !hasDRS {
					continue
				}
				eqX1 := b.AddEquality(x1, drs)
				eqX1.OnlyEnforceIf(drd)
				eqX2 := b.AddEquality(x2, drs)
				eqX2.OnlyEnforceIf(drd)

				zero1 := b.AddEquality(x1, cpmodel.NewConstant(0))
				zero1.OnlyEnforceIf(drd.Not())
				zero2 := b.AddEquality(x2, cpmodel.NewConstant(0))
				zero2.OnlyEnforceIf(drd.Not())
			}
		}
	}
}

// C22 (DR staff availability): enforced at factory time — DRS is never
// created for a staff member off at either DR period of that day.
func postC22DRStaffAvailability() {}

// C23 (trip enforcement): TRP[s,k,name]=1 for every (k,name)∈T[s].
func postC23TripEnforcement(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	for _, s := range cd.Staff {
		for _, trip := range cd.Trips[s.ID] {
			trp := v.TRP[TripKey{StaffID: s.ID, Slot: trip.Slot, Name: trip.Name}]
			b.AddEquality(trp, cpmodel.NewConstant(1))
		}
	}
}

// C24 (trip exclusivity): TRP[s,k,name]=1 ⇒ Σ_{a,g} X[s,a,k,g]=0 and, if k
// has period=1, I[s,k]=0. Trips are always-1 (C23), so this reduces to
// pinning every X and I variable at a trip's (staff, slot) to 0.
func postC24TripExclusivity(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	for _, s := range cd.Staff {
		for _, trip := range cd.Trips[s.ID] {
			for _, a := range cd.Activities {
				for _, g := range cd.Groups {
					if x, ok := v.X[XKey{StaffID: s.ID, ActivityID: a.ID, Slot: trip.Slot, GroupID: g.ID}]; ok {
						b.AddEquality(x, cpmodel.NewConstant(0))
					}
				}
			}
			if trip.Slot.Period == 1 {
				if i, ok := v.I[SKKey{StaffID: s.ID, Slot: trip.Slot}]; ok {
					b.AddEquality(i, cpmodel.NewConstant(0))
				}
			}
		}
	}
}

// C25 (no intra-day activity repeat, duration-1 activities only):
// Σ_p C[a,(d,p),g] ≤ 1 for every (g,a,d) with duration(a)=1.
func postC25NoIntraDayRepeat(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) {
	for _, a := range cd.Activities {
		if a.Duration != 1 {
			continue
		}
		for _, g := range cd.Groups {
			for _, d := range domain.Weekdays {
				total := cpmodel.NewLinearExpr()
				for p := 1; p <= 3; p++ {
					total = total.AddTerm(v.C[AKGKey{ActivityID: a.ID, Slot: domain.TimeSlot{Day: d, Period: p}, GroupID: g.ID}], 1)
				}
				b.AddLessOrEqual(total, cpmodel.NewConstant(1))
			}
		}
	}
}

// C26 (max staffing): N[a,k,g] ≤ maxStaff(a) for every (a,k,g).
func postC26MaxStaffing(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData, slots []domain.TimeSlot) {
	for _, a := range cd.Activities {
		for _, k := range slots {
			for _, g := range cd.Groups {
				n := v.N[AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}]
				b.AddLessOrEqual(n, cpmodel.NewConstant(int64(a.MaxStaff)))
			}
		}
	}
}
