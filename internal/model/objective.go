package model

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/campsched/campsched/internal/domain"
)

// objectiveScale turns the four fractional weights into integer
// coefficients, since CP-SAT wants an integer-valued objective. 100 keeps
// two decimal digits of precision on weights like 0.25 without the
// combined objective overflowing int64 at any realistic camp size.
const objectiveScale = 100

// PostObjective builds REP, CAT, WKA and UNB (spec §4.3) and minimizes
// their weighted combination. It returns the auxiliary variables so a
// caller can read back their solved values; internal/solver does not
// use them.
func PostObjective(v *Variables, cd *domain.CampData) *Objective {
	b := v.Builder

	rep, cnt := buildStaffRepetitionExcess(b, v, cd)
	cat, hasCat := buildGroupCategoryVariety(b, v, cd)
	wka, hasAct := buildGroupWeeklyVariety(b, v, cd)
	dev, tot := buildUnassignedDeviation(b, v, cd)

	w := cd.Weights
	wSD := int64(w.StaffRepetition * objectiveScale)
	wGD := int64(w.GroupCategory * objectiveScale)
	wGW := int64(w.GroupWeekly * objectiveScale)
	wUB := int64(w.StaffUnbalance * objectiveScale)

	expr := cpmodel.NewLinearExpr()
	for _, e := range rep {
		expr = expr.AddTerm(e, wSD)
	}
	for _, h := range hasCat {
		expr = expr.AddTerm(h, -wGD)
	}
	for _, h := range hasAct {
		expr = expr.AddTerm(h, -wGW)
	}
	for _, d := range dev {
		expr = expr.AddTerm(d, wUB)
	}
	b.Minimize(expr)

	return &Objective{
		ExcessByStaffActivity: rep,
		CountByStaffActivity:  cnt,
		HasCategory:           cat,
		HasActivity:           wka,
		DeviationByStaff:      dev,
		TotalByStaff:          tot,
	}
}

// Objective exposes every auxiliary expression family built by
// PostObjective, keyed the same way the model's own tables are, so the
// extractor or diagnostics code can read back REP/CAT/WKA/UNB components.
type Objective struct {
	ExcessByStaffActivity map[staffActivityKey]cpmodel.IntVar
	CountByStaffActivity  map[staffActivityKey]cpmodel.IntVar
	HasCategory           map[groupDayPeriodCatKey]cpmodel.BoolVar
	HasActivity           map[groupActivityKey]cpmodel.BoolVar
	DeviationByStaff      map[int]cpmodel.IntVar
	TotalByStaff          map[int]cpmodel.IntVar
}

type staffActivityKey struct {
	StaffID    int
	ActivityID int
}

type groupActivityKey struct {
	GroupID    int
	ActivityID int
}

type groupDayPeriodCatKey struct {
	GroupID  int
	Day      domain.Day
	Period   int
	Category string
}

// buildStaffRepetitionExcess: CNT[s,a] = Σ_{k,g} X[s,a,k,g];
// excess[s,a] = max(0, CNT[s,a] − 4); REP = Σ excess.
func buildStaffRepetitionExcess(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) (map[staffActivityKey]cpmodel.IntVar, map[staffActivityKey]cpmodel.IntVar) {
	const repCap = 4

	excess := map[staffActivityKey]cpmodel.IntVar{}
	cnt := map[staffActivityKey]cpmodel.IntVar{}

	for _, s := range cd.Staff {
		for _, a := range cd.Activities {
			total := cpmodel.NewLinearExpr()
			upperBound := int64(0)
			for _, k := range domain.AllTimeSlots() {
				for _, g := range cd.Groups {
					if x, ok := v.X[XKey{StaffID: s.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID}]; ok {
						total = total.AddTerm(x, 1)
						upperBound++
					}
				}
			}
			if upperBound == 0 {
				continue // staff is never qualified/available for a here; CNT is trivially 0.
			}

			key := staffActivityKey{StaffID: s.ID, ActivityID: a.ID}
			c := b.NewIntVar(0, upperBound)
			b.AddEquality(c, total)
			cnt[key] = c

			excessUB := upperBound - repCap
			if excessUB < 0 {
				excessUB = 0
			}
			e := b.NewIntVar(0, excessUB)
			// e = max(0, c - 4): post both halves of the max-of-zero idiom.
			b.AddGreaterOrEqual(e, cpmodel.NewLinearExpr().AddTerm(c, 1).AddConstant(-repCap))
			b.AddGreaterOrEqual(e, cpmodel.NewConstant(0))
			excess[key] = e
		}
	}
	return excess, cnt
}

// buildGroupCategoryVariety: HASCAT[g,day,period,cat] = OR_{a:cat(a)=cat}
// C[a,(d,p),g], for cat != fixed. CAT = Σ HASCAT.
func buildGroupCategoryVariety(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) (map[groupDayPeriodCatKey]cpmodel.BoolVar, []cpmodel.BoolVar) {
	cats := map[string][]domain.Activity{}
	for _, a := range cd.Activities {
		if a.Category == domain.CategoryFixed {
			continue
		}
		cats[a.Category] = append(cats[a.Category], a)
	}
	var catNames []string
	for name := range cats {
		catNames = append(catNames, name)
	}
	sort.Strings(catNames)

	hasCat := map[groupDayPeriodCatKey]cpmodel.BoolVar{}
	var flat []cpmodel.BoolVar
	for _, g := range cd.Groups {
		for _, d := range domain.Weekdays {
			for p := 1; p <= 3; p++ {
				k := domain.TimeSlot{Day: d, Period: p}
				for _, cat := range catNames {
					acts := cats[cat]
					h := b.NewBoolVar()
					var lits []cpmodel.BoolVar
					for _, a := range acts {
						lits = append(lits, v.C[AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}])
					}
					postOrReification(b, h, lits)
					key := groupDayPeriodCatKey{GroupID: g.ID, Day: d, Period: p, Category: cat}
					hasCat[key] = h
					flat = append(flat, h)
				}
			}
		}
	}
	return hasCat, flat
}

// buildGroupWeeklyVariety: HASACT[g,a] = OR_k C[a,k,g]. WKA = Σ HASACT.
func buildGroupWeeklyVariety(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) (map[groupActivityKey]cpmodel.BoolVar, []cpmodel.BoolVar) {
	hasAct := map[groupActivityKey]cpmodel.BoolVar{}
	var flat []cpmodel.BoolVar
	for _, g := range cd.Groups {
		for _, a := range cd.Activities {
			h := b.NewBoolVar()
			var lits []cpmodel.BoolVar
			for _, k := range domain.AllTimeSlots() {
				lits = append(lits, v.C[AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}])
			}
			postOrReification(b, h, lits)
			hasAct[groupActivityKey{GroupID: g.ID, ActivityID: a.ID}] = h
			flat = append(flat, h)
		}
	}
	return hasAct, flat
}

// buildUnassignedDeviation: work[s] = TOT[s] + Σ_d I[s,(d,1)] where
// TOT[s] = Σ_{a,k,g} X[s,a,k,g]; DEV[s] = |avail[s] − work[s] − 2|.
func buildUnassignedDeviation(b *cpmodel.CpModelBuilder, v *Variables, cd *domain.CampData) (map[int]cpmodel.IntVar, map[int]cpmodel.IntVar) {
	dev := map[int]cpmodel.IntVar{}
	tot := map[int]cpmodel.IntVar{}

	for _, s := range cd.Staff {
		avail := int64(cd.AvailableSlotCount(s.ID))

		totExpr := cpmodel.NewLinearExpr()
		totUB := int64(0)
		for _, a := range cd.Activities {
			for _, k := range domain.AllTimeSlots() {
				for _, g := range cd.Groups {
					if x, ok := v.X[XKey{StaffID: s.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID}]; ok {
						totExpr = totExpr.AddTerm(x, 1)
						totUB++
					}
				}
			}
		}
		totVar := b.NewIntVar(0, totUB)
		b.AddEquality(totVar, totExpr)
		tot[s.ID] = totVar

		workExpr := cpmodel.NewLinearExpr().AddTerm(totVar, 1)
		workUB := totUB
		for _, k := range domain.InspectionSlots() {
			if i, ok := v.I[SKKey{StaffID: s.ID, Slot: k}]; ok {
				workExpr = workExpr.AddTerm(i, 1)
				workUB++
			}
		}
		workVar := b.NewIntVar(0, workUB)
		b.AddEquality(workVar, workExpr)

		// DEV[s] = |avail - work - 2|, via two linear halves over a
		// non-negative slack (spec §9's abs-value idiom).
		target := avail - 2
		devUB := workUB + abs64(target) + 2
		d := b.NewIntVar(0, devUB)
		b.AddGreaterOrEqual(d, cpmodel.NewLinearExpr().AddTerm(workVar, -1).AddConstant(target))
		b.AddGreaterOrEqual(d, cpmodel.NewLinearExpr().AddTerm(workVar, 1).AddConstant(-target))
		dev[s.ID] = d
	}
	return dev, tot
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// postOrReification posts target == OR(lits): lits imply target, and
// target implies at least one lit. An empty lits slice forces target=0
// (no activity in that category/slot exists at all, so it is never "had").
func postOrReification(b *cpmodel.CpModelBuilder, target cpmodel.BoolVar, lits []cpmodel.BoolVar) {
	if len(lits) == 0 {
		b.AddEquality(target, cpmodel.NewConstant(0))
		return
	}
	for _, lit := range lits {
		b.AddImplication(lit, target)
	}
	or := append(append([]cpmodel.BoolVar(nil), lits...), target.Not())
	b.AddBoolOr(or...)
}
