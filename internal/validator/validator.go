// Package validator rederives the testable properties of a solved
// schedule directly from its extracted entries. It never looks at the
// CP-SAT model — only the final entry list — so it can double-check any
// schedule, including ones reloaded from a saved report.
package validator

import (
	"fmt"
	"sort"

	"github.com/campsched/campsched/internal/domain"
	"github.com/campsched/campsched/internal/extractor"
)

// Violation is one property failure found while checking a schedule.
type Violation struct {
	Type    string // "error" or "warning"
	Message string
}

// Validate rechecks the §8 universal properties against the given
// entries and domain inputs. Property 6 (the per-slot activity count)
// has no check.
func Validate(cd *domain.CampData, entries []extractor.Entry) []Violation {
	var v []Violation
	v = append(v, checkStaffNonOverlap(entries)...)
	v = append(v, checkLocationNonOverlap(entries)...)
	v = append(v, checkActivityExclusivity(entries)...)
	v = append(v, checkStaffingBounds(cd, entries)...)
	v = append(v, checkLeadRequirement(cd, entries)...)
	v = append(v, checkOffSlotsRespected(cd, entries)...)
	v = append(v, checkWaterfrontCoverage(cd, entries)...)
	v = append(v, checkDrivingRange(cd, entries)...)
	v = append(v, checkGolfTennisFrequency(cd, entries)...)
	v = append(v, checkInspectionCover(entries)...)
	v = append(v, checkTripsRespected(cd, entries)...)
	v = append(v, checkNoIntraDayRepeat(cd, entries)...)
	return v
}

// checkStaffNonOverlap: property 1 — a staff member appears in at most
// one entry per slot, including inspection.
func checkStaffNonOverlap(entries []extractor.Entry) []Violation {
	type staffSlot struct {
		name string
		slot domain.TimeSlot
	}
	counts := map[staffSlot]int{}
	for _, e := range entries {
		for _, name := range e.Staff {
			counts[staffSlot{name, e.Slot}]++
		}
	}

	var violations []Violation
	for ss, n := range counts {
		if n > 1 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s appears in %d entries at %s (max 1)", ss.name, n, ss.slot),
			})
		}
	}
	return sortedByMessage(violations)
}

// checkLocationNonOverlap: property 2 — a location hosts at most one
// entry per slot. Trips and inspection use the "NA" sentinel and are
// exempt by construction.
func checkLocationNonOverlap(entries []extractor.Entry) []Violation {
	type locSlot struct {
		location string
		slot     domain.TimeSlot
	}
	counts := map[locSlot]int{}
	for _, e := range entries {
		if e.Location == domain.LocationNone {
			continue
		}
		counts[locSlot{e.Location, e.Slot}]++
	}

	var violations []Violation
	for ls, n := range counts {
		if n > 1 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("location %s hosts %d entries at %s (max 1)", ls.location, n, ls.slot),
			})
		}
	}
	return sortedByMessage(violations)
}

// checkActivityExclusivity: property 3 — an activity runs for at most
// one group per slot.
func checkActivityExclusivity(entries []extractor.Entry) []Violation {
	type actSlot struct {
		activity string
		slot     domain.TimeSlot
	}
	groupsByActSlot := map[actSlot]map[string]bool{}
	for _, e := range entries {
		if e.Group == domain.LocationNone {
			continue // trips/inspection aren't group-indexed activities.
		}
		key := actSlot{e.Activity, e.Slot}
		if groupsByActSlot[key] == nil {
			groupsByActSlot[key] = map[string]bool{}
		}
		groupsByActSlot[key][e.Group] = true
	}

	var violations []Violation
	for as, groups := range groupsByActSlot {
		if len(groups) > 1 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("activity %s runs for %d groups at %s (max 1)", as.activity, len(groups), as.slot),
			})
		}
	}
	return sortedByMessage(violations)
}

// checkStaffingBounds: property 4 — every entry's staff count is within
// [minStaff, maxStaff] for its activity (inspection and trip entries,
// whose names are not in the activity catalog, are skipped).
func checkStaffingBounds(cd *domain.CampData, entries []extractor.Entry) []Violation {
	var violations []Violation
	for _, e := range entries {
		a, ok := cd.ActivityByName(e.Activity)
		if !ok {
			continue
		}
		n := len(e.Staff)
		if n < a.MinStaff || n > a.MaxStaff {
			violations = append(violations, Violation{
				Type: "error",
				Message: fmt.Sprintf("%s at %s group %s has %d staff (want %d..%d)",
					e.Activity, e.Slot, e.Group, n, a.MinStaff, a.MaxStaff),
			})
		}
	}
	return sortedByMessage(violations)
}

// checkLeadRequirement: property 5 — every entry has at least one staff
// member qualified to lead its activity.
func checkLeadRequirement(cd *domain.CampData, entries []extractor.Entry) []Violation {
	var violations []Violation
	for _, e := range entries {
		a, ok := cd.ActivityByName(e.Activity)
		if !ok {
			continue
		}
		hasLead := false
		for _, name := range e.Staff {
			if staffCanLead(cd, name, a.ID) {
				hasLead = true
				break
			}
		}
		if !hasLead {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s at %s group %s has no qualified lead", e.Activity, e.Slot, e.Group),
			})
		}
	}
	return sortedByMessage(violations)
}

func staffCanLead(cd *domain.CampData, staffName string, activityID int) bool {
	for _, s := range cd.Staff {
		if s.Name == staffName {
			return cd.Leads[s.ID][activityID]
		}
	}
	return false
}

// checkOffSlotsRespected: property 7 — no staff member appears in any
// entry during their own off-slots.
func checkOffSlotsRespected(cd *domain.CampData, entries []extractor.Entry) []Violation {
	idByName := map[string]int{}
	for _, s := range cd.Staff {
		idByName[s.Name] = s.ID
	}

	var violations []Violation
	for _, e := range entries {
		for _, name := range e.Staff {
			id, ok := idByName[name]
			if !ok {
				continue
			}
			if cd.IsOff(id, e.Slot) {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%s assigned to %s at %s despite an off-slot", name, e.Activity, e.Slot),
				})
			}
		}
	}
	return sortedByMessage(violations)
}

// checkWaterfrontCoverage: property 8 — every waterfront-pattern slot
// comprises exactly waterfront + waterskiing for that group.
func checkWaterfrontCoverage(cd *domain.CampData, entries []extractor.Entry) []Violation {
	byGroupSlot := map[string]map[domain.TimeSlot]map[string]bool{}
	for _, e := range entries {
		if e.Group == domain.LocationNone {
			continue
		}
		if byGroupSlot[e.Group] == nil {
			byGroupSlot[e.Group] = map[domain.TimeSlot]map[string]bool{}
		}
		if byGroupSlot[e.Group][e.Slot] == nil {
			byGroupSlot[e.Group][e.Slot] = map[string]bool{}
		}
		byGroupSlot[e.Group][e.Slot][e.Activity] = true
	}

	var violations []Violation
	for _, g := range cd.Groups {
		label := domain.GroupLabel(g.ID)
		for _, k := range cd.WaterfrontPattern[g.ID] {
			acts := byGroupSlot[label][k]
			wantWF := acts[domain.ActivityWaterfront]
			wantWS := acts[domain.ActivityWaterskiing]
			if !wantWF || !wantWS || len(acts) != 2 {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("group %s at %s (waterfront pattern) has activities %v, want exactly waterfront+waterskiing", label, k, setKeys(acts)),
				})
			}
		}
	}
	return sortedByMessage(violations)
}

func setKeys(m map[string]bool) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// checkDrivingRange: property 9 — exactly one allowed day per group has
// driving-range entries, covering periods 1 and 2 with an identical,
// non-empty staff set, and nowhere else.
func checkDrivingRange(cd *domain.CampData, entries []extractor.Entry) []Violation {
	type dayEntry struct {
		period int
		staff  []string
	}
	byGroupDay := map[string]map[domain.Day][]dayEntry{}
	for _, e := range entries {
		if e.Activity != domain.ActivityDrivingRange || e.Group == domain.LocationNone {
			continue
		}
		if byGroupDay[e.Group] == nil {
			byGroupDay[e.Group] = map[domain.Day][]dayEntry{}
		}
		byGroupDay[e.Group][e.Slot.Day] = append(byGroupDay[e.Group][e.Slot.Day], dayEntry{period: e.Slot.Period, staff: e.Staff})
	}

	var violations []Violation
	for _, g := range cd.Groups {
		label := domain.GroupLabel(g.ID)
		days := byGroupDay[label]
		if len(days) != 1 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("group %s has driving range on %d days (want exactly 1)", label, len(days)),
			})
			continue
		}
		for _, dayEntries := range days {
			if len(dayEntries) != 2 {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("group %s driving range day has %d period entries (want 2)", label, len(dayEntries)),
				})
				continue
			}
			a, b := dayEntries[0], dayEntries[1]
			if len(a.staff) == 0 || !sameStaffSet(a.staff, b.staff) {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("group %s driving range periods have mismatched or empty staff sets", label),
				})
			}
		}
	}
	return sortedByMessage(violations)
}

func sameStaffSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// checkGolfTennisFrequency: property 10 — golf+tennis slots occur at
// least twice weekly and at most once daily, per group. A slot counts as
// golf+tennis when both activities appear there for that group and no
// other activity does.
func checkGolfTennisFrequency(cd *domain.CampData, entries []extractor.Entry) []Violation {
	byGroupSlot := map[string]map[domain.TimeSlot]map[string]bool{}
	for _, e := range entries {
		if e.Group == domain.LocationNone {
			continue
		}
		if byGroupSlot[e.Group] == nil {
			byGroupSlot[e.Group] = map[domain.TimeSlot]map[string]bool{}
		}
		if byGroupSlot[e.Group][e.Slot] == nil {
			byGroupSlot[e.Group][e.Slot] = map[string]bool{}
		}
		byGroupSlot[e.Group][e.Slot][e.Activity] = true
	}

	var violations []Violation
	for _, g := range cd.Groups {
		label := domain.GroupLabel(g.ID)
		weekly := 0
		perDay := map[domain.Day]int{}
		for _, k := range domain.AllTimeSlots() {
			acts := byGroupSlot[label][k]
			if len(acts) == 2 && acts[domain.ActivityGolf] && acts[domain.ActivityTennis] {
				weekly++
				perDay[k.Day]++
			}
		}
		if weekly < 2 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("group %s has %d golf+tennis slots this week (want >= 2)", label, weekly),
			})
		}
		for d, n := range perDay {
			if n > 1 {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("group %s has %d golf+tennis slots on %s (want <= 1)", label, n, d),
				})
			}
		}
	}
	return sortedByMessage(violations)
}

// checkInspectionCover: property 11 — exactly one inspection entry per
// weekday.
func checkInspectionCover(entries []extractor.Entry) []Violation {
	counts := map[domain.Day]int{}
	for _, e := range entries {
		if e.Activity == domain.ActivityInspection {
			counts[e.Slot.Day]++
		}
	}

	var violations []Violation
	for _, d := range domain.Weekdays {
		if counts[d] != 1 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s has %d inspection entries (want exactly 1)", d, counts[d]),
			})
		}
	}
	return sortedByMessage(violations)
}

// checkTripsRespected: property 12 — every pre-committed trip has a
// matching entry. That the staff member has no other entry at the same
// slot is not checked here; checkStaffNonOverlap reports it.
func checkTripsRespected(cd *domain.CampData, entries []extractor.Entry) []Violation {
	tripEntryHasStaff := map[string]map[domain.TimeSlot]map[string]bool{}
	for _, e := range entries {
		if e.Group != domain.LocationNone || e.Activity == domain.ActivityInspection {
			continue
		}
		if tripEntryHasStaff[e.Activity] == nil {
			tripEntryHasStaff[e.Activity] = map[domain.TimeSlot]map[string]bool{}
		}
		if tripEntryHasStaff[e.Activity][e.Slot] == nil {
			tripEntryHasStaff[e.Activity][e.Slot] = map[string]bool{}
		}
		for _, name := range e.Staff {
			tripEntryHasStaff[e.Activity][e.Slot][name] = true
		}
	}

	var violations []Violation
	for _, s := range cd.Staff {
		for _, trip := range cd.Trips[s.ID] {
			if !tripEntryHasStaff[trip.Name][trip.Slot][s.Name] {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%s has no %s trip entry at %s", s.Name, trip.Name, trip.Slot),
				})
			}
		}
	}
	return sortedByMessage(violations)
}

// checkNoIntraDayRepeat: property 13 — no duration-1 activity repeats
// within one day for any group.
func checkNoIntraDayRepeat(cd *domain.CampData, entries []extractor.Entry) []Violation {
	type groupActDay struct {
		group    string
		activity string
		day      domain.Day
	}
	counts := map[groupActDay]int{}
	duration1 := map[string]bool{}
	for _, a := range cd.Activities {
		if a.Duration == 1 {
			duration1[a.Name] = true
		}
	}

	for _, e := range entries {
		if e.Group == domain.LocationNone || !duration1[e.Activity] {
			continue
		}
		counts[groupActDay{e.Group, e.Activity, e.Slot.Day}]++
	}

	var violations []Violation
	for k, n := range counts {
		if n > 1 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("group %s repeats %s %d times on %s (max 1)", k.group, k.activity, n, k.day),
			})
		}
	}
	return sortedByMessage(violations)
}

func sortedByMessage(violations []Violation) []Violation {
	sort.Slice(violations, func(i, j int) bool { return violations[i].Message < violations[j].Message })
	return violations
}
