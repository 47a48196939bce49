// Package extractor walks a solved CP-SAT response back through
// internal/model's variable tables and emits the canonical schedule
// entries of spec.md §4.5. It never runs on anything but an
// Optimal/Feasible solver.Result.
package extractor

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/campsched/campsched/internal/domain"
	"github.com/campsched/campsched/internal/model"
)

// Entry is one row of the emitted schedule: an activity instance with
// its assigned staff, location, slot and group.
type Entry struct {
	Activity string
	Staff    []string
	Location string
	Slot     domain.TimeSlot
	Group    string // numeric group id as a string, or "NA" for trips/inspection.
}

// Extract walks every variable table and returns entries ordered by
// (time_slot, group, activity, staff_name), as spec.md §4.5 requires for
// test stability.
func Extract(v *model.Variables, cd *domain.CampData, response *cmpb.CpSolverResponse) []Entry {
	var entries []Entry
	entries = append(entries, extractRegularActivities(v, cd, response)...)
	entries = append(entries, extractDrivingRange(v, cd, response)...)
	entries = append(entries, extractInspection(v, cd, response)...)
	entries = append(entries, extractTrips(v, cd, response)...)

	sort.Slice(entries, func(i, j int) bool { return entryLess(entries[i], entries[j]) })
	return entries
}

func entryLess(a, b Entry) bool {
	if a.Slot != b.Slot {
		return a.Slot.Less(b.Slot)
	}
	if a.Group != b.Group {
		return a.Group < b.Group
	}
	if a.Activity != b.Activity {
		return a.Activity < b.Activity
	}
	return firstStaffName(a) < firstStaffName(b)
}

func firstStaffName(e Entry) string {
	if len(e.Staff) == 0 {
		return ""
	}
	return e.Staff[0]
}

func boolOf(response *cmpb.CpSolverResponse, v cpmodel.BoolVar) bool {
	return cpmodel.SolutionBooleanValue(response, v)
}

// extractRegularActivities emits one entry per (g,a,k) with at least one
// X=1, excluding driving range (handled separately because it spans two
// periods per instance).
func extractRegularActivities(v *model.Variables, cd *domain.CampData, response *cmpb.CpSolverResponse) []Entry {
	var entries []Entry
	for _, a := range cd.Activities {
		if a.Name == domain.ActivityDrivingRange {
			continue
		}
		for _, k := range domain.AllTimeSlots() {
			for _, g := range cd.Groups {
				key := model.AKGKey{ActivityID: a.ID, Slot: k, GroupID: g.ID}
				c, ok := v.C[key]
				if !ok || !boolOf(response, c) {
					continue
				}

				var staff []string
				for _, s := range cd.Staff {
					if x, ok := v.X[model.XKey{StaffID: s.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID}]; ok && boolOf(response, x) {
						staff = append(staff, s.Name)
					}
				}
				sort.Strings(staff)

				location := ""
				for _, l := range cd.Locations {
					if y, ok := v.Y[model.YKey{LocationID: l.ID, ActivityID: a.ID, Slot: k, GroupID: g.ID}]; ok && boolOf(response, y) {
						location = l.Name
						break
					}
				}

				entries = append(entries, Entry{
					Activity: a.Name,
					Staff:    staff,
					Location: location,
					Slot:     k,
					Group:    groupLabel(g.ID),
				})
			}
		}
	}
	return entries
}

// extractDrivingRange emits one entry per period (1 and 2) for every
// (g,d) with DRD=1, carrying the DRS staff set and the fixed "driving
// range" location label per spec.md §9's decision note.
func extractDrivingRange(v *model.Variables, cd *domain.CampData, response *cmpb.CpSolverResponse) []Entry {
	dr, ok := cd.ActivityByName(domain.ActivityDrivingRange)
	if !ok {
		return nil
	}

	var entries []Entry
	for _, g := range cd.Groups {
		for _, d := range domain.AllowedDRDays {
			drd, ok := v.DRD[model.GDayKey{GroupID: g.ID, Day: d}]
			if !ok || !boolOf(response, drd) {
				continue
			}

			var staff []string
			for _, s := range cd.Staff {
				if drs, ok := v.DRS[model.GDaySKey{GroupID: g.ID, Day: d, StaffID: s.ID}]; ok && boolOf(response, drs) {
					staff = append(staff, s.Name)
				}
			}
			sort.Strings(staff)

			for _, p := range [2]int{1, 2} {
				entries = append(entries, Entry{
					Activity: dr.Name,
					Staff:    staff,
					Location: domain.ActivityDrivingRange,
					Slot:     domain.TimeSlot{Day: d, Period: p},
					Group:    groupLabel(g.ID),
				})
			}
		}
	}
	return entries
}

// extractInspection emits one entry per (d,1) slot with I[s,k]=1.
func extractInspection(v *model.Variables, cd *domain.CampData, response *cmpb.CpSolverResponse) []Entry {
	var entries []Entry
	for _, k := range domain.InspectionSlots() {
		for _, s := range cd.Staff {
			i, ok := v.I[model.SKKey{StaffID: s.ID, Slot: k}]
			if !ok || !boolOf(response, i) {
				continue
			}
			entries = append(entries, Entry{
				Activity: domain.ActivityInspection,
				Staff:    []string{s.Name},
				Location: domain.LocationNone,
				Slot:     k,
				Group:    domain.LocationNone,
			})
		}
	}
	return entries
}

// extractTrips emits one aggregated entry per (name,k) with all staff
// whose TRP is set.
func extractTrips(v *model.Variables, cd *domain.CampData, response *cmpb.CpSolverResponse) []Entry {
	type tripCell struct {
		Slot domain.TimeSlot
		Name string
	}
	staffByTrip := map[tripCell][]string{}
	var cells []tripCell

	for _, s := range cd.Staff {
		for key, trp := range v.TRP {
			if key.StaffID != s.ID || !boolOf(response, trp) {
				continue
			}
			cell := tripCell{Slot: key.Slot, Name: key.Name}
			if _, seen := staffByTrip[cell]; !seen {
				cells = append(cells, cell)
			}
			staffByTrip[cell] = append(staffByTrip[cell], s.Name)
		}
	}

	var entries []Entry
	for _, cell := range cells {
		staff := append([]string(nil), staffByTrip[cell]...)
		sort.Strings(staff)
		entries = append(entries, Entry{
			Activity: cell.Name,
			Staff:    staff,
			Location: domain.LocationNone,
			Slot:     cell.Slot,
			Group:    domain.LocationNone,
		})
	}
	return entries
}

func groupLabel(groupID int) string {
	return domain.GroupLabel(groupID)
}
