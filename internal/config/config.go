// Package config loads the YAML tabular input spec §6 describes (staff,
// activities, locations, valid-location pairs, groups, leads/assists,
// off-days, trips, the waterfront pattern, and the solver's tunables)
// and converts it into an immutable domain.CampData, performing every
// date-to-weekday and off-day/trip expansion before the model ever sees
// a raw date.
package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/campsched/campsched/internal/camperrors"
	"github.com/campsched/campsched/internal/domain"
)

// Date wraps time.Time for YAML parsing of "MM/DD/YYYY" tabular dates.
type Date struct {
	Time time.Time
}

const dateLayout = "01/02/2006"

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(dateLayout, value.Value)
	if err != nil {
		return camperrors.NewInputInvalid("date", "invalid date %q (want MM/DD/YYYY): %v", value.Value, err)
	}
	d.Time = t
	return nil
}

type staffRow struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type activityRow struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Duration int    `yaml:"duration"`
	MinStaff int    `yaml:"min_staff"`
	MaxStaff int    `yaml:"max_staff"`
}

type locationRow struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type locOptionRow struct {
	ActivityID int `yaml:"activity_id"`
	LocationID int `yaml:"location_id"`
}

type groupRow struct {
	ID int `yaml:"id"`
}

type qualificationRow struct {
	StaffID    int `yaml:"staff_id"`
	ActivityID int `yaml:"activity_id"`
}

type offDayRow struct {
	StaffID int  `yaml:"staff_id"`
	Date    Date `yaml:"date"`
}

type tripRow struct {
	TripName    string `yaml:"trip_name"`
	StaffID     int    `yaml:"staff_id"`
	Date        Date   `yaml:"date"`
	StartPeriod int    `yaml:"start_period"`
	EndPeriod   int    `yaml:"end_period"`
}

type waterfrontRow struct {
	GroupID int      `yaml:"group_id"`
	Slots   []string `yaml:"slots"`
}

type weightsRow struct {
	StaffRepetition *float64 `yaml:"staff_repetition"`
	GroupCategory   *float64 `yaml:"group_category"`
	GroupWeekly     *float64 `yaml:"group_weekly"`
	StaffUnbalance  *float64 `yaml:"staff_unbalance"`
}

type solverRow struct {
	TimeLimitSeconds int `yaml:"time_limit_seconds"`
}

// rawConfig is the literal YAML shape; it is never exposed outside this
// package. Callers get the resolved domain.CampData instead.
type rawConfig struct {
	Staff             []staffRow         `yaml:"staff"`
	Activities        []activityRow      `yaml:"activities"`
	Locations         []locationRow      `yaml:"locations"`
	LocationOptions   []locOptionRow     `yaml:"location_options"`
	Groups            []groupRow         `yaml:"groups"`
	Leads             []qualificationRow `yaml:"leads"`
	Assists           []qualificationRow `yaml:"assists"`
	OffDays           []offDayRow        `yaml:"off_days"`
	Trips             []tripRow          `yaml:"trips"`
	WaterfrontPattern []waterfrontRow    `yaml:"waterfront_pattern"`
	Weights           weightsRow         `yaml:"weights"`
	Solver            solverRow          `yaml:"solver"`
}

const defaultTimeLimitSeconds = 60

// LoadFromFile reads and parses a YAML config file into a CampData.
func LoadFromFile(path string) (*domain.CampData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses YAML bytes into a CampData, expanding dates and
// validating every required field. Returns an error that errors.As matches
// to *camperrors.InputInvalidError on any structural problem or
// unparseable date; a YAML syntax error is returned as a plain parse error.
func LoadFromBytes(data []byte) (*domain.CampData, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return build(&raw)
}

func build(raw *rawConfig) (*domain.CampData, error) {
	cd := &domain.CampData{
		ValidLocations:    map[int]map[int]bool{},
		Leads:             map[int]map[int]bool{},
		Assists:           map[int]map[int]bool{},
		OffSlots:          map[int]map[domain.TimeSlot]bool{},
		Trips:             map[int][]domain.Trip{},
		WaterfrontPattern: map[int][]domain.TimeSlot{},
		Weights:           domain.DefaultWeights,
	}

	if len(raw.Staff) == 0 {
		return nil, camperrors.NewInputInvalid("staff", "at least one staff member is required")
	}
	staffIDs := map[int]bool{}
	for _, s := range raw.Staff {
		if s.Name == "" {
			return nil, camperrors.NewInputInvalid("staff", "staff id %d has no name", s.ID)
		}
		if staffIDs[s.ID] {
			return nil, camperrors.NewInputInvalid("staff", "duplicate staff id %d", s.ID)
		}
		staffIDs[s.ID] = true
		cd.Staff = append(cd.Staff, domain.Staff{ID: s.ID, Name: s.Name})
	}

	if len(raw.Activities) == 0 {
		return nil, camperrors.NewInputInvalid("activities", "at least one activity is required")
	}
	activityIDs := map[int]bool{}
	for _, a := range raw.Activities {
		if a.Duration != 1 && a.Duration != 2 {
			return nil, camperrors.NewInputInvalid("activities", "activity %q has duration %d, want 1 or 2", a.Name, a.Duration)
		}
		if a.MinStaff < 1 {
			return nil, camperrors.NewInputInvalid("activities", "activity %q has min_staff %d, want >= 1", a.Name, a.MinStaff)
		}
		if a.MaxStaff < a.MinStaff {
			return nil, camperrors.NewInputInvalid("activities", "activity %q has max_staff %d < min_staff %d", a.Name, a.MaxStaff, a.MinStaff)
		}
		if a.Name != domain.ActivityDrivingRange && a.Duration == 2 {
			return nil, camperrors.NewInputInvalid("activities", "only %q may have duration 2, got %q", domain.ActivityDrivingRange, a.Name)
		}
		activityIDs[a.ID] = true
		cd.Activities = append(cd.Activities, domain.Activity{
			ID: a.ID, Name: a.Name, Category: a.Category,
			Duration: a.Duration, MinStaff: a.MinStaff, MaxStaff: a.MaxStaff,
		})
	}

	if len(raw.Locations) == 0 {
		return nil, camperrors.NewInputInvalid("locations", "at least one location is required")
	}
	locationIDs := map[int]bool{}
	for _, l := range raw.Locations {
		locationIDs[l.ID] = true
		cd.Locations = append(cd.Locations, domain.Location{ID: l.ID, Name: l.Name})
	}

	for _, lo := range raw.LocationOptions {
		if !activityIDs[lo.ActivityID] {
			return nil, camperrors.NewInputInvalid("location_options", "unknown activity id %d", lo.ActivityID)
		}
		if !locationIDs[lo.LocationID] {
			return nil, camperrors.NewInputInvalid("location_options", "unknown location id %d", lo.LocationID)
		}
		if cd.ValidLocations[lo.ActivityID] == nil {
			cd.ValidLocations[lo.ActivityID] = map[int]bool{}
		}
		cd.ValidLocations[lo.ActivityID][lo.LocationID] = true
	}
	for aid := range activityIDs {
		if len(cd.ValidLocations[aid]) == 0 {
			return nil, camperrors.NewInputInvalid("location_options", "activity id %d has no valid locations", aid)
		}
	}

	if len(raw.Groups) == 0 {
		return nil, camperrors.NewInputInvalid("groups", "at least one group is required")
	}
	groupIDs := map[int]bool{}
	for _, g := range raw.Groups {
		groupIDs[g.ID] = true
		cd.Groups = append(cd.Groups, domain.Group{ID: g.ID})
	}

	for _, q := range raw.Leads {
		if err := checkStaffActivity(staffIDs, activityIDs, q.StaffID, q.ActivityID, "leads"); err != nil {
			return nil, err
		}
		addQual(cd.Leads, q.StaffID, q.ActivityID)
	}
	for _, q := range raw.Assists {
		if err := checkStaffActivity(staffIDs, activityIDs, q.StaffID, q.ActivityID, "assists"); err != nil {
			return nil, err
		}
		addQual(cd.Assists, q.StaffID, q.ActivityID)
	}

	for _, o := range raw.OffDays {
		if !staffIDs[o.StaffID] {
			return nil, camperrors.NewInputInvalid("off_days", "unknown staff id %d", o.StaffID)
		}
		day, ok := weekdayOf(o.Date.Time)
		if !ok {
			continue // Sundays are discarded
		}
		if cd.OffSlots[o.StaffID] == nil {
			cd.OffSlots[o.StaffID] = map[domain.TimeSlot]bool{}
		}
		for p := 1; p <= 3; p++ {
			cd.OffSlots[o.StaffID][domain.TimeSlot{Day: day, Period: p}] = true
		}
	}

	for _, t := range raw.Trips {
		if !staffIDs[t.StaffID] {
			return nil, camperrors.NewInputInvalid("trips", "unknown staff id %d", t.StaffID)
		}
		if t.StartPeriod < 1 || t.EndPeriod > 3 || t.StartPeriod > t.EndPeriod {
			return nil, camperrors.NewInputInvalid("trips", "trip %q has invalid period range %d..%d", t.TripName, t.StartPeriod, t.EndPeriod)
		}
		day, ok := weekdayOf(t.Date.Time)
		if !ok {
			continue // Sundays are discarded
		}
		for p := t.StartPeriod; p <= t.EndPeriod; p++ {
			cd.Trips[t.StaffID] = append(cd.Trips[t.StaffID], domain.Trip{
				StaffID: t.StaffID,
				Slot:    domain.TimeSlot{Day: day, Period: p},
				Name:    t.TripName,
			})
		}
	}
	for staffID := range cd.Trips {
		sort.Slice(cd.Trips[staffID], func(i, j int) bool {
			return cd.Trips[staffID][i].Slot.Less(cd.Trips[staffID][j].Slot)
		})
	}

	for _, w := range raw.WaterfrontPattern {
		if !groupIDs[w.GroupID] {
			return nil, camperrors.NewInputInvalid("waterfront_pattern", "unknown group id %d", w.GroupID)
		}
		slots := make([]domain.TimeSlot, 0, len(w.Slots))
		for _, s := range w.Slots {
			slot, err := parseSlot(s)
			if err != nil {
				return nil, camperrors.NewInputInvalid("waterfront_pattern", "group %d: %v", w.GroupID, err)
			}
			slots = append(slots, slot)
		}
		cd.WaterfrontPattern[w.GroupID] = slots
	}
	for gid := range groupIDs {
		if len(cd.WaterfrontPattern[gid]) == 0 {
			return nil, camperrors.NewInputInvalid("waterfront_pattern", "group %d has no waterfront pattern", gid)
		}
	}

	wf, ok := cd.ActivityByName(domain.ActivityWaterfront)
	if !ok {
		return nil, camperrors.NewInputInvalid("activities", "catalog is missing the well-known %q activity", domain.ActivityWaterfront)
	}
	ws, ok := cd.ActivityByName(domain.ActivityWaterskiing)
	if !ok {
		return nil, camperrors.NewInputInvalid("activities", "catalog is missing the well-known %q activity", domain.ActivityWaterskiing)
	}
	if err := checkWaterfrontLocationCapacity(cd, wf.ID, domain.ActivityWaterfront); err != nil {
		return nil, err
	}
	if err := checkWaterfrontLocationCapacity(cd, ws.ID, domain.ActivityWaterskiing); err != nil {
		return nil, err
	}

	applyWeights(&cd.Weights, raw.Weights)
	cd.SolverTimeLimitSeconds = raw.Solver.TimeLimitSeconds
	if cd.SolverTimeLimitSeconds <= 0 {
		cd.SolverTimeLimitSeconds = defaultTimeLimitSeconds
	}

	sort.Slice(cd.Staff, func(i, j int) bool { return cd.Staff[i].ID < cd.Staff[j].ID })
	sort.Slice(cd.Activities, func(i, j int) bool { return cd.Activities[i].ID < cd.Activities[j].ID })
	sort.Slice(cd.Locations, func(i, j int) bool { return cd.Locations[i].ID < cd.Locations[j].ID })
	sort.Slice(cd.Groups, func(i, j int) bool { return cd.Groups[i].ID < cd.Groups[j].ID })

	return cd, nil
}

// checkWaterfrontLocationCapacity catches a config that cannot possibly be
// scheduled for a given activity, structurally: ValidLocations has no
// per-group dimension, so every group sharing that activity at a given
// slot draws from the same pool of location ids. If more groups' patterns
// ever overlap on one slot than there are valid locations, C3 (location
// non-overlap) and C4 (valid-location linkage) cannot both hold once C11
// forces every one of those groups' C[activity,k,g] to 1 — the solve
// would fail as ModelInfeasible instead of being caught here at load time.
func checkWaterfrontLocationCapacity(cd *domain.CampData, activityID int, activityName string) error {
	locCount := len(cd.ValidLocations[activityID])
	concurrent := map[domain.TimeSlot]int{}
	for _, slots := range cd.WaterfrontPattern {
		for _, k := range slots {
			concurrent[k]++
		}
	}
	for k, n := range concurrent {
		if n > locCount {
			return camperrors.NewInputInvalid("waterfront_pattern",
				"%d groups share slot %s but only %d location(s) are valid for %q", n, k, locCount, activityName)
		}
	}
	return nil
}

func checkStaffActivity(staffIDs, activityIDs map[int]bool, staffID, activityID int, field string) error {
	if !staffIDs[staffID] {
		return camperrors.NewInputInvalid(field, "unknown staff id %d", staffID)
	}
	if !activityIDs[activityID] {
		return camperrors.NewInputInvalid(field, "unknown activity id %d", activityID)
	}
	return nil
}

func addQual(m map[int]map[int]bool, staffID, activityID int) {
	if m[staffID] == nil {
		m[staffID] = map[int]bool{}
	}
	m[staffID][activityID] = true
}

func applyWeights(w *domain.ObjectiveWeights, raw weightsRow) {
	if raw.StaffRepetition != nil {
		w.StaffRepetition = *raw.StaffRepetition
	}
	if raw.GroupCategory != nil {
		w.GroupCategory = *raw.GroupCategory
	}
	if raw.GroupWeekly != nil {
		w.GroupWeekly = *raw.GroupWeekly
	}
	if raw.StaffUnbalance != nil {
		w.StaffUnbalance = *raw.StaffUnbalance
	}
}

// weekdayOf maps a calendar date to its camp Day, discarding Sundays.
func weekdayOf(t time.Time) (domain.Day, bool) {
	return domain.ParseDay(t.Weekday().String())
}

// parseSlot parses "Weekday/Period" (e.g. "Tuesday/3") into a TimeSlot.
func parseSlot(s string) (domain.TimeSlot, error) {
	i := -1
	for idx, c := range s {
		if c == '/' {
			i = idx
			break
		}
	}
	if i < 0 {
		return domain.TimeSlot{}, fmt.Errorf("slot %q must be formatted Weekday/Period", s)
	}
	dayName, periodStr := s[:i], s[i+1:]
	day, ok := domain.ParseDay(dayName)
	if !ok {
		return domain.TimeSlot{}, fmt.Errorf("slot %q has an unrecognized weekday", s)
	}
	var period int
	if _, err := fmt.Sscanf(periodStr, "%d", &period); err != nil || period < 1 || period > 3 {
		return domain.TimeSlot{}, fmt.Errorf("slot %q has an invalid period", s)
	}
	return domain.TimeSlot{Day: day, Period: period}, nil
}
