// Package excel renders a solved camp schedule into the three report
// shapes a camp director asks for: a per-group weekly grid, a per-staff
// weekly grid, and an unassigned-staff grid.
package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/campsched/campsched/internal/domain"
	"github.com/campsched/campsched/internal/extractor"
)

// Generate builds a workbook with one sheet per report shape: "Groups",
// "Staff", and "Unassigned".
func Generate(cd *domain.CampData, entries []extractor.Entry) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeGroupSheet(f, cd, entries); err != nil {
		return nil, fmt.Errorf("writing group sheet: %w", err)
	}
	if err := writeStaffSheet(f, cd, entries); err != nil {
		return nil, fmt.Errorf("writing staff sheet: %w", err)
	}
	if err := writeUnassignedSheet(f, cd, entries); err != nil {
		return nil, fmt.Errorf("writing unassigned sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

var headerStyle = &excelize.Style{
	Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
	Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
	Alignment: &excelize.Alignment{Horizontal: "center"},
}

func applyHeaderStyle(f *excelize.File, sheet string, cols int) {
	style, _ := f.NewStyle(headerStyle)
	if style == 0 {
		return
	}
	for i := 1; i <= cols; i++ {
		f.SetCellStyle(sheet, cellRef(i, 1), cellRef(i, 1), style)
	}
}

// writeGroupSheet builds one "Groups" sheet: rows are time slots, with one
// column per group holding the cell content for that (slot, group).
// Entries with group "NA" (inspection, trips) are not shown.
func writeGroupSheet(f *excelize.File, cd *domain.CampData, entries []extractor.Entry) error {
	sheet := "Groups"
	f.NewSheet(sheet)

	byGroup := map[string][]extractor.Entry{}
	for _, e := range entries {
		byGroup[e.Group] = append(byGroup[e.Group], e)
	}

	groupIDs := make([]string, 0, len(cd.Groups))
	for _, g := range cd.Groups {
		groupIDs = append(groupIDs, domain.GroupLabel(g.ID))
	}
	sort.Strings(groupIDs)

	headers := append([]string{"Day", "Period"}, groupIDs...)
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	applyHeaderStyle(f, sheet, len(headers))

	row := 2
	for _, k := range domain.AllTimeSlots() {
		f.SetCellValue(sheet, cellRef(1, row), k.Day.String())
		f.SetCellValue(sheet, cellRef(2, row), k.Period)
		for i, gid := range groupIDs {
			cell := cellContent(entriesAt(byGroup[gid], k))
			f.SetCellValue(sheet, cellRef(i+3, row), cell)
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 8)
	for i := range groupIDs {
		col := colLetter(i + 3)
		f.SetColWidth(sheet, col, col, 26)
	}
	return nil
}

// writeStaffSheet builds one "Staff" grid: rows are time slots, one
// column per staff showing their activity (or blank if unassigned).
func writeStaffSheet(f *excelize.File, cd *domain.CampData, entries []extractor.Entry) error {
	sheet := "Staff"
	f.NewSheet(sheet)

	byStaffBySlot := map[string]map[domain.TimeSlot]string{}
	for _, s := range cd.Staff {
		byStaffBySlot[s.Name] = map[domain.TimeSlot]string{}
	}
	for _, e := range entries {
		for _, name := range e.Staff {
			if byStaffBySlot[name] == nil {
				byStaffBySlot[name] = map[domain.TimeSlot]string{}
			}
			byStaffBySlot[name][e.Slot] = e.Activity
		}
	}

	names := make([]string, 0, len(cd.Staff))
	for _, s := range cd.Staff {
		names = append(names, s.Name)
	}
	sort.Strings(names)

	headers := append([]string{"Day", "Period"}, names...)
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	applyHeaderStyle(f, sheet, len(headers))

	row := 2
	for _, k := range domain.AllTimeSlots() {
		f.SetCellValue(sheet, cellRef(1, row), k.Day.String())
		f.SetCellValue(sheet, cellRef(2, row), k.Period)
		for i, name := range names {
			activity := byStaffBySlot[name][k]
			f.SetCellValue(sheet, cellRef(i+3, row), activity)
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 8)
	for i := range names {
		col := colLetter(i + 3)
		f.SetColWidth(sheet, col, col, 22)
	}
	return nil
}

// writeUnassignedSheet lists, for each staff member, the slots in which
// they hold no entry at all; their off-slots and trip slots are skipped.
func writeUnassignedSheet(f *excelize.File, cd *domain.CampData, entries []extractor.Entry) error {
	sheet := "Unassigned"
	f.NewSheet(sheet)

	assignedAt := map[int]map[domain.TimeSlot]bool{}
	staffByName := map[string]int{}
	for _, s := range cd.Staff {
		assignedAt[s.ID] = map[domain.TimeSlot]bool{}
		staffByName[s.Name] = s.ID
	}
	for _, e := range entries {
		for _, name := range e.Staff {
			if id, ok := staffByName[name]; ok {
				assignedAt[id][e.Slot] = true
			}
		}
	}

	headers := []string{"Staff", "Day", "Period"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	applyHeaderStyle(f, sheet, len(headers))

	row := 2
	for _, s := range cd.Staff {
		for _, k := range domain.AllTimeSlots() {
			if cd.IsOff(s.ID, k) {
				continue
			}
			if _, onTrip := cd.TripAt(s.ID, k); onTrip {
				continue
			}
			if assignedAt[s.ID][k] {
				continue
			}
			f.SetCellValue(sheet, cellRef(1, row), s.Name)
			f.SetCellValue(sheet, cellRef(2, row), k.Day.String())
			f.SetCellValue(sheet, cellRef(3, row), k.Period)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 12)
	f.SetColWidth(sheet, "C", "C", 8)
	return nil
}

// ReadEntries parses the "Groups" sheet of a saved workbook back into
// entries by reversing the rendered cell text back into structured data.
// Only group-indexed entries (driving range included) are recovered:
// inspection and trip entries are not on the Groups sheet, so they are not
// read back, and Location is left empty on every returned entry.
func ReadEntries(f *excelize.File) ([]extractor.Entry, error) {
	rows, err := f.GetRows("Groups")
	if err != nil {
		return nil, fmt.Errorf("reading Groups sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Groups sheet is empty")
	}

	header := rows[0]
	groupCols := header[2:]

	var entries []extractor.Entry
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		day, ok := domain.ParseDay(row[0])
		if !ok {
			continue
		}
		period := 0
		fmt.Sscanf(row[1], "%d", &period)
		slot := domain.TimeSlot{Day: day, Period: period}

		for i, groupID := range groupCols {
			col := i + 2
			if col >= len(row) || row[col] == "" {
				continue
			}
			for _, cell := range parseGroupCell(row[col]) {
				entries = append(entries, extractor.Entry{
					Activity: cell.activity,
					Staff:    cell.staff,
					Slot:     slot,
					Group:    groupID,
				})
			}
		}
	}
	return entries, nil
}

type parsedCell struct {
	activity string
	staff    []string
}

// parseGroupCell reverses cellContent's "act1 (s1, s2) / act2 (s3)" format.
func parseGroupCell(cell string) []parsedCell {
	var out []parsedCell
	for _, part := range splitTop(cell, " / ") {
		open := -1
		closeIdx := -1
		for i, c := range part {
			if c == '(' && open < 0 {
				open = i
			}
			if c == ')' {
				closeIdx = i
			}
		}
		if open < 0 || closeIdx < 0 || closeIdx < open {
			continue
		}
		activity := part[:open-1]
		staffPart := part[open+1 : closeIdx]
		out = append(out, parsedCell{activity: activity, staff: splitTop(staffPart, ", ")})
	}
	return out
}

func splitTop(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func entriesAt(entries []extractor.Entry, k domain.TimeSlot) []extractor.Entry {
	var out []extractor.Entry
	for _, e := range entries {
		if e.Slot == k {
			out = append(out, e)
		}
	}
	return out
}

func cellContent(entries []extractor.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	out := ""
	for i, e := range entries {
		if i > 0 {
			out += " / "
		}
		out += fmt.Sprintf("%s (%s)", e.Activity, joinStaff(e.Staff))
	}
	return out
}

func joinStaff(staff []string) string {
	out := ""
	for i, s := range staff {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
