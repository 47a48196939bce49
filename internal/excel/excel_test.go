package excel

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/campsched/campsched/internal/domain"
	"github.com/campsched/campsched/internal/extractor"
)

func testCampData() *domain.CampData {
	return &domain.CampData{
		Staff:  []domain.Staff{{ID: 1, Name: "Alex Morgan"}, {ID: 2, Name: "Jordan Lee"}},
		Groups: []domain.Group{{ID: 1}, {ID: 2}},
		OffSlots: map[int]map[domain.TimeSlot]bool{
			1: {}, 2: {},
		},
	}
}

func testEntries() []extractor.Entry {
	return []extractor.Entry{
		{
			Activity: "arts",
			Staff:    []string{"Alex Morgan"},
			Location: "Arts Cabin",
			Slot:     domain.TimeSlot{Day: domain.Monday, Period: 1},
			Group:    "1",
		},
		{
			Activity: "inspection",
			Staff:    []string{"Jordan Lee"},
			Location: domain.LocationNone,
			Slot:     domain.TimeSlot{Day: domain.Monday, Period: 1},
			Group:    domain.LocationNone,
		},
	}
}

func TestGenerateHasAllThreeSheets(t *testing.T) {
	f, err := Generate(testCampData(), testEntries())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	for _, sheet := range []string{"Groups", "Staff", "Unassigned"} {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			t.Errorf("sheet %q not found", sheet)
		}
	}

	t.Run("default Sheet1 removed", func(t *testing.T) {
		idx, _ := f.GetSheetIndex("Sheet1")
		if idx >= 0 {
			t.Error("Sheet1 should be removed")
		}
	})
}

func TestGroupSheetShowsActivity(t *testing.T) {
	f, err := Generate(testCampData(), testEntries())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	rows, err := f.GetRows("Groups")
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	found := false
	for _, row := range rows[1:] {
		for _, cell := range row {
			if cell == "arts (Alex Morgan)" {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected the Monday/1 arts entry to appear on the Groups sheet")
	}
}

func TestUnassignedSheetSkipsOffSlots(t *testing.T) {
	cd := testCampData()
	cd.OffSlots[2] = map[domain.TimeSlot]bool{
		{Day: domain.Tuesday, Period: 1}: true,
	}

	f, err := Generate(cd, testEntries())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	rows, err := f.GetRows("Unassigned")
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	for _, row := range rows[1:] {
		if len(row) >= 3 && row[0] == "Jordan Lee" && row[1] == "Tuesday" && row[2] == "1" {
			t.Error("off-slot should not appear on the Unassigned sheet")
		}
	}
}

func TestWriteAndReadWorkbook(t *testing.T) {
	f, err := Generate(testCampData(), testEntries())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	path := t.TempDir() + "/test.xlsx"
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}

	f2, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer f2.Close()

	val, _ := f2.GetCellValue("Groups", "A1")
	if val != "Day" {
		t.Errorf("re-read A1 = %q, want Day", val)
	}
}
