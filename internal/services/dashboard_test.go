package services

import (
	"testing"
	"time"
)

func TestDashboardStatsRequest_Defaults(t *testing.T) {
	req := DashboardStatsRequest{}

	if req.StartDate != "" {
		t.Errorf("StartDate should be empty by default, got %q", req.StartDate)
	}
	if req.EndDate != "" {
		t.Errorf("EndDate should be empty by default, got %q", req.EndDate)
	}
}

func TestDashboardStatsRequest_WithValues(t *testing.T) {
	req := DashboardStatsRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	}

	if req.StartDate != "2026-01-01" {
		t.Errorf("StartDate = %q, expected %q", req.StartDate, "2026-01-01")
	}
	if req.EndDate != "2026-01-31" {
		t.Errorf("EndDate = %q, expected %q", req.EndDate, "2026-01-31")
	}
}

func TestDashboardStatsRequest_DateFormat(t *testing.T) {
	req := DashboardStatsRequest{StartDate: "2026-03-15"}

	parsed, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		t.Fatalf("StartDate should parse as 2006-01-02, got error %v", err)
	}
	if parsed.Year() != 2026 || parsed.Month() != time.March || parsed.Day() != 15 {
		t.Errorf("parsed date = %v, expected 2026-03-15", parsed)
	}
}

func TestDashboardStats_Structure(t *testing.T) {
	stats := DashboardStats{
		Units:          4,
		Personnel:      120,
		EventsInPeriod: 16,
		UpcomingEvents: 3,
		AARsInPeriod:   12,
		InsightReports: 2,
	}

	if stats.Units != 4 {
		t.Errorf("Units = %d, expected 4", stats.Units)
	}
	if stats.Personnel != 120 {
		t.Errorf("Personnel = %d, expected 120", stats.Personnel)
	}
	if stats.UpcomingEvents != 3 {
		t.Errorf("UpcomingEvents = %d, expected 3", stats.UpcomingEvents)
	}
}

func TestUnitActivity_Structure(t *testing.T) {
	activity := UnitActivity{
		UnitID:     9,
		UnitName:   "1st Platoon",
		EventCount: 5,
		AARCount:   4,
	}

	if activity.UnitID != 9 {
		t.Errorf("UnitID = %d, expected 9", activity.UnitID)
	}
	if activity.UnitName != "1st Platoon" {
		t.Errorf("UnitName = %q, expected %q", activity.UnitName, "1st Platoon")
	}
	if activity.EventCount != 5 {
		t.Errorf("EventCount = %d, expected 5", activity.EventCount)
	}
}

func TestDashboardResponse_Structure(t *testing.T) {
	resp := DashboardResponse{
		Stats:         DashboardStats{Units: 1},
		UnitActivity:  []UnitActivity{{UnitID: 1}},
		StepBreakdown: []StepBreakdown{{Step: 6, StepName: "Execute"}},
		KindBreakdown: []KindBreakdown{{Kind: "sustain", ItemCount: 4}},
	}

	if resp.Stats.Units != 1 {
		t.Errorf("Stats.Units = %d, expected 1", resp.Stats.Units)
	}
	if len(resp.UnitActivity) != 1 {
		t.Errorf("len(UnitActivity) = %d, expected 1", len(resp.UnitActivity))
	}
	if resp.StepBreakdown[0].StepName != "Execute" {
		t.Errorf("StepName = %q, expected %q", resp.StepBreakdown[0].StepName, "Execute")
	}
	if resp.KindBreakdown[0].ItemCount != 4 {
		t.Errorf("KindBreakdown[0].ItemCount = %d, expected 4", resp.KindBreakdown[0].ItemCount)
	}
}
