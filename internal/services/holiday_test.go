package services

import (
	"testing"
	"time"
)

func TestHolidayService_IndependenceDay(t *testing.T) {
	svc := NewHolidayService()

	day := time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC)
	if !svc.IsHoliday(day) {
		t.Error("July 4 should be a federal holiday")
	}
	if name := svc.HolidayName(day); name == "" {
		t.Error("HolidayName should not be empty on July 4")
	}
}

func TestHolidayService_RegularDay(t *testing.T) {
	svc := NewHolidayService()

	// A plain Tuesday with no federal holiday.
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if svc.IsHoliday(day) {
		t.Errorf("%v should not be a holiday", day)
	}
	if !svc.IsWorkday(day) {
		t.Errorf("%v should be a workday", day)
	}
	if name := svc.HolidayName(day); name != "" {
		t.Errorf("HolidayName = %q, expected empty", name)
	}
}

func TestHolidayService_Weekend(t *testing.T) {
	svc := NewHolidayService()

	saturday := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	if svc.IsWorkday(saturday) {
		t.Error("Saturday should not be a workday")
	}
}
