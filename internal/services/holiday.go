package services

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// HolidayService flags training dates that land on US federal holidays or
// weekends, so schedulers see the conflict before publishing an event.
type HolidayService struct {
	calendar *cal.BusinessCalendar
}

func NewHolidayService() *HolidayService {
	c := cal.NewBusinessCalendar()
	c.Name = "United States"
	c.AddHoliday(us.Holidays...)
	return &HolidayService{calendar: c}
}

// IsWorkday reports whether t is a regular duty day.
func (s *HolidayService) IsWorkday(t time.Time) bool {
	return s.calendar.IsWorkday(t)
}

// IsHoliday reports whether t falls on a federal holiday or weekend.
func (s *HolidayService) IsHoliday(t time.Time) bool {
	return !s.IsWorkday(t)
}

// HolidayName returns the observed holiday name for t, or "" when t is not a
// holiday.
func (s *HolidayService) HolidayName(t time.Time) string {
	actual, observed, h := s.calendar.IsHoliday(t)
	if (!actual && !observed) || h == nil {
		return ""
	}
	return h.Name
}
