package services

import (
	"time"

	"github.com/hollyoak/plateful/internal/models"
)

// DateAtLocation drops the time-of-day of value as seen from location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// NormalizeToMonday maps any moment to the Monday date of its week.
// The result is idempotent: normalizing a Monday returns the same Monday.
func NormalizeToMonday(value time.Time, location *time.Location) time.Time {
	day := DateAtLocation(value, location)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ShiftWeek moves a normalized week start by weeks whole weeks.
// Negative counts move into the past.
func ShiftWeek(weekStart time.Time, weeks int) time.Time {
	return NormalizeToMonday(weekStart.AddDate(0, 0, models.DaysPerWeek*weeks), weekStart.Location())
}

// WeekDays lists the seven day dates of the week starting at weekStart.
func WeekDays(weekStart time.Time) []time.Time {
	days := make([]time.Time, 0, models.DaysPerWeek)
	for offset := 0; offset < models.DaysPerWeek; offset++ {
		days = append(days, weekStart.AddDate(0, 0, offset))
	}
	return days
}
