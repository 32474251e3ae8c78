package services

import (
	"time"

	"github.com/AnishKajan/Taskmanager-Project/model"
)

// DateLayout is the calendar-date format tasks are stored with.
const DateLayout = "2006-01-02"

// ParseDate parses a stored YYYY-MM-DD date as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// SameDay reports whether a and b fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// RecurringMatch reports whether a recurring task originally scheduled on
// originalDate (YYYY-MM-DD) has an occurrence on candidate. All comparisons
// use UTC calendar components. A task never recurs before its original
// date, and an empty or unknown recurrence type never matches.
func RecurringMatch(recurringType, originalDate string, candidate time.Time) bool {
	if recurringType == "" || originalDate == "" {
		return false
	}

	original, err := ParseDate(originalDate)
	if err != nil {
		return false
	}
	candidate = candidate.UTC()
	if truncateToDay(candidate).Before(original) {
		return false
	}

	switch recurringType {
	case model.RecurringDaily:
		return true
	case model.RecurringWeekdays:
		wd := candidate.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case model.RecurringWeekly:
		return original.Weekday() == candidate.Weekday()
	case model.RecurringMonthly:
		return original.Day() == candidate.Day()
	case model.RecurringYearly:
		return original.Day() == candidate.Day() && original.Month() == candidate.Month()
	default:
		return false
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
