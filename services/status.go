package services

import (
	"strconv"
	"time"

	"github.com/AnishKajan/Taskmanager-Project/model"
)

// MinutesOfDay converts a 12-hour clock triple to minutes since midnight.
// 12 AM maps to 0 and 12 PM to 720.
func MinutesOfDay(t model.TimeOfDay) int {
	hour, _ := strconv.Atoi(t.Hour)
	minute, _ := strconv.Atoi(t.Minute)
	hour = hour % 12
	if t.Period == "PM" {
		hour += 12
	}
	return hour*60 + minute
}

// ActiveOn reports whether the task has an occurrence on viewingDate:
// either its scheduled date is that day, or its recurrence rule matches.
func ActiveOn(task *model.Task, viewingDate time.Time) bool {
	if taskDate, err := ParseDate(task.Date); err == nil && SameDay(taskDate, viewingDate) {
		return true
	}
	return RecurringMatch(task.Recurring, task.Date, viewingDate)
}

// DeriveStatus computes the task's display status for viewingDate, given
// the current moment. The result is never persisted; it must be recomputed
// on every read because it is a function of wall-clock time.
//
// Deleted tasks are filtered out before this is called.
func DeriveStatus(task *model.Task, viewingDate, now time.Time) string {
	now = now.UTC()
	viewingDate = viewingDate.UTC()

	if !ActiveOn(task, viewingDate) {
		if task.Status == model.StatusComplete {
			return model.StatusComplete
		}
		return model.StatusPending
	}

	if !SameDay(viewingDate, now) {
		if truncateToDay(viewingDate).Before(truncateToDay(now)) {
			return model.StatusComplete
		}
		return model.StatusPending
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	start := MinutesOfDay(task.StartTime)

	if nowMinutes < start {
		return model.StatusPending
	}
	if task.EndTime != nil {
		if end := MinutesOfDay(*task.EndTime); nowMinutes <= end {
			return model.StatusInProgress
		}
	}
	// Past the end time, or no end time and the start has been reached.
	return model.StatusComplete
}
