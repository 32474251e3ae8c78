package model

import (
	"time"
)

// Persisted lifecycle statuses. "In Progress" is display-only and is never
// written to storage.
const (
	StatusPending  = "Pending"
	StatusComplete = "Complete"
	StatusDeleted  = "Deleted"

	StatusInProgress = "In Progress"
)

// Recurrence types accepted on a task. Empty string means non-recurring.
const (
	RecurringDaily    = "Daily"
	RecurringWeekdays = "Weekdays"
	RecurringWeekly   = "Weekly"
	RecurringMonthly  = "Monthly"
	RecurringYearly   = "Yearly"
)

const (
	SectionWork     = "work"
	SectionSchool   = "school"
	SectionPersonal = "personal"
)

// TimeOfDay is a 12-hour clock triple, stored as strings the way the
// client submits them ("9", "30", "AM").
type TimeOfDay struct {
	Hour   string `firestore:"hour" json:"hour"`
	Minute string `firestore:"minute" json:"minute"`
	Period string `firestore:"period" json:"period"` // "AM" or "PM"
}

type Task struct {
	TaskID        string     `firestore:"taskid" json:"id"`
	OwnerID       string     `firestore:"ownerid" json:"userId"`
	CreatedBy     string     `firestore:"createdby" json:"createdBy"` // owner email
	Title         string     `firestore:"title" json:"title"`
	Date          string     `firestore:"date" json:"date"` // YYYY-MM-DD
	StartTime     TimeOfDay  `firestore:"starttime" json:"startTime"`
	EndTime       *TimeOfDay `firestore:"endtime" json:"endTime"`
	Collaborators []string   `firestore:"collaborators" json:"collaborators"`
	Section       string     `firestore:"section" json:"section"`
	Priority      string     `firestore:"priority" json:"priority"`
	Recurring     string     `firestore:"recurring" json:"recurring"`
	Status        string     `firestore:"status" json:"status"`
	DeletedAt     *time.Time `firestore:"deletedat" json:"deletedAt"`
	CreatedAt     time.Time  `firestore:"createdat" json:"createdAt"`
	UpdatedAt     time.Time  `firestore:"updatedat" json:"updatedAt"`
}

// HasCollaborator reports whether email is in the task's collaborator set.
func (t *Task) HasCollaborator(email string) bool {
	for _, c := range t.Collaborators {
		if c == email {
			return true
		}
	}
	return false
}
