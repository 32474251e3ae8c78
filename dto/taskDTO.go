package dto

import "github.com/AnishKajan/Taskmanager-Project/model"

type CreateTaskRequest struct {
	Title         string           `json:"title"`
	Date          string           `json:"date"`
	StartTime     *model.TimeOfDay `json:"startTime"`
	EndTime       *model.TimeOfDay `json:"endTime"`
	Collaborators []string         `json:"collaborators"`
	Section       string           `json:"section"`
	Priority      string           `json:"priority"`
	Recurring     string           `json:"recurring"`
}

// UpdateTaskRequest replaces the editable fields of a task, mirroring the
// client's edit form. Ownership, lifecycle status and timestamps are not
// editable through it.
type UpdateTaskRequest struct {
	Title         string           `json:"title"`
	Date          string           `json:"date"`
	StartTime     *model.TimeOfDay `json:"startTime"`
	EndTime       *model.TimeOfDay `json:"endTime"`
	Collaborators []string         `json:"collaborators"`
	Section       string           `json:"section"`
	Priority      string           `json:"priority"`
	Recurring     string           `json:"recurring"`
}

// PatchTaskRequest toggles the persisted lifecycle status between Pending
// and Complete, or changes the recurrence. Nil fields are left untouched.
type PatchTaskRequest struct {
	Status    *string `json:"status"`
	Recurring *string `json:"recurring"`
}

// TaskResponse is a stored task plus its display status, derived fresh on
// every read.
type TaskResponse struct {
	model.Task
	DisplayStatus string `json:"displayStatus"`
}
