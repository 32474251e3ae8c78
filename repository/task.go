// Package repository implements the task repository: every persisted task
// operation, scoped by the owner-or-collaborator authorization rule.
package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AnishKajan/Taskmanager-Project/apperr"
	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/model"
	"github.com/AnishKajan/Taskmanager-Project/services"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

// RetentionWindow is how long a soft-deleted task stays recoverable before
// the sweeper purges it.
const RetentionWindow = 5 * 24 * time.Hour

// storageTimeout bounds every underlying storage call so no repository
// operation can hang indefinitely.
const storageTimeout = 5 * time.Second

type TaskRepository struct {
	store     storage.TaskStore
	validator *services.CollaboratorValidator
	retention time.Duration
	now       func() time.Time
}

func NewTaskRepository(store storage.TaskStore, validator *services.CollaboratorValidator) *TaskRepository {
	return &TaskRepository{
		store:     store,
		validator: validator,
		retention: RetentionWindow,
		now:       time.Now,
	}
}

// Create validates the draft and persists a new Pending task owned by the
// caller. Proposed collaborators must all be eligible or nothing is
// written.
func (r *TaskRepository) Create(ctx context.Context, ownerID, ownerEmail string, req dto.CreateTaskRequest) (*model.Task, error) {
	if err := validateDraft(req.Title, req.Date, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	collaborators := normalizeCollaborators(req.Collaborators, ownerEmail)
	if err := r.validateCollaborators(ctx, collaborators); err != nil {
		return nil, err
	}

	section := req.Section
	if section == "" {
		section = model.SectionWork
	}

	now := r.now().UTC()
	task := &model.Task{
		TaskID:        uuid.New().String(),
		OwnerID:       ownerID,
		CreatedBy:     ownerEmail,
		Title:         req.Title,
		Date:          req.Date,
		StartTime:     *req.StartTime,
		EndTime:       req.EndTime,
		Collaborators: collaborators,
		Section:       section,
		Priority:      req.Priority,
		Recurring:     req.Recurring,
		Status:        model.StatusPending,
		DeletedAt:     nil,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	if err := r.store.PutTask(tctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListVisible returns every non-deleted task the user owns or collaborates
// on, ordered by date then start time.
func (r *TaskRepository) ListVisible(ctx context.Context, userID, userEmail string) ([]model.Task, error) {
	tasks, err := r.visibleTasks(ctx, userID, userEmail)
	if err != nil {
		return nil, err
	}

	visible := tasks[:0]
	for _, task := range tasks {
		if task.Status != model.StatusDeleted {
			visible = append(visible, task)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].Date != visible[j].Date {
			return visible[i].Date < visible[j].Date
		}
		return services.MinutesOfDay(visible[i].StartTime) < services.MinutesOfDay(visible[j].StartTime)
	})
	return visible, nil
}

// ListArchived sweeps expired deletions first, then returns the user's
// completed tasks and the soft-deleted ones still inside the retention
// window, newest deletion first.
func (r *TaskRepository) ListArchived(ctx context.Context, userID, userEmail string) ([]model.Task, error) {
	if _, err := r.Sweep(ctx, userID, userEmail); err != nil {
		return nil, err
	}

	tasks, err := r.visibleTasks(ctx, userID, userEmail)
	if err != nil {
		return nil, err
	}

	cutoff := r.now().UTC().Add(-r.retention)
	archived := tasks[:0]
	for _, task := range tasks {
		switch task.Status {
		case model.StatusComplete:
			archived = append(archived, task)
		case model.StatusDeleted:
			if task.DeletedAt != nil && !task.DeletedAt.Before(cutoff) {
				archived = append(archived, task)
			}
		}
	}
	sort.SliceStable(archived, func(i, j int) bool {
		di, dj := deletedAtOrZero(&archived[i]), deletedAtOrZero(&archived[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return archived[i].CreatedAt.After(archived[j].CreatedAt)
	})
	return archived, nil
}

// Update replaces the editable fields of a task. The requester must be
// owner or collaborator; a deleted task cannot be edited.
func (r *TaskRepository) Update(ctx context.Context, taskID, requesterID, requesterEmail string, req dto.UpdateTaskRequest) (*model.Task, error) {
	if err := validateDraft(req.Title, req.Date, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	// The task's owner email is needed to keep the owner out of the
	// collaborator set, so load it before the conditional write. The
	// write itself re-checks everything atomically.
	current, err := r.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	collaborators := normalizeCollaborators(req.Collaborators, current.CreatedBy)
	if err := r.validateCollaborators(ctx, collaborators); err != nil {
		return nil, err
	}

	now := r.now().UTC()
	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	return r.store.UpdateTask(tctx, taskID,
		func(task *model.Task) error {
			if !services.CanAccess(task, requesterID, requesterEmail) {
				return apperr.ErrForbidden
			}
			if task.Status == model.StatusDeleted {
				return apperr.ErrNotFound
			}
			return nil
		},
		func(task *model.Task) {
			task.Title = req.Title
			task.Date = req.Date
			task.StartTime = *req.StartTime
			task.EndTime = req.EndTime
			task.Collaborators = collaborators
			task.Section = req.Section
			task.Priority = req.Priority
			task.Recurring = req.Recurring
			task.UpdatedAt = now
		})
}

// Patch changes the persisted lifecycle status (Pending or Complete only)
// and/or the recurrence rule. Deletion goes through SoftDelete, never
// through a status patch, and the derived "In Progress" value is never
// accepted here.
func (r *TaskRepository) Patch(ctx context.Context, taskID, requesterID, requesterEmail string, req dto.PatchTaskRequest) (*model.Task, error) {
	if req.Status != nil && *req.Status != model.StatusPending && *req.Status != model.StatusComplete {
		return nil, apperr.NewValidation("status", "must be Pending or Complete")
	}

	now := r.now().UTC()
	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	return r.store.UpdateTask(tctx, taskID,
		func(task *model.Task) error {
			if !services.CanAccess(task, requesterID, requesterEmail) {
				return apperr.ErrForbidden
			}
			if task.Status == model.StatusDeleted {
				return apperr.ErrNotFound
			}
			return nil
		},
		func(task *model.Task) {
			if req.Status != nil {
				task.Status = *req.Status
			}
			if req.Recurring != nil {
				task.Recurring = *req.Recurring
			}
			task.UpdatedAt = now
		})
}

// SoftDelete marks the task Deleted and stamps deletedAt, starting the
// retention window.
func (r *TaskRepository) SoftDelete(ctx context.Context, taskID, requesterID, requesterEmail string) error {
	now := r.now().UTC()
	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	_, err := r.store.UpdateTask(tctx, taskID,
		func(task *model.Task) error {
			if !services.CanAccess(task, requesterID, requesterEmail) {
				return apperr.ErrForbidden
			}
			if task.Status == model.StatusDeleted {
				return apperr.ErrNotFound
			}
			return nil
		},
		func(task *model.Task) {
			task.Status = model.StatusDeleted
			task.DeletedAt = &now
			task.UpdatedAt = now
		})
	return err
}

// Restore brings a soft-deleted task back to Pending and clears deletedAt.
func (r *TaskRepository) Restore(ctx context.Context, taskID, requesterID, requesterEmail string) error {
	now := r.now().UTC()
	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	_, err := r.store.UpdateTask(tctx, taskID,
		func(task *model.Task) error {
			if !services.CanAccess(task, requesterID, requesterEmail) {
				return apperr.ErrForbidden
			}
			if task.Status != model.StatusDeleted {
				return apperr.ErrNotFound
			}
			return nil
		},
		func(task *model.Task) {
			task.Status = model.StatusPending
			task.DeletedAt = nil
			task.UpdatedAt = now
		})
	return err
}

// Purge permanently removes the document. Terminal and irreversible.
func (r *TaskRepository) Purge(ctx context.Context, taskID, requesterID, requesterEmail string) error {
	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	return r.store.DeleteTask(tctx, taskID, func(task *model.Task) error {
		if !services.CanAccess(task, requesterID, requesterEmail) {
			return apperr.ErrForbidden
		}
		return nil
	})
}

// errSweepSkip aborts a sweep delete whose precondition no longer holds,
// e.g. the task was restored between the query and the conditional write.
var errSweepSkip = errors.New("sweep precondition changed")

// Sweep purges every task visible to the user that has been soft-deleted
// for longer than the retention window, and reports how many it removed.
func (r *TaskRepository) Sweep(ctx context.Context, userID, userEmail string) (int, error) {
	tasks, err := r.visibleTasks(ctx, userID, userEmail)
	if err != nil {
		return 0, err
	}

	cutoff := r.now().UTC().Add(-r.retention)
	purged := 0
	for _, task := range tasks {
		if task.Status != model.StatusDeleted || task.DeletedAt == nil || !task.DeletedAt.Before(cutoff) {
			continue
		}
		tctx, cancel := context.WithTimeout(ctx, storageTimeout)
		err := r.store.DeleteTask(tctx, task.TaskID, func(t *model.Task) error {
			if t.Status != model.StatusDeleted || t.DeletedAt == nil || !t.DeletedAt.Before(cutoff) {
				return errSweepSkip
			}
			return nil
		})
		cancel()
		switch {
		case err == nil:
			purged++
		case errors.Is(err, errSweepSkip), errors.Is(err, apperr.ErrNotFound):
			// Restored or already purged concurrently; nothing to do.
		default:
			return purged, err
		}
	}
	return purged, nil
}

// visibleTasks merges the owner and collaborator queries, deduplicated by
// id. Reads retry once on a transient storage failure; writes never do.
func (r *TaskRepository) visibleTasks(ctx context.Context, userID, userEmail string) ([]model.Task, error) {
	owned, err := r.queryWithRetry(ctx, func(ctx context.Context) ([]model.Task, error) {
		return r.store.TasksByOwner(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	shared, err := r.queryWithRetry(ctx, func(ctx context.Context) ([]model.Task, error) {
		return r.store.TasksByCollaborator(ctx, userEmail)
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(owned))
	tasks := make([]model.Task, 0, len(owned)+len(shared))
	for _, task := range owned {
		seen[task.TaskID] = true
		tasks = append(tasks, task)
	}
	for _, task := range shared {
		if !seen[task.TaskID] {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *TaskRepository) queryWithRetry(ctx context.Context, query func(context.Context) ([]model.Task, error)) ([]model.Task, error) {
	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	tasks, err := query(tctx)
	cancel()
	if !errors.Is(err, apperr.ErrStorageUnavailable) {
		return tasks, err
	}
	tctx, cancel = context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	return query(tctx)
}

func (r *TaskRepository) getTask(ctx context.Context, id string) (*model.Task, error) {
	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	task, err := r.store.GetTask(tctx, id)
	if errors.Is(err, apperr.ErrStorageUnavailable) {
		tctx2, cancel2 := context.WithTimeout(ctx, storageTimeout)
		defer cancel2()
		return r.store.GetTask(tctx2, id)
	}
	return task, err
}

func (r *TaskRepository) validateCollaborators(ctx context.Context, collaborators []string) error {
	if len(collaborators) == 0 {
		return nil
	}
	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	return r.validator.Validate(tctx, collaborators)
}

// normalizeCollaborators lowercases, deduplicates, and drops the owner.
// The owner always has access, so keeping them in the set would only
// violate the collaborator invariant.
func normalizeCollaborators(emails []string, ownerEmail string) []string {
	owner := services.NormalizeEmail(ownerEmail)
	seen := make(map[string]bool, len(emails))
	out := make([]string, 0, len(emails))
	for _, email := range emails {
		normalized := services.NormalizeEmail(email)
		if normalized == "" || normalized == owner || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

func validateDraft(title, date string, start, end *model.TimeOfDay) error {
	fields := map[string]string{}
	if title == "" {
		fields["title"] = "title is required"
	}
	if date == "" {
		fields["date"] = "date is required"
	} else if _, err := services.ParseDate(date); err != nil {
		fields["date"] = "date must be YYYY-MM-DD"
	}
	if start == nil {
		fields["startTime"] = "start time is required"
	} else if msg := validateTimeOfDay(start); msg != "" {
		fields["startTime"] = msg
	}
	if end != nil {
		if msg := validateTimeOfDay(end); msg != "" {
			fields["endTime"] = msg
		} else if start != nil && fields["startTime"] == "" &&
			services.MinutesOfDay(*end) <= services.MinutesOfDay(*start) {
			fields["endTime"] = "end time must be after start time"
		}
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

func validateTimeOfDay(t *model.TimeOfDay) string {
	if t.Hour == "" || t.Minute == "" || t.Period == "" {
		return "hour, minute and period are all required"
	}
	hour, err := strconv.Atoi(t.Hour)
	if err != nil || hour < 1 || hour > 12 {
		return "hour must be 1-12"
	}
	minute, err := strconv.Atoi(t.Minute)
	if err != nil || minute < 0 || minute > 59 {
		return "minute must be 0-59"
	}
	if t.Period != "AM" && t.Period != "PM" {
		return "period must be AM or PM"
	}
	return ""
}

func deletedAtOrZero(t *model.Task) time.Time {
	if t.DeletedAt == nil {
		return time.Time{}
	}
	return *t.DeletedAt
}
