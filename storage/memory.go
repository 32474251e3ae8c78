package storage

import (
	"context"
	"sync"

	"github.com/AnishKajan/Taskmanager-Project/apperr"
	"github.com/AnishKajan/Taskmanager-Project/model"
)

// MemoryStore implements Store with in-process maps under a single lock,
// which trivially satisfies the per-document atomicity contract. It backs
// the test suites and the server when no Firestore credentials are
// configured.
type MemoryStore struct {
	mu    sync.Mutex
	tasks map[string]model.Task
	users map[string]model.User // keyed by user id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]model.Task),
		users: make(map[string]model.User),
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return copyTask(task), nil
}

func (s *MemoryStore) PutTask(ctx context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.TaskID] = *copyTask(*task)
	return nil
}

func (s *MemoryStore) UpdateTask(ctx context.Context, id string, check func(*model.Task) error, apply func(*model.Task)) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tasks[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	task := copyTask(stored)
	if err := check(task); err != nil {
		return nil, err
	}
	apply(task)
	s.tasks[id] = *copyTask(*task)
	return task, nil
}

func (s *MemoryStore) DeleteTask(ctx context.Context, id string, check func(*model.Task) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tasks[id]
	if !ok {
		return apperr.ErrNotFound
	}
	task := copyTask(stored)
	if err := check(task); err != nil {
		return err
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) TasksByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var tasks []model.Task
	for _, task := range s.tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, *copyTask(task))
		}
	}
	return tasks, nil
}

func (s *MemoryStore) TasksByCollaborator(ctx context.Context, email string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var tasks []model.Task
	for _, task := range s.tasks {
		if task.HasCollaborator(email) {
			tasks = append(tasks, *copyTask(task))
		}
	}
	return tasks, nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	u := user
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *MemoryStore) PutUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = *user
	return nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id string, apply func(*model.User)) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	apply(&user)
	s.users[id] = user
	return &user, nil
}

func (s *MemoryStore) ListUsersByVisibility(ctx context.Context, visibility string) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []model.User
	for _, user := range s.users {
		if user.Visibility == visibility {
			users = append(users, user)
		}
	}
	return users, nil
}

// copyTask deep-copies a task so callers never share slices or pointers
// with the stored document.
func copyTask(t model.Task) *model.Task {
	out := t
	if t.Collaborators != nil {
		out.Collaborators = append([]string(nil), t.Collaborators...)
	}
	if t.EndTime != nil {
		end := *t.EndTime
		out.EndTime = &end
	}
	if t.DeletedAt != nil {
		deleted := *t.DeletedAt
		out.DeletedAt = &deleted
	}
	return &out
}
