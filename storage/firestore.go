package storage

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/AnishKajan/Taskmanager-Project/apperr"
	"github.com/AnishKajan/Taskmanager-Project/model"
)

const (
	tasksCollection = "Tasks"
	usersCollection = "Users"
)

// FirestoreStore implements Store on a Firestore database. Conditional
// mutations run inside Firestore transactions, which gives the
// per-document compare-and-swap the repository requires.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	snap, err := s.client.Collection(tasksCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	var task model.Task
	if err := snap.DataTo(&task); err != nil {
		return nil, fmt.Errorf("decode task %s: %w", id, err)
	}
	return &task, nil
}

func (s *FirestoreStore) PutTask(ctx context.Context, task *model.Task) error {
	_, err := s.client.Collection(tasksCollection).Doc(task.TaskID).Set(ctx, task)
	return mapStoreErr(err)
}

func (s *FirestoreStore) UpdateTask(ctx context.Context, id string, check func(*model.Task) error, apply func(*model.Task)) (*model.Task, error) {
	ref := s.client.Collection(tasksCollection).Doc(id)
	var updated model.Task
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return mapStoreErr(err)
		}
		var task model.Task
		if err := snap.DataTo(&task); err != nil {
			return fmt.Errorf("decode task %s: %w", id, err)
		}
		if err := check(&task); err != nil {
			return err
		}
		apply(&task)
		updated = task
		return tx.Set(ref, task)
	})
	if err != nil {
		return nil, mapTransactionErr(err)
	}
	return &updated, nil
}

func (s *FirestoreStore) DeleteTask(ctx context.Context, id string, check func(*model.Task) error) error {
	ref := s.client.Collection(tasksCollection).Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return mapStoreErr(err)
		}
		var task model.Task
		if err := snap.DataTo(&task); err != nil {
			return fmt.Errorf("decode task %s: %w", id, err)
		}
		if err := check(&task); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
	return mapTransactionErr(err)
}

func (s *FirestoreStore) TasksByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.queryTasks(ctx, s.client.Collection(tasksCollection).Where("ownerid", "==", ownerID))
}

func (s *FirestoreStore) TasksByCollaborator(ctx context.Context, email string) ([]model.Task, error) {
	return s.queryTasks(ctx, s.client.Collection(tasksCollection).Where("collaborators", "array-contains", email))
}

func (s *FirestoreStore) queryTasks(ctx context.Context, q firestore.Query) ([]model.Task, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var tasks []model.Task
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapStoreErr(err)
		}
		var task model.Task
		if err := snap.DataTo(&task); err != nil {
			return nil, fmt.Errorf("decode task %s: %w", snap.Ref.ID, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *FirestoreStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	snap, err := s.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &user, nil
}

func (s *FirestoreStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := s.client.Collection(usersCollection).Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if len(docs) == 0 {
		return nil, apperr.ErrNotFound
	}
	var user model.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", email, err)
	}
	return &user, nil
}

func (s *FirestoreStore) PutUser(ctx context.Context, user *model.User) error {
	_, err := s.client.Collection(usersCollection).Doc(user.UserID).Set(ctx, user)
	return mapStoreErr(err)
}

func (s *FirestoreStore) UpdateUser(ctx context.Context, id string, apply func(*model.User)) (*model.User, error) {
	ref := s.client.Collection(usersCollection).Doc(id)
	var updated model.User
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return mapStoreErr(err)
		}
		var user model.User
		if err := snap.DataTo(&user); err != nil {
			return fmt.Errorf("decode user %s: %w", id, err)
		}
		apply(&user)
		updated = user
		return tx.Set(ref, user)
	})
	if err != nil {
		return nil, mapTransactionErr(err)
	}
	return &updated, nil
}

func (s *FirestoreStore) ListUsersByVisibility(ctx context.Context, visibility string) ([]model.User, error) {
	iter := s.client.Collection(usersCollection).Where("visibility", "==", visibility).Documents(ctx)
	defer iter.Stop()

	var users []model.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapStoreErr(err)
		}
		var user model.User
		if err := snap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", snap.Ref.ID, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// mapStoreErr classifies a Firestore call error into the apperr taxonomy.
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return apperr.ErrNotFound
	case codes.DeadlineExceeded, codes.Unavailable, codes.Canceled, codes.ResourceExhausted:
		return fmt.Errorf("%w: %v", apperr.ErrStorageUnavailable, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", apperr.ErrStorageUnavailable, err)
	}
	return err
}

// mapTransactionErr keeps application errors raised inside a transaction
// closure intact and classifies everything else.
func mapTransactionErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrForbidden) {
		return err
	}
	var vErr *apperr.ValidationError
	if errors.As(err, &vErr) {
		return err
	}
	return mapStoreErr(err)
}
