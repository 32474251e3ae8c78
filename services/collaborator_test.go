package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/AnishKajan/Taskmanager-Project/apperr"
	"github.com/AnishKajan/Taskmanager-Project/model"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

func seedUser(t *testing.T, store *storage.MemoryStore, id, email, visibility string) {
	t.Helper()
	err := store.PutUser(context.Background(), &model.User{
		UserID:     id,
		Email:      email,
		Username:   DefaultUsername(email),
		Visibility: visibility,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
}

func TestCollaboratorValidator(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUser(t, store, "u1", "alice@example.com", model.VisibilityPublic)
	seedUser(t, store, "u2", "bob@example.com", model.VisibilityPrivate)
	v := NewCollaboratorValidator(store)

	if err := v.Validate(context.Background(), nil); err != nil {
		t.Fatalf("empty candidate list: %v", err)
	}
	if err := v.Validate(context.Background(), []string{"alice@example.com"}); err != nil {
		t.Fatalf("public collaborator rejected: %v", err)
	}

	// Case is normalized before lookup.
	if err := v.Validate(context.Background(), []string{"Alice@Example.com"}); err != nil {
		t.Fatalf("mixed-case public collaborator rejected: %v", err)
	}

	err := v.Validate(context.Background(), []string{"alice@example.com", "bob@example.com"})
	var rejected *apperr.CollaboratorRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected CollaboratorRejectedError, got %v", err)
	}
	if want := []string{"bob@example.com"}; !reflect.DeepEqual(rejected.Rejected, want) {
		t.Errorf("rejected = %v, want %v", rejected.Rejected, want)
	}

	// Unknown addresses resolve to no account and are rejected too.
	err = v.Validate(context.Background(), []string{"ghost@example.com"})
	if !errors.As(err, &rejected) {
		t.Fatalf("expected CollaboratorRejectedError for unknown email, got %v", err)
	}
	if want := []string{"ghost@example.com"}; !reflect.DeepEqual(rejected.Rejected, want) {
		t.Errorf("rejected = %v, want %v", rejected.Rejected, want)
	}
}

func TestUserServiceDirectory(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUser(t, store, "u1", "alice@example.com", model.VisibilityPublic)
	seedUser(t, store, "u2", "bob@example.com", model.VisibilityPrivate)
	svc := NewUserService(store)

	visibility, err := svc.GetVisibility(context.Background(), "ALICE@example.com")
	if err != nil {
		t.Fatalf("GetVisibility: %v", err)
	}
	if visibility != model.VisibilityPublic {
		t.Errorf("visibility = %q, want public", visibility)
	}

	if _, err := svc.GetVisibility(context.Background(), "ghost@example.com"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown user error = %v, want ErrNotFound", err)
	}

	public, err := svc.ListPublicUsers(context.Background())
	if err != nil {
		t.Fatalf("ListPublicUsers: %v", err)
	}
	if len(public) != 1 || public[0].Email != "alice@example.com" {
		t.Errorf("public users = %+v, want only alice", public)
	}

	summary, err := svc.GetUserSummary(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserSummary: %v", err)
	}
	if summary.Username != "alice" {
		t.Errorf("username = %q, want default local part", summary.Username)
	}
}
