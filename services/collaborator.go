package services

import (
	"context"
	"errors"

	"github.com/AnishKajan/Taskmanager-Project/apperr"
	"github.com/AnishKajan/Taskmanager-Project/model"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

// CollaboratorValidator checks that proposed collaborators are eligible:
// each email must resolve to an account whose visibility is public at the
// moment of the write. The check is all-or-nothing and never retroactive;
// a collaborator who later turns private stays on the task.
type CollaboratorValidator struct {
	store storage.UserStore
}

func NewCollaboratorValidator(store storage.UserStore) *CollaboratorValidator {
	return &CollaboratorValidator{store: store}
}

// Validate returns nil when every candidate is a known public user, or a
// CollaboratorRejectedError listing every ineligible email. Unknown
// addresses count as ineligible since they resolve to no account.
func (v *CollaboratorValidator) Validate(ctx context.Context, candidates []string) error {
	if len(candidates) == 0 {
		return nil
	}

	var rejected []string
	for _, email := range candidates {
		normalized := NormalizeEmail(email)
		user, err := v.store.GetUserByEmail(ctx, normalized)
		if errors.Is(err, apperr.ErrNotFound) {
			rejected = append(rejected, normalized)
			continue
		}
		if err != nil {
			return err
		}
		if user.Visibility != model.VisibilityPublic {
			rejected = append(rejected, normalized)
		}
	}

	if len(rejected) > 0 {
		return &apperr.CollaboratorRejectedError{Rejected: rejected}
	}
	return nil
}
