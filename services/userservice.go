package services

import (
	"context"
	"strings"

	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/model"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

// UserService is the user directory: visibility lookups for the
// collaboration validator and summaries for collaborator pickers.
type UserService struct {
	store storage.UserStore
}

func NewUserService(store storage.UserStore) *UserService {
	return &UserService{store: store}
}

// NormalizeEmail lowercases and trims an address. Emails act as the user
// primary key and as collaborator references, so every path normalizes
// them the same way before touching storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetVisibility resolves a user's visibility setting by email.
// Returns apperr.ErrNotFound for unknown addresses.
func (s *UserService) GetVisibility(ctx context.Context, email string) (string, error) {
	user, err := s.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	return user.Visibility, nil
}

// ListPublicUsers returns summaries of every public-visibility account.
func (s *UserService) ListPublicUsers(ctx context.Context) ([]dto.UserSummary, error) {
	users, err := s.store.ListUsersByVisibility(ctx, model.VisibilityPublic)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, Summarize(&users[i]))
	}
	return summaries, nil
}

// GetUserSummary resolves a single account summary by email.
func (s *UserService) GetUserSummary(ctx context.Context, email string) (dto.UserSummary, error) {
	user, err := s.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return dto.UserSummary{}, err
	}
	return Summarize(user), nil
}

// Summarize strips an account down to its public shape.
func Summarize(user *model.User) dto.UserSummary {
	return dto.UserSummary{
		UserID:      user.UserID,
		Email:       user.Email,
		Username:    user.Username,
		Visibility:  user.Visibility,
		AvatarColor: user.AvatarColor,
		AvatarImage: user.AvatarImage,
	}
}

// DefaultUsername derives a display name from the email local part.
func DefaultUsername(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
