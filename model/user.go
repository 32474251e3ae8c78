package model

import "time"

// User visibility settings. Only public users can be offered as
// collaborators or attached to a task.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type User struct {
	UserID      string    `firestore:"userid"`
	Email       string    `firestore:"email"` // lowercase, unique
	Password    string    `firestore:"password"`
	Username    string    `firestore:"username"`
	Visibility  string    `firestore:"visibility"`
	AvatarColor string    `firestore:"avatarcolor"`
	AvatarImage string    `firestore:"avatarimage"`
	CreatedAt   time.Time `firestore:"createdat"`
	UpdatedAt   time.Time `firestore:"updatedat"`
}
