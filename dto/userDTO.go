package dto

// UserSummary is the public shape of an account: what collaborator pickers
// and profile views see. Never carries the password hash.
type UserSummary struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Visibility  string `json:"visibility"`
	AvatarColor string `json:"avatarColor"`
	AvatarImage string `json:"avatarImage,omitempty"`
}

type UpdateProfileRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Visibility  string `json:"visibility"`
	AvatarColor string `json:"avatarColor"`
	AvatarImage string `json:"avatarImage"`
}
