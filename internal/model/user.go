package model

import "time"

// DefaultAvatar is shown for users without a profile photo.
const DefaultAvatar = "/default-avatar.png"

// User is an authenticated account.
type User struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url"`
}

// Label returns the name shown in the navigation bar.
func (u User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return "Profile"
}

// Avatar returns the profile photo, falling back to DefaultAvatar.
func (u User) Avatar() string {
	if u.PhotoURL != "" {
		return u.PhotoURL
	}
	return DefaultAvatar
}
