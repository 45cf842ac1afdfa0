package user

import "time"

// User is a back office administrator. Staff never log in; they punch on a store kiosk.
type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	LastLoginAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanLogin reports whether the account may sign in at all.
func (u *User) CanLogin() bool {
	return u.IsActive
}

// HasGoogleLink reports whether a Google account is already attached.
func (u *User) HasGoogleLink() bool {
	return u.OAuthProvider != nil && u.OAuthProviderID != nil
}
