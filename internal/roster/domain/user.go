package domain

import "time"

// DefaultAvatarPath is served for users without an uploaded avatar and is
// never deleted.
const DefaultAvatarPath = "/avatars/default.png"

// LockoutForever is the lockout end written when an admin deactivates an
// account.
var LockoutForever = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

type User struct {
	ID             string // ULID
	Username       string
	Email          string
	Name           string
	PasswordHash   string // argon2id PHC string
	IsAdmin        bool
	LockoutEnd     *time.Time
	FailedAttempts int
	AvatarPath     string
	MFASecret      *string    // base32 TOTP secret, set at enrollment
	MFAEnabledAt   *time.Time // nil until enrollment is verified
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLoginAt    *time.Time
}

// IsActive reports whether the account can sign in at now. An account is
// active when it has no lockout end or the lockout end has passed.
func (u User) IsActive(now time.Time) bool {
	return u.LockoutEnd == nil || !u.LockoutEnd.After(now)
}

// MFAEnabled reports whether logins must present a TOTP code.
func (u User) MFAEnabled() bool {
	return u.MFAEnabledAt != nil && u.MFASecret != nil
}

// HasCustomAvatar reports whether the avatar points at an uploaded file.
func (u User) HasCustomAvatar() bool {
	return u.AvatarPath != "" && u.AvatarPath != DefaultAvatarPath
}

// Profile is the versioned subset of a user.
type Profile struct {
	Username string
	Email    string
	Name     string
	IsAdmin  bool
}

func (u User) Profile() Profile {
	return Profile{
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		IsAdmin:  u.IsAdmin,
	}
}

// Apply copies p onto u.
func (u *User) Apply(p Profile) {
	u.Username = p.Username
	u.Email = p.Email
	u.Name = p.Name
	u.IsAdmin = p.IsAdmin
}

// UserFilter narrows list, count and export queries.
type UserFilter struct {
	Search   string // case-insensitive substring of username, email or name
	IsActive *bool
	Now      time.Time // reference instant for IsActive
	Limit    int       // 0 means no limit
	Offset   int
}
