package domain

import "time"

// UserVersion is an immutable snapshot of a user's profile taken after a
// mutation. VersionNumber starts at 1 and increases by one per snapshot of
// the same user.
type UserVersion struct {
	ID            int64
	UserID        string
	Username      string
	Email         string
	Name          string
	IsAdmin       bool
	VersionNumber int
	CreatedAt     time.Time
}

func (v UserVersion) Profile() Profile {
	return Profile{
		Username: v.Username,
		Email:    v.Email,
		Name:     v.Name,
		IsAdmin:  v.IsAdmin,
	}
}
