package domain

import "time"

// RevokedToken is a logged out session token, kept until it would have
// expired anyway.
type RevokedToken struct {
	JTI       string
	UserID    string
	ExpiresAt time.Time
}
