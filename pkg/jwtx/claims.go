package jwtx

import (
	"slices"
	"time"

	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a login token stays valid.
const DefaultSessionTTL = 12 * time.Hour

// Claims are the session token claims.
type Claims struct {
	jwt.RegisteredClaims

	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`

	// IsAdmin is the admin flag at issue time. It is a display hint for
	// clients; servers must re-check the flag against the user store.
	IsAdmin bool `json:"is_admin,omitempty"`
}

// Identity is the user profile embedded into a session token.
type Identity struct {
	Subject  string
	Username string
	Email    string
	Name     string
	IsAdmin  bool
}

// NewSessionClaims builds claims for a freshly authenticated user.
func NewSessionClaims(
	id Identity,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.Subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Username: id.Username,
		Email:    id.Email,
		Name:     id.Name,
		IsAdmin:  id.IsAdmin,
	}
}

// NewJTI returns a unique token id. ULIDs keep the denylist table ordered
// by issue time.
func NewJTI() string {
	return idx.New().String()
}

// Expiry returns the exp claim, or the zero time if unset.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry ensures the token is inside its exp/nbf window.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway is ValidateExpiry with a grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
