package rostersdk

import (
	"encoding/json"
	"time"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse is returned with 400 when input fails validation.
// Details maps request field names to a short reason.
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// User is the public representation of an account.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	IsAdmin      bool       `json:"isAdmin"`
	AvatarPath   string     `json:"avatarPath"`
	MFAEnabled   bool       `json:"mfaEnabled"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreateDate   time.Time  `json:"createDate"`
	ModifiedDate time.Time  `json:"modifiedDate"`
}

// UserListItem is a User row in list responses, with account status.
type UserListItem struct {
	User
	LockoutEnd *time.Time `json:"lockoutEnd"`
	IsActive   bool       `json:"isActive"`
}

// UserListResponse is a page of users plus the unpaged match count.
type UserListResponse struct {
	Users      []UserListItem `json:"users"`
	TotalCount int            `json:"totalCount"`
}

// ListUsersParams are the query parameters of GET /v1/users and the CSV
// export. A nil IsActive returns both active and inactive accounts.
type ListUsersParams struct {
	PageIndex int
	PageSize  int
	Search    string
	IsActive  *bool
}

// RegisterRequest is the self-service sign-up body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest authenticates by email. Code is the TOTP code and is only
// needed once the account has MFA enabled.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code,omitempty"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// SessionResponse is returned by the session check.
type SessionResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// CreateUserRequest is the admin create body.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UpdateUserRequest is a partial update. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
}

// StatusRequest activates or deactivates an account.
type StatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// StatusResponse reports the account status after a toggle.
type StatusResponse struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	IsActive   bool       `json:"isActive"`
	LockoutEnd *time.Time `json:"lockoutEnd"`
	Message    string     `json:"message"`
}

// UserVersion is one snapshot from a user's history.
type UserVersion struct {
	VersionID     int64     `json:"versionId"`
	UserID        string    `json:"userId"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	IsAdmin       bool      `json:"isAdmin"`
	VersionDate   time.Time `json:"versionDate"`
	VersionNumber int       `json:"versionNumber"`
}

// RestoreRequest names the snapshot row (VersionID from the history list,
// not the version number).
type RestoreRequest struct {
	VersionID int64 `json:"versionId"`
}

// RestoreResponse reports which version number was restored.
type RestoreResponse struct {
	Message             string `json:"message"`
	RestoredFromVersion int    `json:"restoredFromVersion"`
	User                User   `json:"user"`
}

// AuditQuery are the query parameters of GET /v1/users/audit.
type AuditQuery struct {
	PageSize  int
	PageIndex int
	UserID    string
	Action    string
}

// AuditChanges is the before and after state recorded by an audit entry.
// Either side is null for creates and deletes.
type AuditChanges struct {
	Old map[string]any `json:"old"`
	New map[string]any `json:"new"`
}

// AuditLog is one audit entry. UserID and UserName identify the actor.
type AuditLog struct {
	ID         int64           `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Action     string          `json:"action"`
	UserID     *string         `json:"userId"`
	UserName   string          `json:"userName"`
	Changes    json.RawMessage `json:"changes" swaggertype:"object"`
	Timestamp  time.Time       `json:"timestamp"`
}

// DecodeChanges parses Changes.
func (a AuditLog) DecodeChanges() (AuditChanges, error) {
	var c AuditChanges
	err := json.Unmarshal(a.Changes, &c)
	return c, err
}

// AuditLogResponse is a page of audit entries plus the unpaged match count.
type AuditLogResponse struct {
	Logs       []AuditLog `json:"logs"`
	TotalCount int        `json:"totalCount"`
}

// AvatarResponse is returned by avatar upload and removal.
type AvatarResponse struct {
	AvatarPath string `json:"avatarPath"`
	Message    string `json:"message"`
}

// TOTPEnrollResponse carries the shared secret for the authenticator app.
// MFA is not enforced until the enrollment is verified.
type TOTPEnrollResponse struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

// TOTPVerifyRequest confirms enrollment or disables MFA.
type TOTPVerifyRequest struct {
	Code string `json:"code"`
}

// BootstrapRequest creates the first administrator.
type BootstrapRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// BootstrapResponse returns the created administrator.
type BootstrapResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks lists readiness of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Avatars  string `json:"avatars"`
}
