package rostersdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Session issues requests with a bearer token obtained from Login.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time
	user      User
}

// NewSession wraps an existing token.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// ExpiresAt is the token expiry reported at login. Zero for NewSession.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// User is the profile returned at login.
func (s *Session) User() User { return s.user }

func (s *Session) do(ctx context.Context, method, path string, in, out any, want int) error {
	return s.client.do(ctx, s.token, method, path, in, nil, out, want)
}

// Logout revokes the session token on the server.
func (s *Session) Logout(ctx context.Context) error {
	return s.do(ctx, http.MethodGet, "/v1/auth/logout", nil, nil, http.StatusOK)
}

// Check returns the user behind the token.
func (s *Session) Check(ctx context.Context) (*User, error) {
	var out SessionResponse
	if err := s.do(ctx, http.MethodGet, "/v1/auth/session-check", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// GetUser fetches one account. Admin only.
func (s *Session) GetUser(ctx context.Context, id string) (*User, error) {
	var out User
	if err := s.do(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates an account. Admin only.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var out User
	if err := s.do(ctx, http.MethodPost, "/v1/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update. Admin only.
func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	var out User
	if err := s.do(ctx, http.MethodPut, "/v1/users/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account. Admin only, and never the caller's own.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// SetStatus activates or deactivates an account. Admin only.
func (s *Session) SetStatus(ctx context.Context, id string, active bool) (*StatusResponse, error) {
	var out StatusResponse
	path := "/v1/users/" + url.PathEscape(id) + "/status"
	if err := s.do(ctx, http.MethodPatch, path, StatusRequest{IsActive: &active}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns one page of accounts. Admin only.
func (s *Session) ListUsers(ctx context.Context, p ListUsersParams) (*UserListResponse, error) {
	var out UserListResponse
	if err := s.do(ctx, http.MethodGet, "/v1/users?"+p.query().Encode(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportUsersCSV downloads matching accounts as CSV. Admin only.
func (s *Session) ExportUsersCSV(ctx context.Context, p ListUsersParams) ([]byte, error) {
	q := p.query()
	q.Set("format", "csv")

	resp, err := s.client.send(ctx, s.token, http.MethodGet, "/v1/users/export?"+q.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp, body)
	}
	return body, nil
}

// History lists the user's snapshots, newest first. Admin only.
func (s *Session) History(ctx context.Context, id string) ([]UserVersion, error) {
	var out []UserVersion
	path := "/v1/users/" + url.PathEscape(id) + "/history"
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Restore rolls the user's profile back to a snapshot. Admin only.
func (s *Session) Restore(ctx context.Context, id string, versionID int64) (*RestoreResponse, error) {
	var out RestoreResponse
	path := "/v1/users/" + url.PathEscape(id) + "/restore"
	if err := s.do(ctx, http.MethodPost, path, RestoreRequest{VersionID: versionID}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuditLogs queries the audit trail. Admin only.
func (s *Session) AuditLogs(ctx context.Context, q AuditQuery) (*AuditLogResponse, error) {
	v := url.Values{}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.PageIndex > 0 {
		v.Set("pageIndex", strconv.Itoa(q.PageIndex))
	}
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.Action != "" {
		v.Set("action", q.Action)
	}

	var out AuditLogResponse
	if err := s.do(ctx, http.MethodGet, "/v1/users/audit?"+v.Encode(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAvatar sends an image as the multipart field "avatar". Admins may
// upload for anyone, other users only for themselves.
func (s *Session) UploadAvatar(ctx context.Context, id, filename, contentType string, r io.Reader) (*AvatarResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="avatar"; filename=%q`, filename)}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to write form part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	path := "/v1/users/" + url.PathEscape(id) + "/avatar"
	resp, err := s.client.send(ctx, s.token, http.MethodPost, path, &buf, map[string]string{
		"Content-Type": mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}

	var out AvatarResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAvatar resets the avatar to the default image.
func (s *Session) DeleteAvatar(ctx context.Context, id string) (*AvatarResponse, error) {
	var out AvatarResponse
	path := "/v1/users/" + url.PathEscape(id) + "/avatar"
	if err := s.do(ctx, http.MethodDelete, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnrollTOTP starts TOTP enrollment for the caller.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.do(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTOTP confirms enrollment with a code from the authenticator.
func (s *Session) VerifyTOTP(ctx context.Context, code string) error {
	return s.do(ctx, http.MethodPost, "/v1/mfa/totp/verify", TOTPVerifyRequest{Code: code}, nil, http.StatusOK)
}

// DisableTOTP turns MFA off. A current code is required.
func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	return s.do(ctx, http.MethodDelete, "/v1/mfa/totp", TOTPVerifyRequest{Code: code}, nil, http.StatusOK)
}

func (p ListUsersParams) query() url.Values {
	v := url.Values{}
	if p.PageIndex > 0 {
		v.Set("pageIndex", strconv.Itoa(p.PageIndex))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.IsActive != nil {
		v.Set("isActive", strconv.FormatBool(*p.IsActive))
	}
	return v
}
