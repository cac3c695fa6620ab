package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// AuthHandler handles registration and the session lifecycle.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register an account
//	@Description	Creates a non-admin account. The account starts at version 1 and the creation is audited as Register.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.RegisterRequest			true	"Account details"
//	@Success		201		{object}	rostersdk.User						"Created account"
//	@Failure		400		{object}	rostersdk.ValidationErrorResponse	"Invalid input or username/email taken"
//	@Failure		429		{object}	rostersdk.ErrorResponse				"Rate limit exceeded"
//	@Failure		500		{object}	rostersdk.ErrorResponse				"Internal server error"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	u, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in
//	@Description	Authenticates by email and password and issues a 12 hour session token. Accounts with MFA enabled must also send a TOTP code.
//	@Description	Five consecutive failures lock the account for five minutes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.LoginRequest				true	"Credentials"
//	@Success		200		{object}	rostersdk.LoginResponse				"Session token"
//	@Failure		400		{object}	rostersdk.ErrorResponse				"Invalid input or account locked"
//	@Failure		401		{object}	rostersdk.ErrorResponse				"Wrong credentials or TOTP code required"
//	@Failure		429		{object}	rostersdk.ErrorResponse				"Rate limit exceeded"
//	@Failure		500		{object}	rostersdk.ErrorResponse				"Internal server error"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	sess, err := h.AuthService.Login(r.Context(), service.LoginInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Code:     strings.TrimSpace(req.Code),
	})
	if err != nil {
		// A wrong code at login is a failed credential, not a bad request.
		if errors.Is(err, service.ErrInvalidTOTPCode) {
			httpx.WriteError(w, http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized, "Invalid TOTP code")
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.LoginResponse{
		Message:   "Login Successful.",
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      toUser(sess.User),
	})
}

// HandleLogout handles GET /v1/auth/logout
//
//	@Summary		Log out
//	@Description	Revokes the presented session token. Further requests with it are rejected.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	rostersdk.MessageResponse	"Token revoked"
//	@Failure		401	{object}	rostersdk.ErrorResponse		"Invalid or missing token"
//	@Failure		500	{object}	rostersdk.ErrorResponse		"Internal server error"
//	@Router			/v1/auth/logout [get].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized, "missing bearer token")
		return
	}
	if err := h.AuthService.Logout(ctx, claims); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("logged out", "jti", claims.ID)
	httpx.WriteJSON(w, http.StatusOK, rostersdk.MessageResponse{Message: "You are free to go!"})
}

// HandleSessionCheck handles GET /v1/auth/session-check
//
//	@Summary		Check the session
//	@Description	Returns the account behind the session token as currently stored.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	rostersdk.SessionResponse	"Current user"
//	@Failure		401	{object}	rostersdk.ErrorResponse		"Invalid or missing token"
//	@Router			/v1/auth/session-check [get].
func (h *AuthHandler) HandleSessionCheck(w http.ResponseWriter, r *http.Request) {
	u, ok := principalFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized, "missing bearer token")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rostersdk.SessionResponse{Message: "Logged in", User: toUser(u)})
}
