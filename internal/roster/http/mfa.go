package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// MFAHandler handles all MFA-related endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the caller. MFA is not enforced until the enrollment is verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	rostersdk.TOTPEnrollResponse	"TOTP secret and otpauth URI"
//	@Failure		400	{object}	rostersdk.ErrorResponse			"MFA already enabled"
//	@Failure		401	{object}	rostersdk.ErrorResponse			"Invalid or missing token"
//	@Failure		500	{object}	rostersdk.ErrorResponse			"Internal server error"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	enrollment, err := h.MFAService.EnrollTOTP(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.TOTPEnrollResponse{
		Secret: enrollment.Secret,
		URI:    enrollment.URI,
	})
}

// HandleVerify handles POST /v1/mfa/totp/verify
//
//	@Summary		Verify TOTP code and enable MFA
//	@Description	Confirms the pending enrollment. Logins require a code from then on.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.TOTPVerifyRequest	true	"TOTP code"
//	@Success		200		{object}	rostersdk.MessageResponse	"MFA enabled"
//	@Failure		400		{object}	rostersdk.ErrorResponse		"Invalid TOTP code or no pending enrollment"
//	@Failure		401		{object}	rostersdk.ErrorResponse		"Invalid or missing token"
//	@Failure		500		{object}	rostersdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/totp/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req rostersdk.TOTPVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	if err := h.MFAService.VerifyTOTP(ctx, userID, strings.TrimSpace(req.Code)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("MFA enabled", "user_id", userID)
	httpx.WriteJSON(w, http.StatusOK, rostersdk.MessageResponse{Message: "MFA enabled"})
}

// HandleDisable handles DELETE /v1/mfa/totp
//
//	@Summary		Disable TOTP MFA
//	@Description	Turns MFA off. A current code is required.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.TOTPVerifyRequest	true	"TOTP code"
//	@Success		200		{object}	rostersdk.MessageResponse	"MFA disabled"
//	@Failure		400		{object}	rostersdk.ErrorResponse		"Invalid TOTP code or MFA not enabled"
//	@Failure		401		{object}	rostersdk.ErrorResponse		"Invalid or missing token"
//	@Failure		500		{object}	rostersdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/totp [delete].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req rostersdk.TOTPVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	if err := h.MFAService.DisableTOTP(ctx, userID, strings.TrimSpace(req.Code)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("MFA disabled", "user_id", userID)
	httpx.WriteJSON(w, http.StatusOK, rostersdk.MessageResponse{Message: "MFA disabled"})
}
