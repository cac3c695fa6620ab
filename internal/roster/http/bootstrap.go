package http

import (
	"net/http"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the first administrator
//	@Description	Creates the first admin account. Only available when a bootstrap token is configured, and only while no administrator exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string								true	"Bootstrap token"
//	@Param			request				body		rostersdk.BootstrapRequest			true	"Administrator account"
//	@Success		201					{object}	rostersdk.BootstrapResponse			"Administrator created"
//	@Failure		400					{object}	rostersdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401					{object}	rostersdk.ErrorResponse				"Missing or invalid bootstrap token, or already bootstrapped"
//	@Failure		404					{object}	rostersdk.ErrorResponse				"Bootstrap not enabled"
//	@Failure		500					{object}	rostersdk.ErrorResponse				"Internal server error"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	if h.BootstrapService.Token == "" {
		writeServiceError(w, r, service.ErrBootstrapDisabled)
		return
	}

	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized,
			"Bootstrap token is required in X-Bootstrap-Token header")
		return
	}

	var req rostersdk.BootstrapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	u, err := h.BootstrapService.Bootstrap(r.Context(), token, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, rostersdk.BootstrapResponse{
		Message: "Administrator created",
		User:    toUser(u),
	})
}
