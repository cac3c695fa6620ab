package http

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

// UsersHandler handles the admin user management endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleGet handles GET /v1/users/{id}
//
//	@Summary		Get a user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{object}	rostersdk.User			"User"
//	@Failure		401	{object}	rostersdk.ErrorResponse	"Invalid or missing token"
//	@Failure		403	{object}	rostersdk.ErrorResponse	"Administrator access is required"
//	@Failure		404	{object}	rostersdk.ErrorResponse	"User not found"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleCreate handles POST /v1/users
//
//	@Summary		Create a user
//	@Description	Creates an account, writes version 1 and audits the creation.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.CreateUserRequest			true	"Account details"
//	@Success		201		{object}	rostersdk.User						"Created user"
//	@Failure		400		{object}	rostersdk.ValidationErrorResponse	"Invalid input or username/email taken"
//	@Failure		401		{object}	rostersdk.ErrorResponse				"Invalid or missing token"
//	@Failure		403		{object}	rostersdk.ErrorResponse				"Administrator access is required"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	u, err := h.UserService.Create(r.Context(), service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

// HandleUpdate handles PUT /v1/users/{id}
//
//	@Summary		Update a user
//	@Description	Applies the fields present in the body. An empty or missing password leaves the password unchanged.
//	@Description	Every update appends a version snapshot and an audit entry.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"User ID"
//	@Param			request	body		rostersdk.UpdateUserRequest			true	"Fields to change"
//	@Success		200		{object}	rostersdk.User						"Updated user"
//	@Failure		400		{object}	rostersdk.ValidationErrorResponse	"Invalid input or username/email taken"
//	@Failure		401		{object}	rostersdk.ErrorResponse				"Invalid or missing token"
//	@Failure		403		{object}	rostersdk.ErrorResponse				"Administrator access is required"
//	@Failure		404		{object}	rostersdk.ErrorResponse				"User not found"
//	@Router			/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	u, err := h.UserService.Update(r.Context(), r.PathValue("id"), service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleDelete handles DELETE /v1/users/{id}
//
//	@Summary		Delete a user
//	@Description	Deletes the account and its version history. Audit entries are kept. Admins cannot delete themselves.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string						true	"User ID"
//	@Success		200	{object}	rostersdk.MessageResponse	"User deleted"
//	@Failure		400	{object}	rostersdk.ErrorResponse		"Cannot delete own account or last administrator"
//	@Failure		401	{object}	rostersdk.ErrorResponse		"Invalid or missing token"
//	@Failure		403	{object}	rostersdk.ErrorResponse		"Administrator access is required"
//	@Failure		404	{object}	rostersdk.ErrorResponse		"User not found"
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rostersdk.MessageResponse{Message: "User deleted successfully"})
}

// HandleStatus handles PATCH /v1/users/{id}/status
//
//	@Summary		Activate or deactivate a user
//	@Description	Deactivation locks the account indefinitely, activation clears the lockout. The change is versioned and audited.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"User ID"
//	@Param			request	body		rostersdk.StatusRequest				true	"Desired status"
//	@Success		200		{object}	rostersdk.StatusResponse			"New status"
//	@Failure		400		{object}	rostersdk.ValidationErrorResponse	"Invalid input or own account"
//	@Failure		401		{object}	rostersdk.ErrorResponse				"Invalid or missing token"
//	@Failure		403		{object}	rostersdk.ErrorResponse				"Administrator access is required"
//	@Failure		404		{object}	rostersdk.ErrorResponse				"User not found"
//	@Router			/v1/users/{id}/status [patch].
func (h *UsersHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	u, err := h.UserService.ToggleStatus(r.Context(), r.PathValue("id"), *req.IsActive)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := "User deactivated successfully"
	if *req.IsActive {
		msg = "User activated successfully"
	}
	httpx.WriteJSON(w, http.StatusOK, rostersdk.StatusResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		IsActive:   u.IsActive(h.UserService.CurrentTime()),
		LockoutEnd: u.LockoutEnd,
		Message:    msg,
	})
}

// HandleList handles GET /v1/users
//
//	@Summary		List users
//	@Description	Pages through accounts, oldest first. search matches username, email or name case-insensitively.
//	@Description	The unpaged match count is returned in the body and in X-Total-Count.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			pageIndex	query		int									false	"Zero-based page (alias: page)"
//	@Param			pageSize	query		int									false	"Page size, default 10, max 100"
//	@Param			search		query		string								false	"Substring filter"
//	@Param			isActive	query		bool								false	"Status filter"
//	@Success		200			{object}	rostersdk.UserListResponse			"Page of users"
//	@Failure		400			{object}	rostersdk.ValidationErrorResponse	"Invalid query"
//	@Failure		401			{object}	rostersdk.ErrorResponse				"Invalid or missing token"
//	@Failure		403			{object}	rostersdk.ErrorResponse				"Administrator access is required"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	details := map[string]string{}
	query := service.ListQuery{
		PageIndex: queryInt(q, details, "pageIndex", "page"),
		PageSize:  queryInt(q, details, "pageSize"),
		Search:    strings.TrimSpace(q.Get("search")),
		IsActive:  queryBool(q, details, "isActive"),
	}
	if len(details) > 0 {
		writeValidation(w, details)
		return
	}

	res, err := h.UserService.List(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	now := h.UserService.CurrentTime()
	items := make([]rostersdk.UserListItem, 0, len(res.Users))
	for _, u := range res.Users {
		items = append(items, toListItem(u, now))
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(res.TotalCount))
	httpx.WriteJSON(w, http.StatusOK, rostersdk.UserListResponse{Users: items, TotalCount: res.TotalCount})
}

// HandleExport handles GET /v1/users/export
//
//	@Summary		Export users
//	@Description	Downloads all accounts matching the filters. Only csv is supported.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		text/csv
//	@Param			format		query		string					false	"Export format (csv)"
//	@Param			search		query		string					false	"Substring filter"
//	@Param			isActive	query		bool					false	"Status filter"
//	@Success		200			{file}		file					"CSV file"
//	@Failure		400			{object}	rostersdk.ErrorResponse	"Unsupported format or invalid query"
//	@Failure		401			{object}	rostersdk.ErrorResponse	"Invalid or missing token"
//	@Failure		403			{object}	rostersdk.ErrorResponse	"Administrator access is required"
//	@Router			/v1/users/export [get].
func (h *UsersHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	details := map[string]string{}
	query := service.ExportQuery{
		Format:   q.Get("format"),
		Search:   strings.TrimSpace(q.Get("search")),
		IsActive: queryBool(q, details, "isActive"),
	}
	if len(details) > 0 {
		writeValidation(w, details)
		return
	}

	// Buffered so a failure halfway through still yields an error status.
	var buf bytes.Buffer
	if err := h.UserService.Export(r.Context(), &buf, query); err != nil {
		writeServiceError(w, r, err)
		return
	}

	filename := "users_" + h.UserService.CurrentTime().Format("20060102_150405") + ".csv"
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
