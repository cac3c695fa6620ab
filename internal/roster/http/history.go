package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

// HistoryHandler serves version history, restore and the audit trail.
type HistoryHandler struct {
	HistoryService *service.HistoryService
}

// HandleHistory handles GET /v1/users/{id}/history
//
//	@Summary		List a user's versions
//	@Description	Returns every profile snapshot of the user, newest first.
//	@Tags			History
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{array}		rostersdk.UserVersion	"Snapshots"
//	@Failure		401	{object}	rostersdk.ErrorResponse	"Invalid or missing token"
//	@Failure		403	{object}	rostersdk.ErrorResponse	"Administrator access is required"
//	@Failure		404	{object}	rostersdk.ErrorResponse	"User not found"
//	@Router			/v1/users/{id}/history [get].
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	vs, err := h.HistoryService.GetUserVersions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]rostersdk.UserVersion, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVersion(v))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRestore handles POST /v1/users/{id}/restore
//
//	@Summary		Restore a version
//	@Description	Copies the profile fields of a snapshot back onto the user. The restore writes a new snapshot and a Restore audit entry.
//	@Tags			History
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"User ID"
//	@Param			request	body		rostersdk.RestoreRequest			true	"Snapshot to restore"
//	@Success		200		{object}	rostersdk.RestoreResponse			"Restored user"
//	@Failure		400		{object}	rostersdk.ValidationErrorResponse	"Invalid input or restored username/email taken"
//	@Failure		401		{object}	rostersdk.ErrorResponse				"Invalid or missing token"
//	@Failure		403		{object}	rostersdk.ErrorResponse				"Administrator access is required"
//	@Failure		404		{object}	rostersdk.ErrorResponse				"User or version not found"
//	@Router			/v1/users/{id}/restore [post].
func (h *HistoryHandler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.RestoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	res, err := h.HistoryService.RestoreUserVersion(r.Context(), r.PathValue("id"), req.VersionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.RestoreResponse{
		Message:             "User restored to version " + strconv.Itoa(res.RestoredFromVersion),
		RestoredFromVersion: res.RestoredFromVersion,
		User:                toUser(res.User),
	})
}

// HandleAudit handles GET /v1/users/audit
//
//	@Summary		Query the audit trail
//	@Description	Returns audit entries newest first. userId narrows to one user's entries, action matches exactly.
//	@Tags			History
//	@Security		BearerAuth
//	@Produce		json
//	@Param			pageIndex	query		int									false	"Zero-based page"
//	@Param			pageSize	query		int									false	"Page size, default 10, max 100"
//	@Param			userId		query		string								false	"Entity user ID"
//	@Param			action		query		string								false	"Exact action, e.g. Update"
//	@Success		200			{object}	rostersdk.AuditLogResponse			"Page of entries"
//	@Failure		400			{object}	rostersdk.ValidationErrorResponse	"Invalid query"
//	@Failure		401			{object}	rostersdk.ErrorResponse				"Invalid or missing token"
//	@Failure		403			{object}	rostersdk.ErrorResponse				"Administrator access is required"
//	@Router			/v1/users/audit [get].
func (h *HistoryHandler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	details := map[string]string{}
	query := service.AuditQuery{
		PageIndex: queryInt(q, details, "pageIndex"),
		PageSize:  queryInt(q, details, "pageSize"),
		UserID:    strings.TrimSpace(q.Get("userId")),
		Action:    strings.TrimSpace(q.Get("action")),
	}
	if len(details) > 0 {
		writeValidation(w, details)
		return
	}

	res, err := h.HistoryService.GetAuditLogs(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logs := make([]rostersdk.AuditLog, 0, len(res.Logs))
	for _, l := range res.Logs {
		out, err := toAuditLog(l)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		logs = append(logs, out)
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(res.TotalCount))
	httpx.WriteJSON(w, http.StatusOK, rostersdk.AuditLogResponse{Logs: logs, TotalCount: res.TotalCount})
}
