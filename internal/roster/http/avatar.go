package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

// multipartOverhead is allowed on top of the avatar limit for boundaries
// and part headers.
const multipartOverhead = 64 << 10

// AvatarHandler handles avatar upload and removal.
type AvatarHandler struct {
	AvatarService *service.AvatarService
}

// HandleUpload handles POST /v1/users/{id}/avatar
//
//	@Summary		Upload an avatar
//	@Description	Replaces the avatar with a JPG, PNG or GIF of at most 2MB sent as the multipart field "avatar".
//	@Description	Admins may change any avatar, other users only their own.
//	@Tags			Avatars
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string					true	"User ID"
//	@Param			avatar	formData	file					true	"Image file"
//	@Success		200		{object}	rostersdk.AvatarResponse	"New avatar path"
//	@Failure		400		{object}	rostersdk.ErrorResponse	"Missing, too large or unsupported file"
//	@Failure		401		{object}	rostersdk.ErrorResponse	"Invalid or missing token"
//	@Failure		403		{object}	rostersdk.ErrorResponse	"Not allowed to change this avatar"
//	@Failure		404		{object}	rostersdk.ErrorResponse	"User not found"
//	@Router			/v1/users/{id}/avatar [post].
func (h *AvatarHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.AvatarService.Limit()+multipartOverhead)

	file, hdr, err := r.FormFile("avatar")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeServiceError(w, r, service.ErrAvatarTooLarge)
			return
		}
		writeServiceError(w, r, service.ErrAvatarEmpty)
		return
	}
	defer file.Close()

	u, err := h.AvatarService.Upload(r.Context(), r.PathValue("id"), file, hdr.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rostersdk.AvatarResponse{
		AvatarPath: u.AvatarPath,
		Message:    "Avatar uploaded successfully",
	})
}

// HandleDelete handles DELETE /v1/users/{id}/avatar
//
//	@Summary		Remove an avatar
//	@Description	Resets the avatar to the default image and deletes the uploaded file.
//	@Tags			Avatars
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string						true	"User ID"
//	@Success		200	{object}	rostersdk.AvatarResponse	"Default avatar path"
//	@Failure		400	{object}	rostersdk.ErrorResponse		"User does not have a custom avatar"
//	@Failure		401	{object}	rostersdk.ErrorResponse		"Invalid or missing token"
//	@Failure		403	{object}	rostersdk.ErrorResponse		"Not allowed to change this avatar"
//	@Failure		404	{object}	rostersdk.ErrorResponse		"User not found"
//	@Router			/v1/users/{id}/avatar [delete].
func (h *AvatarHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u, err := h.AvatarService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rostersdk.AvatarResponse{
		AvatarPath: u.AvatarPath,
		Message:    "Avatar removed successfully",
	})
}
