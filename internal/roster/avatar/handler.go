package avatar

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// Handler serves GET /avatars/{file}.
func Handler(s Storage) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		name := r.PathValue("file")
		if !validName(name) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Avatar not found")
			return
		}

		rc, info, err := Open(ctx, s, name)
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Avatar not found")
			return
		case err != nil:
			slogx.FromContext(ctx).Error("avatar read failed", slog.String("file", name), slog.Any("err", err))
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "An internal error occurred")
			return
		}
		defer rc.Close()

		ct := info.ContentType
		if ct == "" {
			ct = mime.TypeByExtension(filepath.Ext(name))
		}
		if ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		if info.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = io.Copy(w, rc)
	})
}
