package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/avatar"
	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"github.com/google/uuid"
)

// DefaultAvatarMaxBytes is the upload limit when none is configured.
const DefaultAvatarMaxBytes = 2 << 20

var (
	ErrAvatarEmpty    = errors.New("no file uploaded")
	ErrAvatarTooLarge = errors.New("file is too large")
	ErrAvatarType     = errors.New("invalid file type")
	ErrNoCustomAvatar = errors.New("user does not have a custom avatar")
)

// avatarTypes maps accepted content types to stored file extensions.
var avatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

type AvatarService struct {
	Store      store.Store
	Versioning *VersioningService
	Storage    avatar.Storage
	MaxBytes   int64
	Now        func() time.Time
}

// Limit is the maximum accepted avatar size in bytes.
func (s *AvatarService) Limit() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return DefaultAvatarMaxBytes
}

// Upload stores a new avatar for userID. The file is written before the
// transaction and removed again if the transaction fails; the previous
// custom avatar is removed only after commit. declaredType is the
// client's Content-Type and must agree with the sniffed bytes.
func (s *AvatarService) Upload(ctx context.Context, userID string, r io.Reader, declaredType string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	data, err := io.ReadAll(io.LimitReader(r, s.Limit()+1))
	if err != nil {
		return domain.User{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return domain.User{}, ErrAvatarEmpty
	}
	if int64(len(data)) > s.Limit() {
		return domain.User{}, ErrAvatarTooLarge
	}

	ct, ext, err := sniffAvatar(data, declaredType)
	if err != nil {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	name := userID + "_" + uuid.NewString() + ext
	if err := s.Storage.Put(ctx, name, bytes.NewReader(data), int64(len(data)), ct); err != nil {
		return domain.User{}, fmt.Errorf("store avatar: %w", err)
	}

	now := nowUTC(s.Now)
	var u domain.User
	var oldPath string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		oldPath = u.AvatarPath
		u.AvatarPath = avatar.PathOf(name)
		u.UpdatedAt = now
		if err := tx.Users().SetAvatarPath(ctx, userID, u.AvatarPath, now); err != nil {
			return fmt.Errorf("set avatar path: %w", err)
		}

		return s.Versioning.record(ctx, tx, u, domain.ActionUpdateAvatar,
			map[string]any{"avatarPath": oldPath},
			map[string]any{"avatarPath": u.AvatarPath},
		)
	})
	if err != nil {
		if derr := s.Storage.Delete(context.WithoutCancel(ctx), name); derr != nil {
			l.Warn("failed to remove avatar after rollback", slog.String("file", name), slog.Any("err", derr))
		}
		return domain.User{}, err
	}
	committed(domain.ActionUpdateAvatar)

	s.removeOld(ctx, oldPath)
	l.Info("avatar updated", slog.String("target_id", userID), slog.String("path", u.AvatarPath))
	return u, nil
}

// Delete resets userID to the default avatar and removes the file.
func (s *AvatarService) Delete(ctx context.Context, userID string) (domain.User, error) {
	now := nowUTC(s.Now)
	var u domain.User
	var oldPath string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if !u.HasCustomAvatar() {
			return ErrNoCustomAvatar
		}

		oldPath = u.AvatarPath
		u.AvatarPath = domain.DefaultAvatarPath
		u.UpdatedAt = now
		if err := tx.Users().SetAvatarPath(ctx, userID, u.AvatarPath, now); err != nil {
			return fmt.Errorf("set avatar path: %w", err)
		}

		return s.Versioning.record(ctx, tx, u, domain.ActionDeleteAvatar,
			map[string]any{"avatarPath": oldPath},
			map[string]any{"avatarPath": u.AvatarPath},
		)
	})
	if err != nil {
		return domain.User{}, err
	}
	committed(domain.ActionDeleteAvatar)

	s.removeOld(ctx, oldPath)
	slogx.FromContext(ctx).Info("avatar deleted", slog.String("target_id", userID))
	return u, nil
}

// removeOld deletes a replaced avatar file. The default image is kept.
func (s *AvatarService) removeOld(ctx context.Context, path string) {
	if path == "" || path == domain.DefaultAvatarPath {
		return
	}
	name, ok := avatar.NameOf(path)
	if !ok {
		return
	}
	if err := s.Storage.Delete(context.WithoutCancel(ctx), name); err != nil {
		slogx.FromContext(ctx).Warn("failed to remove replaced avatar", slog.String("file", name), slog.Any("err", err))
	}
}

// sniffAvatar returns the content type and extension of data. The sniffed
// type must be an accepted image type and match declared when given.
func sniffAvatar(data []byte, declared string) (string, string, error) {
	ct := http.DetectContentType(data)
	ext, ok := avatarTypes[ct]
	if !ok {
		return "", "", ErrAvatarType
	}
	if declared != "" {
		mt, _, err := mime.ParseMediaType(declared)
		if err != nil {
			return "", "", ErrAvatarType
		}
		if mt == "image/jpg" || mt == "image/pjpeg" {
			mt = "image/jpeg"
		}
		if mt != ct && mt != "application/octet-stream" {
			return "", "", ErrAvatarType
		}
	}
	return ct, ext, nil
}
