package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aussiebroadwan/roster/internal/roster/avatar"
	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	gifBytes = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
)

func TestUploadAvatarReplacesPreviousFile(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, ctx := e.seedAdmin(t)
	u := e.createUser(t, ctx, "uma", "uma@x.com", "")

	first, err := e.avatarSv.Upload(ctx, u.ID, bytes.NewReader(pngBytes), "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first.AvatarPath, "/avatars/"+u.ID+"_"))
	require.True(t, strings.HasSuffix(first.AvatarPath, ".png"))

	firstName, ok := avatar.NameOf(first.AvatarPath)
	require.True(t, ok)
	rc, _, err := e.avatars.Get(ctx, firstName)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	second, err := e.avatarSv.Upload(ctx, u.ID, bytes.NewReader(gifBytes), "image/gif")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(second.AvatarPath, ".gif"))

	_, _, err = e.avatars.Get(ctx, firstName)
	require.ErrorIs(t, err, avatar.ErrNotFound)

	logs := e.auditFor(t, u.ID)
	require.Equal(t, domain.ActionUpdateAvatar, logs[0].Action)
	require.Equal(t, first.AvatarPath, logs[0].Changes.Old["avatarPath"])
	require.Equal(t, second.AvatarPath, logs[0].Changes.New["avatarPath"])
	require.Len(t, e.versionsOf(t, u.ID), 3)
}

func TestUploadAvatarRejectionsKeepPath(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.avatarSv.MaxBytes = 64
	_, ctx := e.seedAdmin(t)
	u := e.createUser(t, ctx, "vera", "vera@x.com", "")

	tests := []struct {
		name     string
		body     []byte
		declared string
		want     error
	}{
		{"too large", append(bytes.Clone(pngBytes), make([]byte, 64)...), "image/png", service.ErrAvatarTooLarge},
		{"not an image", []byte("plain text, not an image"), "image/png", service.ErrAvatarType},
		{"declared type disagrees", pngBytes, "image/gif", service.ErrAvatarType},
		{"empty", nil, "image/png", service.ErrAvatarEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.avatarSv.Upload(ctx, u.ID, bytes.NewReader(tt.body), tt.declared)
			require.ErrorIs(t, err, tt.want)
		})
	}

	got, err := e.users.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultAvatarPath, got.AvatarPath)
	require.Len(t, e.versionsOf(t, u.ID), 1)
}

func TestUploadAvatarUnknownUser(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, err := e.avatarSv.Upload(context.Background(), "missing", bytes.NewReader(pngBytes), "image/png")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

// listingStorage records deletes.
type listingStorage struct {
	avatar.Storage
	deleted []string
}

func (s *listingStorage) Delete(ctx context.Context, name string) error {
	s.deleted = append(s.deleted, name)
	return s.Storage.Delete(ctx, name)
}

func TestUploadAvatarRemovesFileWhenTxFails(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	e := newEnvWithStore(t, st)
	_, ctx := e.seedAdmin(t)
	u := e.createUser(t, ctx, "wes", "wes@x.com", "")

	broken := newEnvWithStore(t, brokenAuditStore{st})
	spy := &listingStorage{Storage: broken.avatars}
	broken.avatarSv.Storage = spy

	_, err := broken.avatarSv.Upload(ctx, u.ID, bytes.NewReader(pngBytes), "image/png")
	require.True(t, errors.Is(err, errAuditDown))
	require.Len(t, spy.deleted, 1)

	_, _, err = broken.avatars.Get(ctx, spy.deleted[0])
	require.ErrorIs(t, err, avatar.ErrNotFound)

	got, err := e.users.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultAvatarPath, got.AvatarPath)
}

func TestDeleteAvatar(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, ctx := e.seedAdmin(t)
	u := e.createUser(t, ctx, "xena", "xena@x.com", "")

	_, err := e.avatarSv.Delete(ctx, u.ID)
	require.ErrorIs(t, err, service.ErrNoCustomAvatar)

	up, err := e.avatarSv.Upload(ctx, u.ID, bytes.NewReader(pngBytes), "")
	require.NoError(t, err)
	name, _ := avatar.NameOf(up.AvatarPath)

	got, err := e.avatarSv.Delete(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultAvatarPath, got.AvatarPath)

	_, _, err = e.avatars.Get(ctx, name)
	require.ErrorIs(t, err, avatar.ErrNotFound)

	logs := e.auditFor(t, u.ID)
	require.Equal(t, domain.ActionDeleteAvatar, logs[0].Action)
}

func TestDeleteUserRemovesCustomAvatar(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, ctx := e.seedAdmin(t)
	u := e.createUser(t, ctx, "yuri", "yuri@x.com", "")

	up, err := e.avatarSv.Upload(ctx, u.ID, bytes.NewReader(pngBytes), "image/png")
	require.NoError(t, err)
	name, _ := avatar.NameOf(up.AvatarPath)

	require.NoError(t, e.users.Delete(ctx, u.ID))
	_, _, err = e.avatars.Get(ctx, name)
	require.ErrorIs(t, err, avatar.ErrNotFound)
}
