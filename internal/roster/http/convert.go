package http

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

func toUser(u domain.User) rostersdk.User {
	return rostersdk.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Name:         u.Name,
		IsAdmin:      u.IsAdmin,
		AvatarPath:   u.AvatarPath,
		MFAEnabled:   u.MFAEnabled(),
		LastLogin:    u.LastLoginAt,
		CreateDate:   u.CreatedAt,
		ModifiedDate: u.UpdatedAt,
	}
}

func toListItem(u domain.User, now time.Time) rostersdk.UserListItem {
	return rostersdk.UserListItem{
		User:       toUser(u),
		LockoutEnd: u.LockoutEnd,
		IsActive:   u.IsActive(now),
	}
}

func toVersion(v domain.UserVersion) rostersdk.UserVersion {
	return rostersdk.UserVersion{
		VersionID:     v.ID,
		UserID:        v.UserID,
		Username:      v.Username,
		Email:         v.Email,
		Name:          v.Name,
		IsAdmin:       v.IsAdmin,
		VersionDate:   v.CreatedAt,
		VersionNumber: v.VersionNumber,
	}
}

// toAuditLog embeds the changes as a JSON object rather than a string.
func toAuditLog(l domain.AuditLog) (rostersdk.AuditLog, error) {
	changes, err := json.Marshal(l.Changes)
	if err != nil {
		return rostersdk.AuditLog{}, err
	}
	return rostersdk.AuditLog{
		ID:         l.ID,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		UserID:     l.ActorID,
		UserName:   l.ActorName,
		Changes:    changes,
		Timestamp:  l.CreatedAt,
	}, nil
}
