package services

import (
	"context"
	"errors"

	"chat-workspace-service/internal/repositories/postgres"
	"chat-workspace-service/pkg/response"

	"gorm.io/gorm"
)

// Subject names the identifiers an operation was handed. Empty fields are
// skipped; MemberUserID overrides UserID for the membership check when the
// operation acts on someone other than the caller.
type Subject struct {
	UserID       string
	ServerID     string
	MemberUserID string
	ChannelID    string
}

// Validator is the single source of truth for standing: it confirms that the
// referenced entities exist and that the acting user is a member where one is
// required. Checks run in a fixed order so error precedence is deterministic:
// user, server, membership, channel. The first failing check wins.
type Validator struct {
	users    *postgres.UserRepository
	servers  *postgres.ServerRepository
	members  *postgres.MemberRepository
	channels *postgres.ChannelRepository
}

func NewValidator(
	users *postgres.UserRepository,
	servers *postgres.ServerRepository,
	members *postgres.MemberRepository,
	channels *postgres.ChannelRepository,
) *Validator {
	return &Validator{users: users, servers: servers, members: members, channels: channels}
}

func (v *Validator) Validate(ctx context.Context, sub Subject) *response.Error {
	if sub.UserID != "" {
		if _, err := v.users.FindByID(ctx, sub.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewError(response.KindUnknownUser)
			}
			return response.WrapError(response.KindInternal, err)
		}
	}

	if sub.ServerID != "" {
		if _, err := v.servers.FindByID(ctx, sub.ServerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewError(response.KindUnknownServer)
			}
			return response.WrapError(response.KindInternal, err)
		}
	}

	memberUserID := sub.MemberUserID
	if memberUserID == "" {
		memberUserID = sub.UserID
	}
	if memberUserID != "" && sub.ServerID != "" {
		isMember, err := v.members.Exists(ctx, sub.ServerID, memberUserID)
		if err != nil {
			return response.WrapError(response.KindInternal, err)
		}
		if !isMember {
			return response.NewError(response.KindUserNotMember)
		}
	}

	if sub.ChannelID != "" {
		if _, err := v.channels.FindByID(ctx, sub.ChannelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewError(response.KindUnknownChannel)
			}
			return response.WrapError(response.KindInternal, err)
		}
	}

	return nil
}
