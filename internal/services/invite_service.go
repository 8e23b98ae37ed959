package services

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"time"

	"chat-workspace-service/internal/events"
	"chat-workspace-service/internal/models"
	"chat-workspace-service/internal/repositories/postgres"
	"chat-workspace-service/pkg/response"
)

const (
	inviteCodeLength  = 12
	inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// InviteService issues collision-free invite codes and redeems them into
// membership records under expiry and use-limit rules.
type InviteService struct {
	invites   *postgres.InviteCodeRepository
	members   *postgres.MemberRepository
	servers   *postgres.ServerRepository
	validator *Validator
	publisher events.Publisher
}

func NewInviteService(
	invites *postgres.InviteCodeRepository,
	members *postgres.MemberRepository,
	servers *postgres.ServerRepository,
	validator *Validator,
	publisher events.Publisher,
) *InviteService {
	return &InviteService{
		invites:   invites,
		members:   members,
		servers:   servers,
		validator: validator,
		publisher: publisher,
	}
}

// Issue validates the creator's standing, then generates a unique code and
// persists the invite with zero uses. maxUses <= 0 means unlimited; a nil
// expiresAt never expires.
func (s *InviteService) Issue(ctx context.Context, serverID, creatorID string, maxUses int, expiresAt *time.Time) (string, error) {
	if verr := s.validator.Validate(ctx, Subject{UserID: creatorID, ServerID: serverID}); verr != nil {
		return "", verr
	}

	code, err := s.generateCode(ctx)
	if err != nil {
		return "", storeError(err)
	}

	if maxUses < 0 {
		maxUses = 0
	}

	invite := &models.InviteCode{
		ServerID:  serverID,
		CreatorID: creatorID,
		Code:      code,
		Uses:      0,
		MaxUses:   maxUses,
		ExpiresAt: expiresAt,
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return "", storeError(err)
	}

	slog.Info("invite code issued", "serverId", serverID, "creatorId", creatorID)
	return code, nil
}

// Redeem turns a code into a membership. Validity and limits are checked
// before membership is granted, and the use counter is incremented only after
// the member insert succeeds, so a failed insert never consumes a use. No
// duplicate-membership check is performed: redeeming twice creates two member
// rows.
func (s *InviteService) Redeem(ctx context.Context, code, userID string) error {
	invite, err := s.invites.FindByCode(ctx, code)
	if err != nil {
		return notFoundOr(response.KindInvalidInviteCode, err)
	}

	if invite.ExpiresAt != nil && invite.ExpiresAt.Before(time.Now()) {
		return response.NewError(response.KindInviteCodeExpired)
	}
	if invite.MaxUses > 0 && invite.Uses >= invite.MaxUses {
		return response.NewError(response.KindInviteCodeMaxUsesExceeded)
	}

	if _, err := s.servers.FindByID(ctx, invite.ServerID); err != nil {
		return notFoundOr(response.KindUnknownServer, err)
	}

	member := &models.Member{ServerID: invite.ServerID, UserID: userID}
	if err := s.members.Create(ctx, member); err != nil {
		return storeError(err)
	}

	if err := s.invites.IncrementUses(ctx, invite.ID); err != nil {
		return storeError(err)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.MemberJoined,
		ServerID: invite.ServerID,
		UserID:   userID,
		EntityID: member.ID,
	}); err != nil {
		slog.Error("failed to publish member.joined", "error", err)
	}

	return nil
}

// generateCode draws 12-character uppercase-alphanumeric codes until the
// store holds no invite with that code. The 36^12 space makes collisions
// astronomically rare, but the existence check is never skipped.
func (s *InviteService) generateCode(ctx context.Context) (string, error) {
	for {
		code, err := randomCode(inviteCodeLength)
		if err != nil {
			return "", err
		}

		exists, err := s.invites.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(inviteCodeCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = inviteCodeCharset[n.Int64()]
	}
	return string(buf), nil
}
