package services

import (
	"context"
	"log/slog"
	"strings"

	"chat-workspace-service/internal/events"
	"chat-workspace-service/internal/models"
	"chat-workspace-service/internal/repositories/postgres"
	"chat-workspace-service/pkg/response"
)

// ServerService owns server and membership lifecycle, including the
// cascading deletion across channels, messages and members.
type ServerService struct {
	servers   *postgres.ServerRepository
	members   *postgres.MemberRepository
	validator *Validator
	publisher events.Publisher
}

func NewServerService(
	servers *postgres.ServerRepository,
	members *postgres.MemberRepository,
	validator *Validator,
	publisher events.Publisher,
) *ServerService {
	return &ServerService{
		servers:   servers,
		members:   members,
		validator: validator,
		publisher: publisher,
	}
}

// Create validates the name and description before any store write, then
// inserts the server, the creator's membership and the default "General"
// channel as one unit.
func (s *ServerService) Create(ctx context.Context, userID, name, description string) (*models.Server, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, response.NewError(response.KindServerNameEmpty)
	}
	if len(name) > models.ServerNameMaxLen {
		return nil, response.NewError(response.KindServerNameTooLong)
	}

	if verr := s.validator.Validate(ctx, Subject{UserID: userID}); verr != nil {
		return nil, verr
	}

	description = strings.TrimSpace(description)
	if len(description) > models.ServerDescMaxLen {
		return nil, response.NewError(response.KindServerDescriptionTooLong)
	}

	server := &models.Server{OwnerID: userID, Name: name, Description: description}
	if err := s.servers.CreateWithDefaults(ctx, server); err != nil {
		return nil, storeError(err)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.ServerCreated,
		ServerID: server.ID,
		UserID:   userID,
	}); err != nil {
		slog.Error("failed to publish server.created", "error", err)
	}

	return server, nil
}

// List resolves the user's member rows to servers. The set is de-duplicated
// by server id: duplicate memberships must not surface twice.
func (s *ServerService) List(ctx context.Context, userID string) ([]*models.Server, error) {
	if verr := s.validator.Validate(ctx, Subject{UserID: userID}); verr != nil {
		return nil, verr
	}

	memberships, err := s.members.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	seen := make(map[string]bool, len(memberships))
	servers := make([]*models.Server, 0, len(memberships))
	for _, m := range memberships {
		if seen[m.ServerID] {
			continue
		}
		seen[m.ServerID] = true

		server, err := s.servers.FindByID(ctx, m.ServerID)
		if err != nil {
			// A membership pointing at a missing server is stale cascade
			// residue, skip it.
			continue
		}
		servers = append(servers, server)
	}
	return servers, nil
}

// Delete destroys the server and everything in it. Only the owner may do
// this; generic membership is not enough.
func (s *ServerService) Delete(ctx context.Context, userID, serverID string) error {
	if verr := s.validator.Validate(ctx, Subject{UserID: userID}); verr != nil {
		return verr
	}

	server, err := s.servers.FindByID(ctx, serverID)
	if err != nil {
		return notFoundOr(response.KindUnknownServer, err)
	}
	if server.OwnerID != userID {
		return response.NewError(response.KindUserNotAuthorized)
	}

	if err := s.servers.DeleteCascade(ctx, serverID); err != nil {
		return storeError(err)
	}

	slog.Info("server deleted", "serverId", serverID, "ownerId", userID)

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.ServerDeleted,
		ServerID: serverID,
		UserID:   userID,
	}); err != nil {
		slog.Error("failed to publish server.deleted", "error", err)
	}

	return nil
}

// AddMember grants a user standing directly, outside the invite flow. Unlike
// invite redemption this path enforces the one-row-per-pair invariant.
func (s *ServerService) AddMember(ctx context.Context, userID, serverID string) (*models.Member, error) {
	if verr := s.validator.Validate(ctx, Subject{UserID: userID}); verr != nil {
		return nil, verr
	}
	if verr := s.validator.Validate(ctx, Subject{ServerID: serverID}); verr != nil {
		return nil, verr
	}

	exists, err := s.members.Exists(ctx, serverID, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if exists {
		return nil, response.NewError(response.KindMemberAlreadyExists)
	}

	member := &models.Member{ServerID: serverID, UserID: userID}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, storeError(err)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.MemberJoined,
		ServerID: serverID,
		UserID:   userID,
		EntityID: member.ID,
	}); err != nil {
		slog.Error("failed to publish member.joined", "error", err)
	}

	return member, nil
}

func (s *ServerService) ListMembers(ctx context.Context, serverID string) ([]*models.Member, error) {
	if verr := s.validator.Validate(ctx, Subject{ServerID: serverID}); verr != nil {
		return nil, verr
	}

	members, err := s.members.ListByServer(ctx, serverID)
	if err != nil {
		return nil, storeError(err)
	}
	return members, nil
}

// RemoveMember drops the user's standing in the server. The deletion is keyed
// on the (server, user) pair so it never touches the user's other servers.
func (s *ServerService) RemoveMember(ctx context.Context, userID, serverID string) error {
	if verr := s.validator.Validate(ctx, Subject{UserID: userID, ServerID: serverID}); verr != nil {
		return verr
	}

	if err := s.members.DeleteByServerAndUser(ctx, serverID, userID); err != nil {
		return storeError(err)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.MemberLeft,
		ServerID: serverID,
		UserID:   userID,
	}); err != nil {
		slog.Error("failed to publish member.left", "error", err)
	}

	return nil
}
