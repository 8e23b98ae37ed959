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

// ChannelService manages channels within a server, enforcing the per-server
// channel quota and name constraints.
type ChannelService struct {
	channels  *postgres.ChannelRepository
	servers   *postgres.ServerRepository
	validator *Validator
	publisher events.Publisher
}

func NewChannelService(
	channels *postgres.ChannelRepository,
	servers *postgres.ServerRepository,
	validator *Validator,
	publisher events.Publisher,
) *ChannelService {
	return &ChannelService{
		channels:  channels,
		servers:   servers,
		validator: validator,
		publisher: publisher,
	}
}

// Create inserts a text channel after checking standing and the per-server
// quota.
func (s *ChannelService) Create(ctx context.Context, userID, serverID, name string) (*models.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, response.NewError(response.KindChannelNameEmpty)
	}
	if len(name) > models.ChannelNameMaxLen {
		return nil, response.NewError(response.KindChannelNameTooLong)
	}

	if verr := s.validator.Validate(ctx, Subject{UserID: userID, ServerID: serverID}); verr != nil {
		return nil, verr
	}

	count, err := s.channels.CountByServer(ctx, serverID)
	if err != nil {
		return nil, storeError(err)
	}
	if count >= models.MaxChannelsPerServer {
		return nil, response.NewError(response.KindTooManyChannels)
	}

	channel := &models.Channel{ServerID: serverID, Name: name, Type: models.ChannelTypeText}
	if err := s.channels.Create(ctx, channel); err != nil {
		return nil, storeError(err)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.ChannelCreated,
		ServerID: serverID,
		UserID:   userID,
		EntityID: channel.ID,
	}); err != nil {
		slog.Error("failed to publish channel.created", "error", err)
	}

	return channel, nil
}

func (s *ChannelService) List(ctx context.Context, userID, serverID string) ([]*models.Channel, error) {
	if verr := s.validator.Validate(ctx, Subject{UserID: userID, ServerID: serverID}); verr != nil {
		return nil, verr
	}

	channels, err := s.channels.ListByServer(ctx, serverID)
	if err != nil {
		return nil, storeError(err)
	}
	return channels, nil
}

// Update patches only the supplied fields. At least one of name or type must
// be given, and only the server owner may update channels.
func (s *ChannelService) Update(ctx context.Context, userID, serverID, channelID string, name, channelType *string) error {
	if name == nil && channelType == nil {
		return response.NewError(response.KindChannelUnchanged)
	}

	fields := map[string]any{}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return response.NewError(response.KindChannelNameEmpty)
		}
		if len(trimmed) > models.ChannelNameMaxLen {
			return response.NewError(response.KindChannelNameTooLong)
		}
		fields["name"] = trimmed
	}
	if channelType != nil {
		if *channelType != models.ChannelTypeText && *channelType != models.ChannelTypeVocal {
			return response.NewError(response.KindChannelTypeInvalid)
		}
		fields["type"] = *channelType
	}

	if verr := s.validator.Validate(ctx, Subject{UserID: userID}); verr != nil {
		return verr
	}

	server, err := s.servers.FindByID(ctx, serverID)
	if err != nil {
		return notFoundOr(response.KindUnknownServer, err)
	}
	if _, err := s.channels.FindByID(ctx, channelID); err != nil {
		return notFoundOr(response.KindUnknownChannel, err)
	}
	if server.OwnerID != userID {
		return response.NewError(response.KindUserNotAuthorized)
	}

	if err := s.channels.Patch(ctx, channelID, fields); err != nil {
		return storeError(err)
	}
	return nil
}

// Delete removes the channel and every message in it, owner only.
func (s *ChannelService) Delete(ctx context.Context, userID, serverID, channelID string) error {
	if verr := s.validator.Validate(ctx, Subject{UserID: userID, ChannelID: channelID}); verr != nil {
		return verr
	}

	server, err := s.servers.FindByID(ctx, serverID)
	if err != nil {
		return notFoundOr(response.KindUnknownServer, err)
	}
	if server.OwnerID != userID {
		return response.NewError(response.KindUserNotAuthorized)
	}

	if err := s.channels.DeleteCascade(ctx, channelID); err != nil {
		return storeError(err)
	}

	slog.Info("channel deleted", "channelId", channelID, "serverId", serverID)

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.ChannelDeleted,
		ServerID: serverID,
		UserID:   userID,
		EntityID: channelID,
	}); err != nil {
		slog.Error("failed to publish channel.deleted", "error", err)
	}

	return nil
}
