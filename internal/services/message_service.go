package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"chat-workspace-service/internal/events"
	"chat-workspace-service/internal/models"
	"chat-workspace-service/internal/repositories/postgres"
	"chat-workspace-service/pkg/response"
)

// MessageService drives the message state machine: Active, Active (modified),
// Deleted. Deleted is terminal; no operation leaves it.
type MessageService struct {
	messages  *postgres.MessageRepository
	users     *postgres.UserRepository
	validator *Validator
	publisher events.Publisher
}

func NewMessageService(
	messages *postgres.MessageRepository,
	users *postgres.UserRepository,
	validator *Validator,
	publisher events.Publisher,
) *MessageService {
	return &MessageService{
		messages:  messages,
		users:     users,
		validator: validator,
		publisher: publisher,
	}
}

func validateContent(content string) (string, *response.Error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", response.NewError(response.KindMessageEmpty)
	}
	if len(content) > models.MessageContentMaxLen {
		return "", response.NewError(response.KindMessageTooLong)
	}
	return content, nil
}

// Send inserts a new active message after checking content constraints and
// the full standing chain.
func (s *MessageService) Send(ctx context.Context, userID, serverID, channelID, content string) (*models.Message, error) {
	content, verr := validateContent(content)
	if verr != nil {
		return nil, verr
	}

	if verr := s.validator.Validate(ctx, Subject{UserID: userID, ServerID: serverID, ChannelID: channelID}); verr != nil {
		return nil, verr
	}

	message := &models.Message{
		ChannelID:  channelID,
		UserID:     userID,
		Content:    content,
		Modified:   false,
		ModifiedAt: nil,
		Deleted:    false,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, storeError(err)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.MessageSent,
		ServerID: serverID,
		UserID:   userID,
		EntityID: message.ID,
	}); err != nil {
		slog.Error("failed to publish message.sent", "error", err)
	}

	return message, nil
}

// List fetches the most recent messages (bounded window, no pagination),
// resolves each author's public profile and returns the batch oldest-first
// for stable chronological display.
func (s *MessageService) List(ctx context.Context, userID, serverID, channelID string) ([]*models.MessageWithAuthor, error) {
	if verr := s.validator.Validate(ctx, Subject{UserID: userID, ServerID: serverID, ChannelID: channelID}); verr != nil {
		return nil, verr
	}

	messages, err := s.messages.ListRecentByChannel(ctx, channelID, models.MessageWindowSize)
	if err != nil {
		return nil, storeError(err)
	}

	authorIDs := make([]string, 0, len(messages))
	for _, m := range messages {
		authorIDs = append(authorIDs, m.UserID)
	}
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, storeError(err)
	}

	// The store returned newest-first; walk backwards to hand out
	// oldest-first.
	enriched := make([]*models.MessageWithAuthor, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		item := &models.MessageWithAuthor{Message: *m}
		if author, ok := authors[m.UserID]; ok {
			item.Username = author.Username
			item.Picture = author.Picture
		}
		enriched = append(enriched, item)
	}
	return enriched, nil
}

// Edit changes the content of an active message. Only the author may edit,
// deleted messages reject all edits, and an edit that does not change the
// trimmed content is rejected rather than silently accepted.
func (s *MessageService) Edit(ctx context.Context, userID, serverID, channelID, messageID, content string) error {
	content, verr := validateContent(content)
	if verr != nil {
		return verr
	}

	if verr := s.validator.Validate(ctx, Subject{UserID: userID, ServerID: serverID, ChannelID: channelID}); verr != nil {
		return verr
	}

	message, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return notFoundOr(response.KindUnknownMessage, err)
	}
	if message.Deleted {
		return response.NewError(response.KindMessageDeleted)
	}
	if message.UserID != userID {
		return response.NewError(response.KindUserNotAuthorized)
	}
	if message.Content == content {
		return response.NewError(response.KindMessageUnchanged)
	}

	now := time.Now()
	fields := map[string]any{
		"content":     content,
		"modified":    true,
		"modified_at": &now,
	}
	if err := s.messages.Patch(ctx, messageID, fields); err != nil {
		return storeError(err)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.MessageUpdated,
		ServerID: serverID,
		UserID:   userID,
		EntityID: messageID,
	}); err != nil {
		slog.Error("failed to publish message.updated", "error", err)
	}

	return nil
}

// Remove soft-deletes the message. The row persists with its content; only
// the deleted flag and the modification timestamp change.
func (s *MessageService) Remove(ctx context.Context, userID, serverID, channelID, messageID string) error {
	if verr := s.validator.Validate(ctx, Subject{UserID: userID, ServerID: serverID, ChannelID: channelID}); verr != nil {
		return verr
	}

	message, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return notFoundOr(response.KindUnknownMessage, err)
	}
	if message.Deleted {
		return response.NewError(response.KindMessageDeleted)
	}
	if message.UserID != userID {
		return response.NewError(response.KindUserNotAuthorized)
	}

	now := time.Now()
	fields := map[string]any{
		"deleted":     true,
		"modified_at": &now,
	}
	if err := s.messages.Patch(ctx, messageID, fields); err != nil {
		return storeError(err)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:     events.MessageDeleted,
		ServerID: serverID,
		UserID:   userID,
		EntityID: messageID,
	}); err != nil {
		slog.Error("failed to publish message.deleted", "error", err)
	}

	return nil
}
