package services

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/url"
	"strings"

	"chat-workspace-service/internal/database"
	"chat-workspace-service/internal/models"
	"chat-workspace-service/internal/repositories/postgres"
	"chat-workspace-service/pkg/response"

	"gorm.io/gorm"
)

// ProfileResult reports whether an upsert created or updated the profile.
type ProfileResult struct {
	User    *models.User
	Created bool
}

// UserService binds workspace profiles to external identity provider ids.
type UserService struct {
	users   *postgres.UserRepository
	uploads *database.MinIOClient
}

func NewUserService(users *postgres.UserRepository, uploads *database.MinIOClient) *UserService {
	return &UserService{users: users, uploads: uploads}
}

// UpsertProfile creates the User on first submission for an auth id and
// patches the profile afterwards.
func (s *UserService) UpsertProfile(ctx context.Context, authID, username, picture string) (*ProfileResult, error) {
	if authID == "" {
		return nil, response.NewError(response.KindAuthIDEmpty)
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, response.NewError(response.KindUsernameEmpty)
	}
	if len(username) < models.UsernameMinLen {
		return nil, response.NewError(response.KindUsernameTooShort)
	}
	if len(username) > models.UsernameMaxLen {
		return nil, response.NewError(response.KindUsernameTooLong)
	}

	picture = strings.TrimSpace(picture)
	if picture != "" && !validPictureURL(picture) {
		return nil, response.NewError(response.KindPictureInvalidURL)
	}

	user, err := s.users.FindByAuthID(ctx, authID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeError(err)
		}

		user = &models.User{Username: username, Picture: picture, AuthID: authID}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, storeError(err)
		}
		slog.Info("user profile created", "userId", user.ID)
		return &ProfileResult{User: user, Created: true}, nil
	}

	fields := map[string]any{"username": username}
	if picture != "" {
		fields["picture"] = picture
	}
	if err := s.users.Patch(ctx, user.ID, fields); err != nil {
		return nil, storeError(err)
	}

	user.Username = username
	if picture != "" {
		user.Picture = picture
	}
	return &ProfileResult{User: user, Created: false}, nil
}

func (s *UserService) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	if authID == "" {
		return nil, response.NewError(response.KindAuthIDEmpty)
	}

	user, err := s.users.FindByAuthID(ctx, authID)
	if err != nil {
		return nil, notFoundOr(response.KindUnknownUser, err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(response.KindUnknownUser, err)
	}
	return user, nil
}

// UploadAvatar stores the image in object storage and patches the resulting
// URL onto the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", notFoundOr(response.KindUnknownUser, err)
	}

	url, err := s.uploads.UploadImage(ctx, file)
	if err != nil {
		return "", storeError(err)
	}

	if err := s.users.Patch(ctx, user.ID, map[string]any{"picture": url}); err != nil {
		return "", storeError(err)
	}
	return url, nil
}

func validPictureURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
