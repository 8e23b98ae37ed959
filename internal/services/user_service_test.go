package services

import (
	"context"
	"strings"
	"testing"

	"chat-workspace-service/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertProfileCreateThenUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.userService.UpsertProfile(ctx, "auth|first", "alice", "")
	require.NoError(t, err)
	require.True(t, result.Created)
	require.NotEmpty(t, result.User.ID)
	assert.Equal(t, "alice", result.User.Username)

	// Second submission for the same auth id updates in place.
	updated, err := env.userService.UpsertProfile(ctx, "auth|first", "alice2", "https://cdn.example.com/a.png")
	require.NoError(t, err)
	require.False(t, updated.Created)
	assert.Equal(t, result.User.ID, updated.User.ID)

	stored, err := env.userService.GetByAuthID(ctx, "auth|first")
	require.NoError(t, err)
	assert.Equal(t, "alice2", stored.Username)
	assert.Equal(t, "https://cdn.example.com/a.png", stored.Picture)
}

func TestUpsertProfileKeepsPictureWhenOmitted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.userService.UpsertProfile(ctx, "auth|pic", "carol", "https://cdn.example.com/c.png")
	require.NoError(t, err)

	// An update without a picture must not clear the stored one.
	_, err = env.userService.UpsertProfile(ctx, "auth|pic", "caroline", "")
	require.NoError(t, err)

	stored, err := env.userService.GetByAuthID(ctx, "auth|pic")
	require.NoError(t, err)
	assert.Equal(t, "caroline", stored.Username)
	assert.Equal(t, "https://cdn.example.com/c.png", stored.Picture)
}

func TestUpsertProfileValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("EmptyAuthID", func(t *testing.T) {
		_, err := env.userService.UpsertProfile(ctx, "", "alice", "")
		requireKind(t, err, response.KindAuthIDEmpty)
	})

	t.Run("EmptyUsername", func(t *testing.T) {
		_, err := env.userService.UpsertProfile(ctx, "auth|x", "   ", "")
		requireKind(t, err, response.KindUsernameEmpty)
	})

	t.Run("UsernameTooShort", func(t *testing.T) {
		_, err := env.userService.UpsertProfile(ctx, "auth|x", "a", "")
		requireKind(t, err, response.KindUsernameTooShort)
	})

	t.Run("UsernameTooLong", func(t *testing.T) {
		_, err := env.userService.UpsertProfile(ctx, "auth|x", strings.Repeat("a", 21), "")
		requireKind(t, err, response.KindUsernameTooLong)
	})

	t.Run("UsernameAtLimits", func(t *testing.T) {
		_, err := env.userService.UpsertProfile(ctx, "auth|min", "ab", "")
		require.NoError(t, err)
		_, err = env.userService.UpsertProfile(ctx, "auth|max", strings.Repeat("a", 20), "")
		require.NoError(t, err)
	})

	t.Run("InvalidPictureURL", func(t *testing.T) {
		_, err := env.userService.UpsertProfile(ctx, "auth|x", "alice", "not a url")
		requireKind(t, err, response.KindPictureInvalidURL)

		_, err = env.userService.UpsertProfile(ctx, "auth|x", "alice", "ftp://example.com/a.png")
		requireKind(t, err, response.KindPictureInvalidURL)
	})
}

func TestGetByAuthIDUnknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.userService.GetByAuthID(context.Background(), "auth|nobody")
	requireKind(t, err, response.KindUnknownUser)
}

func TestGetByIDUnknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.userService.GetByID(context.Background(), "nobody")
	requireKind(t, err, response.KindUnknownUser)
}
