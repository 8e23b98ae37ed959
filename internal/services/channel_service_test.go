package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"chat-workspace-service/internal/models"
	"chat-workspace-service/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChannel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	server := env.createServer(t, owner, "workspace")

	channel, err := env.channelService.Create(ctx, owner.ID, server.ID, "random")
	require.NoError(t, err)
	assert.Equal(t, "random", channel.Name)
	assert.Equal(t, models.ChannelTypeText, channel.Type)
	assert.Equal(t, server.ID, channel.ServerID)

	t.Run("EmptyName", func(t *testing.T) {
		_, err := env.channelService.Create(ctx, owner.ID, server.ID, "   ")
		requireKind(t, err, response.KindChannelNameEmpty)
	})

	t.Run("NameTooLong", func(t *testing.T) {
		_, err := env.channelService.Create(ctx, owner.ID, server.ID, strings.Repeat("a", 33))
		requireKind(t, err, response.KindChannelNameTooLong)
	})

	t.Run("NameAtLimit", func(t *testing.T) {
		_, err := env.channelService.Create(ctx, owner.ID, server.ID, strings.Repeat("a", 32))
		require.NoError(t, err)
	})

	t.Run("NonMember", func(t *testing.T) {
		outsider := env.createUser(t, "mallory")
		_, err := env.channelService.Create(ctx, outsider.ID, server.ID, "sneaky")
		requireKind(t, err, response.KindUserNotMember)
	})
}

func TestCreateChannelQuota(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	server := env.createServer(t, owner, "workspace")

	// The default General channel occupies one slot already.
	for i := 1; i < models.MaxChannelsPerServer; i++ {
		_, err := env.channelService.Create(ctx, owner.ID, server.ID, fmt.Sprintf("room-%d", i))
		require.NoError(t, err)
	}

	count, err := env.channels.CountByServer(ctx, server.ID)
	require.NoError(t, err)
	require.EqualValues(t, models.MaxChannelsPerServer, count)

	_, err = env.channelService.Create(ctx, owner.ID, server.ID, "one-too-many")
	requireKind(t, err, response.KindTooManyChannels)

	// The quota is per server, a second server starts fresh.
	other := env.createServer(t, owner, "other")
	_, err = env.channelService.Create(ctx, owner.ID, other.ID, "room")
	require.NoError(t, err)
}

func TestListChannels(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	server := env.createServer(t, owner, "workspace")
	_, err := env.channelService.Create(ctx, owner.ID, server.ID, "random")
	require.NoError(t, err)

	channels, err := env.channelService.List(ctx, owner.ID, server.ID)
	require.NoError(t, err)
	require.Len(t, channels, 2)

	outsider := env.createUser(t, "mallory")
	_, err = env.channelService.List(ctx, outsider.ID, server.ID)
	requireKind(t, err, response.KindUserNotMember)
}

func TestUpdateChannel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	server := env.createServer(t, owner, "workspace")
	env.joinServer(t, member, server)
	general := env.generalChannel(t, server)

	strPtr := func(s string) *string { return &s }

	t.Run("RenameAndRetype", func(t *testing.T) {
		err := env.channelService.Update(ctx, owner.ID, server.ID, general.ID, strPtr("lounge"), strPtr(models.ChannelTypeVocal))
		require.NoError(t, err)

		updated, err := env.channels.FindByID(ctx, general.ID)
		require.NoError(t, err)
		assert.Equal(t, "lounge", updated.Name)
		assert.Equal(t, models.ChannelTypeVocal, updated.Type)
	})

	t.Run("NameOnlyLeavesType", func(t *testing.T) {
		err := env.channelService.Update(ctx, owner.ID, server.ID, general.ID, strPtr("lobby"), nil)
		require.NoError(t, err)

		updated, err := env.channels.FindByID(ctx, general.ID)
		require.NoError(t, err)
		assert.Equal(t, "lobby", updated.Name)
		assert.Equal(t, models.ChannelTypeVocal, updated.Type)
	})

	t.Run("NothingToChange", func(t *testing.T) {
		err := env.channelService.Update(ctx, owner.ID, server.ID, general.ID, nil, nil)
		requireKind(t, err, response.KindChannelUnchanged)
	})

	t.Run("InvalidType", func(t *testing.T) {
		err := env.channelService.Update(ctx, owner.ID, server.ID, general.ID, nil, strPtr("video"))
		requireKind(t, err, response.KindChannelTypeInvalid)
	})

	t.Run("OwnerOnly", func(t *testing.T) {
		err := env.channelService.Update(ctx, member.ID, server.ID, general.ID, strPtr("takeover"), nil)
		requireKind(t, err, response.KindUserNotAuthorized)
	})

	t.Run("UnknownChannel", func(t *testing.T) {
		err := env.channelService.Update(ctx, owner.ID, server.ID, "missing", strPtr("ghost"), nil)
		requireKind(t, err, response.KindUnknownChannel)
	})
}

func TestDeleteChannel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	server := env.createServer(t, owner, "workspace")
	env.joinServer(t, member, server)
	general := env.generalChannel(t, server)

	_, err := env.messageService.Send(ctx, member.ID, server.ID, general.ID, "soon gone")
	require.NoError(t, err)

	t.Run("OwnerOnly", func(t *testing.T) {
		err := env.channelService.Delete(ctx, member.ID, server.ID, general.ID)
		requireKind(t, err, response.KindUserNotAuthorized)
	})

	t.Run("CascadesMessages", func(t *testing.T) {
		require.NoError(t, env.channelService.Delete(ctx, owner.ID, server.ID, general.ID))

		_, err := env.channels.FindByID(ctx, general.ID)
		require.Error(t, err)

		var count int64
		require.NoError(t, env.db.Model(&models.Message{}).Where("channel_id = ?", general.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("UnknownChannel", func(t *testing.T) {
		err := env.channelService.Delete(ctx, owner.ID, server.ID, general.ID)
		requireKind(t, err, response.KindUnknownChannel)
	})
}
