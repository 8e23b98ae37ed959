package services

import (
	"context"
	"strings"
	"testing"

	"chat-workspace-service/internal/models"
	"chat-workspace-service/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateServerProvisionsDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	server, err := env.serverService.Create(ctx, owner.ID, "workspace", "the team hangout")
	require.NoError(t, err)
	require.NotEmpty(t, server.ID)
	assert.Equal(t, owner.ID, server.OwnerID)
	assert.Equal(t, "the team hangout", server.Description)

	// The creator is a member from the start.
	isMember, err := env.members.Exists(ctx, server.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	// And a default text channel exists.
	channels, err := env.channels.ListByServer(ctx, server.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "General", channels[0].Name)
	assert.Equal(t, models.ChannelTypeText, channels[0].Type)
}

func TestCreateServerValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")

	t.Run("EmptyName", func(t *testing.T) {
		_, err := env.serverService.Create(ctx, owner.ID, "  ", "")
		requireKind(t, err, response.KindServerNameEmpty)
	})

	t.Run("NameTooLong", func(t *testing.T) {
		_, err := env.serverService.Create(ctx, owner.ID, strings.Repeat("a", 51), "")
		requireKind(t, err, response.KindServerNameTooLong)
	})

	t.Run("DescriptionTooLong", func(t *testing.T) {
		_, err := env.serverService.Create(ctx, owner.ID, "workspace", strings.Repeat("a", 201))
		requireKind(t, err, response.KindServerDescriptionTooLong)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := env.serverService.Create(ctx, "missing", "workspace", "")
		requireKind(t, err, response.KindUnknownUser)
	})
}

func TestListServersFollowsMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	first := env.createServer(t, alice, "first")
	second := env.createServer(t, alice, "second")
	env.createServer(t, bob, "bobs-place")

	servers, err := env.serverService.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, servers, 2)

	ids := []string{servers[0].ID, servers[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)

	// A user with no memberships sees an empty list, not an error.
	nobody := env.createUser(t, "carol")
	servers, err = env.serverService.List(ctx, nobody.ID)
	require.NoError(t, err)
	assert.Empty(t, servers)
}

func TestDeleteServerOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	server := env.createServer(t, owner, "workspace")
	env.joinServer(t, member, server)

	err := env.serverService.Delete(ctx, member.ID, server.ID)
	requireKind(t, err, response.KindUserNotAuthorized)

	err = env.serverService.Delete(ctx, owner.ID, "missing")
	requireKind(t, err, response.KindUnknownServer)

	require.NoError(t, env.serverService.Delete(ctx, owner.ID, server.ID))
}

func TestDeleteServerCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	server := env.createServer(t, owner, "workspace")
	env.joinServer(t, member, server)

	general := env.generalChannel(t, server)
	extra, err := env.channelService.Create(ctx, owner.ID, server.ID, "random")
	require.NoError(t, err)

	_, err = env.messageService.Send(ctx, member.ID, server.ID, general.ID, "hello")
	require.NoError(t, err)
	_, err = env.messageService.Send(ctx, owner.ID, server.ID, extra.ID, "world")
	require.NoError(t, err)

	code, err := env.inviteService.Issue(ctx, server.ID, owner.ID, 0, nil)
	require.NoError(t, err)

	require.NoError(t, env.serverService.Delete(ctx, owner.ID, server.ID))

	// Nothing referencing the server survives.
	var count int64
	require.NoError(t, env.db.Model(&models.Channel{}).Where("server_id = ?", server.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Member{}).Where("server_id = ?", server.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&models.InviteCode{}).Where("server_id = ?", server.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Message{}).Where("channel_id IN ?", []string{general.ID, extra.ID}).Count(&count).Error)
	assert.Zero(t, count)

	exists, err := env.invites.CodeExists(ctx, code)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAddMemberDirect(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	joiner := env.createUser(t, "bob")
	server := env.createServer(t, owner, "workspace")

	member, err := env.serverService.AddMember(ctx, joiner.ID, server.ID)
	require.NoError(t, err)
	assert.Equal(t, server.ID, member.ServerID)
	assert.Equal(t, joiner.ID, member.UserID)

	t.Run("DuplicateRejected", func(t *testing.T) {
		_, err := env.serverService.AddMember(ctx, joiner.ID, server.ID)
		requireKind(t, err, response.KindMemberAlreadyExists)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := env.serverService.AddMember(ctx, "missing", server.ID)
		requireKind(t, err, response.KindUnknownUser)
	})

	t.Run("UnknownServer", func(t *testing.T) {
		_, err := env.serverService.AddMember(ctx, joiner.ID, "missing")
		requireKind(t, err, response.KindUnknownServer)
	})
}

func TestListMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	other := env.createUser(t, "bob")
	server := env.createServer(t, owner, "workspace")
	env.joinServer(t, other, server)

	members, err := env.serverService.ListMembers(ctx, server.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	_, err = env.serverService.ListMembers(ctx, "missing")
	requireKind(t, err, response.KindUnknownServer)
}

func TestRemoveMemberScopedToPair(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	member := env.createUser(t, "bob")
	first := env.createServer(t, owner, "first")
	second := env.createServer(t, owner, "second")
	env.joinServer(t, member, first)
	env.joinServer(t, member, second)

	require.NoError(t, env.serverService.RemoveMember(ctx, member.ID, first.ID))

	isMember, err := env.members.Exists(ctx, first.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	// Standing in the other server is untouched.
	isMember, err = env.members.Exists(ctx, second.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	// A non-member cannot leave.
	err = env.serverService.RemoveMember(ctx, member.ID, first.ID)
	requireKind(t, err, response.KindUserNotMember)
}

func TestRemoveMemberDropsDuplicateRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "alice")
	joiner := env.createUser(t, "bob")
	server := env.createServer(t, owner, "workspace")

	code, err := env.inviteService.Issue(ctx, server.ID, owner.ID, 0, nil)
	require.NoError(t, err)
	require.NoError(t, env.inviteService.Redeem(ctx, code, joiner.ID))
	require.NoError(t, env.inviteService.Redeem(ctx, code, joiner.ID))

	// Removal is keyed on the pair, so both duplicate rows go at once.
	require.NoError(t, env.serverService.RemoveMember(ctx, joiner.ID, server.ID))

	isMember, err := env.members.Exists(ctx, server.ID, joiner.ID)
	require.NoError(t, err)
	assert.False(t, isMember)
}
