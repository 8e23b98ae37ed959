package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"chat-workspace-service/internal/events"
	"chat-workspace-service/internal/models"
	"chat-workspace-service/internal/repositories/postgres"
	"chat-workspace-service/pkg/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires every service against a fresh in-memory database.
type testEnv struct {
	db *gorm.DB

	users    *postgres.UserRepository
	servers  *postgres.ServerRepository
	members  *postgres.MemberRepository
	invites  *postgres.InviteCodeRepository
	channels *postgres.ChannelRepository
	messages *postgres.MessageRepository

	validator *Validator

	userService    *UserService
	serverService  *ServerService
	inviteService  *InviteService
	channelService *ChannelService
	messageService *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Shared-cache in-memory databases misbehave with concurrent
	// connections.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))

	env := &testEnv{
		db:       db,
		users:    postgres.NewUserRepository(db),
		servers:  postgres.NewServerRepository(db),
		members:  postgres.NewMemberRepository(db),
		invites:  postgres.NewInviteCodeRepository(db),
		channels: postgres.NewChannelRepository(db),
		messages: postgres.NewMessageRepository(db),
	}
	env.validator = NewValidator(env.users, env.servers, env.members, env.channels)

	publisher := events.Noop{}
	env.userService = NewUserService(env.users, nil)
	env.serverService = NewServerService(env.servers, env.members, env.validator, publisher)
	env.inviteService = NewInviteService(env.invites, env.members, env.servers, env.validator, publisher)
	env.channelService = NewChannelService(env.channels, env.servers, env.validator, publisher)
	env.messageService = NewMessageService(env.messages, env.users, env.validator, publisher)

	return env
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	result, err := env.userService.UpsertProfile(context.Background(), "auth|"+uuid.New().String(), username, "")
	require.NoError(t, err)
	require.True(t, result.Created)
	return result.User
}

func (env *testEnv) createServer(t *testing.T, owner *models.User, name string) *models.Server {
	t.Helper()
	server, err := env.serverService.Create(context.Background(), owner.ID, name, "")
	require.NoError(t, err)
	return server
}

// joinServer adds the user through the direct path so tests can set up
// membership without an invite code.
func (env *testEnv) joinServer(t *testing.T, user *models.User, server *models.Server) {
	t.Helper()
	_, err := env.serverService.AddMember(context.Background(), user.ID, server.ID)
	require.NoError(t, err)
}

// generalChannel returns the default channel every new server starts with.
func (env *testEnv) generalChannel(t *testing.T, server *models.Server) *models.Channel {
	t.Helper()
	channels, err := env.channels.ListByServer(context.Background(), server.ID)
	require.NoError(t, err)
	require.NotEmpty(t, channels)
	return channels[0]
}

// requireKind asserts that err carries the given error kind.
func requireKind(t *testing.T, err error, kind response.Kind) {
	t.Helper()
	require.Error(t, err)
	var appErr *response.Error
	require.True(t, errors.As(err, &appErr), "expected *response.Error, got %T: %v", err, err)
	require.Equal(t, kind.Symbol(), appErr.Kind.Symbol())
}
