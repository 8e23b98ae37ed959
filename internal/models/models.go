package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Field limits enforced before any store write.
const (
	UsernameMinLen       = 2
	UsernameMaxLen       = 20
	ServerNameMaxLen     = 50
	ServerDescMaxLen     = 200
	ChannelNameMaxLen    = 32
	MessageContentMaxLen = 1000

	// MaxChannelsPerServer caps channel creation per server.
	MaxChannelsPerServer = 32

	// MessageWindowSize is the bounded, non-paginated fetch window.
	MessageWindowSize = 50
)

// Channel types.
const (
	ChannelTypeText  = "text"
	ChannelTypeVocal = "vocal"
)

// User binds a workspace profile to an external identity provider id.
type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"size:20;not null" json:"username"`
	Picture   string    `json:"picture,omitempty"`
	AuthID    string    `gorm:"uniqueIndex;not null" json:"authId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Server is a workspace containing channels and members.
type Server struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID     string    `gorm:"type:uuid;not null;index" json:"ownerId"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Description string    `gorm:"size:200" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (s *Server) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// Member grants a user standing inside a server. The (server_id, user_id)
// index is deliberately non-unique: invite redemption inserts without a
// duplicate check and the rows must all land.
type Member struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ServerID  string    `gorm:"type:uuid;not null;index:idx_members_server_user" json:"serverId"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_members_server_user" json:"userId"`
	CreatedAt time.Time `json:"joinedAt"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// InviteCode is a redeemable membership token. Codes are unique across the
// whole table, not per server. MaxUses == 0 means unlimited; ExpiresAt == nil
// means the code never expires. Expiry is evaluated at use time, the row is
// never mutated into an expired state.
type InviteCode struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	ServerID  string     `gorm:"type:uuid;not null;index" json:"serverId"`
	CreatorID string     `gorm:"type:uuid;not null" json:"creatorId"`
	Code      string     `gorm:"size:12;uniqueIndex;not null" json:"code"`
	Uses      int        `gorm:"not null;default:0" json:"uses"`
	MaxUses   int        `gorm:"not null;default:0" json:"maxUses,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (i *InviteCode) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Channel is a named sub-container of a server that holds messages.
type Channel struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ServerID  string    `gorm:"type:uuid;not null;index" json:"serverId"`
	Name      string    `gorm:"size:32;not null" json:"name"`
	Type      string    `gorm:"size:8;not null;default:text" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Channel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// Message rows are soft-deleted: Deleted marks the terminal state, the row
// and its content persist.
type Message struct {
	ID         string     `gorm:"primaryKey;type:uuid" json:"id"`
	ChannelID  string     `gorm:"type:uuid;not null;index" json:"channelId"`
	UserID     string     `gorm:"type:uuid;not null" json:"userId"`
	Content    string     `gorm:"size:1000;not null" json:"content"`
	Modified   bool       `gorm:"not null;default:false" json:"modified"`
	ModifiedAt *time.Time `json:"modifiedAt"`
	Deleted    bool       `gorm:"not null;default:false" json:"deleted"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// MessageWithAuthor is a message enriched with its author's public profile,
// the shape returned by the message list operation.
type MessageWithAuthor struct {
	Message
	Username string `json:"username,omitempty"`
	Picture  string `json:"picture,omitempty"`
}

// All lists every model for migration.
func All() []any {
	return []any{
		&User{},
		&Server{},
		&Member{},
		&InviteCode{},
		&Channel{},
		&Message{},
	}
}
