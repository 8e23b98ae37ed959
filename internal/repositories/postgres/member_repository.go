package postgres

import (
	"context"

	"chat-workspace-service/internal/models"

	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Exists reports whether a member row is present for the (server, user) pair.
// Backed by the composite index on (server_id, user_id).
func (r *MemberRepository) Exists(ctx context.Context, serverID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("server_id = ? AND user_id = ?", serverID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *MemberRepository) ListByServer(ctx context.Context, serverID string) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).
		Where("server_id = ?", serverID).
		Find(&members).Error
	return members, err
}

func (r *MemberRepository) ListByUser(ctx context.Context, userID string) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&members).Error
	return members, err
}

// DeleteByServerAndUser removes every member row for the pair. Duplicate
// rows created through repeated invite redemption all go at once.
func (r *MemberRepository) DeleteByServerAndUser(ctx context.Context, serverID, userID string) error {
	return r.db.WithContext(ctx).
		Where("server_id = ? AND user_id = ?", serverID, userID).
		Delete(&models.Member{}).Error
}
