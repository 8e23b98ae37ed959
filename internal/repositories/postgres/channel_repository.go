package postgres

import (
	"context"

	"chat-workspace-service/internal/models"

	"gorm.io/gorm"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) Create(ctx context.Context, channel *models.Channel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

func (r *ChannelRepository) FindByID(ctx context.Context, id string) (*models.Channel, error) {
	var channel models.Channel
	err := r.db.WithContext(ctx).First(&channel, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepository) ListByServer(ctx context.Context, serverID string) ([]*models.Channel, error) {
	var channels []*models.Channel
	err := r.db.WithContext(ctx).
		Where("server_id = ?", serverID).
		Find(&channels).Error
	return channels, err
}

func (r *ChannelRepository) CountByServer(ctx context.Context, serverID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Channel{}).
		Where("server_id = ?", serverID).
		Count(&count).Error
	return count, err
}

func (r *ChannelRepository) Patch(ctx context.Context, id string, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Channel{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteCascade removes the channel's messages and then the channel, in one
// transaction, children before parent.
func (r *ChannelRepository) DeleteCascade(ctx context.Context, channelID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("channel_id = ?", channelID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Channel{}, "id = ?", channelID).Error
	})
}
