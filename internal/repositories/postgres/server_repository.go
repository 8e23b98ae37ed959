package postgres

import (
	"context"

	"chat-workspace-service/internal/models"

	"gorm.io/gorm"
)

type ServerRepository struct {
	db *gorm.DB
}

func NewServerRepository(db *gorm.DB) *ServerRepository {
	return &ServerRepository{db: db}
}

func (r *ServerRepository) FindByID(ctx context.Context, id string) (*models.Server, error) {
	var server models.Server
	err := r.db.WithContext(ctx).First(&server, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &server, nil
}

// CreateWithDefaults inserts the server together with its owner membership
// and the default "General" text channel as one transaction, so a server row
// is never left without its owner member row.
func (r *ServerRepository) CreateWithDefaults(ctx context.Context, server *models.Server) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(server).Error; err != nil {
			return err
		}

		member := &models.Member{ServerID: server.ID, UserID: server.OwnerID}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		general := &models.Channel{
			ServerID: server.ID,
			Name:     "General",
			Type:     models.ChannelTypeText,
		}
		return tx.Create(general).Error
	})
}

// DeleteCascade removes everything referencing the server, children before
// parents: per channel its messages then the channel, then the members, then
// the server row itself. The whole cascade runs in one transaction.
func (r *ServerRepository) DeleteCascade(ctx context.Context, serverID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var channels []models.Channel
		if err := tx.Where("server_id = ?", serverID).Find(&channels).Error; err != nil {
			return err
		}

		for _, channel := range channels {
			if err := tx.Where("channel_id = ?", channel.ID).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Channel{}, "id = ?", channel.ID).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("server_id = ?", serverID).Delete(&models.Member{}).Error; err != nil {
			return err
		}

		if err := tx.Where("server_id = ?", serverID).Delete(&models.InviteCode{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Server{}, "id = ?", serverID).Error
	})
}
