package postgres

import (
	"context"

	"chat-workspace-service/internal/models"

	"gorm.io/gorm"
)

type InviteCodeRepository struct {
	db *gorm.DB
}

func NewInviteCodeRepository(db *gorm.DB) *InviteCodeRepository {
	return &InviteCodeRepository{db: db}
}

func (r *InviteCodeRepository) Create(ctx context.Context, invite *models.InviteCode) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *InviteCodeRepository) FindByCode(ctx context.Context, code string) (*models.InviteCode, error) {
	var invite models.InviteCode
	err := r.db.WithContext(ctx).First(&invite, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// CodeExists backs the issuance re-draw loop. The lookup hits the unique
// index on code.
func (r *InviteCodeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InviteCode{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// IncrementUses bumps the use counter by exactly one as a single atomic
// patch keyed on the invite id.
func (r *InviteCodeRepository) IncrementUses(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.InviteCode{}).
		Where("id = ?", id).
		UpdateColumn("uses", gorm.Expr("uses + 1")).Error
}
