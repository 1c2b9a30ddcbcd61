package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/types"
)

type MediaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, media []*types.Media) ([]*types.Media, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) ([]*types.Media, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Media, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, mediaID uuid.UUID, fields map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) error
}

type mediaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaRepo(db *gorm.DB, baseLog *logger.Logger) MediaRepo {
	return &mediaRepo{db: db, log: baseLog.With("repo", "MediaRepo")}
}

func (r *mediaRepo) Create(ctx context.Context, tx *gorm.DB, media []*types.Media) ([]*types.Media, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(media) == 0 {
		return []*types.Media{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *mediaRepo) GetByIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) ([]*types.Media, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Media
	if len(mediaIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", mediaIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mediaRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Media, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Media
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mediaRepo) UpdateFields(ctx context.Context, tx *gorm.DB, mediaID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Media{}).
		Where("id = ?", mediaID).
		Updates(fields).Error
}

func (r *mediaRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(mediaIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", mediaIDs).
		Delete(&types.Media{}).Error
}

func (r *mediaRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(mediaIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", mediaIDs).
		Delete(&types.Media{}).Error
}
