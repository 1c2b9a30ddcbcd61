package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/types"
)

type AssetMediaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, joins []*types.AssetMedia) ([]*types.AssetMedia, error)
	GetByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.AssetMedia, error)
	GetByAssetAndMedia(ctx context.Context, tx *gorm.DB, assetID, mediaID uuid.UUID) (*types.AssetMedia, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, assetID, mediaID uuid.UUID, status types.DisplayStatus) error
	SetPrimary(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, mediaID *uuid.UUID) error
	DeleteByMediaIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) error
}

type assetMediaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetMediaRepo(db *gorm.DB, baseLog *logger.Logger) AssetMediaRepo {
	return &assetMediaRepo{db: db, log: baseLog.With("repo", "AssetMediaRepo")}
}

func (r *assetMediaRepo) Create(ctx context.Context, tx *gorm.DB, joins []*types.AssetMedia) ([]*types.AssetMedia, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(joins) == 0 {
		return []*types.AssetMedia{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&joins).Error; err != nil {
		return nil, err
	}
	return joins, nil
}

// GetByAssetID returns the asset's join rows with the media row preloaded
// on each, newest media first.
func (r *assetMediaRepo) GetByAssetID(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.AssetMedia, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AssetMedia
	if err := transaction.WithContext(ctx).
		Preload("Media").
		Where("asset_id = ?", assetID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assetMediaRepo) GetByAssetAndMedia(ctx context.Context, tx *gorm.DB, assetID, mediaID uuid.UUID) (*types.AssetMedia, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AssetMedia
	if err := transaction.WithContext(ctx).
		Where("asset_id = ? AND media_id = ?", assetID, mediaID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *assetMediaRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, assetID, mediaID uuid.UUID, status types.DisplayStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AssetMedia{}).
		Where("asset_id = ? AND media_id = ?", assetID, mediaID).
		Update("status", status).Error
}

// SetPrimary flips is_primary across the asset's join rows so exactly the
// row for mediaID carries it; a nil mediaID clears the flag everywhere.
func (r *assetMediaRepo) SetPrimary(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, mediaID *uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Model(&types.AssetMedia{}).
		Where("asset_id = ?", assetID).
		Update("is_primary", false).Error; err != nil {
		return err
	}
	if mediaID == nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.AssetMedia{}).
		Where("asset_id = ? AND media_id = ?", assetID, *mediaID).
		Update("is_primary", true).Error
}

func (r *assetMediaRepo) DeleteByMediaIDs(ctx context.Context, tx *gorm.DB, mediaIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(mediaIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("media_id IN ?", mediaIDs).
		Delete(&types.AssetMedia{}).Error
}
