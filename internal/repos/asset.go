package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/types"
)

// AssetListFilter narrows List results. Zero values mean "no filter".
type AssetListFilter struct {
	Text        string
	AdminStatus types.AdminStatus
	BaseModel   string
	UserID      *uuid.UUID
}

type AssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) ([]*types.Asset, error)
	GetByIDWithPrimaryMedia(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (*types.Asset, error)
	List(ctx context.Context, tx *gorm.DB, filter AssetListFilter) ([]*types.Asset, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, fields map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (r *assetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assets) == 0 {
		return []*types.Asset{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepo) GetByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Asset
	if len(assetIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", assetIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByIDWithPrimaryMedia returns nil, nil when no asset exists, mirroring
// a maybe-single lookup. The designated primary media row is preloaded.
func (r *assetRepo) GetByIDWithPrimaryMedia(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) (*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Asset
	if err := transaction.WithContext(ctx).
		Preload("PrimaryMedia").
		Where("id = ?", assetID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *assetRepo) List(ctx context.Context, tx *gorm.DB, filter AssetListFilter) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Model(&types.Asset{})
	if filter.Text != "" {
		like := "%" + filter.Text + "%"
		q = q.Where("name LIKE ? OR description LIKE ? OR creator LIKE ?", like, like, like)
	}
	if filter.AdminStatus != "" {
		q = q.Where("admin_status = ?", filter.AdminStatus)
	}
	if filter.BaseModel != "" {
		q = q.Where("lora_base_model = ?", filter.BaseModel)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	var results []*types.Asset
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assetRepo) UpdateFields(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Asset{}).
		Where("id = ?", assetID).
		Updates(fields).Error
}

func (r *assetRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assetIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", assetIDs).
		Delete(&types.Asset{}).Error
}
