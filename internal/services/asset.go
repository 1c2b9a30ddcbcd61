package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuse/openmuse-backend/internal/gallery"
	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/repos"
	"github.com/openmuse/openmuse-backend/internal/types"
)

// AssetDetails is the editable subset of an asset's metadata.
type AssetDetails struct {
	Name          string
	Description   string
	Creator       string
	LoraType      string
	LoraBaseModel string
	ModelVariant  string
	LoraLink      string
}

type AssetService interface {
	Create(ctx context.Context, viewer gallery.Viewer, details AssetDetails) (*types.Asset, error)
	List(ctx context.Context, filter repos.AssetListFilter) ([]*types.Asset, error)
	UpdateDetails(ctx context.Context, viewer gallery.Viewer, assetID uuid.UUID, details AssetDetails) error
	Delete(ctx context.Context, viewer gallery.Viewer, assetID uuid.UUID) error
}

type assetService struct {
	db        *gorm.DB
	log       *logger.Logger
	assetRepo repos.AssetRepo
}

func NewAssetService(db *gorm.DB, log *logger.Logger, assetRepo repos.AssetRepo) AssetService {
	return &assetService{
		db:        db,
		log:       log.With("service", "AssetService"),
		assetRepo: assetRepo,
	}
}

func (s *assetService) Create(ctx context.Context, viewer gallery.Viewer, details AssetDetails) (*types.Asset, error) {
	if details.Name == "" {
		return nil, fmt.Errorf("asset name is required")
	}
	asset := &types.Asset{
		ID:            uuid.New(),
		Name:          details.Name,
		Description:   details.Description,
		Creator:       details.Creator,
		UserID:        viewer.UserID,
		Type:          "lora",
		LoraType:      details.LoraType,
		LoraBaseModel: details.LoraBaseModel,
		ModelVariant:  details.ModelVariant,
		LoraLink:      details.LoraLink,
		AdminStatus:   types.AdminStatusListed,
	}
	if _, err := s.assetRepo.Create(ctx, nil, []*types.Asset{asset}); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return asset, nil
}

func (s *assetService) List(ctx context.Context, filter repos.AssetListFilter) ([]*types.Asset, error) {
	assets, err := s.assetRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

func (s *assetService) UpdateDetails(ctx context.Context, viewer gallery.Viewer, assetID uuid.UUID, details AssetDetails) error {
	asset, err := s.requireAuthorized(ctx, viewer, assetID)
	if err != nil {
		return err
	}
	fields := map[string]interface{}{
		"name":            details.Name,
		"description":     details.Description,
		"creator":         details.Creator,
		"lora_type":       details.LoraType,
		"lora_base_model": details.LoraBaseModel,
		"model_variant":   details.ModelVariant,
		"lora_link":       details.LoraLink,
	}
	if err := s.assetRepo.UpdateFields(ctx, nil, asset.ID, fields); err != nil {
		return fmt.Errorf("failed to update asset details: %w", err)
	}
	return nil
}

func (s *assetService) Delete(ctx context.Context, viewer gallery.Viewer, assetID uuid.UUID) error {
	asset, err := s.requireAuthorized(ctx, viewer, assetID)
	if err != nil {
		return err
	}
	if err := s.assetRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{asset.ID}); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

func (s *assetService) requireAuthorized(ctx context.Context, viewer gallery.Viewer, assetID uuid.UUID) (*types.Asset, error) {
	assets, err := s.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{assetID})
	if err != nil {
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	if len(assets) == 0 {
		return nil, gallery.ErrAssetNotFound
	}
	if !viewer.AuthorizedFor(assets[0].UserID) {
		return nil, gallery.ErrNotAuthorized
	}
	return assets[0], nil
}
