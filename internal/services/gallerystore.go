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

// galleryStore adapts the gorm repos to the gallery.Store contract.
type galleryStore struct {
	db             *gorm.DB
	log            *logger.Logger
	assetRepo      repos.AssetRepo
	mediaRepo      repos.MediaRepo
	assetMediaRepo repos.AssetMediaRepo
	userRepo       repos.UserRepo
}

func NewGalleryStore(
	db *gorm.DB,
	log *logger.Logger,
	assetRepo repos.AssetRepo,
	mediaRepo repos.MediaRepo,
	assetMediaRepo repos.AssetMediaRepo,
	userRepo repos.UserRepo,
) gallery.Store {
	return &galleryStore{
		db:             db,
		log:            log.With("service", "GalleryStore"),
		assetRepo:      assetRepo,
		mediaRepo:      mediaRepo,
		assetMediaRepo: assetMediaRepo,
		userRepo:       userRepo,
	}
}

func (s *galleryStore) GetAssetWithPrimaryMedia(ctx context.Context, assetID uuid.UUID) (*types.Asset, error) {
	return s.assetRepo.GetByIDWithPrimaryMedia(ctx, nil, assetID)
}

func (s *galleryStore) GetAssetMedia(ctx context.Context, assetID uuid.UUID) ([]*types.AssetMedia, error) {
	return s.assetMediaRepo.GetByAssetID(ctx, nil, assetID)
}

func (s *galleryStore) UpdateAssetMediaStatus(ctx context.Context, assetID, mediaID uuid.UUID, status types.DisplayStatus) error {
	return s.assetMediaRepo.UpdateStatus(ctx, nil, assetID, mediaID, status)
}

func (s *galleryStore) UpdateMediaUserStatus(ctx context.Context, mediaID uuid.UUID, status types.DisplayStatus) error {
	return s.mediaRepo.UpdateFields(ctx, nil, mediaID, map[string]interface{}{"user_status": status})
}

func (s *galleryStore) UpdateAssetUserStatus(ctx context.Context, assetID uuid.UUID, status types.DisplayStatus) error {
	return s.assetRepo.UpdateFields(ctx, nil, assetID, map[string]interface{}{"user_status": status})
}

// SetPrimaryMedia keeps asset.primary_media_id and the join rows'
// is_primary flags consistent in one transaction. The media must already be
// joined to the asset.
func (s *galleryStore) SetPrimaryMedia(ctx context.Context, assetID uuid.UUID, mediaID *uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mediaID != nil {
			join, err := s.assetMediaRepo.GetByAssetAndMedia(ctx, tx, assetID, *mediaID)
			if err != nil {
				return fmt.Errorf("failed to check asset media join: %w", err)
			}
			if join == nil {
				return fmt.Errorf("media %s is not associated with asset %s", *mediaID, assetID)
			}
		}
		if err := s.assetRepo.UpdateFields(ctx, tx, assetID, map[string]interface{}{"primary_media_id": mediaID}); err != nil {
			return fmt.Errorf("failed to update primary media reference: %w", err)
		}
		if err := s.assetMediaRepo.SetPrimary(ctx, tx, assetID, mediaID); err != nil {
			return fmt.Errorf("failed to update primary flags: %w", err)
		}
		return nil
	})
}

func (s *galleryStore) GetProfileDisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "", nil
	}
	return displayNameOf(users[0]), nil
}
