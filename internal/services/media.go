package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuse/openmuse-backend/internal/gallery"
	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/repos"
	"github.com/openmuse/openmuse-backend/internal/types"
)

// MediaUpload describes one incoming video file.
type MediaUpload struct {
	FileName       string
	ContentType    string
	SizeBytes      int64
	Body           io.Reader
	Title          string
	Description    string
	Classification string
	Creator        string
	CreatorName    string
	// AssetID, when set, also creates the asset_media join row.
	AssetID *uuid.UUID
}

type MediaService interface {
	Upload(ctx context.Context, viewer gallery.Viewer, upload MediaUpload) (*types.Media, error)
	Delete(ctx context.Context, viewer gallery.Viewer, mediaID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Media, error)
}

type mediaService struct {
	db             *gorm.DB
	log            *logger.Logger
	bucket         BucketService
	mediaRepo      repos.MediaRepo
	assetRepo      repos.AssetRepo
	assetMediaRepo repos.AssetMediaRepo
}

func NewMediaService(
	db *gorm.DB,
	log *logger.Logger,
	bucket BucketService,
	mediaRepo repos.MediaRepo,
	assetRepo repos.AssetRepo,
	assetMediaRepo repos.AssetMediaRepo,
) MediaService {
	return &mediaService{
		db:             db,
		log:            log.With("service", "MediaService"),
		bucket:         bucket,
		mediaRepo:      mediaRepo,
		assetRepo:      assetRepo,
		assetMediaRepo: assetMediaRepo,
	}
}

func (s *mediaService) Upload(ctx context.Context, viewer gallery.Viewer, upload MediaUpload) (*types.Media, error) {
	if upload.Body == nil {
		return nil, fmt.Errorf("no file provided")
	}
	if s.bucket == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	ext := strings.ToLower(path.Ext(upload.FileName))
	if ext == "" {
		ext = ".webm"
	}

	mediaID := uuid.New()
	storageKey := fmt.Sprintf("videos/%s%s", mediaID, ext)
	if err := s.bucket.UploadFile(ctx, storageKey, upload.Body, upload.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}

	media := &types.Media{
		ID:             mediaID,
		StorageKey:     storageKey,
		URL:            s.bucket.GetPublicURL(storageKey),
		Creator:        upload.Creator,
		CreatorName:    upload.CreatorName,
		UserID:         viewer.UserID,
		Title:          upload.Title,
		Description:    upload.Description,
		Classification: upload.Classification,
		Type:           "video",
		MimeType:       upload.ContentType,
		SizeBytes:      upload.SizeBytes,
		AdminStatus:    types.AdminStatusListed,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.mediaRepo.Create(ctx, tx, []*types.Media{media}); err != nil {
			return fmt.Errorf("failed to create media row: %w", err)
		}
		if upload.AssetID != nil {
			assets, err := s.assetRepo.GetByIDs(ctx, tx, []uuid.UUID{*upload.AssetID})
			if err != nil {
				return fmt.Errorf("failed to load asset for join: %w", err)
			}
			if len(assets) == 0 {
				return gallery.ErrAssetNotFound
			}
			join := &types.AssetMedia{
				ID:      uuid.New(),
				AssetID: *upload.AssetID,
				MediaID: media.ID,
				Status:  types.DisplayStatusView,
			}
			if _, err := s.assetMediaRepo.Create(ctx, tx, []*types.AssetMedia{join}); err != nil {
				return fmt.Errorf("failed to create asset media join: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		// Best effort: do not leave an orphaned object behind.
		if delErr := s.bucket.DeleteFile(ctx, storageKey); delErr != nil {
			s.log.Warn("Failed to clean up uploaded object after rollback", "key", storageKey, "error", delErr)
		}
		return nil, err
	}
	return media, nil
}

func (s *mediaService) Delete(ctx context.Context, viewer gallery.Viewer, mediaID uuid.UUID) error {
	rows, err := s.mediaRepo.GetByIDs(ctx, nil, []uuid.UUID{mediaID})
	if err != nil {
		return fmt.Errorf("failed to load media: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("media %s not found", mediaID)
	}
	media := rows[0]
	if !viewer.AuthorizedFor(media.UserID) {
		return gallery.ErrNotAuthorized
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.assetMediaRepo.DeleteByMediaIDs(ctx, tx, []uuid.UUID{mediaID}); err != nil {
			return fmt.Errorf("failed to delete asset media joins: %w", err)
		}
		if err := s.mediaRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{mediaID}); err != nil {
			return fmt.Errorf("failed to delete media row: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	if media.StorageKey != "" && s.bucket != nil {
		if err := s.bucket.DeleteFile(ctx, media.StorageKey); err != nil {
			s.log.Warn("Failed to delete storage object for media", "media_id", mediaID, "error", err)
		}
	}
	return nil
}

func (s *mediaService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Media, error) {
	return s.mediaRepo.GetByUserID(ctx, nil, userID)
}
