package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openmuse/openmuse-backend/internal/gallery"
	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/repos"
	"github.com/openmuse/openmuse-backend/internal/types"
)

const (
	TargetKindAsset = "asset"
	TargetKindMedia = "media"
)

// ModerationService applies admin status changes and records an audit
// event for each one. Every operation requires platform-wide admin
// privilege; there is no owner path here.
type ModerationService interface {
	SetAssetAdminStatus(ctx context.Context, viewer gallery.Viewer, assetID uuid.UUID, status types.AdminStatus) error
	SetMediaAdminStatus(ctx context.Context, viewer gallery.Viewer, mediaID uuid.UUID, status types.AdminStatus) error
	History(ctx context.Context, viewer gallery.Viewer, targetKind string, targetID uuid.UUID) ([]*types.ModerationEvent, error)
}

type moderationService struct {
	db        *gorm.DB
	log       *logger.Logger
	assetRepo repos.AssetRepo
	mediaRepo repos.MediaRepo
	eventRepo repos.ModerationEventRepo
}

func NewModerationService(
	db *gorm.DB,
	log *logger.Logger,
	assetRepo repos.AssetRepo,
	mediaRepo repos.MediaRepo,
	eventRepo repos.ModerationEventRepo,
) ModerationService {
	return &moderationService{
		db:        db,
		log:       log.With("service", "ModerationService"),
		assetRepo: assetRepo,
		mediaRepo: mediaRepo,
		eventRepo: eventRepo,
	}
}

func (s *moderationService) SetAssetAdminStatus(ctx context.Context, viewer gallery.Viewer, assetID uuid.UUID, status types.AdminStatus) error {
	if !viewer.IsAdmin {
		return gallery.ErrNotAuthorized
	}
	if !status.Valid() {
		return fmt.Errorf("invalid admin status %q", status)
	}
	assets, err := s.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{assetID})
	if err != nil {
		return fmt.Errorf("failed to load asset: %w", err)
	}
	if len(assets) == 0 {
		return gallery.ErrAssetNotFound
	}
	prev := assets[0].AdminStatus

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.assetRepo.UpdateFields(ctx, tx, assetID, map[string]interface{}{"admin_status": status}); err != nil {
			return fmt.Errorf("failed to update asset admin status: %w", err)
		}
		return s.recordEvent(ctx, tx, viewer, TargetKindAsset, assetID, string(prev), string(status))
	})
}

func (s *moderationService) SetMediaAdminStatus(ctx context.Context, viewer gallery.Viewer, mediaID uuid.UUID, status types.AdminStatus) error {
	if !viewer.IsAdmin {
		return gallery.ErrNotAuthorized
	}
	if !status.Valid() {
		return fmt.Errorf("invalid admin status %q", status)
	}
	rows, err := s.mediaRepo.GetByIDs(ctx, nil, []uuid.UUID{mediaID})
	if err != nil {
		return fmt.Errorf("failed to load media: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("media %s not found", mediaID)
	}
	prev := rows[0].AdminStatus

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.mediaRepo.UpdateFields(ctx, tx, mediaID, map[string]interface{}{"admin_status": status}); err != nil {
			return fmt.Errorf("failed to update media admin status: %w", err)
		}
		return s.recordEvent(ctx, tx, viewer, TargetKindMedia, mediaID, string(prev), string(status))
	})
}

func (s *moderationService) History(ctx context.Context, viewer gallery.Viewer, targetKind string, targetID uuid.UUID) ([]*types.ModerationEvent, error) {
	if !viewer.IsAdmin {
		return nil, gallery.ErrNotAuthorized
	}
	return s.eventRepo.GetByTarget(ctx, nil, targetKind, targetID)
}

func (s *moderationService) recordEvent(ctx context.Context, tx *gorm.DB, viewer gallery.Viewer, targetKind string, targetID uuid.UUID, from, to string) error {
	if viewer.UserID == nil {
		return fmt.Errorf("admin viewer missing account id")
	}
	details, err := json.Marshal(map[string]string{"from": from, "to": to})
	if err != nil {
		return fmt.Errorf("failed to encode moderation details: %w", err)
	}
	event := &types.ModerationEvent{
		ID:         uuid.New(),
		ActorID:    *viewer.UserID,
		TargetKind: targetKind,
		TargetID:   targetID,
		Action:     "set_admin_status",
		Details:    datatypes.JSON(details),
	}
	if _, err := s.eventRepo.Create(ctx, tx, []*types.ModerationEvent{event}); err != nil {
		return fmt.Errorf("failed to record moderation event: %w", err)
	}
	return nil
}
