package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/types"
)

type ModerationEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.ModerationEvent) ([]*types.ModerationEvent, error)
	GetByTarget(ctx context.Context, tx *gorm.DB, targetKind string, targetID uuid.UUID) ([]*types.ModerationEvent, error)
}

type moderationEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModerationEventRepo(db *gorm.DB, baseLog *logger.Logger) ModerationEventRepo {
	return &moderationEventRepo{db: db, log: baseLog.With("repo", "ModerationEventRepo")}
}

func (r *moderationEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.ModerationEvent) ([]*types.ModerationEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(events) == 0 {
		return []*types.ModerationEvent{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *moderationEventRepo) GetByTarget(ctx context.Context, tx *gorm.DB, targetKind string, targetID uuid.UUID) ([]*types.ModerationEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ModerationEvent
	if err := transaction.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", targetKind, targetID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
