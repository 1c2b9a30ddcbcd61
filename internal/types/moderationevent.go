package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ModerationEvent is an audit row written for every admin moderation action
// (approve, reject, curate, pin, hide). Details carries the before/after
// values for the touched field.
type ModerationEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID    uuid.UUID      `gorm:"type:uuid;not null;index;column:actor_id" json:"actor_id"`
	TargetKind string         `gorm:"column:target_kind;not null;index:idx_moderation_target,priority:1" json:"target_kind"` // asset|media
	TargetID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_moderation_target,priority:2;column:target_id" json:"target_id"`
	Action     string         `gorm:"column:action;not null" json:"action"`
	Details    datatypes.JSON `gorm:"column:details;type:jsonb" json:"details,omitempty"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (ModerationEvent) TableName() string { return "moderation_event" }
