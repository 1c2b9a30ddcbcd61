package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Media is a single uploaded video. URL holds the last resolved public URL
// as a convenience; StorageKey is the source of truth for resolution.
type Media struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StorageKey  string     `gorm:"column:storage_key;not null;index" json:"storage_key"`
	URL         string     `gorm:"column:url" json:"url,omitempty"`
	Creator     string     `gorm:"column:creator" json:"creator"`
	CreatorName string     `gorm:"column:creator_name" json:"creator_name"`
	UserID      *uuid.UUID `gorm:"type:uuid;column:user_id;index" json:"user_id,omitempty"`

	Title            string `gorm:"column:title" json:"title"`
	Description      string `gorm:"column:description" json:"description"`
	PlaceholderImage string `gorm:"column:placeholder_image" json:"placeholder_image,omitempty"`
	Classification   string `gorm:"column:classification;index" json:"classification"` // generation|art
	Type             string `gorm:"column:type;not null;default:'video'" json:"type"`

	MimeType  string `gorm:"column:mime_type" json:"mime_type"`
	SizeBytes int64  `gorm:"column:size_bytes" json:"size_bytes"`

	AdminStatus AdminStatus    `gorm:"column:admin_status;not null;default:'Listed'" json:"admin_status"`
	UserStatus  *DisplayStatus `gorm:"column:user_status" json:"user_status,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Media) TableName() string { return "media" }
