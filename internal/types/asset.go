package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset is a named creative artifact, typically a trained LoRA. UserID is
// nullable: a nil owner means the asset is not attributed to a platform
// account, only to the free-text Creator label.
type Asset struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	Creator     string     `gorm:"column:creator" json:"creator"`
	UserID      *uuid.UUID `gorm:"type:uuid;column:user_id;index" json:"user_id,omitempty"`

	Type          string `gorm:"column:type;not null;index" json:"type"`
	LoraType      string `gorm:"column:lora_type" json:"lora_type"`
	LoraBaseModel string `gorm:"column:lora_base_model;index" json:"lora_base_model"`
	ModelVariant  string `gorm:"column:model_variant" json:"model_variant"`
	LoraLink      string `gorm:"column:lora_link" json:"lora_link"`

	AdminStatus AdminStatus    `gorm:"column:admin_status;not null;default:'Listed'" json:"admin_status"`
	UserStatus  *DisplayStatus `gorm:"column:user_status" json:"user_status,omitempty"`

	// PrimaryMediaID, when set, must reference a media row joined to this
	// asset through asset_media. Enforced by AssetService, not the schema.
	PrimaryMediaID *uuid.UUID `gorm:"type:uuid;column:primary_media_id" json:"primary_media_id,omitempty"`
	PrimaryMedia   *Media     `gorm:"foreignKey:PrimaryMediaID;references:ID" json:"primary_media,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Asset) TableName() string { return "asset" }
