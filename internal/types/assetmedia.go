package types

import (
	"time"

	"github.com/google/uuid"
)

// AssetMedia associates a media row with an asset. Status is the
// asset-scoped display status of the media inside that asset's gallery.
// IsPrimary mirrors asset.primary_media_id; they are kept consistent by
// AssetService when the primary is changed.
type AssetMedia struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_asset_media,priority:1;column:asset_id" json:"asset_id"`
	MediaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_asset_media,priority:2;column:media_id" json:"media_id"`
	Media   *Media    `gorm:"foreignKey:MediaID;references:ID" json:"media,omitempty"`

	Status    DisplayStatus `gorm:"column:status;not null;default:'View'" json:"status"`
	IsPrimary bool          `gorm:"column:is_primary;not null;default:false" json:"is_primary"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AssetMedia) TableName() string { return "asset_media" }
