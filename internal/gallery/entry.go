package gallery

import (
	"time"

	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/types"
)

// VideoMetadata is the display bag denormalized onto each entry so the
// presentation layer never needs a second round-trip for parent-asset
// fields. Optional fields are pointers; absence is nil, never "".
type VideoMetadata struct {
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	PlaceholderImage *string    `json:"placeholder_image,omitempty"`
	Classification   *string    `json:"classification,omitempty"`
	CreatorName      *string    `json:"creator_name,omitempty"`
	AssetID          *uuid.UUID `json:"asset_id,omitempty"`
	LoraName         *string    `json:"lora_name,omitempty"`
	LoraDescription  *string    `json:"lora_description,omitempty"`
	LoraType         *string    `json:"lora_type,omitempty"`
	LoraLink         *string    `json:"lora_link,omitempty"`
	Model            *string    `json:"model,omitempty"`
	ModelVariant     *string    `json:"model_variant,omitempty"`
}

// VideoEntry is one render-ready video in an asset's gallery. URL is always
// a resolved playable URL, never a raw storage key.
type VideoEntry struct {
	ID               uuid.UUID            `json:"id"`
	URL              string               `json:"url"`
	CreatorLabel     string               `json:"creator_label"`
	CreatedAt        time.Time            `json:"created_at"`
	UserID           *uuid.UUID           `json:"user_id,omitempty"`
	AssetMediaStatus types.DisplayStatus  `json:"asset_media_status"`
	UserStatus       *types.DisplayStatus `json:"user_status,omitempty"`
	IsPrimary        bool                 `json:"is_primary"`
	Metadata         VideoMetadata        `json:"metadata"`
}

// StatusAxis selects which of the two independent display statuses a
// mutation targets.
type StatusAxis string

const (
	AxisAssetMedia StatusAxis = "assetMedia"
	AxisUser       StatusAxis = "user"
)

func (a StatusAxis) Valid() bool {
	return a == AxisAssetMedia || a == AxisUser
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// newVideoEntry converts an asset_media join row (with its media preloaded)
// into a render-ready entry, denormalizing the parent asset's fields. The
// playable URL is filled in by the caller after resolution.
func newVideoEntry(join *types.AssetMedia, asset *types.Asset) VideoEntry {
	media := join.Media

	creatorLabel := media.Creator
	if creatorLabel == "" {
		creatorLabel = "Unknown"
	}
	status := join.Status
	if !status.Valid() {
		status = types.DisplayStatusView
	}

	model := asset.LoraBaseModel
	if model == "" {
		model = media.Type
	}

	return VideoEntry{
		ID:               media.ID,
		CreatorLabel:     creatorLabel,
		CreatedAt:        media.CreatedAt,
		UserID:           media.UserID,
		AssetMediaStatus: status,
		UserStatus:       media.UserStatus,
		IsPrimary:        join.IsPrimary,
		Metadata: VideoMetadata{
			Title:            media.Title,
			Description:      optString(media.Description),
			PlaceholderImage: optString(media.PlaceholderImage),
			Classification:   optString(media.Classification),
			CreatorName:      optString(media.CreatorName),
			AssetID:          &asset.ID,
			LoraName:         optString(asset.Name),
			LoraDescription:  optString(asset.Description),
			LoraType:         optString(asset.LoraType),
			LoraLink:         optString(asset.LoraLink),
			Model:            optString(model),
			ModelVariant:     optString(asset.ModelVariant),
		},
	}
}
