package gallery

import (
	"context"

	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/types"
)

// Store is the remote data store contract the pipeline depends on. The
// production implementation is backed by the gorm repos; tests substitute
// an in-memory fake.
type Store interface {
	// GetAssetWithPrimaryMedia returns nil, nil when no such asset exists.
	GetAssetWithPrimaryMedia(ctx context.Context, assetID uuid.UUID) (*types.Asset, error)
	// GetAssetMedia returns the asset's join rows with media preloaded.
	GetAssetMedia(ctx context.Context, assetID uuid.UUID) ([]*types.AssetMedia, error)
	UpdateAssetMediaStatus(ctx context.Context, assetID, mediaID uuid.UUID, status types.DisplayStatus) error
	UpdateMediaUserStatus(ctx context.Context, mediaID uuid.UUID, status types.DisplayStatus) error
	UpdateAssetUserStatus(ctx context.Context, assetID uuid.UUID, status types.DisplayStatus) error
	// SetPrimaryMedia updates the asset's primary reference and the join
	// rows' is_primary flags together; a nil mediaID clears the primary.
	SetPrimaryMedia(ctx context.Context, assetID uuid.UUID, mediaID *uuid.UUID) error
	// GetProfileDisplayName returns "" without error when the account has
	// no display name set.
	GetProfileDisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}

// URLResolver turns a stored video reference into a publicly fetchable URL.
// A resolution failure excludes that one entry from a fetch; it never fails
// the batch.
type URLResolver interface {
	Resolve(ctx context.Context, storageKey string) (string, error)
}
