package gallery

import (
	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/types"
)

// Viewer is the identity the pipeline filters against. It is always passed
// explicitly; the pipeline never reads ambient auth state.
type Viewer struct {
	UserID  *uuid.UUID
	IsAdmin bool
}

// Anonymous is the viewer used for unauthenticated requests.
var Anonymous = Viewer{}

// AuthorizedFor reports whether the viewer may see hidden entries and
// mutate the asset: admins always, otherwise only the asset's owner. A nil
// owner means the asset is unattributed and only admins qualify.
func (v Viewer) AuthorizedFor(ownerID *uuid.UUID) bool {
	if v.IsAdmin {
		return true
	}
	return v.UserID != nil && ownerID != nil && *v.UserID == *ownerID
}

// FilterVisible drops Hidden entries for viewers not authorized for the
// asset. For authorized viewers it is the identity function. Pure; callers
// re-evaluate it whenever the viewer or the asset owner changes.
func FilterVisible(viewer Viewer, ownerID *uuid.UUID, entries []VideoEntry) []VideoEntry {
	if viewer.AuthorizedFor(ownerID) {
		return entries
	}
	visible := make([]VideoEntry, 0, len(entries))
	for _, e := range entries {
		if e.AssetMediaStatus != types.DisplayStatusHidden {
			visible = append(visible, e)
		}
	}
	return visible
}
