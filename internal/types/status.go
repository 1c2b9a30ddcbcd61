package types

// DisplayStatus governs where a media item shows up. The same tri-state is
// used on two independent axes: the asset_media join row (visibility inside
// the parent asset's gallery) and the media row itself (visibility on the
// uploader's profile).
type DisplayStatus string

const (
	DisplayStatusPinned DisplayStatus = "Pinned"
	DisplayStatusView   DisplayStatus = "View"
	DisplayStatusHidden DisplayStatus = "Hidden"
)

func (s DisplayStatus) Valid() bool {
	switch s {
	case DisplayStatusPinned, DisplayStatusView, DisplayStatusHidden:
		return true
	}
	return false
}

// AdminStatus is the moderation state an admin assigns to assets and media.
type AdminStatus string

const (
	AdminStatusListed   AdminStatus = "Listed"
	AdminStatusCurated  AdminStatus = "Curated"
	AdminStatusRejected AdminStatus = "Rejected"
)

func (s AdminStatus) Valid() bool {
	switch s {
	case AdminStatusListed, AdminStatusCurated, AdminStatusRejected:
		return true
	}
	return false
}
