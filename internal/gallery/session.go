package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/types"
)

var (
	// ErrNoAssetID is returned before any remote call when the fetch is
	// missing its asset identifier.
	ErrNoAssetID = errors.New("no asset id provided")
	// ErrAssetNotFound is returned when the asset row does not exist.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrNotAuthorized short-circuits a mutation locally, before any
	// remote write is attempted.
	ErrNotAuthorized = errors.New("not authorized for this asset")
	// ErrNotFetched is returned by mutations invoked before a successful
	// Fetch populated the session.
	ErrNotFetched = errors.New("asset details not fetched")
)

// ActionError wraps a remote write failure with the user-visible name of
// the attempted action. Local state has already been rolled back when one
// of these is returned.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

const resolveConcurrency = 8

// Session holds the derived view state for one asset detail view: the
// asset, its access-filtered and sorted video entries, and the mutation
// operations that keep them locally consistent with the remote store.
// A Session is owned by a single goroutine; it does no locking.
type Session struct {
	log      *logger.Logger
	store    Store
	resolver URLResolver
	viewer   Viewer

	asset              *types.Asset
	entries            []VideoEntry
	loading            bool
	fetched            bool
	creatorDisplayName string
}

func NewSession(log *logger.Logger, store Store, resolver URLResolver, viewer Viewer) *Session {
	return &Session{
		log:      log.With("component", "GallerySession"),
		store:    store,
		resolver: resolver,
		viewer:   viewer,
	}
}

// ReadModel is the render-ready projection handed to the presentation
// layer.
type ReadModel struct {
	Asset       *types.Asset `json:"asset"`
	CreatorName string       `json:"creator_name"`
	Videos      []VideoEntry `json:"videos"`
	Authorized  bool         `json:"authorized"`
	Loading     bool         `json:"loading"`
}

func (s *Session) ReadModel() ReadModel {
	videos := make([]VideoEntry, len(s.entries))
	copy(videos, s.entries)
	return ReadModel{
		Asset:       s.asset,
		CreatorName: s.CreatorName(),
		Videos:      videos,
		Authorized:  s.Authorized(),
		Loading:     s.loading,
	}
}

func (s *Session) Entries() []VideoEntry {
	videos := make([]VideoEntry, len(s.entries))
	copy(videos, s.entries)
	return videos
}

func (s *Session) Asset() *types.Asset { return s.asset }

func (s *Session) Authorized() bool {
	if s.asset == nil {
		return s.viewer.IsAdmin
	}
	return s.viewer.AuthorizedFor(s.asset.UserID)
}

// CreatorName prefers the owning account's display name, then the asset's
// free-text creator label.
func (s *Session) CreatorName() string {
	if s.creatorDisplayName != "" {
		return s.creatorDisplayName
	}
	if s.asset != nil && s.asset.Creator != "" {
		return s.asset.Creator
	}
	return "Unknown"
}

// Fetch loads the asset and its media and derives the entry list:
// query -> normalize -> authorize-filter -> sort. Any remote failure clears
// the session rather than leaving stale-looking state behind.
func (s *Session) Fetch(ctx context.Context, assetID uuid.UUID) error {
	if assetID == uuid.Nil {
		return ErrNoAssetID
	}

	s.loading = true
	defer func() { s.loading = false }()

	asset, err := s.store.GetAssetWithPrimaryMedia(ctx, assetID)
	if err != nil {
		s.clear()
		return fmt.Errorf("failed to load asset %s: %w", assetID, err)
	}
	if asset == nil {
		s.clear()
		s.fetched = true
		return ErrAssetNotFound
	}

	joins, err := s.store.GetAssetMedia(ctx, assetID)
	if err != nil {
		s.clear()
		return fmt.Errorf("failed to load media for asset %s: %w", assetID, err)
	}

	entries := s.normalize(ctx, asset, joins)
	entries = FilterVisible(s.viewer, asset.UserID, entries)
	Sort(entries)

	s.asset = asset
	s.entries = entries
	s.fetched = true
	s.creatorDisplayName = s.lookupCreatorName(ctx, asset)
	return nil
}

// normalize converts join rows into entries, resolving playable URLs
// concurrently. A row whose URL cannot be resolved is excluded; one bad
// row must not sink the batch.
func (s *Session) normalize(ctx context.Context, asset *types.Asset, joins []*types.AssetMedia) []VideoEntry {
	resolved := make([]*VideoEntry, len(joins))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, join := range joins {
		if join == nil || join.Media == nil {
			continue
		}
		g.Go(func() error {
			url, err := s.resolver.Resolve(gctx, join.Media.StorageKey)
			if err != nil || url == "" {
				s.log.Warn("Could not resolve video URL, excluding entry",
					"media_id", join.Media.ID, "error", err)
				return nil
			}
			entry := newVideoEntry(join, asset)
			entry.URL = url
			resolved[i] = &entry
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]VideoEntry, 0, len(joins))
	for _, e := range resolved {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries
}

// lookupCreatorName is best-effort; a profile lookup failure only loses the
// nicer display name.
func (s *Session) lookupCreatorName(ctx context.Context, asset *types.Asset) string {
	if asset.UserID == nil {
		return ""
	}
	name, err := s.store.GetProfileDisplayName(ctx, *asset.UserID)
	if err != nil {
		s.log.Warn("Profile lookup failed", "user_id", *asset.UserID, "error", err)
		return ""
	}
	return name
}

func (s *Session) clear() {
	s.asset = nil
	s.entries = nil
	s.creatorDisplayName = ""
}

// runOptimistic is the shared three-phase mutation helper: snapshot the
// prior local state, apply the local change and resort, then commit the
// remote write. On commit failure the snapshot is restored exactly and the
// error names the attempted action.
func (s *Session) runOptimistic(ctx context.Context, action string, apply func(), commit func(context.Context) error) error {
	prevAsset := s.asset
	if s.asset != nil {
		assetCopy := *s.asset
		prevAsset = &assetCopy
	}
	prevEntries := make([]VideoEntry, len(s.entries))
	copy(prevEntries, s.entries)

	apply()
	Sort(s.entries)

	if err := commit(ctx); err != nil {
		s.asset = prevAsset
		s.entries = prevEntries
		s.log.Warn("Remote write failed, local state reverted", "action", action, "error", err)
		return &ActionError{Action: action, Err: err}
	}
	return nil
}

// SetVideoStatus changes one entry's display status on the given axis.
func (s *Session) SetVideoStatus(ctx context.Context, videoID uuid.UUID, status types.DisplayStatus, axis StatusAxis) error {
	if !s.fetched || s.asset == nil {
		return ErrNotFetched
	}
	if !status.Valid() {
		return fmt.Errorf("invalid display status %q", status)
	}
	if !axis.Valid() {
		return fmt.Errorf("invalid status axis %q", axis)
	}

	apply := func() {
		for i := range s.entries {
			if s.entries[i].ID != videoID {
				continue
			}
			if axis == AxisAssetMedia {
				s.entries[i].AssetMediaStatus = status
			} else {
				st := status
				s.entries[i].UserStatus = &st
			}
		}
	}
	commit := func(ctx context.Context) error {
		if axis == AxisAssetMedia {
			return s.store.UpdateAssetMediaStatus(ctx, s.asset.ID, videoID, status)
		}
		return s.store.UpdateMediaUserStatus(ctx, videoID, status)
	}
	return s.runOptimistic(ctx, fmt.Sprintf("set video status to %s", status), apply, commit)
}

// SetPrimaryMedia designates mediaID as the asset's primary video (nil
// clears it) and recomputes every entry's is_primary flag.
func (s *Session) SetPrimaryMedia(ctx context.Context, mediaID *uuid.UUID) error {
	if !s.fetched || s.asset == nil {
		return ErrNotFetched
	}

	apply := func() {
		s.asset.PrimaryMediaID = mediaID
		for i := range s.entries {
			s.entries[i].IsPrimary = mediaID != nil && s.entries[i].ID == *mediaID
		}
	}
	commit := func(ctx context.Context) error {
		return s.store.SetPrimaryMedia(ctx, s.asset.ID, mediaID)
	}
	return s.runOptimistic(ctx, "set primary media", apply, commit)
}

// SetAssetUserStatus changes the asset's own user-facing status. The
// authorization check runs locally; unauthorized attempts never reach the
// remote store.
func (s *Session) SetAssetUserStatus(ctx context.Context, status types.DisplayStatus) error {
	if !s.fetched || s.asset == nil {
		return ErrNotFetched
	}
	if !s.viewer.AuthorizedFor(s.asset.UserID) {
		return ErrNotAuthorized
	}
	if !status.Valid() {
		return fmt.Errorf("invalid display status %q", status)
	}

	apply := func() {
		st := status
		s.asset.UserStatus = &st
	}
	commit := func(ctx context.Context) error {
		return s.store.UpdateAssetUserStatus(ctx, s.asset.ID, status)
	}
	return s.runOptimistic(ctx, fmt.Sprintf("set asset status to %s", status), apply, commit)
}

// RemoveVideo drops an entry from the local list, e.g. after a remote
// delete succeeded elsewhere. Purely local; no remote call.
func (s *Session) RemoveVideo(videoID uuid.UUID) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != videoID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}
