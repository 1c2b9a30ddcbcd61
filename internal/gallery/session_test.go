package gallery

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

type fakeStore struct {
	asset        *types.Asset
	joins        []*types.AssetMedia
	displayNames map[uuid.UUID]string

	assetErr error
	mediaErr error
	writeErr error

	joinStatusWrites  int
	mediaStatusWrites int
	assetStatusWrites int
	primaryWrites     int
}

func (f *fakeStore) GetAssetWithPrimaryMedia(_ context.Context, assetID uuid.UUID) (*types.Asset, error) {
	if f.assetErr != nil {
		return nil, f.assetErr
	}
	if f.asset == nil || f.asset.ID != assetID {
		return nil, nil
	}
	assetCopy := *f.asset
	return &assetCopy, nil
}

func (f *fakeStore) GetAssetMedia(_ context.Context, assetID uuid.UUID) ([]*types.AssetMedia, error) {
	if f.mediaErr != nil {
		return nil, f.mediaErr
	}
	var out []*types.AssetMedia
	for _, j := range f.joins {
		if j.AssetID == assetID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateAssetMediaStatus(_ context.Context, _, _ uuid.UUID, _ types.DisplayStatus) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.joinStatusWrites++
	return nil
}

func (f *fakeStore) UpdateMediaUserStatus(_ context.Context, _ uuid.UUID, _ types.DisplayStatus) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mediaStatusWrites++
	return nil
}

func (f *fakeStore) UpdateAssetUserStatus(_ context.Context, _ uuid.UUID, _ types.DisplayStatus) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.assetStatusWrites++
	return nil
}

func (f *fakeStore) SetPrimaryMedia(_ context.Context, _ uuid.UUID, _ *uuid.UUID) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.primaryWrites++
	return nil
}

func (f *fakeStore) GetProfileDisplayName(_ context.Context, userID uuid.UUID) (string, error) {
	return f.displayNames[userID], nil
}

type fakeResolver struct {
	failKeys map[string]bool
}

func (r *fakeResolver) Resolve(_ context.Context, storageKey string) (string, error) {
	if r.failKeys[storageKey] {
		return "", errors.New("object not found")
	}
	return "https://cdn.test/" + storageKey, nil
}

func newJoin(assetID uuid.UUID, key string, status types.DisplayStatus, primary bool, created time.Time) *types.AssetMedia {
	mediaID := uuid.New()
	return &types.AssetMedia{
		ID:        uuid.New(),
		AssetID:   assetID,
		MediaID:   mediaID,
		Status:    status,
		IsPrimary: primary,
		Media: &types.Media{
			ID:         mediaID,
			StorageKey: key,
			Title:      key,
			Creator:    "alice",
			CreatedAt:  created,
		},
	}
}

// galleryFixture: an owned asset with a pinned video, a plain one, and a
// hidden one.
func galleryFixture() (*fakeStore, *types.Asset, []*types.AssetMedia) {
	ownerID := uuid.New()
	asset := &types.Asset{
		ID:            uuid.New(),
		Name:          "neon-drift",
		Creator:       "alice",
		UserID:        &ownerID,
		Type:          "lora",
		LoraBaseModel: "wan",
		AdminStatus:   types.AdminStatusListed,
	}
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	joins := []*types.AssetMedia{
		newJoin(asset.ID, "videos/a.mp4", types.DisplayStatusView, false, t0),
		newJoin(asset.ID, "videos/b.mp4", types.DisplayStatusPinned, false, t0.Add(time.Hour)),
		newJoin(asset.ID, "videos/c.mp4", types.DisplayStatusHidden, false, t0.Add(2*time.Hour)),
	}
	store := &fakeStore{
		asset:        asset,
		joins:        joins,
		displayNames: map[uuid.UUID]string{ownerID: "Alice"},
	}
	return store, asset, joins
}

func ownerViewer(asset *types.Asset) Viewer {
	return Viewer{UserID: asset.UserID}
}

func TestFetch_RequiresAssetID(t *testing.T) {
	store, _, _ := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, Anonymous)

	if err := s.Fetch(context.Background(), uuid.Nil); !errors.Is(err, ErrNoAssetID) {
		t.Fatalf("expected ErrNoAssetID, got %v", err)
	}
}

func TestFetch_AssetNotFound(t *testing.T) {
	store, _, _ := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, Anonymous)

	if err := s.Fetch(context.Background(), uuid.New()); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
	if s.Asset() != nil || len(s.Entries()) != 0 {
		t.Fatalf("expected empty session after not-found")
	}
}

func TestFetch_NormalizesResolvesAndSorts(t *testing.T) {
	store, asset, joins := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))

	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("owner should see all 3 entries, got %d", len(entries))
	}
	// Pinned first, then View, Hidden last.
	if entries[0].ID != joins[1].MediaID {
		t.Fatalf("expected pinned video first, got %s", entries[0].ID)
	}
	if entries[2].AssetMediaStatus != types.DisplayStatusHidden {
		t.Fatalf("expected hidden video last")
	}
	for _, e := range entries {
		if e.URL == "" || e.URL == e.Metadata.Title {
			t.Fatalf("entry %s has unresolved URL %q", e.ID, e.URL)
		}
		if e.Metadata.AssetID == nil || *e.Metadata.AssetID != asset.ID {
			t.Fatalf("entry %s missing denormalized asset id", e.ID)
		}
		if e.Metadata.LoraName == nil || *e.Metadata.LoraName != asset.Name {
			t.Fatalf("entry %s missing denormalized lora name", e.ID)
		}
	}
	if got := s.CreatorName(); got != "Alice" {
		t.Fatalf("expected profile display name, got %q", got)
	}
	rm := s.ReadModel()
	if !rm.Authorized || rm.Loading {
		t.Fatalf("unexpected read model flags: %+v", rm)
	}
}

func TestFetch_HiddenFilteredForUnauthorizedViewer(t *testing.T) {
	store, asset, _ := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, Anonymous)

	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("anonymous viewer should see 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.AssetMediaStatus == types.DisplayStatusHidden {
			t.Fatalf("hidden entry leaked to anonymous viewer")
		}
	}
	if s.Authorized() {
		t.Fatalf("anonymous viewer must not be authorized")
	}
}

func TestFetch_ResolveFailureExcludesOnlyThatEntry(t *testing.T) {
	store, asset, joins := galleryFixture()
	resolver := &fakeResolver{failKeys: map[string]bool{"videos/b.mp4": true}}
	s := NewSession(testLogger(t), store, resolver, ownerViewer(asset))

	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch must not fail on a single bad entry: %v", err)
	}
	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after exclusion, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ID == joins[1].MediaID {
			t.Fatalf("unresolvable entry was not excluded")
		}
	}
}

func TestFetch_RemoteFailureClearsSession(t *testing.T) {
	store, asset, _ := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))

	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if len(s.Entries()) == 0 {
		t.Fatalf("first fetch left no entries")
	}

	store.mediaErr = errors.New("connection reset")
	if err := s.Fetch(context.Background(), asset.ID); err == nil {
		t.Fatalf("expected error from failing fetch")
	}
	if s.Asset() != nil || len(s.Entries()) != 0 {
		t.Fatalf("failed fetch must clear the session, not keep stale state")
	}
}

func TestMutations_RequireFetch(t *testing.T) {
	store, _, _ := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, Anonymous)
	ctx := context.Background()

	if err := s.SetVideoStatus(ctx, uuid.New(), types.DisplayStatusPinned, AxisAssetMedia); !errors.Is(err, ErrNotFetched) {
		t.Fatalf("SetVideoStatus: expected ErrNotFetched, got %v", err)
	}
	if err := s.SetPrimaryMedia(ctx, nil); !errors.Is(err, ErrNotFetched) {
		t.Fatalf("SetPrimaryMedia: expected ErrNotFetched, got %v", err)
	}
	if err := s.SetAssetUserStatus(ctx, types.DisplayStatusHidden); !errors.Is(err, ErrNotFetched) {
		t.Fatalf("SetAssetUserStatus: expected ErrNotFetched, got %v", err)
	}
}

func TestSetVideoStatus_AppliesAndResorts(t *testing.T) {
	store, asset, joins := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))
	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	// Pin the plain View video; it is newer than nothing else pinned except
	// joins[1], so it should sort into the pinned block.
	target := joins[0].MediaID
	if err := s.SetVideoStatus(context.Background(), target, types.DisplayStatusPinned, AxisAssetMedia); err != nil {
		t.Fatalf("SetVideoStatus: %v", err)
	}
	if store.joinStatusWrites != 1 {
		t.Fatalf("expected 1 remote status write, got %d", store.joinStatusWrites)
	}

	entries := s.Entries()
	for _, e := range entries {
		if e.ID == target && e.AssetMediaStatus != types.DisplayStatusPinned {
			t.Fatalf("local status not applied")
		}
	}
	if entries[0].AssetMediaStatus != types.DisplayStatusPinned || entries[1].AssetMediaStatus != types.DisplayStatusPinned {
		t.Fatalf("entries not resorted after status change")
	}
}

func TestSetVideoStatus_UserAxisWritesMediaRow(t *testing.T) {
	store, asset, joins := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))
	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	target := joins[0].MediaID
	if err := s.SetVideoStatus(context.Background(), target, types.DisplayStatusHidden, AxisUser); err != nil {
		t.Fatalf("SetVideoStatus: %v", err)
	}
	if store.mediaStatusWrites != 1 || store.joinStatusWrites != 0 {
		t.Fatalf("user axis must write the media row, got join=%d media=%d", store.joinStatusWrites, store.mediaStatusWrites)
	}
	for _, e := range s.Entries() {
		if e.ID == target {
			if e.UserStatus == nil || *e.UserStatus != types.DisplayStatusHidden {
				t.Fatalf("user status not applied locally")
			}
			if e.AssetMediaStatus == types.DisplayStatusHidden {
				t.Fatalf("user axis must not touch the asset-media status")
			}
		}
	}
}

func TestSetVideoStatus_RepeatedApplicationIsIdempotent(t *testing.T) {
	store, asset, joins := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))
	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	target := joins[0].MediaID
	for _, axis := range []StatusAxis{AxisAssetMedia, AxisUser} {
		if err := s.SetVideoStatus(context.Background(), target, types.DisplayStatusPinned, axis); err != nil {
			t.Fatalf("first SetVideoStatus on %s: %v", axis, err)
		}
		afterFirst := s.Entries()

		if err := s.SetVideoStatus(context.Background(), target, types.DisplayStatusPinned, axis); err != nil {
			t.Fatalf("second SetVideoStatus on %s: %v", axis, err)
		}
		if !reflect.DeepEqual(afterFirst, s.Entries()) {
			t.Fatalf("repeated status change on %s axis altered the entry list", axis)
		}
	}
}

func TestSetVideoStatus_RejectsInvalidInput(t *testing.T) {
	store, asset, joins := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))
	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if err := s.SetVideoStatus(context.Background(), joins[0].MediaID, types.DisplayStatus("Archived"), AxisAssetMedia); err == nil {
		t.Fatalf("expected error for invalid status")
	}
	if err := s.SetVideoStatus(context.Background(), joins[0].MediaID, types.DisplayStatusView, StatusAxis("bogus")); err == nil {
		t.Fatalf("expected error for invalid axis")
	}
	if store.joinStatusWrites != 0 || store.mediaStatusWrites != 0 {
		t.Fatalf("invalid input must not reach the store")
	}
}

func TestSetVideoStatus_RollsBackOnRemoteFailure(t *testing.T) {
	store, asset, joins := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))
	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	beforeEntries := s.Entries()
	beforeAsset := *s.Asset()

	remoteErr := errors.New("write timed out")
	store.writeErr = remoteErr
	err := s.SetVideoStatus(context.Background(), joins[0].MediaID, types.DisplayStatusHidden, AxisAssetMedia)
	if err == nil {
		t.Fatalf("expected error from failed remote write")
	}
	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		t.Fatalf("expected ActionError, got %T", err)
	}
	if !errors.Is(err, remoteErr) {
		t.Fatalf("ActionError must wrap the remote error")
	}

	if !reflect.DeepEqual(beforeEntries, s.Entries()) {
		t.Fatalf("entries not restored after failed write")
	}
	if !reflect.DeepEqual(beforeAsset, *s.Asset()) {
		t.Fatalf("asset not restored after failed write")
	}
}

func TestSetPrimaryMedia_RecomputesFlags(t *testing.T) {
	store, asset, joins := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))
	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	target := joins[0].MediaID
	if err := s.SetPrimaryMedia(context.Background(), &target); err != nil {
		t.Fatalf("SetPrimaryMedia: %v", err)
	}
	if store.primaryWrites != 1 {
		t.Fatalf("expected 1 remote primary write, got %d", store.primaryWrites)
	}
	if s.Asset().PrimaryMediaID == nil || *s.Asset().PrimaryMediaID != target {
		t.Fatalf("asset primary id not updated locally")
	}
	for _, e := range s.Entries() {
		if (e.ID == target) != e.IsPrimary {
			t.Fatalf("is_primary not recomputed for entry %s", e.ID)
		}
	}
	// The new primary is visible, so it sorts first.
	if got := s.Entries()[0].ID; got != target {
		t.Fatalf("expected new primary first, got %s", got)
	}

	// Clearing the primary drops every flag.
	if err := s.SetPrimaryMedia(context.Background(), nil); err != nil {
		t.Fatalf("clear primary: %v", err)
	}
	if s.Asset().PrimaryMediaID != nil {
		t.Fatalf("primary id not cleared")
	}
	for _, e := range s.Entries() {
		if e.IsPrimary {
			t.Fatalf("entry %s still marked primary after clear", e.ID)
		}
	}
}

func TestSetAssetUserStatus_UnauthorizedNeverReachesStore(t *testing.T) {
	store, asset, _ := galleryFixture()
	other := uuid.New()
	s := NewSession(testLogger(t), store, &fakeResolver{}, Viewer{UserID: &other})
	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	err := s.SetAssetUserStatus(context.Background(), types.DisplayStatusHidden)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if store.assetStatusWrites != 0 {
		t.Fatalf("unauthorized mutation reached the store")
	}
	if s.Asset().UserStatus != nil {
		t.Fatalf("unauthorized mutation changed local state")
	}
}

func TestSetAssetUserStatus_OwnerSucceeds(t *testing.T) {
	store, asset, _ := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))
	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if err := s.SetAssetUserStatus(context.Background(), types.DisplayStatusPinned); err != nil {
		t.Fatalf("SetAssetUserStatus: %v", err)
	}
	if store.assetStatusWrites != 1 {
		t.Fatalf("expected 1 remote asset status write, got %d", store.assetStatusWrites)
	}
	if s.Asset().UserStatus == nil || *s.Asset().UserStatus != types.DisplayStatusPinned {
		t.Fatalf("asset user status not applied locally")
	}
}

func TestRemoveVideo_PurelyLocal(t *testing.T) {
	store, asset, joins := galleryFixture()
	s := NewSession(testLogger(t), store, &fakeResolver{}, ownerViewer(asset))
	if err := s.Fetch(context.Background(), asset.ID); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	before := len(s.Entries())
	s.RemoveVideo(joins[0].MediaID)
	if got := len(s.Entries()); got != before-1 {
		t.Fatalf("expected %d entries after removal, got %d", before-1, got)
	}
	for _, e := range s.Entries() {
		if e.ID == joins[0].MediaID {
			t.Fatalf("removed entry still present")
		}
	}
	// Removing an unknown id is a no-op.
	s.RemoveVideo(uuid.New())
	if got := len(s.Entries()); got != before-1 {
		t.Fatalf("unknown id removal changed the list")
	}
}
