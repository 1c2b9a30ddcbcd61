package gallery

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/types"
)

func TestAuthorizedFor(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		viewer  Viewer
		ownerID *uuid.UUID
		want    bool
	}{
		{"anonymous viewer", Anonymous, &owner, false},
		{"owner matches", Viewer{UserID: &owner}, &owner, true},
		{"different user", Viewer{UserID: &other}, &owner, false},
		{"admin, not owner", Viewer{UserID: &other, IsAdmin: true}, &owner, true},
		{"admin without user id", Viewer{IsAdmin: true}, &owner, true},
		{"unattributed asset, plain user", Viewer{UserID: &other}, nil, false},
		{"unattributed asset, admin", Viewer{IsAdmin: true}, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.viewer.AuthorizedFor(tc.ownerID); got != tc.want {
				t.Fatalf("AuthorizedFor = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterVisible_DropsHiddenForUnauthorized(t *testing.T) {
	owner := uuid.New()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []VideoEntry{
		entryAt(types.DisplayStatusPinned, false, t0),
		entryAt(types.DisplayStatusHidden, false, t0),
		entryAt(types.DisplayStatusView, false, t0),
	}

	visible := FilterVisible(Anonymous, &owner, entries)
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible entries, got %d", len(visible))
	}
	for _, e := range visible {
		if e.AssetMediaStatus == types.DisplayStatusHidden {
			t.Fatalf("hidden entry leaked to unauthorized viewer")
		}
	}
}

func TestFilterVisible_KeepsHiddenForOwnerAndAdmin(t *testing.T) {
	owner := uuid.New()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []VideoEntry{
		entryAt(types.DisplayStatusHidden, false, t0),
		entryAt(types.DisplayStatusView, false, t0),
	}

	for _, viewer := range []Viewer{{UserID: &owner}, {IsAdmin: true}} {
		if got := FilterVisible(viewer, &owner, entries); len(got) != len(entries) {
			t.Fatalf("authorized viewer %+v lost entries: got %d want %d", viewer, len(got), len(entries))
		}
	}
}

func TestFilterVisible_EmptyInput(t *testing.T) {
	if got := FilterVisible(Anonymous, nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}
