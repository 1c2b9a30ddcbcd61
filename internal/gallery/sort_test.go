package gallery

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/types"
)

func entryAt(status types.DisplayStatus, primary bool, created time.Time) VideoEntry {
	return VideoEntry{
		ID:               uuid.New(),
		AssetMediaStatus: status,
		IsPrimary:        primary,
		CreatedAt:        created,
	}
}

func TestCompare_StatusRankOrdering(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pinned := entryAt(types.DisplayStatusPinned, false, base)
	view := entryAt(types.DisplayStatusView, false, base)
	hidden := entryAt(types.DisplayStatusHidden, false, base)

	if Compare(pinned, view) >= 0 {
		t.Fatalf("expected Pinned before View")
	}
	if Compare(view, hidden) >= 0 {
		t.Fatalf("expected View before Hidden")
	}
	if Compare(pinned, hidden) >= 0 {
		t.Fatalf("expected Pinned before Hidden")
	}
}

func TestCompare_InvalidStatusTreatedAsView(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	bogus := entryAt(types.DisplayStatus("Archived"), false, base)
	view := entryAt(types.DisplayStatusView, false, base)
	pinned := entryAt(types.DisplayStatusPinned, false, base)

	if Compare(bogus, view) != 0 {
		t.Fatalf("expected unknown status to rank equal to View, got %d", Compare(bogus, view))
	}
	if Compare(pinned, bogus) >= 0 {
		t.Fatalf("expected Pinned before unknown status")
	}
}

func TestCompare_PrimaryWinsAmongVisible(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	primary := entryAt(types.DisplayStatusView, true, older)
	pinned := entryAt(types.DisplayStatusPinned, false, newer)

	// Primary beats even a newer pinned entry when both are visible.
	if Compare(primary, pinned) >= 0 {
		t.Fatalf("expected primary entry first among visible entries")
	}
}

func TestCompare_HiddenPrimaryDoesNotFloat(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	hiddenPrimary := entryAt(types.DisplayStatusHidden, true, older.Add(time.Hour))
	view := entryAt(types.DisplayStatusView, false, older)

	if Compare(view, hiddenPrimary) >= 0 {
		t.Fatalf("expected visible entry before hidden primary")
	}
}

func TestCompare_NewestFirstWithinStatus(t *testing.T) {
	older := entryAt(types.DisplayStatusView, false, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := entryAt(types.DisplayStatusView, false, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	if Compare(newer, older) >= 0 {
		t.Fatalf("expected newer entry first within the same status")
	}
}

func TestSort_FullOrdering(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	hiddenNew := entryAt(types.DisplayStatusHidden, false, t0.Add(5*time.Hour))
	pinnedOld := entryAt(types.DisplayStatusPinned, false, t0)
	pinnedNew := entryAt(types.DisplayStatusPinned, false, t0.Add(2*time.Hour))
	viewPrimary := entryAt(types.DisplayStatusView, true, t0.Add(time.Hour))
	viewNew := entryAt(types.DisplayStatusView, false, t0.Add(3*time.Hour))

	entries := []VideoEntry{hiddenNew, pinnedOld, pinnedNew, viewPrimary, viewNew}
	Sort(entries)

	want := []uuid.UUID{viewPrimary.ID, pinnedNew.ID, pinnedOld.ID, viewNew.ID, hiddenNew.ID}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, entries[i].ID, id)
		}
	}
}

func TestSort_Idempotent(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []VideoEntry{
		entryAt(types.DisplayStatusHidden, true, t0.Add(4*time.Hour)),
		entryAt(types.DisplayStatusView, false, t0.Add(2*time.Hour)),
		entryAt(types.DisplayStatusPinned, false, t0),
		entryAt(types.DisplayStatusView, false, t0.Add(2*time.Hour)),
	}

	Sort(entries)
	first := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		first[i] = e.ID
	}

	Sort(entries)
	for i, e := range entries {
		if e.ID != first[i] {
			t.Fatalf("second sort reordered position %d", i)
		}
	}
}

func TestSort_StableForEqualEntries(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := entryAt(types.DisplayStatusView, false, t0)
	b := entryAt(types.DisplayStatusView, false, t0)
	c := entryAt(types.DisplayStatusView, false, t0)

	entries := []VideoEntry{a, b, c}
	Sort(entries)

	if entries[0].ID != a.ID || entries[1].ID != b.ID || entries[2].ID != c.ID {
		t.Fatalf("equal entries lost their insertion order")
	}
}
