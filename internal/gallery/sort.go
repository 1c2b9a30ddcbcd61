package gallery

import (
	"sort"

	"github.com/openmuse/openmuse-backend/internal/types"
)

func statusRank(s types.DisplayStatus) int {
	switch s {
	case types.DisplayStatusPinned:
		return 1
	case types.DisplayStatusView:
		return 2
	case types.DisplayStatusHidden:
		return 3
	default:
		return 2
	}
}

// Compare orders two entries for gallery display:
//
//  1. among two non-Hidden entries, the primary one first
//  2. status rank: Pinned < View < Hidden
//  3. creation time, newest first
//
// The primary tie-break is applied only when neither entry is Hidden. The
// original front-end used both that form and an unconditional one in
// different views; the conditional form is the one kept here so a hidden
// primary can never float above visible entries.
func Compare(a, b VideoEntry) int {
	statusA := a.AssetMediaStatus
	if !statusA.Valid() {
		statusA = types.DisplayStatusView
	}
	statusB := b.AssetMediaStatus
	if !statusB.Valid() {
		statusB = types.DisplayStatusView
	}

	if statusA != types.DisplayStatusHidden && statusB != types.DisplayStatusHidden {
		if a.IsPrimary && !b.IsPrimary {
			return -1
		}
		if !a.IsPrimary && b.IsPrimary {
			return 1
		}
	}

	if d := statusRank(statusA) - statusRank(statusB); d != 0 {
		return d
	}

	switch {
	case a.CreatedAt.After(b.CreatedAt):
		return -1
	case b.CreatedAt.After(a.CreatedAt):
		return 1
	default:
		return 0
	}
}

// Sort orders entries in place. Stable, so entries equal under Compare keep
// their relative order.
func Sort(entries []VideoEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Compare(entries[i], entries[j]) < 0
	})
}
