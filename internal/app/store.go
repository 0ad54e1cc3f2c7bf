package app

import (
	"cardclient/internal/domain"
)

// SnapshotStore holds the latest server state payload. It is confined to the
// client loop goroutine and replaced wholesale on every poll.
type SnapshotStore struct {
	snap domain.Snapshot
	ok   bool
}

// NewSnapshotStore returns an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Set replaces the stored snapshot.
func (s *SnapshotStore) Set(snap domain.Snapshot) {
	s.snap = snap
	s.ok = true
}

// Current returns the latest snapshot and whether one has been stored.
func (s *SnapshotStore) Current() (domain.Snapshot, bool) {
	return s.snap, s.ok
}

// Status returns the last known status string, "" before the first poll.
func (s *SnapshotStore) Status() string {
	if !s.ok {
		return ""
	}
	return s.snap.Status
}

// SelectionStore holds the single currently selected UI target. The
// selection handler is its only writer; flows request clears through it.
type SelectionStore struct {
	sel domain.Selection
}

// NewSelectionStore returns an empty store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{}
}

// Set replaces the selection; any previous target is implicitly dropped.
func (s *SelectionStore) Set(sel domain.Selection) {
	s.sel = sel
}

// Clear drops the selection.
func (s *SelectionStore) Clear() {
	s.sel = domain.Selection{}
}

// Current returns the selection, zero when none.
func (s *SelectionStore) Current() domain.Selection {
	return s.sel
}
