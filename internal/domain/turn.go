package domain

// TurnTracker remembers turn ownership across snapshots that omit the owner
// field during transient prompt windows. The original client cached a derived
// owner id by writing it back onto the state tree; the tracker keeps that
// memory outside the snapshot so the tree stays read-only.
type TurnTracker struct {
	LastKnownOwner string
	LastKnownTurn  int64
}

// Reduce folds a new snapshot into the tracker and returns the next value.
// A declared owner always wins; otherwise the previous owner is kept, even
// across a turn-number bump, until the server names one again.
func (t TurnTracker) Reduce(s Snapshot) TurnTracker {
	next := t
	if turn := s.TurnNumber(); turn != 0 {
		next.LastKnownTurn = turn
	}
	if owner := s.DeclaredTurnOwner(); owner != "" {
		next.LastKnownOwner = owner
	}
	return next
}

// Owner returns the best-known turn owner, "" when never observed.
func (t TurnTracker) Owner() string {
	return t.LastKnownOwner
}

// IsTurn reports whether the given player is the best-known turn owner.
func (t TurnTracker) IsTurn(playerID string) bool {
	return t.LastKnownOwner != "" && t.LastKnownOwner == playerID
}
