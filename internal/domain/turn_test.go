package domain

import (
	"strconv"
	"testing"
)

func snapWith(currentPlayer string, turn int) Snapshot {
	raw := `{"gameEnv":{"turnNumber":` + strconv.Itoa(turn) + `,"currentPlayer":"` + currentPlayer + `"}}`
	return ParseSnapshot("OK", []byte(raw))
}

func TestTurnTrackerKeepsOwnerAcrossOmission(t *testing.T) {
	var tr TurnTracker
	tr = tr.Reduce(snapWith("player_1", 3))
	if tr.Owner() != "player_1" || tr.LastKnownTurn != 3 {
		t.Fatalf("tracker = %+v, want player_1 turn 3", tr)
	}

	// A transient prompt window omits the owner; the last known one holds,
	// even across a turn bump.
	tr = tr.Reduce(snapWith("", 4))
	if tr.Owner() != "player_1" {
		t.Fatalf("owner = %q after omission, want player_1", tr.Owner())
	}
	if tr.LastKnownTurn != 4 {
		t.Fatalf("turn = %d, want 4", tr.LastKnownTurn)
	}

	tr = tr.Reduce(snapWith("player_2", 4))
	if !tr.IsTurn("player_2") || tr.IsTurn("player_1") {
		t.Fatalf("ownership = %+v after handover", tr)
	}
}

func TestTurnTrackerZeroValue(t *testing.T) {
	var tr TurnTracker
	if tr.Owner() != "" {
		t.Fatalf("zero tracker owner = %q, want empty", tr.Owner())
	}
	if tr.IsTurn("") {
		t.Fatalf("IsTurn(\"\") = true on zero tracker, want false")
	}
}

func TestTurnTrackerReduceIsPure(t *testing.T) {
	tr := TurnTracker{LastKnownOwner: "player_1", LastKnownTurn: 2}
	_ = tr.Reduce(snapWith("player_2", 3))
	if tr.LastKnownOwner != "player_1" || tr.LastKnownTurn != 2 {
		t.Fatalf("Reduce mutated its receiver: %+v", tr)
	}
}
