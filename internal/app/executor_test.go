package app

import (
	"errors"
	"testing"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

func TestActionsRestampedFromSession(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3, mainPhaseBoard))

	h.client.Executor().EndTurn()
	if len(h.game.actions) != 1 {
		t.Fatalf("actions = %d, want 1", len(h.game.actions))
	}
	act := h.game.actions[0]
	if act.GameID != "game_1" || act.PlayerID != self {
		t.Fatalf("action identity = %s/%s, want game_1/%s", act.GameID, act.PlayerID, self)
	}
	if act.Type != ports.ActionEndTurn {
		t.Fatalf("action type = %q, want %q", act.Type, ports.ActionEndTurn)
	}
	if act.RequestID == "" {
		t.Fatalf("action RequestID empty, want fresh id")
	}
}

func TestAttackUnitClearsStateEvenOnFailure(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3, mainPhaseBoard))
	h.client.HandleSlotClick(self, "slot1")
	attacker := h.client.Selection()
	h.client.attack.Enter([]string{"player_2-slot1"}, func(string) {}, nil)

	h.game.actionErr = errors.New("attack rejected")
	h.client.Executor().AttackUnit(attacker, "player_2-slot1")

	if !h.client.Selection().IsZero() {
		t.Fatalf("selection survived a failed attack")
	}
	if h.client.attack.Active() {
		t.Fatalf("attack mode survived a failed attack")
	}
	if len(h.errors.messages) != 1 {
		t.Fatalf("errors = %v, want the rejection surfaced", h.errors.messages)
	}
	act := h.game.actions[0]
	if act.Type != ports.ActionAttackUnit || act.TargetKey != "player_2-slot1" {
		t.Fatalf("action = %+v, want attackUnit on player_2-slot1", act)
	}
}

func TestAttackShieldAreaSendsAction(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3, mainPhaseBoard))
	h.client.HandleSlotClick(self, "slot1")

	h.client.Executor().AttackShieldArea(h.client.Selection())
	if len(h.game.actions) != 1 || h.game.actions[0].Type != ports.ActionAttackShieldArea {
		t.Fatalf("actions = %+v, want one attackShieldArea", h.game.actions)
	}
	if !h.client.Selection().IsZero() {
		t.Fatalf("selection survived the attack declaration")
	}
}

func TestPlayCardBoardFullReroutesToSlotPick(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3, mainPhaseBoard))
	h.client.HandleHandClick("H1", "UNIT")

	h.game.actionErr = errors.New("Choose a slot to replace")
	h.client.Executor().PlayCard(domain.HandSelection("H1", "UNIT"))

	if len(h.errors.messages) != 0 {
		t.Fatalf("board-full rejection surfaced as raw error: %v", h.errors.messages)
	}
	if !h.slotPick.open {
		t.Fatalf("slot-pick dialog not shown for board-full rejection")
	}
	rows := h.slotPick.cfg.Options
	if len(rows) != 1 || rows[0].ID != "slot1" {
		t.Fatalf("slot-pick rows = %v, want the occupied slot1", rows)
	}

	h.game.actionErr = nil
	h.slotPick.selectOption("slot1")
	if len(h.game.actions) != 2 {
		t.Fatalf("actions = %d, want the disambiguated replay", len(h.game.actions))
	}
	replay := h.game.actions[1]
	if replay.Type != ports.ActionPlayCard || replay.CardUID != "H1" || replay.TargetKey != "slot1" {
		t.Fatalf("replay = %+v, want playCard H1 into slot1", replay)
	}
	if h.slotPick.open {
		t.Fatalf("slot-pick dialog still open after disambiguation")
	}
}

func TestPlayCardGenericRejectionSurfaced(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3, mainPhaseBoard))

	h.game.actionErr = errors.New("not enough resources")
	h.client.Executor().PlayCard(domain.HandSelection("H1", "UNIT"))

	if h.slotPick.open {
		t.Fatalf("slot-pick opened for an unrelated rejection")
	}
	if len(h.errors.messages) != 1 || h.errors.messages[0] != "not enough resources" {
		t.Fatalf("errors = %v, want the rejection verbatim", h.errors.messages)
	}
}

func TestActivateEffectResolvesSelectionUID(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3, mainPhaseBoard))
	h.client.HandleSlotClick(self, "slot1")

	h.client.Executor().ActivateEffect(domain.SlotSelection(self, "slot1"))
	if len(h.game.actions) != 1 {
		t.Fatalf("actions = %d, want 1", len(h.game.actions))
	}
	act := h.game.actions[0]
	if act.Type != ports.ActionActivateEffect || act.CardUID != "U1" {
		t.Fatalf("action = %+v, want activate effect on U1", act)
	}
}
