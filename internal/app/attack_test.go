package app

import (
	"testing"
)

func TestAttackCoordinatorRoutesLegalClick(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3))

	var selected string
	h.client.attack.Enter([]string{"player_2-slot1"},
		func(slotKey string) { selected = slotKey },
		nil,
	)

	if ids := h.bar.buttonIDs(); len(ids) != 1 || ids[0] != "cancel-attack" {
		t.Fatalf("bar = %v, want single cancel-attack button", ids)
	}

	if !h.client.attack.HandleSlotClick("player_2-slot1") {
		t.Fatalf("legal target click not consumed")
	}
	if selected != "player_2-slot1" {
		t.Fatalf("onSelect got %q, want player_2-slot1", selected)
	}
	if h.client.attack.Active() {
		t.Fatalf("attack mode still active after target selection")
	}
}

func TestAttackCoordinatorSwallowsIllegalClick(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3))

	called := false
	h.client.attack.Enter([]string{"player_2-slot1"},
		func(string) { called = true },
		nil,
	)

	if !h.client.attack.HandleSlotClick("player_2-slot9") {
		t.Fatalf("illegal click not consumed while attack mode active")
	}
	if called {
		t.Fatalf("onSelect invoked for an illegal target")
	}
	if !h.client.attack.Active() {
		t.Fatalf("attack mode exited on an illegal click")
	}
	if !h.client.Selection().IsZero() {
		t.Fatalf("selection mutated by a swallowed click")
	}
}

func TestAttackCoordinatorCancel(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3))

	cancelled := false
	h.client.attack.Enter([]string{"player_2-slot1"},
		func(string) {},
		func() { cancelled = true },
	)

	if !h.bar.press("cancel-attack") {
		t.Fatalf("cancel-attack button missing")
	}
	if !cancelled {
		t.Fatalf("onCancel not invoked")
	}
	if h.client.attack.Active() {
		t.Fatalf("attack mode still active after cancel")
	}
}

func TestAttackModeExitsOnTurnHandover(t *testing.T) {
	h := newHarness(self)
	h.refresh(gameBody(self, 3))
	h.client.attack.Enter([]string{"player_2-slot1"}, func(string) {}, nil)

	h.refresh(gameBody("player_2", 4))
	if h.client.attack.Active() {
		t.Fatalf("attack mode survived a turn handover")
	}
}
