package domain

import (
	"testing"
)

func TestParseSnapshotValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"object", `{"gameEnv":{}}`, true},
		{"empty", ``, false},
		{"garbage", `not json`, false},
		{"array", `[1,2]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSnapshot("OK", []byte(tt.raw))
			if got := s.Valid(); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindEntryPrefersProcessingQueue(t *testing.T) {
	raw := `{"gameEnv":{
		"processingQueue":[
			{"id":"p1","type":"PROMPT_CHOICE","payload":{"playerId":"player_1","status":"PENDING","data":{}}}
		],
		"notifications":[
			{"id":"n1","type":"PROMPT_CHOICE","payload":{"playerId":"player_1","status":"PENDING","data":{}}},
			{"id":"n2","type":"PROMPT_CHOICE","payload":{"playerId":"player_1","status":"PENDING","data":{}}}
		]}}`
	s := ParseSnapshot("OK", []byte(raw))

	e, ok := s.FindEntry(KindPrompt)
	if !ok {
		t.Fatalf("entry not found")
	}
	if e.ID != "p1" {
		t.Fatalf("entry id = %q, want processing-queue entry p1", e.ID)
	}
}

func TestFindEntryNotificationsNewestFirst(t *testing.T) {
	raw := `{"gameEnv":{"notifications":[
		{"id":"n1","type":"BURST_EFFECT_CHOICE","payload":{"status":"PENDING","data":{}}},
		{"id":"n2","type":"PROMPT_CHOICE","payload":{"status":"PENDING","data":{}}},
		{"id":"n3","type":"BURST_EFFECT_CHOICE","payload":{"status":"PENDING","data":{}}}
	]}}`
	s := ParseSnapshot("OK", []byte(raw))

	e, ok := s.FindEntry(KindBurst)
	if !ok || e.ID != "n3" {
		t.Fatalf("entry = %v/%v, want newest burst entry n3", e.ID, ok)
	}
}

func TestEntryNormalization(t *testing.T) {
	raw := `{"gameEnv":{"notifications":[{
		"id":"n1","type":"OPTION_CHOICE",
		"payload":{
			"event":{"eventId":"ev_9"},
			"playerId":"player_2",
			"status":"PENDING",
			"data":{"availableChoices":[{"id":"a","label":"A"},{"id":"b","label":"B","disabled":true}]}
		}}]}}`
	s := ParseSnapshot("OK", []byte(raw))

	e, _ := s.FindEntry(KindOption)
	if e.EventID != "ev_9" || e.PlayerID != "player_2" {
		t.Fatalf("entry = %+v, want ev_9/player_2", e)
	}
	opts := e.Options()
	if len(opts) != 2 {
		t.Fatalf("options = %d, want 2", len(opts))
	}
	if !opts[0].Enabled || opts[1].Enabled {
		t.Fatalf("enabled flags = %v/%v, want true/false", opts[0].Enabled, opts[1].Enabled)
	}
}

func TestEntryResolvedForms(t *testing.T) {
	tests := []struct {
		name  string
		entry ChoiceEntry
		want  bool
	}{
		{"pending", mustEntry(`{"status":"PENDING","data":{}}`), false},
		{"status resolved", mustEntry(`{"status":"RESOLVED","data":{}}`), true},
		{"decision made", mustEntry(`{"status":"PENDING","data":{"userDecisionMade":true}}`), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Resolved(); got != tt.want {
				t.Fatalf("Resolved() = %v, want %v", got, tt.want)
			}
		})
	}
}

func mustEntry(payload string) ChoiceEntry {
	raw := `{"gameEnv":{"notifications":[{"id":"x","type":"PROMPT_CHOICE","payload":` + payload + `}]}}`
	e, _ := ParseSnapshot("OK", []byte(raw)).FindEntry(KindPrompt)
	return e
}

func TestGroupEntryHelpers(t *testing.T) {
	raw := `{"gameEnv":{"notifications":[{
		"id":"g1","type":"BURST_EFFECT_CHOICE_GROUP",
		"payload":{"status":"PENDING","data":{
			"events":[{"eventId":"ev_a","description":"A"},{"eventId":"ev_b","description":"B"}],
			"resolvedEventIds":["ev_a"]
		}}}]}}`
	e, _ := ParseSnapshot("OK", []byte(raw)).FindEntry(KindBurstGroup)

	events := e.GroupEvents()
	if len(events) != 2 || !events[0].Resolved || events[1].Resolved {
		t.Fatalf("events = %+v, want ev_a resolved only", events)
	}
	if e.GroupCompleted() {
		t.Fatalf("GroupCompleted = true with ev_b unresolved")
	}
	if ids := e.GroupEventIDs(); len(ids) != 2 || ids[0] != "ev_a" || ids[1] != "ev_b" {
		t.Fatalf("event ids = %v, want server order", ids)
	}
}

func TestGroupCompletedByFlag(t *testing.T) {
	raw := `{"gameEnv":{"notifications":[{
		"id":"g1","type":"BURST_EFFECT_CHOICE_GROUP",
		"payload":{"status":"PENDING","data":{"isCompleted":true,
			"events":[{"eventId":"ev_a"}],"resolvedEventIds":[]}}}]}}`
	e, _ := ParseSnapshot("OK", []byte(raw)).FindEntry(KindBurstGroup)
	if !e.GroupCompleted() {
		t.Fatalf("GroupCompleted = false with isCompleted set")
	}
}

const boardRaw = `{"gameEnv":{
	"phase":"MAIN_PHASE",
	"players":{
		"player_1":{"zones":{
			"hand":[{"carduid":"H1","cardId":"C-100","cardType":"COMMAND"}],
			"battleArea":{
				"slot1":{"unit":{"carduid":"U1","cardId":"C-001","tapped":true,"rules":[{"trigger":"MAIN_PHASE"}]}},
				"slot2":{}
			}
		}},
		"player_2":{"zones":{"battleArea":{
			"slot1":{"unit":{"carduid":"E1","cardId":"C-201"}},
			"slot2":{"unit":{"carduid":"E2","cardId":"C-202"}}
		}}}
	},
	"restrictions":{"player_1":{"shieldAttack":true}}
}}`

func TestCardAccessors(t *testing.T) {
	s := ParseSnapshot("OK", []byte(boardRaw))

	unit := s.SlotUnit("player_1", "slot1")
	if !unit.Exists() || unit.UID != "U1" || unit.Active {
		t.Fatalf("slot1 unit = %+v, want tapped U1", unit)
	}
	if !unit.HasRuleForPhase("MAIN_PHASE") || unit.HasRuleForPhase("END_PHASE") {
		t.Fatalf("rule phase matching wrong")
	}
	if empty := s.SlotUnit("player_1", "slot2"); empty.Exists() {
		t.Fatalf("empty slot reported a unit")
	}
	hand := s.HandCard("player_1", "H1")
	if !hand.Exists() || hand.CardType != "COMMAND" {
		t.Fatalf("hand card = %+v, want COMMAND H1", hand)
	}
}

func TestOpponentQueries(t *testing.T) {
	s := ParseSnapshot("OK", []byte(boardRaw))

	if !s.OpponentHasUnit("player_1") {
		t.Fatalf("OpponentHasUnit = false, want true")
	}
	keys := s.OpponentUnitSlotKeys("player_1")
	if len(keys) != 2 || keys[0] != "player_2-slot1" || keys[1] != "player_2-slot2" {
		t.Fatalf("opponent slot keys = %v", keys)
	}
	if !s.ShieldAttackRestricted("player_1") {
		t.Fatalf("ShieldAttackRestricted = false, want true")
	}
	if s.ShieldAttackRestricted("player_2") {
		t.Fatalf("ShieldAttackRestricted(player_2) = true, want false")
	}
}

func TestBattleAccessors(t *testing.T) {
	raw := `{"gameEnv":{"currentBattle":{
		"status":"ACTION_STEP",
		"attacker":{"carduid":"E1"},
		"confirmations":{"player_1":true,"player_2":false},
		"actionTargets":{"player_1":[{"carduid":"U1","zone":"slot1"},{"carduid":"H1","zone":"hand"}]}
	}}}`
	s := ParseSnapshot("OK", []byte(raw))

	b := s.Battle()
	if !b.Active || b.Status != BattleStatusActionStep || b.AttackerUID != "E1" {
		t.Fatalf("battle = %+v", b)
	}
	if !s.BattleConfirmed("player_1") || s.BattleConfirmed("player_2") {
		t.Fatalf("confirmations wrong")
	}
	targets := s.ActionTargets("player_1")
	if len(targets) != 2 || targets[1].Zone != HandZoneWildcard {
		t.Fatalf("targets = %+v", targets)
	}
	if got := s.ActionTargets("player_2"); len(got) != 0 {
		t.Fatalf("player_2 targets = %+v, want none", got)
	}
}

func TestNoBattle(t *testing.T) {
	s := ParseSnapshot("OK", []byte(`{"gameEnv":{}}`))
	if s.Battle().Active {
		t.Fatalf("battle active with no currentBattle block")
	}
}
