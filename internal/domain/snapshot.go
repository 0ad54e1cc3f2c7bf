package domain

import (
	"github.com/tidwall/gjson"
)

// Snapshot is one full-state payload received from the server. The raw tree
// is opaque and read-only; accessors derive what the client needs on demand
// and never write anything back into it.
type Snapshot struct {
	Status string
	raw    gjson.Result
}

// ParseSnapshot wraps a raw server payload. The bytes are retained as-is.
func ParseSnapshot(status string, raw []byte) Snapshot {
	return Snapshot{Status: status, raw: gjson.ParseBytes(raw)}
}

// Valid reports whether the snapshot carries a parseable state tree.
func (s Snapshot) Valid() bool {
	return s.raw.Exists() && s.raw.IsObject()
}

// Raw exposes the underlying tree for accessors outside this file.
func (s Snapshot) Raw() gjson.Result {
	return s.raw
}

// Phase returns the current game phase, e.g. "MAIN_PHASE".
func (s Snapshot) Phase() string {
	return s.raw.Get("gameEnv.phase").String()
}

// TurnNumber returns the server turn counter.
func (s Snapshot) TurnNumber() int64 {
	return s.raw.Get("gameEnv.turnNumber").Int()
}

// DeclaredTurnOwner returns the player id the snapshot names as turn owner,
// or "" when the server omits it (it does during transient prompt windows).
func (s Snapshot) DeclaredTurnOwner() string {
	return s.raw.Get("gameEnv.currentPlayer").String()
}

// Battle describes the current battle block of the snapshot.
type Battle struct {
	Active      bool
	Status      string
	AttackerUID string
}

// BattleStatusActionStep is the bilateral reaction window during battle.
const BattleStatusActionStep = "ACTION_STEP"

// Battle returns the current battle, Active=false when none is in progress.
func (s Snapshot) Battle() Battle {
	b := s.raw.Get("gameEnv.currentBattle")
	if !b.Exists() || !b.IsObject() {
		return Battle{}
	}
	return Battle{
		Active:      true,
		Status:      b.Get("status").String(),
		AttackerUID: b.Get("attacker.carduid").String(),
	}
}

// BattleConfirmed reports whether the given player already confirmed (passed)
// the current action step.
func (s Snapshot) BattleConfirmed(playerID string) bool {
	return s.raw.Get("gameEnv.currentBattle.confirmations." + playerID).Bool()
}

// ActionTarget is one card the server declares reactable during action step.
type ActionTarget struct {
	CardUID string
	Zone    string
}

// ActionTargets lists the declared action-step targets for the player.
func (s Snapshot) ActionTargets(playerID string) []ActionTarget {
	var out []ActionTarget
	s.raw.Get("gameEnv.currentBattle.actionTargets." + playerID).ForEach(func(_, row gjson.Result) bool {
		out = append(out, ActionTarget{
			CardUID: row.Get("carduid").String(),
			Zone:    row.Get("zone").String(),
		})
		return true
	})
	return out
}

// entryFromItem normalizes a queue item into a ChoiceEntry. Both queues share
// the { id, type, payload: { event, playerId, status, data } } shape.
func entryFromItem(item gjson.Result) ChoiceEntry {
	payload := item.Get("payload")
	status := payload.Get("status").String()
	if status == "" {
		status = item.Get("status").String()
	}
	return ChoiceEntry{
		ID:       item.Get("id").String(),
		EventID:  payload.Get("event.eventId").String(),
		PlayerID: payload.Get("playerId").String(),
		Status:   status,
		Data:     payload.Get("data"),
	}
}

// FindEntry locates the active entry for the kind: the processing queue is
// searched first, then the notification queue newest-first. Entries whose
// decision is already made still count as found; callers decide what a
// resolved entry means for their lifecycle.
func (s Snapshot) FindEntry(kind ChoiceKind) (ChoiceEntry, bool) {
	want := kind.NotificationType()

	if item, ok := findInQueue(s.raw.Get("gameEnv.processingQueue"), want, false); ok {
		return entryFromItem(item), true
	}
	if item, ok := findInQueue(s.raw.Get("gameEnv.notifications"), want, true); ok {
		return entryFromItem(item), true
	}
	return ChoiceEntry{}, false
}

func findInQueue(queue gjson.Result, wantType string, newestFirst bool) (gjson.Result, bool) {
	if !queue.Exists() || !queue.IsArray() {
		return gjson.Result{}, false
	}
	items := queue.Array()
	if newestFirst {
		for i := len(items) - 1; i >= 0; i-- {
			if items[i].Get("type").String() == wantType {
				return items[i], true
			}
		}
		return gjson.Result{}, false
	}
	for _, item := range items {
		if item.Get("type").String() == wantType {
			return item, true
		}
	}
	return gjson.Result{}, false
}

// Card is the slice of card data the coordination engine needs: identity,
// readiness, and the timing windows of its triggerable rules.
type Card struct {
	UID      string
	CardID   string
	CardType string
	Active   bool
	raw      gjson.Result
}

// Exists reports whether the card was found in the snapshot.
func (c Card) Exists() bool {
	return c.raw.Exists()
}

// HasRuleForPhase reports whether the card carries a triggerable rule whose
// timing window equals the given phase.
func (c Card) HasRuleForPhase(phase string) bool {
	found := false
	c.raw.Get("rules").ForEach(func(_, rule gjson.Result) bool {
		if rule.Get("trigger").String() == phase {
			found = true
			return false
		}
		return true
	})
	return found
}

// cardFromRaw builds a Card from a slot/hand card subtree.
func cardFromRaw(raw gjson.Result) Card {
	if !raw.Exists() {
		return Card{}
	}
	return Card{
		UID:      raw.Get("carduid").String(),
		CardID:   raw.Get("cardId").String(),
		CardType: raw.Get("cardType").String(),
		Active:   !raw.Get("tapped").Bool(),
		raw:      raw,
	}
}

// SlotUnit returns the unit occupying the player's board slot, if any.
func (s Snapshot) SlotUnit(playerID, slotID string) Card {
	return cardFromRaw(s.raw.Get("gameEnv.players." + playerID + ".zones.battleArea." + slotID + ".unit"))
}

// SlotPilot returns the pilot paired onto the player's board slot, if any.
func (s Snapshot) SlotPilot(playerID, slotID string) Card {
	return cardFromRaw(s.raw.Get("gameEnv.players." + playerID + ".zones.battleArea." + slotID + ".pilot"))
}

// HandCard returns the card with the given uid from the player's hand.
func (s Snapshot) HandCard(playerID, uid string) Card {
	var found Card
	s.raw.Get("gameEnv.players." + playerID + ".zones.hand").ForEach(func(_, row gjson.Result) bool {
		if row.Get("carduid").String() == uid {
			found = cardFromRaw(row)
			return false
		}
		return true
	})
	return found
}

// OpponentHasUnit reports whether any opposing board slot holds a unit, which
// gates whether attack-unit is offered at all.
func (s Snapshot) OpponentHasUnit(selfID string) bool {
	found := false
	s.raw.Get("gameEnv.players").ForEach(func(playerID, player gjson.Result) bool {
		if playerID.String() == selfID {
			return true
		}
		player.Get("zones.battleArea").ForEach(func(_, slot gjson.Result) bool {
			if slot.Get("unit").Exists() {
				found = true
				return false
			}
			return true
		})
		return !found
	})
	return found
}

// OpponentUnitSlotKeys lists every opposing slot holding a unit, keyed the
// same way Selection.SlotKey keys slots.
func (s Snapshot) OpponentUnitSlotKeys(selfID string) []string {
	var keys []string
	s.raw.Get("gameEnv.players").ForEach(func(playerID, player gjson.Result) bool {
		if playerID.String() == selfID {
			return true
		}
		owner := playerID.String()
		player.Get("zones.battleArea").ForEach(func(slotID, slot gjson.Result) bool {
			if slot.Get("unit").Exists() {
				keys = append(keys, owner+"-"+slotID.String())
			}
			return true
		})
		return true
	})
	return keys
}

// ShieldAttackRestricted reports whether an active effect forbids attacking
// the shield area this turn.
func (s Snapshot) ShieldAttackRestricted(selfID string) bool {
	return s.raw.Get("gameEnv.restrictions." + selfID + ".shieldAttack").Bool()
}
