package app

import (
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"cardclient/internal/domain"
)

// Selection handler: the single writer path for the selection store. Flow
// managers never mutate the selection directly; they go through
// ClearSelection or the click handlers here.

// HandleHandClick processes a click on one of the local player's hand cards.
func (c *Client) HandleHandClick(uid, cardType string) {
	c.trySelect(domain.HandSelection(uid, cardType))
}

// HandleSlotClick processes a click on a board slot. While the attack-target
// coordinator is armed it gets first look and consumes every slot click; the
// slot gate is checked next; ordinary selection rules run last.
func (c *Client) HandleSlotClick(owner, slotID string) {
	sel := domain.SlotSelection(owner, slotID)
	if c.attack.HandleSlotClick(sel.SlotKey()) {
		return
	}
	if !c.gate.Enabled() {
		c.log.Debug("slot click gated", zap.String("slot", sel.SlotKey()))
		return
	}
	c.trySelect(sel)
}

// HandleBaseClick processes a click on a base card.
func (c *Client) HandleBaseClick(side, cardID string) {
	c.trySelect(domain.BaseSelection(side, cardID))
}

// ClearSelection drops the selection and re-renders the neutral bar. This is
// the reset flow managers request when a selection stops being legal.
func (c *Client) ClearSelection() {
	c.clearSelectionUI()
	c.reapplyBar()
}

// trySelect applies the gating rules: outside a reaction window the local
// player must own the turn; inside one the target must be in the declared
// legal set and carry a rule whose timing window is the current phase. A
// violating click clears the selection outright so no highlight ever sits on
// an illegal target.
func (c *Client) trySelect(sel domain.Selection) {
	snap, ok := c.snapshots.Current()
	if !ok {
		return
	}
	if !c.selectionAllowed(snap, sel) {
		c.ClearSelection()
		return
	}

	// A new selection always replaces the previous one and tears down any
	// pending attack-target mode.
	c.attack.Exit()
	c.selection.Set(sel)
	if sel.Kind == domain.SelectionSlot {
		c.ui.Board.SetSelectedSlot(sel.SlotKey())
	} else {
		c.ui.Board.ClearSelectedSlot()
	}
	c.reapplyBar()
}

func (c *Client) selectionAllowed(snap domain.Snapshot, sel domain.Selection) bool {
	if c.actionStep.Status(snap) == ActionStepAwaiting {
		if _, ok := c.actionStep.MatchTarget(snap, sel); !ok {
			return false
		}
		return selectionHasPhaseRule(snap, c.session.PlayerID, sel)
	}
	return c.isMyTurn()
}

// selectionHasPhaseRule reports whether the selected card data carries a rule
// whose timing window equals the current phase.
func selectionHasPhaseRule(snap domain.Snapshot, selfID string, sel domain.Selection) bool {
	phase := snap.Phase()
	switch sel.Kind {
	case domain.SelectionSlot:
		if snap.SlotPilot(sel.Owner, sel.SlotID).HasRuleForPhase(phase) {
			return true
		}
		return snap.SlotUnit(sel.Owner, sel.SlotID).HasRuleForPhase(phase)
	case domain.SelectionHand:
		return snap.HandCard(selfID, sel.UID).HasRuleForPhase(phase)
	case domain.SelectionBase:
		base := snap.Raw().Get("gameEnv.players." + sel.Side + ".zones.base")
		return cardHasRuleForPhase(base, phase)
	}
	return false
}

func cardHasRuleForPhase(raw gjson.Result, phase string) bool {
	if !raw.Exists() {
		return false
	}
	found := false
	raw.Get("rules").ForEach(func(_, rule gjson.Result) bool {
		if rule.Get("trigger").String() == phase {
			found = true
			return false
		}
		return true
	})
	return found
}
