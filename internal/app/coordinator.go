package app

import (
	"go.uber.org/zap"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// barController is one link of the priority chain walked after every refresh.
// The first controller that claims the bar wins; the rest never run.
type barController interface {
	Name() string
	ApplyActionBar() bool
}

// Refresh folds a freshly fetched snapshot into the engine: stores first,
// then turn tracking, then every choice flow, then the bar chain. This is the
// single reconciliation point; all other paths end here.
func (c *Client) Refresh(snap domain.Snapshot) {
	if !snap.Valid() {
		c.log.Warn("refresh dropped invalid snapshot", zap.String("status", snap.Status))
		return
	}
	c.snapshots.Set(snap)
	c.tracker = c.tracker.Reduce(snap)

	// Off-turn slot clicks are gated, except while an open action step
	// awaits this player: its declared targets must stay clickable.
	awaiting := c.actionStep.Status(snap) == ActionStepAwaiting
	if c.tracker.Owner() != "" && !c.isMyTurn() && !awaiting {
		c.gate.Disable(GateReasonOpponentTurn)
	} else {
		c.gate.Enable(GateReasonOpponentTurn)
	}

	// An attack armed on a previous snapshot does not survive a turn
	// handover or a battle opening.
	if c.attack.Active() && (!c.isMyTurn() || snap.Battle().Active) {
		c.attack.Exit()
	}

	c.group.Sync(snap)
	c.burst.Sync(snap)
	c.prompt.Sync(snap)
	c.option.Sync(snap)
	c.token.Sync(snap)
	c.blocker.Sync(snap)

	c.reapplyBar()
}

// reapplyBar walks the controller chain in priority order and lets the first
// active controller render the bar; if none claims it, the default main-phase
// policy applies.
func (c *Client) reapplyBar() {
	for _, ctl := range c.controllers {
		if ctl.ApplyActionBar() {
			return
		}
	}
	c.applyDefaultBar()
}

// applyDefaultBar renders the bar when no flow or coordinator is active:
// the opponent's turn shows a waiting bar, our own shows selection-scoped
// actions or the neutral set.
func (c *Client) applyDefaultBar() {
	snap, ok := c.snapshots.Current()
	if !ok {
		c.ui.Bar.Set(ports.BarState{})
		return
	}
	if !c.isMyTurn() {
		c.ui.Timer.Pause()
		c.ui.Bar.Set(ports.BarState{WaitingForOpponent: true})
		return
	}
	c.ui.Timer.Resume()

	sel := c.selection.Current()
	if sel.IsZero() {
		c.ui.Bar.Set(barFromDescriptors(Normalize(NeutralDescriptors(func() {
			c.executor.EndTurn()
		}))))
		return
	}

	descriptors := AttackDescriptors(snap, c.session.PlayerID, sel,
		func() { c.beginUnitAttack(sel) },
		func() { c.executor.AttackShieldArea(sel) },
	)
	descriptors = append(descriptors, SelectionDescriptors(snap, c.session.PlayerID, sel,
		func() { c.executor.PlayCard(sel) },
		func() { c.executor.ActivateEffect(sel) },
		func() { c.clearSelectionUI(); c.reapplyBar() },
	)...)
	c.ui.Bar.Set(barFromDescriptors(Normalize(descriptors)))
}

// beginUnitAttack arms the attack-target coordinator for the selected
// attacker: legal targets are every opponent slot currently holding a unit.
func (c *Client) beginUnitAttack(attacker domain.Selection) {
	snap, ok := c.snapshots.Current()
	if !ok || attacker.Kind != domain.SelectionSlot {
		return
	}
	targets := snap.OpponentUnitSlotKeys(c.session.PlayerID)
	if len(targets) == 0 {
		return
	}
	c.attack.Enter(targets,
		func(slotKey string) { c.executor.AttackUnit(attacker, slotKey) },
		func() { c.reapplyBar() },
	)
}

// clearSelectionUI drops the selection and its board highlight. It does not
// re-render the bar; callers decide whether a reapply follows.
func (c *Client) clearSelectionUI() {
	if c.selection.Current().IsZero() {
		return
	}
	c.selection.Clear()
	c.ui.Board.ClearSelectedSlot()
}
