package app

import (
	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// ActionStepStatus classifies the local player's standing in the bilateral
// reaction window of a battle.
type ActionStepStatus int

const (
	// ActionStepNone: no action step is open.
	ActionStepNone ActionStepStatus = iota
	// ActionStepAwaiting: the local player has an unresolved, unconfirmed
	// action-step obligation.
	ActionStepAwaiting
	// ActionStepConfirmed: the local player already passed and is waiting
	// on the opponent.
	ActionStepConfirmed
)

// ActionStepCoordinator classifies the reaction window and derives which
// reaction affordances a matched selection offers.
type ActionStepCoordinator struct {
	c *Client
}

// NewActionStepCoordinator wires the coordinator.
func NewActionStepCoordinator(c *Client) *ActionStepCoordinator {
	return &ActionStepCoordinator{c: c}
}

// Name identifies the coordinator in the controller chain.
func (a *ActionStepCoordinator) Name() string { return "action-step" }

// Status classifies the current snapshot for the local player.
func (a *ActionStepCoordinator) Status(snap domain.Snapshot) ActionStepStatus {
	battle := snap.Battle()
	if !battle.Active || battle.Status != domain.BattleStatusActionStep {
		return ActionStepNone
	}
	if snap.BattleConfirmed(a.c.session.PlayerID) {
		return ActionStepConfirmed
	}
	return ActionStepAwaiting
}

// MatchTarget reports whether the selection is one of the server-declared
// legal action-step targets. Matching order: card identifier, then
// zone/location string, then the hand-zone wildcard.
func (a *ActionStepCoordinator) MatchTarget(snap domain.Snapshot, sel domain.Selection) (domain.ActionTarget, bool) {
	targets := snap.ActionTargets(a.c.session.PlayerID)

	selUID := selectionCardUID(snap, sel)
	if selUID != "" {
		for _, target := range targets {
			if target.CardUID == selUID {
				return target, true
			}
		}
	}
	if sel.Kind == domain.SelectionSlot {
		for _, target := range targets {
			if target.Zone == sel.SlotID {
				return target, true
			}
		}
	}
	if sel.Kind == domain.SelectionHand {
		for _, target := range targets {
			if target.Zone == domain.HandZoneWildcard {
				return target, true
			}
		}
	}
	return domain.ActionTarget{}, false
}

// selectionCardUID resolves the card uid a selection points at, "" when the
// selection does not address a concrete card.
func selectionCardUID(snap domain.Snapshot, sel domain.Selection) string {
	switch sel.Kind {
	case domain.SelectionHand:
		return sel.UID
	case domain.SelectionSlot:
		if unit := snap.SlotUnit(sel.Owner, sel.SlotID); unit.Exists() {
			return unit.UID
		}
	case domain.SelectionBase:
		return sel.CardID
	}
	return ""
}

// Descriptors builds the reaction affordances for a matched selection. When
// both the pilot and the unit on one slot carry qualifying triggerable
// rules, both are offered with the pilot flagged primary; otherwise a single
// generic trigger is offered. A skip affordance is always appended.
func (a *ActionStepCoordinator) Descriptors(snap domain.Snapshot, sel domain.Selection) []Descriptor {
	var out []Descriptor
	phase := snap.Phase()

	if sel.Kind == domain.SelectionSlot {
		pilot := snap.SlotPilot(sel.Owner, sel.SlotID)
		unit := snap.SlotUnit(sel.Owner, sel.SlotID)
		pilotQualifies := pilot.Exists() && pilot.HasRuleForPhase(phase)
		unitQualifies := unit.Exists() && unit.HasRuleForPhase(phase)

		switch {
		case pilotQualifies && unitQualifies:
			out = append(out,
				Descriptor{
					ID:      "trigger-pilot-" + pilot.UID,
					Label:   "Trigger Pilot Effect",
					Rank:    RankActivateEffect,
					Primary: true,
					Act:     a.triggerAct(pilot.UID),
				},
				Descriptor{
					ID:    "trigger-unit-" + unit.UID,
					Label: "Trigger Unit Effect",
					Rank:  RankActivateEffect,
					Act:   a.triggerAct(unit.UID),
				},
			)
		case pilotQualifies:
			out = append(out, Descriptor{
				ID:      "trigger-pilot-" + pilot.UID,
				Label:   "Trigger Pilot Effect",
				Rank:    RankActivateEffect,
				Primary: true,
				Act:     a.triggerAct(pilot.UID),
			})
		case unitQualifies:
			out = append(out, Descriptor{
				ID:      "trigger-unit-" + unit.UID,
				Label:   "Trigger Unit Effect",
				Rank:    RankActivateEffect,
				Primary: true,
				Act:     a.triggerAct(unit.UID),
			})
		}
	}

	if len(out) == 0 {
		if uid := selectionCardUID(snap, sel); uid != "" {
			out = append(out, Descriptor{
				ID:      "trigger-card-" + uid,
				Label:   "Trigger Card Effect",
				Rank:    RankActivateEffect,
				Primary: true,
				Act:     a.triggerAct(uid),
			})
		}
	}

	out = append(out, Descriptor{
		ID:    "skip-action-step",
		Label: "Skip",
		Rank:  RankCancel,
		Act:   func() { a.c.executor.SkipAction() },
	})
	return out
}

func (a *ActionStepCoordinator) triggerAct(cardUID string) func() {
	return func() { a.c.executor.ActivateActionStepEffect(cardUID) }
}

// ApplyActionBar renders the action-step bar when a reaction window is open.
func (a *ActionStepCoordinator) ApplyActionBar() bool {
	snap, ok := a.c.snapshots.Current()
	if !ok {
		return false
	}
	switch a.Status(snap) {
	case ActionStepNone:
		return false
	case ActionStepConfirmed:
		a.c.ui.Timer.Pause()
		a.c.ui.Bar.Set(ports.BarState{WaitingForOpponent: true})
		return true
	}
	a.c.ui.Timer.Resume()

	sel := a.c.selection.Current()
	if !sel.IsZero() {
		if _, ok := a.MatchTarget(snap, sel); ok {
			a.c.ui.Bar.Set(barFromDescriptors(Normalize(a.Descriptors(snap, sel))))
			return true
		}
		// Selection no longer matches the declared legal set; clear it
		// rather than showing a highlight on an illegal target.
		a.c.clearSelectionUI()
	}
	a.c.ui.Bar.Set(ports.BarState{
		Buttons: []ports.BarButton{
			{
				ID:      "skip-action-step",
				Label:   "Skip Action-Step",
				Primary: true,
				OnPress: func() { a.c.executor.SkipAction() },
			},
		},
	})
	return true
}
