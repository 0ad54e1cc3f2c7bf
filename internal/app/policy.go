package app

import (
	"sort"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// Descriptor is one action-bar affordance before rendering. Policy functions
// in this file are pure: they derive descriptors from state and never touch
// the stores or the network.
type Descriptor struct {
	ID      string
	Label   string
	Rank    int
	Primary bool
	Act     func()
}

// Descriptor ranks; lower renders first. The order is a fixed design rule:
// attack > activate-effect > play-card > end-turn > cancel.
const (
	RankAttack = iota
	RankActivateEffect
	RankPlayCard
	RankEndTurn
	RankCancel
)

// Normalize de-duplicates descriptors by id (first occurrence wins), sorts
// them by rank, and demotes all but the first primary flag.
func Normalize(in []Descriptor) []Descriptor {
	seen := make(map[string]bool, len(in))
	out := make([]Descriptor, 0, len(in))
	for _, d := range in {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	havePrimary := false
	for i := range out {
		if !out[i].Primary {
			continue
		}
		if havePrimary {
			out[i].Primary = false
			continue
		}
		havePrimary = true
	}
	return out
}

func barFromDescriptors(descriptors []Descriptor) ports.BarState {
	buttons := make([]ports.BarButton, 0, len(descriptors))
	for _, d := range descriptors {
		buttons = append(buttons, ports.BarButton{
			ID:      d.ID,
			Label:   d.Label,
			Primary: d.Primary,
			OnPress: d.Act,
		})
	}
	return ports.BarState{Buttons: buttons}
}

// NeutralDescriptors is the default action set when nothing is selected:
// end turn plus any globally available action.
func NeutralDescriptors(endTurn func()) []Descriptor {
	return []Descriptor{
		{
			ID:      "end-turn",
			Label:   "End Turn",
			Rank:    RankEndTurn,
			Primary: true,
			Act:     endTurn,
		},
	}
}

// AttackDescriptors derives the slot-specific attack affordances:
// attack-unit only when an eligible opponent unit exists and the attacker is
// active (untapped); attack-shield always, unless an active effect restricts
// it.
func AttackDescriptors(snap domain.Snapshot, selfID string, sel domain.Selection, attackUnit, attackShield func()) []Descriptor {
	if sel.Kind != domain.SelectionSlot || sel.Owner != selfID {
		return nil
	}
	attacker := snap.SlotUnit(sel.Owner, sel.SlotID)
	if !attacker.Exists() || !attacker.Active {
		return nil
	}

	var out []Descriptor
	if snap.OpponentHasUnit(selfID) {
		out = append(out, Descriptor{
			ID:      "attack-unit",
			Label:   "Attack Unit",
			Rank:    RankAttack,
			Primary: true,
			Act:     attackUnit,
		})
	}
	if !snap.ShieldAttackRestricted(selfID) {
		out = append(out, Descriptor{
			ID:      "attack-shield",
			Label:   "Attack Shields",
			Rank:    RankAttack,
			Primary: true,
			Act:     attackShield,
		})
	}
	return out
}

// SelectionDescriptors derives the generic context actions for a selection.
func SelectionDescriptors(snap domain.Snapshot, selfID string, sel domain.Selection, playCard, activate, cancel func()) []Descriptor {
	var out []Descriptor
	switch sel.Kind {
	case domain.SelectionHand:
		out = append(out, Descriptor{
			ID:      "play-card",
			Label:   "Play Card",
			Rank:    RankPlayCard,
			Primary: true,
			Act:     playCard,
		})
	case domain.SelectionSlot:
		unit := snap.SlotUnit(sel.Owner, sel.SlotID)
		if unit.Exists() && unit.HasRuleForPhase(snap.Phase()) {
			out = append(out, Descriptor{
				ID:      "activate-effect",
				Label:   "Activate Effect",
				Rank:    RankActivateEffect,
				Primary: true,
				Act:     activate,
			})
		}
	case domain.SelectionBase:
		base := snap.Raw().Get("gameEnv.players." + sel.Side + ".zones.base")
		if base.Exists() {
			out = append(out, Descriptor{
				ID:      "activate-effect",
				Label:   "Activate Effect",
				Rank:    RankActivateEffect,
				Primary: true,
				Act:     activate,
			})
		}
	}
	out = append(out, Descriptor{
		ID:    "cancel",
		Label: "Cancel",
		Rank:  RankCancel,
		Act:   cancel,
	})
	return out
}
