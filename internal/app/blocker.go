package app

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// blockerSkipOption is the dialog row that declines to block.
const blockerSkipOption = "SKIP_BLOCK"

// BlockerTargetView is one selectable blocker mapped onto a rendered board
// slot. Each server target gets its own view value even when two targets
// share a board position, so every target stays individually addressable.
type BlockerTargetView struct {
	TargetUID string
	CardID    string
	SlotKey   string
	Label     string
}

// BlockerFlow is the defender-selects-blocker choice. It shares the generic
// lifecycle and additionally gates generic slot clicks while active so board
// clicks cannot bypass the blocker UI.
type BlockerFlow struct {
	*ChoiceFlow
}

func newBlockerFlow(c *Client, dialog ports.Dialog) *BlockerFlow {
	b := &BlockerFlow{}
	cfg := FlowConfig{
		Kind:   domain.KindBlocker,
		Title:  "Choose a blocker",
		Dialog: dialog,
		Submit: func(ctx context.Context, sub ports.ChoiceSubmission) error {
			return c.game.ConfirmBlockerChoice(ctx, sub)
		},
		// An unanswered blocker choice defaults to not blocking.
		TimeoutOption: func(domain.ChoiceEntry) (string, bool) {
			return blockerSkipOption, true
		},
		Options: func(e domain.ChoiceEntry) []ports.DialogOption {
			views := b.TargetViews(e)
			rows := make([]ports.DialogOption, 0, len(views)+1)
			for _, v := range views {
				rows = append(rows, ports.DialogOption{
					ID:      v.TargetUID,
					Label:   v.Label,
					Enabled: true,
				})
			}
			rows = append(rows, ports.DialogOption{
				ID:      blockerSkipOption,
				Label:   "Don't block",
				Enabled: true,
			})
			return rows
		},
		Decorate: func(sub *ports.ChoiceSubmission, e domain.ChoiceEntry, optionID string) {
			if optionID == blockerSkipOption {
				sub.OptionID = ""
				sub.Pass = true
				return
			}
			sub.TargetUID = optionID
		},
		OnActivate: func() {
			c.gate.Disable(GateReasonBlockerChoice)
		},
		OnDeactivate: func() {
			c.gate.Enable(GateReasonBlockerChoice)
		},
	}
	b.ChoiceFlow = newChoiceFlow(c, cfg)
	return b
}

// TargetViews maps the entry's declared targets onto currently-rendered
// board slots: by zone id first, then by card identifier, tolerating
// duplicate zones holding multiple selectable cards.
func (b *BlockerFlow) TargetViews(e domain.ChoiceEntry) []BlockerTargetView {
	snap, _ := b.c.snapshots.Current()
	self := b.c.session.PlayerID

	views := make([]BlockerTargetView, 0, len(e.Targets()))
	for _, target := range e.Targets() {
		view := BlockerTargetView{
			TargetUID: target.CardUID,
			CardID:    target.CardID,
		}
		if unit := snap.SlotUnit(self, target.Zone); unit.Exists() {
			view.SlotKey = self + "-" + target.Zone
			view.Label = labelForCard(unit, target)
		} else if slotID, card := findSlotByCardUID(snap, self, target.CardUID); slotID != "" {
			view.SlotKey = self + "-" + slotID
			view.Label = labelForCard(card, target)
		} else {
			// Target not on the rendered board; still offer it by id so the
			// server's declared set is never silently narrowed.
			view.Label = target.CardID
		}
		views = append(views, view)
	}
	return views
}

func findSlotByCardUID(snap domain.Snapshot, playerID, cardUID string) (string, domain.Card) {
	var foundSlot string
	var foundCard domain.Card
	snap.Raw().Get("gameEnv.players." + playerID + ".zones.battleArea").ForEach(func(slotID, _ gjson.Result) bool {
		unit := snap.SlotUnit(playerID, slotID.String())
		if unit.Exists() && unit.UID == cardUID {
			foundSlot = slotID.String()
			foundCard = unit
			return false
		}
		return true
	})
	return foundSlot, foundCard
}

func labelForCard(card domain.Card, target domain.ChoiceTarget) string {
	id := card.CardID
	if id == "" {
		id = target.CardID
	}
	if id == "" {
		return target.CardUID
	}
	return fmt.Sprintf("Block with %s", id)
}
