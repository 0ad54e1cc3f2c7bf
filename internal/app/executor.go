package app

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// boardFullMarker is the server's structural rejection for playing a unit
// onto a full board. It is re-routed into a slot-pick dialog instead of the
// generic error surface.
const boardFullMarker = "choose a slot to replace"

// Executor is the outbound bridge for game actions. Every send stamps the
// live session identity and a fresh request id, runs off the loop, and posts
// the outcome back onto it.
type Executor struct {
	c *Client
}

// NewExecutor wires the executor.
func NewExecutor(c *Client) *Executor {
	return &Executor{c: c}
}

// AttackUnit declares an attack from the selected slot onto the chosen
// opponent slot. Selection and attack mode are cleared regardless of outcome;
// a failed declaration should land the player back in neutral, not re-armed.
func (e *Executor) AttackUnit(attacker domain.Selection, targetSlotKey string) {
	uid := selectionCardUID(mustSnapshot(e.c), attacker)
	e.c.attack.Exit()
	e.c.clearSelectionUI()
	e.send(ports.ActionRequest{
		Type:      ports.ActionAttackUnit,
		CardUID:   uid,
		TargetKey: targetSlotKey,
	}, nil)
}

// AttackShieldArea declares a direct attack on the opponent's shield area.
func (e *Executor) AttackShieldArea(attacker domain.Selection) {
	uid := selectionCardUID(mustSnapshot(e.c), attacker)
	e.c.attack.Exit()
	e.c.clearSelectionUI()
	e.send(ports.ActionRequest{
		Type:    ports.ActionAttackShieldArea,
		CardUID: uid,
	}, nil)
}

// SkipAction passes on the open action step. The confirmation only goes to
// the network while a battle is actually in its action step; otherwise the
// obligation already lapsed server-side and a local refresh is enough.
func (e *Executor) SkipAction() {
	e.c.clearSelectionUI()
	snap, ok := e.c.snapshots.Current()
	if !ok || snap.Battle().Status != domain.BattleStatusActionStep {
		e.c.reapplyBar()
		return
	}
	e.send(ports.ActionRequest{Type: ports.ActionConfirmBattle}, nil)
}

// ActivateActionStepEffect triggers the chosen card's effect inside the open
// action step.
func (e *Executor) ActivateActionStepEffect(cardUID string) {
	e.c.clearSelectionUI()
	e.send(ports.ActionRequest{
		Type:    ports.ActionActivateEffect,
		CardUID: cardUID,
	}, nil)
}

// ActivateEffect triggers an effect on the selected card outside a battle.
func (e *Executor) ActivateEffect(sel domain.Selection) {
	uid := selectionCardUID(mustSnapshot(e.c), sel)
	e.c.clearSelectionUI()
	if uid == "" {
		e.c.reapplyBar()
		return
	}
	e.send(ports.ActionRequest{
		Type:    ports.ActionActivateEffect,
		CardUID: uid,
	}, nil)
}

// EndTurn passes the turn.
func (e *Executor) EndTurn() {
	e.c.clearSelectionUI()
	e.send(ports.ActionRequest{Type: ports.ActionEndTurn}, nil)
}

// PlayCard plays the selected hand card. A board-full rejection re-routes
// into the slot-pick dialog so the player chooses which slot to replace.
func (e *Executor) PlayCard(sel domain.Selection) {
	if sel.Kind != domain.SelectionHand {
		return
	}
	e.c.clearSelectionUI()
	e.send(ports.ActionRequest{
		Type:    ports.ActionPlayCard,
		CardUID: sel.UID,
	}, func(err error) bool {
		if !strings.Contains(strings.ToLower(err.Error()), boardFullMarker) {
			return false
		}
		e.promptSlotReplacement(sel.UID)
		return true
	})
}

// playCardInto replays the card targeting a specific slot after the player
// disambiguated a full board.
func (e *Executor) playCardInto(cardUID, slotID string) {
	e.send(ports.ActionRequest{
		Type:      ports.ActionPlayCard,
		CardUID:   cardUID,
		TargetKey: slotID,
	}, nil)
}

// promptSlotReplacement opens the slot-pick dialog over the player's own
// occupied slots.
func (e *Executor) promptSlotReplacement(cardUID string) {
	snap, ok := e.c.snapshots.Current()
	if !ok {
		return
	}
	var options []ports.DialogOption
	snap.Raw().Get("gameEnv.players." + e.c.session.PlayerID + ".zones.battleArea").ForEach(func(slotID, slot gjson.Result) bool {
		if !slot.Get("unit").Exists() {
			return true
		}
		label := slot.Get("unit.cardId").String()
		if label == "" {
			label = slotID.String()
		}
		options = append(options, ports.DialogOption{
			ID:      slotID.String(),
			Label:   label,
			Enabled: true,
		})
		return true
	})
	if len(options) == 0 {
		e.c.ui.Errors.ShowError("no slot available to replace")
		return
	}
	e.c.ui.SlotPickDialog.Show(ports.DialogConfig{
		Title:   "Choose a slot to replace",
		Options: options,
		OnSelect: func(slotID string) {
			e.c.ui.SlotPickDialog.Hide()
			e.playCardInto(cardUID, slotID)
		},
		OnBack: func() {
			e.c.ui.SlotPickDialog.Hide()
			e.c.reapplyBar()
		},
	})
}

// send stamps and dispatches one action. intercept, when non-nil, gets first
// look at a rejection; returning true means it handled the error.
func (e *Executor) send(req ports.ActionRequest, intercept func(err error) bool) {
	req.GameID = e.c.session.GameID
	req.PlayerID = e.c.session.PlayerID
	req.RequestID = uuid.NewString()

	e.c.log.Info("player action",
		zap.String("type", req.Type),
		zap.String("cardUid", req.CardUID),
		zap.String("requestId", req.RequestID),
	)
	e.c.opts.Spawn(func(ctx context.Context) {
		err := e.c.game.PlayerAction(ctx, req)
		if err != nil {
			e.c.opts.Post(func() {
				e.c.log.Warn("player action rejected",
					zap.String("type", req.Type),
					zap.Error(err),
				)
				if intercept != nil && intercept(err) {
					return
				}
				e.c.ui.Errors.ShowError(err.Error())
				e.c.reapplyBar()
			})
			return
		}
		e.c.refreshAfterSubmit(ctx)
	})
}

// mustSnapshot returns the current snapshot or the zero value; callers treat
// missing lookups as empty results.
func mustSnapshot(c *Client) domain.Snapshot {
	snap, _ := c.snapshots.Current()
	return snap
}
