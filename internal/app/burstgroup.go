package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// GroupFlow handles BURST_EFFECT_CHOICE_GROUP entries: a batch of burst
// decisions resolved one by one through an owner loop. While the group has
// unresolved events it shows a list dialog; selecting a row opens the
// single-burst dialog for that event; completing or backing out returns to
// the list; once every event is resolved the whole batch is acknowledged
// with one event-ids call.
type GroupFlow struct {
	c      *Client
	dialog ports.Dialog

	active        *domain.ChoiceEntry
	listSignature string

	subEventID string
	subShown   bool

	requestPending   bool
	submittedEventID string
	submittedAt      time.Time

	ackPending   bool
	ackedEntryID string
}

func newGroupFlow(c *Client, dialog ports.Dialog) *GroupFlow {
	return &GroupFlow{c: c, dialog: dialog}
}

// Name identifies the flow in the controller chain and in logs.
func (g *GroupFlow) Name() string { return "burst-group" }

// IsActive reports whether an unresolved group entry is current.
func (g *GroupFlow) IsActive() bool { return g.active != nil }

// Sync reconciles the group flow against a fresh snapshot.
func (g *GroupFlow) Sync(snap domain.Snapshot) {
	entry, found := snap.FindEntry(domain.KindBurstGroup)

	if !found || entry.Resolved() {
		if g.active != nil {
			g.clear()
		}
		return
	}

	if g.active == nil || g.active.ID != entry.ID {
		g.reset()
	}
	e := entry
	g.active = &e

	if !g.ownedBySelf(entry) {
		// The batch acknowledgement belongs to the owner loop; non-owners
		// only wait.
		g.hideAll()
		return
	}

	if entry.GroupCompleted() {
		g.acknowledge(entry)
		return
	}

	if g.submittedEventID != "" {
		if g.eventResolved(entry, g.submittedEventID) {
			// Sub-choice acknowledged; fall back to the list.
			g.submittedEventID = ""
			g.submittedAt = time.Time{}
			g.subEventID = ""
			g.subShown = false
		} else if g.requestPending || g.c.now().Sub(g.submittedAt) < g.c.opts.ResubmitWindow {
			// Grace window; keep everything hidden until resolution.
			g.hideAll()
			return
		} else {
			g.c.log.Warn("burst sub-choice unacknowledged, allowing retry",
				zap.String("event_id", g.submittedEventID))
			g.submittedEventID = ""
			g.submittedAt = time.Time{}
			g.subShown = false
		}
	}

	if g.subEventID != "" {
		g.showSubDialog(entry)
		return
	}
	g.showList(entry)
}

// ApplyActionBar renders the group flow's bar state.
func (g *GroupFlow) ApplyActionBar() bool {
	if g.active == nil {
		return false
	}
	if !g.ownedBySelf(*g.active) {
		g.c.ui.Timer.Pause()
		g.c.ui.Bar.Set(ports.BarState{WaitingForOpponent: true})
		return true
	}
	g.c.ui.Timer.Resume()
	g.c.ui.Bar.Set(ports.BarState{})
	return true
}

func (g *GroupFlow) ownedBySelf(entry domain.ChoiceEntry) bool {
	return entry.PlayerID == "" || entry.PlayerID == g.c.session.PlayerID
}

func (g *GroupFlow) eventResolved(entry domain.ChoiceEntry, eventID string) bool {
	for _, ev := range entry.GroupEvents() {
		if ev.EventID == eventID {
			return ev.Resolved
		}
	}
	// The row vanished from the group; treat as resolved.
	return true
}

// showList renders the group rows. Resolved rows render done and disabled.
// The list re-renders whenever the resolved set changes, without re-fetching
// the row structure.
func (g *GroupFlow) showList(entry domain.ChoiceEntry) {
	events := entry.GroupEvents()
	sig := entry.ID
	for _, ev := range events {
		sig += fmt.Sprintf(":%s=%t", ev.EventID, ev.Resolved)
	}
	if g.listSignature == sig && g.dialog.IsOpen() {
		return
	}

	rows := make([]ports.DialogOption, 0, len(events))
	for _, ev := range events {
		rows = append(rows, ports.DialogOption{
			ID:      ev.EventID,
			Label:   ev.Description,
			Enabled: !ev.Resolved,
			Done:    ev.Resolved,
		})
	}
	g.dialog.Show(ports.DialogConfig{
		Title:   "Burst effects",
		Options: rows,
		OnSelect: func(eventID string) {
			g.openSub(eventID)
		},
	})
	g.listSignature = sig
}

// openSub switches the owner loop into the single-burst dialog for a row.
func (g *GroupFlow) openSub(eventID string) {
	if g.active == nil || g.requestPending {
		return
	}
	if g.eventResolved(*g.active, eventID) {
		return
	}
	g.subEventID = eventID
	g.subShown = false
	g.dialog.Hide()
	g.showSubDialog(*g.active)
}

func (g *GroupFlow) showSubDialog(entry domain.ChoiceEntry) {
	if g.subShown {
		return
	}
	eventID := g.subEventID
	g.c.ui.BurstDialog.Show(ports.DialogConfig{
		Title: "Burst effect",
		Options: []ports.DialogOption{
			{ID: domain.BurstDecisionActivate, Label: "Activate", Enabled: true},
			{ID: domain.BurstDecisionCancel, Label: "Cancel", Enabled: true},
		},
		OnSelect: func(decision string) {
			g.submitSub(eventID, decision)
		},
		OnBack: func() {
			// Backing out never submits; fall back to the list.
			g.backToList()
		},
		OnTimeout: func() {
			g.submitSub(eventID, domain.BurstTimeoutDecision)
		},
		Timeout: g.c.opts.DialogTimeout,
	})
	g.subShown = true
}

func (g *GroupFlow) backToList() {
	g.c.ui.BurstDialog.Hide()
	g.subEventID = ""
	g.subShown = false
	g.listSignature = ""
	if g.active != nil && g.ownedBySelf(*g.active) {
		g.showList(*g.active)
	}
}

func (g *GroupFlow) submitSub(eventID, decision string) {
	if g.requestPending || g.active == nil {
		return
	}
	entry := *g.active

	g.requestPending = true
	g.submittedEventID = eventID
	g.submittedAt = g.c.now()
	g.c.ui.BurstDialog.Hide()

	sub := ports.ChoiceSubmission{
		GameID:    g.c.session.GameID,
		PlayerID:  g.c.session.PlayerID,
		RequestID: uuid.NewString(),
		EntryID:   entry.ID,
		EventID:   eventID,
		OptionID:  decision,
	}
	g.c.opts.Spawn(func(ctx context.Context) {
		err := g.c.game.ConfirmBurstChoice(ctx, sub)
		if err != nil {
			g.c.opts.Post(func() {
				g.requestPending = false
				g.submittedEventID = ""
				g.submittedAt = time.Time{}
				g.subShown = false
				g.c.log.Warn("burst sub-choice submission failed",
					zap.String("event_id", eventID), zap.Error(err))
				if g.active != nil && g.ownedBySelf(*g.active) {
					g.showSubDialog(*g.active)
				}
				g.c.reapplyBar()
			})
			return
		}
		g.c.opts.Post(func() { g.requestPending = false })
		g.c.refreshAfterSubmit(ctx)
	})
}

// acknowledge confirms the whole completed batch exactly once per entry.
func (g *GroupFlow) acknowledge(entry domain.ChoiceEntry) {
	g.hideAll()
	if g.ackPending || g.ackedEntryID == entry.ID {
		return
	}
	g.ackPending = true
	req := ports.AckRequest{
		GameID:   g.c.session.GameID,
		PlayerID: g.c.session.PlayerID,
		EventIDs: entry.GroupEventIDs(),
	}
	entryID := entry.ID
	g.c.opts.Spawn(func(ctx context.Context) {
		err := g.c.game.AcknowledgeEvents(ctx, req)
		g.c.opts.Post(func() {
			g.ackPending = false
			if err != nil {
				// Retry on a later sync.
				g.c.log.Warn("group acknowledgement failed", zap.Error(err))
				return
			}
			g.ackedEntryID = entryID
		})
		if err == nil {
			g.c.refreshAfterSubmit(ctx)
		}
	})
}

func (g *GroupFlow) hideAll() {
	g.dialog.Hide()
	g.c.ui.BurstDialog.Hide()
	g.listSignature = ""
	g.subShown = false
}

func (g *GroupFlow) reset() {
	g.listSignature = ""
	g.subEventID = ""
	g.subShown = false
	g.submittedEventID = ""
	g.submittedAt = time.Time{}
}

func (g *GroupFlow) clear() {
	g.hideAll()
	g.active = nil
	g.reset()
	g.c.ui.Timer.Resume()
}
