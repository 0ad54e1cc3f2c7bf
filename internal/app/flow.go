package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// FlowConfig parameterizes the shared choice lifecycle for one kind. Each
// concrete kind is a thin configuration over the same engine instead of a
// re-implementation of the retry/guard logic.
type FlowConfig struct {
	Kind   domain.ChoiceKind
	Title  string
	Dialog ports.Dialog
	// Submit sends the decision to the per-kind network endpoint.
	Submit func(ctx context.Context, sub ports.ChoiceSubmission) error
	// TimeoutOption picks the decision submitted when the dialog's timeout
	// fires. Nil falls back to the first enabled option.
	TimeoutOption func(e domain.ChoiceEntry) (string, bool)
	// Options overrides how dialog rows are derived from the entry. Nil
	// uses the entry's availableOptions/availableChoices.
	Options func(e domain.ChoiceEntry) []ports.DialogOption
	// Decorate adjusts the submission for the chosen option (e.g. target
	// uid or pass flag) before it is sent.
	Decorate func(sub *ports.ChoiceSubmission, e domain.ChoiceEntry, optionID string)
	// OnActivate/OnDeactivate bracket the entry's active period.
	OnActivate   func()
	OnDeactivate func()
}

// ChoiceFlow owns the full lifecycle of one interactive decision kind:
// detecting the active entry, showing exactly one dialog to the owner,
// suppressing the non-owner, submitting exactly once, and tolerating slow or
// duplicate server acknowledgement.
type ChoiceFlow struct {
	c   *Client
	cfg FlowConfig

	active           *domain.ChoiceEntry
	shownEntryID     string
	submittedEntryID string
	submittedAt      time.Time
	requestPending   bool
	pending          *decisionFuture
}

func newChoiceFlow(c *Client, cfg FlowConfig) *ChoiceFlow {
	return &ChoiceFlow{c: c, cfg: cfg}
}

// Name identifies the flow in the controller chain and in logs.
func (f *ChoiceFlow) Name() string {
	return f.cfg.Kind.String() + "-choice"
}

// IsActive reports whether an unresolved entry of this kind is current.
func (f *ChoiceFlow) IsActive() bool {
	return f.active != nil
}

// Decision returns a channel resolved once the current entry's decision is
// final (submitted and acknowledged, or the entry vanished). Nil when no
// entry is active.
func (f *ChoiceFlow) Decision() <-chan string {
	if f.pending == nil {
		return nil
	}
	return f.pending.done()
}

// Sync reconciles the flow against a fresh snapshot. Idempotent; called on
// every refresh.
func (f *ChoiceFlow) Sync(snap domain.Snapshot) {
	entry, found := snap.FindEntry(f.cfg.Kind)

	if !found || entry.Resolved() {
		if f.active != nil {
			f.finish()
		}
		// The server acknowledged the submitted entry; retire the stamp so
		// the next entry of this kind starts clean.
		if f.submittedEntryID != "" && (!found || entry.ID == f.submittedEntryID) {
			f.clearSubmitted()
		}
		return
	}

	if f.active == nil || f.active.ID != entry.ID {
		if f.active != nil {
			// The superseded entry's waiters must not block forever.
			if f.pending != nil {
				f.pending.resolve(f.submittedEntryID)
			}
			if f.cfg.OnDeactivate != nil {
				f.cfg.OnDeactivate()
			}
		}
		// New entry: evaluate it fresh.
		f.shownEntryID = ""
		if f.submittedEntryID != "" && f.submittedEntryID != entry.ID {
			f.clearSubmitted()
		}
		f.pending = newDecisionFuture()
		if f.cfg.OnActivate != nil {
			f.cfg.OnActivate()
		}
	}
	e := entry
	f.active = &e

	if f.submittedEntryID == entry.ID {
		if f.requestPending || f.c.now().Sub(f.submittedAt) < f.c.opts.ResubmitWindow {
			// Post-submit grace: a stale poll still showing the entry as
			// unresolved must not re-open the dialog the user just answered.
			f.cfg.Dialog.Hide()
			return
		}
		// Safety valve: the server never resolved the entry within the
		// window. Permit re-submission even though the prior outcome is
		// unknown; the request id lets an idempotent server de-duplicate.
		f.c.log.Warn("choice submission unacknowledged, allowing retry",
			zap.String("flow", f.Name()),
			zap.String("entry_id", entry.ID))
		f.clearSubmitted()
		f.shownEntryID = ""
	}

	if !f.ownedBySelf(entry) {
		return
	}
	f.showDialog(entry)
}

// ApplyActionBar renders this flow's bar state. Returns false when inactive
// so the coordinator proceeds down the chain.
func (f *ChoiceFlow) ApplyActionBar() bool {
	if f.active == nil {
		return false
	}
	if !f.ownedBySelf(*f.active) {
		f.c.ui.Timer.Pause()
		f.c.ui.Bar.Set(ports.BarState{WaitingForOpponent: true})
		return true
	}
	// Owner: the dialog, not the bar, drives input.
	f.c.ui.Timer.Resume()
	f.c.ui.Bar.Set(ports.BarState{})
	return true
}

// SubmitChoice sends the decision for the active entry exactly once. A
// second call while a request is in flight is a no-op.
func (f *ChoiceFlow) SubmitChoice(optionID string) {
	if f.requestPending || f.active == nil {
		return
	}
	entry := *f.active

	f.requestPending = true
	f.submittedEntryID = entry.ID
	f.submittedAt = f.c.now()
	// Hide optimistically; the grace window keeps it hidden until the
	// server acknowledges.
	f.cfg.Dialog.Hide()

	sub := ports.ChoiceSubmission{
		GameID:    f.c.session.GameID,
		PlayerID:  f.c.session.PlayerID,
		RequestID: uuid.NewString(),
		EntryID:   entry.ID,
		EventID:   entry.EventID,
		OptionID:  optionID,
	}
	if f.cfg.Decorate != nil {
		f.cfg.Decorate(&sub, entry, optionID)
	}

	f.c.opts.Spawn(func(ctx context.Context) {
		err := f.cfg.Submit(ctx, sub)
		if err != nil {
			f.c.opts.Post(func() {
				f.requestPending = false
				// Failure never corrupts local state: only the submitted
				// stamp is cleared so the same dialog can be retried.
				f.clearSubmitted()
				f.shownEntryID = ""
				f.c.log.Warn("choice submission failed",
					zap.String("flow", f.Name()),
					zap.String("entry_id", entry.ID),
					zap.Error(err))
				if f.active != nil && f.ownedBySelf(*f.active) {
					f.showDialog(*f.active)
				}
				f.c.reapplyBar()
			})
			return
		}
		f.c.opts.Post(func() { f.requestPending = false })
		f.c.refreshAfterSubmit(ctx)
	})
}

func (f *ChoiceFlow) ownedBySelf(entry domain.ChoiceEntry) bool {
	return entry.PlayerID == "" || entry.PlayerID == f.c.session.PlayerID
}

func (f *ChoiceFlow) showDialog(entry domain.ChoiceEntry) {
	if f.shownEntryID == entry.ID {
		// Already open for this entry; rapid re-syncs must not re-open.
		return
	}
	var rows []ports.DialogOption
	if f.cfg.Options != nil {
		rows = f.cfg.Options(entry)
	} else {
		options := entry.Options()
		rows = make([]ports.DialogOption, 0, len(options))
		for _, opt := range options {
			rows = append(rows, ports.DialogOption{
				ID:      opt.ID,
				Label:   opt.Label,
				Enabled: opt.Enabled,
			})
		}
	}
	f.cfg.Dialog.Show(ports.DialogConfig{
		Title:   f.cfg.Title,
		Options: rows,
		OnSelect: func(id string) {
			f.SubmitChoice(id)
		},
		OnTimeout: func() {
			if id, ok := f.timeoutDecision(entry); ok {
				f.SubmitChoice(id)
			}
		},
		Timeout: f.c.opts.DialogTimeout,
	})
	f.shownEntryID = entry.ID
}

// timeoutDecision resolves what a stalled dialog submits so a missing human
// input never deadlocks the match.
func (f *ChoiceFlow) timeoutDecision(entry domain.ChoiceEntry) (string, bool) {
	if f.cfg.TimeoutOption != nil {
		return f.cfg.TimeoutOption(entry)
	}
	for _, opt := range entry.Options() {
		if opt.Enabled {
			return opt.ID, true
		}
	}
	return "", false
}

// finish closes out a resolved-or-vanished entry.
func (f *ChoiceFlow) finish() {
	if f.pending != nil {
		f.pending.resolve(f.submittedEntryID)
	}
	if f.cfg.OnDeactivate != nil {
		f.cfg.OnDeactivate()
	}
	f.active = nil
	f.shownEntryID = ""
	f.cfg.Dialog.Hide()
	f.c.ui.Timer.Resume()
}

func (f *ChoiceFlow) clearSubmitted() {
	f.submittedEntryID = ""
	f.submittedAt = time.Time{}
}
