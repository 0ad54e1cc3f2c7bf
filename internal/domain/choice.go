package domain

import (
	"github.com/tidwall/gjson"
)

// ChoiceKind identifies one interactive decision surface the server can open.
//
// The set is closed on purpose: every dispatch over choice kinds switches
// exhaustively on this type, so adding a kind is a compile-visible change
// instead of a new string comparison scattered across files.
type ChoiceKind int

const (
	// KindPrompt is a free-form prompt with server-provided options.
	KindPrompt ChoiceKind = iota
	// KindOption is an effect option choice (pick one of N effect modes).
	KindOption
	// KindToken is a token placement/selection choice.
	KindToken
	// KindBurst is a single burst trigger accept/decline decision.
	KindBurst
	// KindBurstGroup is a batch of burst decisions resolved one by one.
	KindBurstGroup
	// KindBlocker is the defender's blocker selection during battle.
	KindBlocker
)

// notification type discriminators as they appear on the wire.
const (
	notifPromptChoice     = "PROMPT_CHOICE"
	notifOptionChoice     = "OPTION_CHOICE"
	notifTokenChoice      = "TOKEN_CHOICE"
	notifBurstChoice      = "BURST_EFFECT_CHOICE"
	notifBurstChoiceGroup = "BURST_EFFECT_CHOICE_GROUP"
	notifBlockerChoice    = "BLOCKER_CHOICE"
)

// StatusResolved marks a queue entry the server considers finished.
const StatusResolved = "RESOLVED"

// NotificationType returns the wire discriminator for the kind.
func (k ChoiceKind) NotificationType() string {
	switch k {
	case KindPrompt:
		return notifPromptChoice
	case KindOption:
		return notifOptionChoice
	case KindToken:
		return notifTokenChoice
	case KindBurst:
		return notifBurstChoice
	case KindBurstGroup:
		return notifBurstChoiceGroup
	case KindBlocker:
		return notifBlockerChoice
	}
	return ""
}

// String implements fmt.Stringer for log fields.
func (k ChoiceKind) String() string {
	switch k {
	case KindPrompt:
		return "prompt"
	case KindOption:
		return "option"
	case KindToken:
		return "token"
	case KindBurst:
		return "burst"
	case KindBurstGroup:
		return "burst_group"
	case KindBlocker:
		return "blocker"
	}
	return "unknown"
}

// KindOfNotification maps a wire discriminator back onto a ChoiceKind.
func KindOfNotification(t string) (ChoiceKind, bool) {
	switch t {
	case notifPromptChoice:
		return KindPrompt, true
	case notifOptionChoice:
		return KindOption, true
	case notifTokenChoice:
		return KindToken, true
	case notifBurstChoice:
		return KindBurst, true
	case notifBurstChoiceGroup:
		return KindBurstGroup, true
	case notifBlockerChoice:
		return KindBlocker, true
	}
	return 0, false
}

// ChoiceEntry is one pending decision normalized from the notification queue
// or the processing queue. Data keeps the raw payload subtree so kinds can
// read their own shapes without the core re-modelling every variant.
type ChoiceEntry struct {
	ID       string
	EventID  string
	PlayerID string
	Status   string
	Data     gjson.Result
}

// DecisionMade reports whether the owning player already answered the entry.
func (e ChoiceEntry) DecisionMade() bool {
	return e.Data.Get("userDecisionMade").Bool()
}

// Resolved reports whether the entry no longer requires a decision.
func (e ChoiceEntry) Resolved() bool {
	return e.Status == StatusResolved || e.DecisionMade()
}

// ChoiceOption is one selectable row of a prompt/option/token dialog.
type ChoiceOption struct {
	ID      string
	Label   string
	Tag     string
	Enabled bool
}

// Options collects the selectable options of the entry. The server uses
// availableOptions for prompts and availableChoices for effect options; both
// shapes carry id/label/tag rows.
func (e ChoiceEntry) Options() []ChoiceOption {
	rows := e.Data.Get("availableOptions")
	if !rows.Exists() {
		rows = e.Data.Get("availableChoices")
	}
	var out []ChoiceOption
	rows.ForEach(func(_, row gjson.Result) bool {
		opt := ChoiceOption{
			ID:      row.Get("id").String(),
			Label:   row.Get("label").String(),
			Tag:     row.Get("tag").String(),
			Enabled: true,
		}
		if d := row.Get("disabled"); d.Exists() && d.Bool() {
			opt.Enabled = false
		}
		if opt.ID == "" {
			opt.ID = row.String()
			opt.Label = row.String()
		}
		out = append(out, opt)
		return true
	})
	return out
}

// ChoiceTarget is one selectable board target of a blocker/target choice.
type ChoiceTarget struct {
	CardUID string
	CardID  string
	Zone    string
}

// Targets collects the legal targets declared by the server for the entry.
func (e ChoiceEntry) Targets() []ChoiceTarget {
	var out []ChoiceTarget
	e.Data.Get("availableTargets").ForEach(func(_, row gjson.Result) bool {
		out = append(out, ChoiceTarget{
			CardUID: row.Get("carduid").String(),
			CardID:  row.Get("cardId").String(),
			Zone:    row.Get("zone").String(),
		})
		return true
	})
	return out
}

// GroupEvent is one row of a grouped burst notification.
type GroupEvent struct {
	EventID     string
	Description string
	Resolved    bool
}

// GroupEvents lists the burst events bundled in a group entry, with each
// row's resolved flag derived from the server's resolvedEventIds array.
func (e ChoiceEntry) GroupEvents() []GroupEvent {
	resolved := map[string]bool{}
	e.Data.Get("resolvedEventIds").ForEach(func(_, id gjson.Result) bool {
		resolved[id.String()] = true
		return true
	})
	var out []GroupEvent
	e.Data.Get("events").ForEach(func(_, row gjson.Result) bool {
		id := row.Get("eventId").String()
		out = append(out, GroupEvent{
			EventID:     id,
			Description: row.Get("description").String(),
			Resolved:    resolved[id],
		})
		return true
	})
	return out
}

// GroupCompleted reports whether every event of a group entry is resolved.
func (e ChoiceEntry) GroupCompleted() bool {
	if e.Data.Get("isCompleted").Bool() {
		return true
	}
	events := e.GroupEvents()
	if len(events) == 0 {
		return false
	}
	for _, ev := range events {
		if !ev.Resolved {
			return false
		}
	}
	return true
}

// GroupEventIDs returns the event ids of a group entry in server order.
func (e ChoiceEntry) GroupEventIDs() []string {
	events := e.GroupEvents()
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.EventID)
	}
	return ids
}
