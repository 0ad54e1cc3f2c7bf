package ports

import (
	"context"

	"cardclient/internal/domain"
)

// ActionRequest is one outbound game action. GameID/PlayerID are re-stamped
// from the live session immediately before sending; embedded identifiers
// captured earlier are never trusted.
type ActionRequest struct {
	GameID    string
	PlayerID  string
	RequestID string
	Type      string
	CardUID   string
	TargetKey string
	Extra     map[string]any
}

// Action types understood by the server's player_action endpoint.
const (
	ActionAttackUnit       = "attackUnit"
	ActionAttackShieldArea = "attackShieldArea"
	ActionConfirmBattle    = "confirmBattle"
	ActionActivateEffect   = "activateActionStepEffect"
	ActionEndTurn          = "endTurn"
	ActionPlayCard         = "playCard"
)

// ChoiceSubmission is one decision submitted against a pending choice entry.
// RequestID is a fresh uuid per attempt so an idempotent server can
// de-duplicate retries of the same entry.
type ChoiceSubmission struct {
	GameID    string
	PlayerID  string
	RequestID string
	EntryID   string
	EventID   string
	OptionID  string
	TargetUID string
	Pass      bool
}

// AckRequest acknowledges a batch of notification events in one call.
type AckRequest struct {
	GameID   string
	PlayerID string
	EventIDs []string
}

// GameService is the network collaborator. All methods are blocking and
// context-aware; implementations reject with an error on transport or
// server-side failure and never mutate client state.
type GameService interface {
	// GetGameStatus fetches the latest full-state snapshot.
	GetGameStatus(ctx context.Context, gameID, playerID string) (domain.Snapshot, error)

	// PlayerAction submits a generic game action (attack, skip, activate).
	PlayerAction(ctx context.Context, req ActionRequest) error

	// Per-kind decision submissions.
	ConfirmBlockerChoice(ctx context.Context, sub ChoiceSubmission) error
	ConfirmBurstChoice(ctx context.Context, sub ChoiceSubmission) error
	ConfirmOptionChoice(ctx context.Context, sub ChoiceSubmission) error
	ConfirmTokenChoice(ctx context.Context, sub ChoiceSubmission) error
	ConfirmTargetChoice(ctx context.Context, sub ChoiceSubmission) error

	// AcknowledgeEvents confirms a grouped notification in one batch call.
	AcknowledgeEvents(ctx context.Context, req AckRequest) error
}
