package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// RPC identifiers registered by the game server.
const (
	RpcGetGameStatus     = "get_game_status"
	RpcPlayerAction      = "player_action"
	RpcConfirmBlocker    = "confirm_blocker_choice"
	RpcConfirmBurst      = "confirm_burst_choice"
	RpcConfirmOption     = "confirm_option_choice"
	RpcConfirmToken      = "confirm_token_choice"
	RpcConfirmTarget     = "confirm_target_choice"
	RpcAcknowledgeEvents = "acknowledge_events"
)

type statusRequest struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// GetGameStatus fetches the latest full-state snapshot.
func (a *GameAdapter) GetGameStatus(ctx context.Context, gameID, playerID string) (domain.Snapshot, error) {
	payload, err := json.Marshal(statusRequest{GameID: gameID, PlayerID: playerID})
	if err != nil {
		return domain.Snapshot{}, err
	}
	raw, err := a.call(ctx, RpcGetGameStatus, string(payload))
	if err != nil {
		return domain.Snapshot{}, err
	}

	var head statusResponse
	if err := json.Unmarshal([]byte(raw), &head); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to decode status response: %w", err)
	}
	return domain.ParseSnapshot(head.Status, []byte(raw)), nil
}

type actionPayload struct {
	GameID    string         `json:"gameId"`
	PlayerID  string         `json:"playerId"`
	RequestID string         `json:"requestId"`
	Type      string         `json:"type"`
	CardUID   string         `json:"carduid,omitempty"`
	TargetKey string         `json:"targetKey,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// PlayerAction submits a generic game action.
func (a *GameAdapter) PlayerAction(ctx context.Context, req ports.ActionRequest) error {
	payload, err := json.Marshal(actionPayload{
		GameID:    req.GameID,
		PlayerID:  req.PlayerID,
		RequestID: req.RequestID,
		Type:      req.Type,
		CardUID:   req.CardUID,
		TargetKey: req.TargetKey,
		Extra:     req.Extra,
	})
	if err != nil {
		return err
	}
	_, err = a.call(ctx, RpcPlayerAction, string(payload))
	return err
}

type submissionPayload struct {
	GameID    string `json:"gameId"`
	PlayerID  string `json:"playerId"`
	RequestID string `json:"requestId"`
	EntryID   string `json:"entryId"`
	EventID   string `json:"eventId,omitempty"`
	OptionID  string `json:"optionId,omitempty"`
	TargetUID string `json:"targetUid,omitempty"`
	Pass      bool   `json:"pass,omitempty"`
}

func (a *GameAdapter) confirm(ctx context.Context, rpcID string, sub ports.ChoiceSubmission) error {
	payload, err := json.Marshal(submissionPayload{
		GameID:    sub.GameID,
		PlayerID:  sub.PlayerID,
		RequestID: sub.RequestID,
		EntryID:   sub.EntryID,
		EventID:   sub.EventID,
		OptionID:  sub.OptionID,
		TargetUID: sub.TargetUID,
		Pass:      sub.Pass,
	})
	if err != nil {
		return err
	}
	_, err = a.call(ctx, rpcID, string(payload))
	return err
}

// ConfirmBlockerChoice submits a blocker decision.
func (a *GameAdapter) ConfirmBlockerChoice(ctx context.Context, sub ports.ChoiceSubmission) error {
	return a.confirm(ctx, RpcConfirmBlocker, sub)
}

// ConfirmBurstChoice submits a burst activation decision.
func (a *GameAdapter) ConfirmBurstChoice(ctx context.Context, sub ports.ChoiceSubmission) error {
	return a.confirm(ctx, RpcConfirmBurst, sub)
}

// ConfirmOptionChoice submits an option pick.
func (a *GameAdapter) ConfirmOptionChoice(ctx context.Context, sub ports.ChoiceSubmission) error {
	return a.confirm(ctx, RpcConfirmOption, sub)
}

// ConfirmTokenChoice submits a token pick.
func (a *GameAdapter) ConfirmTokenChoice(ctx context.Context, sub ports.ChoiceSubmission) error {
	return a.confirm(ctx, RpcConfirmToken, sub)
}

// ConfirmTargetChoice submits a prompt target pick.
func (a *GameAdapter) ConfirmTargetChoice(ctx context.Context, sub ports.ChoiceSubmission) error {
	return a.confirm(ctx, RpcConfirmTarget, sub)
}

type ackPayload struct {
	GameID   string   `json:"gameId"`
	PlayerID string   `json:"playerId"`
	EventIDs []string `json:"eventIds"`
}

// AcknowledgeEvents confirms a grouped notification in one batch call.
func (a *GameAdapter) AcknowledgeEvents(ctx context.Context, req ports.AckRequest) error {
	payload, err := json.Marshal(ackPayload{
		GameID:   req.GameID,
		PlayerID: req.PlayerID,
		EventIDs: req.EventIDs,
	})
	if err != nil {
		return err
	}
	_, err = a.call(ctx, RpcAcknowledgeEvents, string(payload))
	return err
}

// call refreshes the session when needed and invokes one RPC, returning the
// raw response payload.
func (a *GameAdapter) call(ctx context.Context, rpcID, payload string) (string, error) {
	session, err := a.freshSession(ctx)
	if err != nil {
		return "", err
	}
	rpc, err := a.client.RpcFunc(ctx, session, rpcID, payload)
	if err != nil {
		a.log.Warn("rpc failed", zap.String("rpc", rpcID), zap.Error(err))
		return "", fmt.Errorf("rpc %s: %w", rpcID, err)
	}
	return rpc.Payload, nil
}
