package app

import (
	"context"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// The four list-style choice kinds are thin configurations over the shared
// engine; only the endpoint, title and timeout policy differ.

func promptFlowConfig(dialog ports.Dialog, game ports.GameService) FlowConfig {
	return FlowConfig{
		Kind:   domain.KindPrompt,
		Title:  "Choose",
		Dialog: dialog,
		Submit: func(ctx context.Context, sub ports.ChoiceSubmission) error {
			return game.ConfirmTargetChoice(ctx, sub)
		},
	}
}

func optionFlowConfig(dialog ports.Dialog, game ports.GameService) FlowConfig {
	return FlowConfig{
		Kind:   domain.KindOption,
		Title:  "Choose an effect",
		Dialog: dialog,
		Submit: func(ctx context.Context, sub ports.ChoiceSubmission) error {
			return game.ConfirmOptionChoice(ctx, sub)
		},
		TimeoutOption: bottomTaggedOrFirst,
	}
}

func tokenFlowConfig(dialog ports.Dialog, game ports.GameService) FlowConfig {
	return FlowConfig{
		Kind:   domain.KindToken,
		Title:  "Choose a token",
		Dialog: dialog,
		Submit: func(ctx context.Context, sub ports.ChoiceSubmission) error {
			return game.ConfirmTokenChoice(ctx, sub)
		},
		TimeoutOption: bottomTaggedOrFirst,
	}
}

func burstFlowConfig(dialog ports.Dialog, game ports.GameService) FlowConfig {
	return FlowConfig{
		Kind:   domain.KindBurst,
		Title:  "Burst effect",
		Dialog: dialog,
		Submit: func(ctx context.Context, sub ports.ChoiceSubmission) error {
			return game.ConfirmBurstChoice(ctx, sub)
		},
		// A burst that times out activates. Game rule, not an accident:
		// declining requires an explicit cancel.
		TimeoutOption: func(domain.ChoiceEntry) (string, bool) {
			return domain.BurstTimeoutDecision, true
		},
	}
}

// bottomTaggedOrFirst prefers the server-designated safe default, then the
// first enabled option.
func bottomTaggedOrFirst(e domain.ChoiceEntry) (string, bool) {
	options := e.Options()
	for _, opt := range options {
		if opt.Tag == domain.OptionTagBottom && opt.Enabled {
			return opt.ID, true
		}
	}
	for _, opt := range options {
		if opt.Enabled {
			return opt.ID, true
		}
	}
	return "", false
}
