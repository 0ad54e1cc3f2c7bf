package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

// Session carries the live game/player identity. Outbound payloads are
// re-stamped from here immediately before sending.
type Session struct {
	GameID   string
	PlayerID string
}

// UI bundles the rendering-layer ports the engine drives. Each choice kind
// owns its dialog so two flows never fight over one surface.
type UI struct {
	PromptDialog   ports.Dialog
	OptionDialog   ports.Dialog
	TokenDialog    ports.Dialog
	BurstDialog    ports.Dialog
	GroupDialog    ports.Dialog
	BlockerDialog  ports.Dialog
	SlotPickDialog ports.Dialog

	Bar    ports.ActionBar
	Board  ports.Board
	Timer  ports.TurnTimer
	Errors ports.ErrorSurface
}

// Options tunes the engine. Zero values fall back to defaults.
type Options struct {
	// ResubmitWindow is the anti-stuck safety valve: how long a submitted
	// decision blocks re-submission while the server has not resolved the
	// entry. Default 4s.
	ResubmitWindow time.Duration
	// DialogTimeout auto-resolves a stalled dialog. Zero disables.
	DialogTimeout time.Duration
	// Clock is injected by tests.
	Clock func() time.Time
	// Spawn runs network work off the loop. Tests run it inline.
	Spawn func(task func(ctx context.Context))
	// Post re-enters the loop with a state mutation. Tests run it inline.
	Post func(fn func())
}

const defaultResubmitWindow = 4000 * time.Millisecond

// Client is the coordination engine: it owns the state stores, the choice
// flows and the bar controller chain, and reconciles them on every refresh.
//
// All state transitions happen on the loop goroutine (Run), either inside a
// refresh or inside a posted task; nothing here needs a mutex.
type Client struct {
	log     *zap.Logger
	game    ports.GameService
	ui      UI
	session Session
	opts    Options

	snapshots *SnapshotStore
	selection *SelectionStore
	gate      *SlotGate
	tracker   domain.TurnTracker

	prompt  *ChoiceFlow
	option  *ChoiceFlow
	token   *ChoiceFlow
	burst   *ChoiceFlow
	group   *GroupFlow
	blocker *BlockerFlow

	attack     *AttackCoordinator
	actionStep *ActionStepCoordinator
	executor   *Executor

	controllers []barController

	tasks chan func()
}

// NewClient wires the engine. game and the ui ports must be non-nil; log may
// be nil for silent operation.
func NewClient(log *zap.Logger, game ports.GameService, ui UI, session Session, opts Options) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.ResubmitWindow <= 0 {
		opts.ResubmitWindow = defaultResubmitWindow
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	c := &Client{
		log:       log,
		game:      game,
		ui:        ui,
		session:   session,
		opts:      opts,
		snapshots: NewSnapshotStore(),
		selection: NewSelectionStore(),
		gate:      NewSlotGate(),
		tasks:     make(chan func(), 64),
	}
	if c.opts.Spawn == nil {
		c.opts.Spawn = func(task func(ctx context.Context)) {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				task(ctx)
			}()
		}
	}
	if c.opts.Post == nil {
		c.opts.Post = func(fn func()) { c.tasks <- fn }
	}

	c.gate.OnChange(func(enabled bool) { c.ui.Board.SetSlotClickEnabled(enabled) })

	c.prompt = newChoiceFlow(c, promptFlowConfig(ui.PromptDialog, game))
	c.option = newChoiceFlow(c, optionFlowConfig(ui.OptionDialog, game))
	c.token = newChoiceFlow(c, tokenFlowConfig(ui.TokenDialog, game))
	c.burst = newChoiceFlow(c, burstFlowConfig(ui.BurstDialog, game))
	c.group = newGroupFlow(c, ui.GroupDialog)
	c.blocker = newBlockerFlow(c, ui.BlockerDialog)
	c.attack = NewAttackCoordinator(c)
	c.actionStep = NewActionStepCoordinator(c)
	c.executor = NewExecutor(c)

	// Priority order: first active controller owns the bar; everything after
	// it is short-circuited. The order itself is a design invariant.
	c.controllers = []barController{
		c.group,
		c.burst,
		c.prompt,
		c.option,
		c.token,
		c.blocker,
		c.attack,
		c.actionStep,
	}
	return c
}

// Executor exposes the outbound action bridge.
func (c *Client) Executor() *Executor { return c.executor }

// Post schedules fn onto the client loop. External drivers use this to run
// engine mutations safely.
func (c *Client) Post(fn func()) { c.opts.Post(fn) }

// Selection returns the current selection, zero when none.
func (c *Client) Selection() domain.Selection { return c.selection.Current() }

// Snapshot returns the latest snapshot and whether one has been observed.
func (c *Client) Snapshot() (domain.Snapshot, bool) { return c.snapshots.Current() }

// TurnOwner returns the best-known turn owner id.
func (c *Client) TurnOwner() string { return c.tracker.Owner() }

// isMyTurn reports whether the local player owns the current turn.
func (c *Client) isMyTurn() bool { return c.tracker.IsTurn(c.session.PlayerID) }

// Run drives the client loop: periodic polling plus posted task execution.
// It blocks until ctx is cancelled.
func (c *Client) Run(ctx context.Context, pollInterval time.Duration) error {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-c.tasks:
			task()
		case <-ticker.C:
			snap, err := c.game.GetGameStatus(ctx, c.session.GameID, c.session.PlayerID)
			if err != nil {
				c.log.Warn("poll failed", zap.Error(err))
				continue
			}
			c.Refresh(snap)
		}
	}
}

// HandleNotification folds a push-delivered notification into the engine by
// forcing a status refresh: snapshot content, not delivery order, is ground
// truth, so the push is only a hint that state moved.
func (c *Client) HandleNotification(raw []byte) {
	c.opts.Spawn(func(ctx context.Context) {
		snap, err := c.game.GetGameStatus(ctx, c.session.GameID, c.session.PlayerID)
		if err != nil {
			c.log.Warn("notification refresh failed", zap.Error(err))
			return
		}
		c.opts.Post(func() { c.Refresh(snap) })
	})
}

// refreshAfterSubmit fetches a fresh snapshot following a submission and
// reconciles. Runs inside a spawned task.
func (c *Client) refreshAfterSubmit(ctx context.Context) {
	snap, err := c.game.GetGameStatus(ctx, c.session.GameID, c.session.PlayerID)
	if err != nil {
		c.log.Warn("post-submit refresh failed", zap.Error(err))
		c.opts.Post(func() { c.reapplyBar() })
		return
	}
	c.opts.Post(func() { c.Refresh(snap) })
}

func (c *Client) now() time.Time { return c.opts.Clock() }
