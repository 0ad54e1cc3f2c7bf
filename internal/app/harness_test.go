package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cardclient/internal/domain"
	"cardclient/internal/ports"
)

var errNetwork = errors.New("network unreachable")

// Test doubles for the UI and network ports, plus a deterministic client
// harness: Spawn runs inline by default, Post runs inline, and the clock is
// manual.

type fakeDialog struct {
	open      bool
	cfg       ports.DialogConfig
	showCount int
	hideCount int
}

func (d *fakeDialog) Show(cfg ports.DialogConfig) {
	d.open = true
	d.cfg = cfg
	d.showCount++
}

func (d *fakeDialog) Hide() {
	d.open = false
	d.hideCount++
}

func (d *fakeDialog) IsOpen() bool { return d.open }

func (d *fakeDialog) AutomationState() (ports.DialogConfig, bool) {
	return d.cfg, d.open
}

func (d *fakeDialog) selectOption(id string) {
	if d.open && d.cfg.OnSelect != nil {
		d.cfg.OnSelect(id)
	}
}

func (d *fakeDialog) optionIDs() []string {
	var ids []string
	for _, opt := range d.cfg.Options {
		ids = append(ids, opt.ID)
	}
	return ids
}

type fakeBar struct {
	state    ports.BarState
	setCount int
}

func (b *fakeBar) Set(state ports.BarState) {
	b.state = state
	b.setCount++
}

func (b *fakeBar) buttonIDs() []string {
	var ids []string
	for _, btn := range b.state.Buttons {
		ids = append(ids, btn.ID)
	}
	return ids
}

func (b *fakeBar) press(id string) bool {
	for _, btn := range b.state.Buttons {
		if btn.ID == id && btn.OnPress != nil {
			btn.OnPress()
			return true
		}
	}
	return false
}

type fakeBoard struct {
	selectedSlot string
	clickEnabled bool
	clearCount   int
}

func (b *fakeBoard) SetSelectedSlot(slotKey string) { b.selectedSlot = slotKey }
func (b *fakeBoard) ClearSelectedSlot() {
	b.selectedSlot = ""
	b.clearCount++
}
func (b *fakeBoard) SetSlotClickEnabled(enabled bool) { b.clickEnabled = enabled }

type fakeTimer struct {
	running     bool
	pauseCount  int
	resumeCount int
}

func (t *fakeTimer) Pause() {
	t.running = false
	t.pauseCount++
}

func (t *fakeTimer) Resume() {
	t.running = true
	t.resumeCount++
}

type fakeErrors struct {
	messages []string
}

func (e *fakeErrors) ShowError(message string) {
	e.messages = append(e.messages, message)
}

// fakeGame records every call and returns scripted results. Safe for the
// harness's inline Spawn as well as deferred spawns.
type fakeGame struct {
	mu sync.Mutex

	snapshot    domain.Snapshot
	statusErr   error
	statusCalls int

	actions   []ports.ActionRequest
	actionErr error

	submissions []ports.ChoiceSubmission
	submitErr   error

	acks   []ports.AckRequest
	ackErr error
}

func (g *fakeGame) setSnapshot(snap domain.Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.snapshot = snap
}

func (g *fakeGame) GetGameStatus(_ context.Context, _, _ string) (domain.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statusCalls++
	if g.statusErr != nil {
		return domain.Snapshot{}, g.statusErr
	}
	return g.snapshot, nil
}

func (g *fakeGame) PlayerAction(_ context.Context, req ports.ActionRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.actions = append(g.actions, req)
	return g.actionErr
}

func (g *fakeGame) record(sub ports.ChoiceSubmission) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submissions = append(g.submissions, sub)
	return g.submitErr
}

func (g *fakeGame) ConfirmBlockerChoice(_ context.Context, sub ports.ChoiceSubmission) error {
	return g.record(sub)
}

func (g *fakeGame) ConfirmBurstChoice(_ context.Context, sub ports.ChoiceSubmission) error {
	return g.record(sub)
}

func (g *fakeGame) ConfirmOptionChoice(_ context.Context, sub ports.ChoiceSubmission) error {
	return g.record(sub)
}

func (g *fakeGame) ConfirmTokenChoice(_ context.Context, sub ports.ChoiceSubmission) error {
	return g.record(sub)
}

func (g *fakeGame) ConfirmTargetChoice(_ context.Context, sub ports.ChoiceSubmission) error {
	return g.record(sub)
}

func (g *fakeGame) AcknowledgeEvents(_ context.Context, req ports.AckRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.acks = append(g.acks, req)
	return g.ackErr
}

// harness bundles the client with every fake it is wired to.
type harness struct {
	client *Client
	game   *fakeGame

	prompt   *fakeDialog
	option   *fakeDialog
	token    *fakeDialog
	burst    *fakeDialog
	group    *fakeDialog
	blocker  *fakeDialog
	slotPick *fakeDialog

	bar    *fakeBar
	board  *fakeBoard
	timer  *fakeTimer
	errors *fakeErrors

	now time.Time

	// deferred spawns, populated when deferSpawn is enabled.
	spawned []func(ctx context.Context)
}

type harnessOption func(*harness, *Options)

// deferSpawn queues spawned tasks instead of running them inline, so tests
// can observe the in-flight state.
func deferSpawn() harnessOption {
	return func(h *harness, opts *Options) {
		opts.Spawn = func(task func(ctx context.Context)) {
			h.spawned = append(h.spawned, task)
		}
	}
}

func newHarness(playerID string, hopts ...harnessOption) *harness {
	h := &harness{
		game:     &fakeGame{},
		prompt:   &fakeDialog{},
		option:   &fakeDialog{},
		token:    &fakeDialog{},
		burst:    &fakeDialog{},
		group:    &fakeDialog{},
		blocker:  &fakeDialog{},
		slotPick: &fakeDialog{},
		bar:      &fakeBar{},
		board:    &fakeBoard{clickEnabled: true},
		timer:    &fakeTimer{running: true},
		errors:   &fakeErrors{},
		now:      time.Unix(1700000000, 0),
	}
	opts := Options{
		Clock: func() time.Time { return h.now },
		Spawn: func(task func(ctx context.Context)) { task(context.Background()) },
		Post:  func(fn func()) { fn() },
	}
	for _, o := range hopts {
		o(h, &opts)
	}
	ui := UI{
		PromptDialog:   h.prompt,
		OptionDialog:   h.option,
		TokenDialog:    h.token,
		BurstDialog:    h.burst,
		GroupDialog:    h.group,
		BlockerDialog:  h.blocker,
		SlotPickDialog: h.slotPick,
		Bar:            h.bar,
		Board:          h.board,
		Timer:          h.timer,
		Errors:         h.errors,
	}
	session := Session{GameID: "game_1", PlayerID: playerID}
	h.client = NewClient(nil, h.game, ui, session, opts)
	return h
}

// advance moves the manual clock forward.
func (h *harness) advance(d time.Duration) {
	h.now = h.now.Add(d)
}

// runSpawned drains the deferred spawn queue.
func (h *harness) runSpawned() {
	tasks := h.spawned
	h.spawned = nil
	for _, task := range tasks {
		task(context.Background())
	}
}

// refresh parses the JSON body and feeds it through the full refresh path.
// The same body is installed as the fake server's poll response so
// post-submit refetches see consistent state.
func (h *harness) refresh(body string) {
	snap := domain.ParseSnapshot("OK", []byte(body))
	h.game.setSnapshot(snap)
	h.client.Refresh(snap)
}

// Snapshot JSON builders. Tests compose bodies from these fragments instead
// of repeating the full wire shape.

func gameBody(currentPlayer string, turn int, fragments ...string) string {
	body := fmt.Sprintf(`{"gameEnv":{"phase":"MAIN_PHASE","currentPlayer":%q,"turnNumber":%d`, currentPlayer, turn)
	for _, fragment := range fragments {
		body += "," + fragment
	}
	return body + "}}"
}

func notifications(entries ...string) string {
	out := `"notifications":[`
	for i, e := range entries {
		if i > 0 {
			out += ","
		}
		out += e
	}
	return out + "]"
}

func choiceEntry(id, notifType, playerID, status, data string) string {
	return fmt.Sprintf(
		`{"id":%q,"type":%q,"payload":{"event":{"eventId":"ev_%s"},"playerId":%q,"status":%q,"data":%s}}`,
		id, notifType, id, playerID, status, data)
}

func optionData(ids ...string) string {
	out := `{"availableOptions":[`
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"id":%q,"label":%q}`, id, "Option "+id)
	}
	return out + "]}"
}
