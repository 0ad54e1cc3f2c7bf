package automation

import (
	"sync"

	"cardclient/internal/ports"
)

// Surface is a headless rendering layer: it implements the UI ports by
// recording the live presentation, so scripted drivers can inspect what a
// player would see and click what a player would click.
//
// Engine callbacks must run on the client loop; dispatch routes them there.
type Surface struct {
	mu       sync.Mutex
	dispatch func(fn func())
	changed  chan struct{}

	dialogs map[string]*Dialog
	bar     ports.BarState
	errors  []string

	selectedSlot string
	slotsEnabled bool
	timerRunning bool
}

// NewSurface builds a surface. dispatch routes callback invocations onto the
// engine loop; nil runs them inline.
func NewSurface(dispatch func(fn func())) *Surface {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Surface{
		dispatch:     dispatch,
		changed:      make(chan struct{}),
		dialogs:      map[string]*Dialog{},
		slotsEnabled: true,
		timerRunning: true,
	}
}

// Dialog returns the named recorder dialog, creating it on first use.
func (s *Surface) Dialog(name string) *Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dialogs[name]
	if !ok {
		d = &Dialog{surface: s, name: name}
		s.dialogs[name] = d
	}
	return d
}

// Bar returns the action-bar port.
func (s *Surface) Bar() ports.ActionBar { return (*surfaceBar)(s) }

// Board returns the board port.
func (s *Surface) Board() ports.Board { return (*surfaceBoard)(s) }

// Timer returns the turn-timer port.
func (s *Surface) Timer() ports.TurnTimer { return (*surfaceTimer)(s) }

// Errors returns the error-surface port.
func (s *Surface) Errors() ports.ErrorSurface { return (*surfaceErrors)(s) }

// BarState returns the last rendered bar.
func (s *Surface) BarState() ports.BarState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bar
}

// SelectedSlot returns the currently highlighted slot key, empty when none.
func (s *Surface) SelectedSlot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSlot
}

// LastError returns the most recent surfaced error, empty when none.
func (s *Surface) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errors) == 0 {
		return ""
	}
	return s.errors[len(s.errors)-1]
}

// bump signals every waiter that the presentation changed. Callers hold mu.
func (s *Surface) bump() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// Dialog is one recorder dialog surface.
type Dialog struct {
	surface *Surface
	name    string
	open    bool
	cfg     ports.DialogConfig
}

// Show renders the dialog.
func (d *Dialog) Show(cfg ports.DialogConfig) {
	d.surface.mu.Lock()
	defer d.surface.mu.Unlock()
	d.open = true
	d.cfg = cfg
	d.surface.bump()
}

// Hide closes the dialog.
func (d *Dialog) Hide() {
	d.surface.mu.Lock()
	defer d.surface.mu.Unlock()
	d.open = false
	d.cfg = ports.DialogConfig{}
	d.surface.bump()
}

// IsOpen reports whether the dialog is showing.
func (d *Dialog) IsOpen() bool {
	d.surface.mu.Lock()
	defer d.surface.mu.Unlock()
	return d.open
}

// AutomationState exposes the current config for scripted interaction.
func (d *Dialog) AutomationState() (ports.DialogConfig, bool) {
	d.surface.mu.Lock()
	defer d.surface.mu.Unlock()
	return d.cfg, d.open
}

type surfaceBar Surface

func (b *surfaceBar) Set(state ports.BarState) {
	s := (*Surface)(b)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bar = state
	s.bump()
}

type surfaceBoard Surface

func (b *surfaceBoard) SetSelectedSlot(slotKey string) {
	s := (*Surface)(b)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSlot = slotKey
	s.bump()
}

func (b *surfaceBoard) ClearSelectedSlot() {
	s := (*Surface)(b)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSlot = ""
	s.bump()
}

func (b *surfaceBoard) SetSlotClickEnabled(enabled bool) {
	s := (*Surface)(b)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slotsEnabled = enabled
	s.bump()
}

type surfaceTimer Surface

func (t *surfaceTimer) Pause() {
	s := (*Surface)(t)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timerRunning = false
	s.bump()
}

func (t *surfaceTimer) Resume() {
	s := (*Surface)(t)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timerRunning = true
	s.bump()
}

type surfaceErrors Surface

func (e *surfaceErrors) ShowError(message string) {
	s := (*Surface)(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, message)
	s.bump()
}
