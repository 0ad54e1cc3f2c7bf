package ports

import "time"

// DialogOption is one selectable row of a rendered dialog.
type DialogOption struct {
	ID      string
	Label   string
	Enabled bool
	Done    bool
}

// DialogConfig describes one dialog presentation. Callbacks run on the
// client loop; the rendering layer only routes input back.
type DialogConfig struct {
	Title     string
	Options   []DialogOption
	OnSelect  func(optionID string)
	OnBack    func()
	OnTimeout func()
	Timeout   time.Duration
}

// Dialog is a modal decision surface owned by exactly one flow at a time.
type Dialog interface {
	Show(cfg DialogConfig)
	Hide()
	IsOpen() bool
	// AutomationState exposes the current config for scripted interaction;
	// ok is false when the dialog is closed.
	AutomationState() (DialogConfig, bool)
}

// BarButton is one action-bar affordance.
type BarButton struct {
	ID      string
	Label   string
	Primary bool
	OnPress func()
}

// BarState is the full action-bar presentation for one refresh.
type BarState struct {
	WaitingForOpponent bool
	Buttons            []BarButton
}

// ActionBar renders the current decision affordances.
type ActionBar interface {
	Set(state BarState)
}

// Board is the slice of the rendering layer the engine drives directly:
// slot highlight and the slot-click enable switch.
type Board interface {
	SetSelectedSlot(slotKey string)
	ClearSelectedSlot()
	SetSlotClickEnabled(enabled bool)
}

// TurnTimer is the local countdown display. The engine pauses it whenever
// the local player is waiting on the opponent and resumes it otherwise.
type TurnTimer interface {
	Pause()
	Resume()
}

// ErrorSurface shows rejections the engine cannot re-route into a
// disambiguation dialog.
type ErrorSurface interface {
	ShowError(message string)
}
