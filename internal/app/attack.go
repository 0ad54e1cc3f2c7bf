package app

import (
	"cardclient/internal/ports"
)

// AttackCoordinator is the transient targeting mode entered when an attack
// is initiated: board clicks are narrowed to a whitelist of legal target
// keys and the next legal click is routed to the supplied continuation.
type AttackCoordinator struct {
	c        *Client
	targets  map[string]bool
	onSelect func(slotKey string)
	onCancel func()
}

// NewAttackCoordinator returns an inactive coordinator.
func NewAttackCoordinator(c *Client) *AttackCoordinator {
	return &AttackCoordinator{c: c}
}

// Name identifies the coordinator in the controller chain.
func (a *AttackCoordinator) Name() string { return "attack-target" }

// Active reports whether target mode is engaged.
func (a *AttackCoordinator) Active() bool { return a.onSelect != nil }

// Enter engages target mode. targets are "owner-slotId" keys.
func (a *AttackCoordinator) Enter(targets []string, onSelect func(slotKey string), onCancel func()) {
	a.targets = make(map[string]bool, len(targets))
	for _, key := range targets {
		a.targets[key] = true
	}
	a.onSelect = onSelect
	a.onCancel = onCancel
	a.c.reapplyBar()
}

// HandleSlotClick consumes a slot click while active. A click outside the
// target set is swallowed without leaving target mode and without touching
// the selection; a match invokes the continuation and tears the mode down.
func (a *AttackCoordinator) HandleSlotClick(slotKey string) bool {
	if !a.Active() {
		return false
	}
	if !a.targets[slotKey] {
		return true
	}
	onSelect := a.onSelect
	a.teardown()
	onSelect(slotKey)
	return true
}

// Cancel exits target mode through the cancel continuation.
func (a *AttackCoordinator) Cancel() {
	if !a.Active() {
		return
	}
	onCancel := a.onCancel
	a.teardown()
	if onCancel != nil {
		onCancel()
	}
	a.c.reapplyBar()
}

// Exit tears the mode down without invoking either continuation.
func (a *AttackCoordinator) Exit() {
	a.teardown()
}

func (a *AttackCoordinator) teardown() {
	a.targets = nil
	a.onSelect = nil
	a.onCancel = nil
}

// ApplyActionBar replaces the bar with a single cancel affordance while
// target mode is engaged.
func (a *AttackCoordinator) ApplyActionBar() bool {
	if !a.Active() {
		return false
	}
	a.c.ui.Bar.Set(ports.BarState{
		Buttons: []ports.BarButton{
			{
				ID:      "cancel-attack",
				Label:   "Cancel Attack",
				Primary: true,
				OnPress: a.Cancel,
			},
		},
	})
	return true
}
