package app

// SlotGate is a ref-counted enable/disable switch for board-slot clicks.
// Subsystems disable input under their own reason string, so enable/disable
// calls from independent subsystems commute regardless of interleaving.
type SlotGate struct {
	reasons map[string]bool
	notify  func(enabled bool)
}

// Gate reasons used by the engine.
const (
	GateReasonBlockerChoice = "blocker-choice"
	GateReasonOpponentTurn  = "opponent-turn"
)

// NewSlotGate returns an open gate.
func NewSlotGate() *SlotGate {
	return &SlotGate{reasons: make(map[string]bool)}
}

// OnChange registers a callback fired whenever the open/closed state flips.
func (g *SlotGate) OnChange(fn func(enabled bool)) {
	g.notify = fn
}

// Disable closes the gate under the given reason. Idempotent per reason.
func (g *SlotGate) Disable(reason string) {
	wasOpen := g.Enabled()
	g.reasons[reason] = true
	if wasOpen && g.notify != nil {
		g.notify(false)
	}
}

// Enable lifts the given reason. The gate opens once no reasons remain.
func (g *SlotGate) Enable(reason string) {
	if !g.reasons[reason] {
		return
	}
	delete(g.reasons, reason)
	if g.Enabled() && g.notify != nil {
		g.notify(true)
	}
}

// Enabled reports whether slot clicks are currently allowed.
func (g *SlotGate) Enabled() bool {
	return len(g.reasons) == 0
}
