package domain

// Game phases as the server names them.
const (
	PhaseStart  = "START_PHASE"
	PhaseDraw   = "DRAW_PHASE"
	PhaseMain   = "MAIN_PHASE"
	PhaseAction = "ACTION_PHASE"
	PhaseEnd    = "END_PHASE"
)

// Burst decisions. A burst that times out is ACTIVATED, not cancelled: the
// game rule is "you didn't cancel, so it triggers".
const (
	BurstDecisionActivate = "ACTIVATE"
	BurstDecisionCancel   = "CANCEL"
)

// BurstTimeoutDecision is the decision submitted when a burst dialog's
// timeout fires before the owner answers.
const BurstTimeoutDecision = BurstDecisionActivate

// OptionTagBottom marks a "safe default" option the server designates for
// timeout resolution of option/token choices.
const OptionTagBottom = "BOTTOM"

// HandZoneWildcard is the zone string the server uses to declare the whole
// hand as a legal action-step target.
const HandZoneWildcard = "hand"
