package domain

// SelectionKind tags the variant held by a Selection.
type SelectionKind int

const (
	// SelectionNone is the zero variant: nothing selected.
	SelectionNone SelectionKind = iota
	// SelectionHand is a card selected in the local player's hand.
	SelectionHand
	// SelectionSlot is a board slot selection.
	SelectionSlot
	// SelectionBase is a base card selection.
	SelectionBase
)

// Selection is the single "currently selected" UI target. Exactly one or
// none may exist at a time; the selection handler enforces that.
type Selection struct {
	Kind SelectionKind

	// hand
	UID      string
	CardType string

	// slot
	Owner  string
	SlotID string

	// base
	Side   string
	CardID string
}

// HandSelection selects a hand card by uid.
func HandSelection(uid, cardType string) Selection {
	return Selection{Kind: SelectionHand, UID: uid, CardType: cardType}
}

// SlotSelection selects a board slot.
func SlotSelection(owner, slotID string) Selection {
	return Selection{Kind: SelectionSlot, Owner: owner, SlotID: slotID}
}

// BaseSelection selects a base card.
func BaseSelection(side, cardID string) Selection {
	return Selection{Kind: SelectionBase, Side: side, CardID: cardID}
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool {
	return s.Kind == SelectionNone
}

// SlotKey returns the "owner-slotId" key used by the attack coordinator's
// target whitelist. Empty for non-slot selections.
func (s Selection) SlotKey() string {
	if s.Kind != SelectionSlot {
		return ""
	}
	return s.Owner + "-" + s.SlotID
}
