package automation

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// BarSurface names the action bar in the interactable set; dialogs appear
// under their own names.
const BarSurface = "bar"

var errNotInteractable = errors.New("target is not currently interactable")

// Interactable is one thing a scripted driver could click right now.
type Interactable struct {
	Surface string
	ID      string
	Label   string
	Primary bool
	Enabled bool
}

// List snapshots everything currently clickable: open dialog rows plus bar
// buttons, in a stable order.
func (s *Surface) List() []Interactable {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Interactable
	names := make([]string, 0, len(s.dialogs))
	for name := range s.dialogs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := s.dialogs[name]
		if !d.open {
			continue
		}
		for _, opt := range d.cfg.Options {
			out = append(out, Interactable{
				Surface: name,
				ID:      opt.ID,
				Label:   opt.Label,
				Enabled: opt.Enabled && !opt.Done,
			})
		}
	}
	for _, btn := range s.bar.Buttons {
		out = append(out, Interactable{
			Surface: BarSurface,
			ID:      btn.ID,
			Label:   btn.Label,
			Primary: btn.Primary,
			Enabled: btn.OnPress != nil,
		})
	}
	return out
}

// Click invokes the named interactable's callback on the engine loop.
func (s *Surface) Click(surface, id string) error {
	s.mu.Lock()

	if surface == BarSurface {
		for _, btn := range s.bar.Buttons {
			if btn.ID != id || btn.OnPress == nil {
				continue
			}
			press := btn.OnPress
			s.mu.Unlock()
			s.dispatch(press)
			return nil
		}
		s.mu.Unlock()
		return fmt.Errorf("bar button %q: %w", id, errNotInteractable)
	}

	d, ok := s.dialogs[surface]
	if !ok || !d.open {
		s.mu.Unlock()
		return fmt.Errorf("dialog %q is not open: %w", surface, errNotInteractable)
	}
	for _, opt := range d.cfg.Options {
		if opt.ID != id {
			continue
		}
		if !opt.Enabled || opt.Done {
			break
		}
		onSelect := d.cfg.OnSelect
		s.mu.Unlock()
		if onSelect != nil {
			s.dispatch(func() { onSelect(id) })
		}
		return nil
	}
	s.mu.Unlock()
	return fmt.Errorf("dialog %q option %q: %w", surface, id, errNotInteractable)
}

// Back invokes the named dialog's back action, if any.
func (s *Surface) Back(surface string) error {
	s.mu.Lock()
	d, ok := s.dialogs[surface]
	if !ok || !d.open || d.cfg.OnBack == nil {
		s.mu.Unlock()
		return fmt.Errorf("dialog %q has no back action: %w", surface, errNotInteractable)
	}
	onBack := d.cfg.OnBack
	s.mu.Unlock()
	s.dispatch(onBack)
	return nil
}

// WaitFor blocks until pred passes over the interactable set or ctx expires.
func (s *Surface) WaitFor(ctx context.Context, pred func(items []Interactable) bool) error {
	for {
		s.mu.Lock()
		ch := s.changed
		s.mu.Unlock()

		if pred(s.List()) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}
