package app

import "sync"

// decisionFuture is a one-shot value bridging a callback-driven dialog into
// an awaitable flow. Resolve is first-wins: when a timeout and a user action
// race, whichever fires first takes effect and the other becomes a no-op.
type decisionFuture struct {
	once sync.Once
	ch   chan string
}

func newDecisionFuture() *decisionFuture {
	return &decisionFuture{ch: make(chan string, 1)}
}

// resolve delivers the value exactly once. Returns false if already resolved.
func (f *decisionFuture) resolve(v string) bool {
	won := false
	f.once.Do(func() {
		f.ch <- v
		close(f.ch)
		won = true
	})
	return won
}

// done exposes the completion channel; it yields the resolved value and then
// only zero values.
func (f *decisionFuture) done() <-chan string {
	return f.ch
}
