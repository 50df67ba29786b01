// Package notify implements the per-market update pulse used for blocking
// reads. A pulse wakes every goroutine currently waiting on a market and
// immediately resets: it carries no state, so a waiter that arrives after
// the pulse blocks until the next one.
package notify

import (
	"sync"
	"time"
)

// Notifier wakes waiters per market key. The zero value is not usable;
// call New.
type Notifier struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{gates: make(map[string]chan struct{})}
}

// gate returns the current generation channel for a market, creating it on
// first use. Closing the channel is the pulse; the replacement channel is
// the next generation, so waiters can never miss a wakeup between
// observing the channel and blocking on it.
func (n *Notifier) gate(market string) chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch, ok := n.gates[market]
	if !ok {
		ch = make(chan struct{})
		n.gates[market] = ch
	}
	return ch
}

// Signal wakes every goroutine currently waiting on market and resets the
// pulse to the unsignaled state.
func (n *Notifier) Signal(market string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ch, ok := n.gates[market]; ok {
		close(ch)
	}
	n.gates[market] = make(chan struct{})
}

// Wait blocks until the next Signal for market or until timeout elapses,
// whichever comes first. The caller cannot tell which happened from the
// return alone; that indistinguishability is the documented contract.
// A non-positive timeout waits for the next pulse without a deadline.
func (n *Notifier) Wait(market string, timeout time.Duration) {
	ch := n.gate(market)

	if timeout <= 0 {
		<-ch
		return
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ch:
	case <-timer.C:
	}
}

// Reset releases every current waiter on every market and discards all
// gates. Used on connection reset so consumers blocked on wiped markets
// do not hang until their timeout.
func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.gates {
		close(ch)
	}
	n.gates = make(map[string]chan struct{})
}
