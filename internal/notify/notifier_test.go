package notify

import (
	"sync"
	"testing"
	"time"
)

func TestNotifier_SignalWakesWaiter(t *testing.T) {
	n := New()

	done := make(chan struct{})
	go func() {
		n.Wait("BTC-PERP", 5*time.Second)
		close(done)
	}()

	// Give the waiter time to block on the gate.
	time.Sleep(20 * time.Millisecond)
	n.Signal("BTC-PERP")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by Signal")
	}
}

func TestNotifier_WaitTimesOut(t *testing.T) {
	n := New()

	start := time.Now()
	n.Wait("BTC-PERP", 50*time.Millisecond)
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("Wait returned after %v, want >= 50ms", elapsed)
	}
	if elapsed > time.Second {
		t.Errorf("Wait returned after %v, want well under 1s", elapsed)
	}
}

func TestNotifier_PulseIsNotSticky(t *testing.T) {
	n := New()

	// Signal with nobody waiting, then wait: the pulse must not be retained.
	n.Signal("ETH-PERP")

	start := time.Now()
	n.Wait("ETH-PERP", 50*time.Millisecond)

	if time.Since(start) < 50*time.Millisecond {
		t.Error("waiter observed a stale pulse from before it started waiting")
	}
}

func TestNotifier_SignalOnlyTargetMarket(t *testing.T) {
	n := New()

	woken := make(chan string, 2)
	var wg sync.WaitGroup
	for _, market := range []string{"BTC-PERP", "ETH-PERP"} {
		wg.Add(1)
		go func(m string) {
			defer wg.Done()
			n.Wait(m, 150*time.Millisecond)
			woken <- m
		}(market)
	}

	time.Sleep(20 * time.Millisecond)
	n.Signal("BTC-PERP")

	first := <-woken
	if first != "BTC-PERP" {
		t.Errorf("first woken = %q, want BTC-PERP", first)
	}

	wg.Wait()
}

func TestNotifier_ResetReleasesAllWaiters(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	for _, market := range []string{"BTC-PERP", "ETH-PERP", "SOL-PERP"} {
		wg.Add(1)
		go func(m string) {
			defer wg.Done()
			n.Wait(m, 10*time.Second)
		}(market)
	}

	time.Sleep(20 * time.Millisecond)
	n.Reset()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Reset did not release all waiters")
	}
}

func TestNotifier_SignalWakesAllWaitersOnMarket(t *testing.T) {
	n := New()

	const waiters = 5
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Wait("BTC-PERP", 10*time.Second)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	n.Signal("BTC-PERP")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Signal did not wake every waiter")
	}
}
