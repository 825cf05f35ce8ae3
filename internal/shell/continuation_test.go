package shell

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestContinuationTakeAndClear(t *testing.T) {
	var c Continuation

	if c.IsSet() {
		t.Fatal("fresh continuation reports set")
	}
	if fn := c.TakeAndClear(); fn != nil {
		t.Fatal("empty continuation returned a callback")
	}

	ran := 0
	c.Set(func() { ran++ })
	if !c.IsSet() {
		t.Fatal("continuation not set after Set")
	}

	fn := c.TakeAndClear()
	if fn == nil {
		t.Fatal("TakeAndClear returned nil for a set continuation")
	}
	fn()
	if ran != 1 {
		t.Fatalf("callback ran %d times, want 1", ran)
	}

	if c.IsSet() {
		t.Fatal("continuation still set after TakeAndClear")
	}
	if fn := c.TakeAndClear(); fn != nil {
		t.Fatal("second TakeAndClear returned a callback")
	}
}

func TestContinuationClear(t *testing.T) {
	var c Continuation
	c.Set(func() {})
	c.Clear()
	if c.IsSet() {
		t.Fatal("continuation set after Clear")
	}
}

func TestContinuationFiresAtMostOnceUnderRace(t *testing.T) {
	var c Continuation
	var ran int32
	c.Set(func() { atomic.AddInt32(&ran, 1) })

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if fn := c.TakeAndClear(); fn != nil {
				fn()
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&ran); got != 1 {
		t.Fatalf("callback ran %d times, want 1", got)
	}
}
