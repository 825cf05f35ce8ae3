package shell

import "sync"

// Continuation holds a pending "resume later" callback. TakeAndClear is
// atomic, so a continuation can never fire twice even if two rules race to
// consume it.
type Continuation struct {
	mu sync.Mutex
	fn func()
}

func (c *Continuation) Set(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fn = fn
}

func (c *Continuation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fn = nil
}

func (c *Continuation) IsSet() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fn != nil
}

// TakeAndClear returns the stored callback and empties the slot in one step.
// Returns nil when no callback is pending.
func (c *Continuation) TakeAndClear() func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn := c.fn
	c.fn = nil
	return fn
}
