package flow

import (
	"sync"
	"time"
)

// Countdown is the fixed payment window timer: it ticks down once per
// second and fires onExpire exactly once when it reaches zero. Reaching
// zero is one-way; further ticks are ignored.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	fired     bool
	onExpire  func()
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewCountdown(seconds int, onExpire func()) *Countdown {
	return &Countdown{
		remaining: seconds,
		onExpire:  onExpire,
		stop:      make(chan struct{}),
	}
}

// Tick advances the countdown by one second. The expiry callback runs
// outside the countdown lock so it may re-enter the owning state machine.
func (c *Countdown) Tick() {
	c.mu.Lock()
	if c.fired {
		c.mu.Unlock()
		return
	}
	if c.remaining > 0 {
		c.remaining--
	}
	fire := c.remaining == 0 && !c.fired
	if fire {
		c.fired = true
	}
	c.mu.Unlock()

	if fire {
		c.Stop()
		if c.onExpire != nil {
			c.onExpire()
		}
	}
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fired
}

// Run ticks at the given interval until expiry or Stop.
func (c *Countdown) Run(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.Tick()
			if c.Expired() {
				return
			}
		case <-c.stop:
			return
		}
	}
}

// Stop halts the ticker goroutine. Idempotent.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}
