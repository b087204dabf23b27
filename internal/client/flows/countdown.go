package flows

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultCountdownSeconds = 5
	countdownInterval       = time.Second
)

// Ticker is the part of *time.Ticker the countdown needs, so tests can drive
// ticks by hand.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type TickerFactory func(d time.Duration) Ticker

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) Chan() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()                  { s.t.Stop() }

func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// Countdown decrements once per tick and calls onTick with the new value.
// When it reaches zero it calls onDone once and stops.
//
// Callbacks run on the countdown goroutine with the countdown locked; they
// must not call Stop.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	started   bool
	stopped   bool
	cancel    context.CancelFunc
	done      chan struct{}

	newTicker TickerFactory
	onTick    func(remaining int)
	onDone    func()
}

func NewCountdown(seconds int, onTick func(int), onDone func(), newTicker TickerFactory) *Countdown {
	if seconds <= 0 {
		seconds = DefaultCountdownSeconds
	}
	if newTicker == nil {
		newTicker = NewStdTicker
	}
	return &Countdown{
		remaining: seconds,
		newTicker: newTicker,
		onTick:    onTick,
		onDone:    onDone,
		done:      make(chan struct{}),
	}
}

// Start launches the countdown. It runs until zero, Stop, or ctx is done.
// Calling Start twice, or after Stop, does nothing.
func (c *Countdown) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.stopped {
		return
	}
	c.started = true

	ctx, c.cancel = context.WithCancel(ctx)
	t := c.newTicker(countdownInterval)
	go c.run(ctx, t)
}

func (c *Countdown) run(ctx context.Context, t Ticker) {
	defer close(c.done)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.Chan():
			if finished := c.tick(); finished {
				return
			}
		}
	}
}

func (c *Countdown) tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return true
	}
	c.remaining--
	if c.onTick != nil {
		c.onTick(c.remaining)
	}
	if c.remaining > 0 {
		return false
	}
	c.stopped = true
	if c.onDone != nil {
		c.onDone()
	}
	return true
}

// Stop cancels the countdown and waits for its goroutine to exit.
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.stopped = true
	started := c.started
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	if started {
		<-c.done
	}
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}
