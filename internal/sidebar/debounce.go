package sidebar

import (
	"sync"
	"time"
)

// Debouncer delivers the last pushed value once no new value has arrived
// for the configured delay. Every Push or Cancel starts a new generation; a
// timer whose callback is already running delivers nothing unless its
// generation is still current.
type Debouncer[T any] struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
	fn    func(T)
}

func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Push schedules v, replacing any pending value. A non-positive delay
// delivers synchronously.
func (d *Debouncer[T]) Push(v T) {
	if d.delay <= 0 {
		d.Cancel()
		d.fn(v)
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	g := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(g, v) })
}

func (d *Debouncer[T]) fire(g uint64, v T) {
	d.mu.Lock()
	if g != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.fn(v)
}

// Cancel drops the pending value, if any.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
