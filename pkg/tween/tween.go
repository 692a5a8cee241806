// Package tween drives cosmetic count-up animations on a fixed frame budget.
package tween

import (
	"context"
	"math"
	"sync"
	"time"
)

const (
	// DefaultFrames is the number of steps a count-up takes.
	DefaultFrames = 50
	// DefaultDuration is the total animation time.
	DefaultDuration = 2 * time.Second
)

// Tween counts from 0 to Target in Frames steps:
//
//	value(n) = ceil(min(Target/Frames*n, Target))
type Tween struct {
	mu        sync.Mutex
	target    float64
	frames    int
	count     int
	value     float64
	cancelled bool
}

// New builds a tween. Non-positive frames fall back to DefaultFrames.
func New(target float64, frames int) *Tween {
	if frames <= 0 {
		frames = DefaultFrames
	}
	return &Tween{target: target, frames: frames}
}

// Step advances one frame and reports whether the tween is still running.
func (t *Tween) Step() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled || t.count >= t.frames {
		return false
	}
	t.count++
	step := t.target / float64(t.frames)
	t.value = math.Ceil(math.Min(step*float64(t.count), t.target))
	return t.count < t.frames
}

// Value is the current displayed value.
func (t *Tween) Value() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Target is the final value.
func (t *Tween) Target() float64 { return t.target }

// Frame returns the number of frames already applied.
func (t *Tween) Frame() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Progress is the fraction of frames applied, in [0,1].
func (t *Tween) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return float64(t.count) / float64(t.frames)
}

// Done reports whether every frame has been applied.
func (t *Tween) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count >= t.frames
}

// Cancel stops the tween at its current value.
func (t *Tween) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
}

// Cancelled reports whether Cancel was called.
func (t *Tween) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// Interval returns the per-frame tick for a duration.
func Interval(duration time.Duration, frames int) time.Duration {
	if frames <= 0 {
		frames = DefaultFrames
	}
	return duration / time.Duration(frames)
}

// Run steps tw on every tick until it finishes, is cancelled, or ctx ends.
// onFrame receives each new value. The ticker is always released.
func Run(ctx context.Context, tw *Tween, interval time.Duration, onFrame func(value float64)) error {
	if interval <= 0 {
		interval = Interval(DefaultDuration, tw.frames)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			tw.Cancel()
			return ctx.Err()
		case <-ticker.C:
			if tw.Cancelled() {
				return nil
			}
			running := tw.Step()
			if onFrame != nil {
				onFrame(tw.Value())
			}
			if !running {
				return nil
			}
		}
	}
}
