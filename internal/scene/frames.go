package scene

import (
	"context"
	"time"
)

// FrameSource paces the loop. Next blocks until the next frame is due and returns the
// time since the scene started, or false when no more frames will come.
type FrameSource interface {
	Next(ctx context.Context) (time.Duration, bool)
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func(ctx context.Context) (time.Duration, bool)

// Next calls f.
func (f FrameSourceFunc) Next(ctx context.Context) (time.Duration, bool) { return f(ctx) }

// Ticker is a FrameSource driven by a repeating timer. With Realtime unset it does not
// wait and reports elapsed time as frame·interval, which makes runs reproducible.
type Ticker struct {
	interval time.Duration
	limit    uint64
	realtime bool

	n     uint64
	start time.Time
	t     *time.Ticker
}

// NewTicker returns a wall-clock ticker at fps frames per second. limit bounds the number
// of frames; zero means unbounded.
func NewTicker(fps int, limit uint64) *Ticker {
	return &Ticker{interval: interval(fps), limit: limit, realtime: true}
}

// NewStepper returns a ticker that advances simulated time by 1/fps per frame without
// waiting.
func NewStepper(fps int, limit uint64) *Ticker {
	return &Ticker{interval: interval(fps), limit: limit}
}

func interval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// Interval returns the time between frames.
func (t *Ticker) Interval() time.Duration { return t.interval }

// Next implements FrameSource.
func (t *Ticker) Next(ctx context.Context) (time.Duration, bool) {
	if t.limit > 0 && t.n >= t.limit {
		return 0, false
	}
	if ctx.Err() != nil {
		return 0, false
	}
	if !t.realtime {
		t.n++
		return time.Duration(t.n) * t.interval, true
	}
	if t.t == nil {
		t.start = time.Now()
		t.t = time.NewTicker(t.interval)
	}
	select {
	case <-ctx.Done():
		return 0, false
	case now := <-t.t.C:
		t.n++
		return now.Sub(t.start), true
	}
}

// Stop releases the timer.
func (t *Ticker) Stop() {
	if t.t != nil {
		t.t.Stop()
	}
}
