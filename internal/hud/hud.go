// Package hud shows a frames-per-second readout. The frame loop feeds it
// frame durations; a ticker refreshes the visible label at a slower pace so
// the number stays readable.
package hud

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is how often the label is refreshed.
const DefaultInterval = 2 * time.Second

// labelWidth pads the label so a shorter number overwrites a longer one.
const labelWidth = 8

// HUD holds the latest FPS measurement and the label currently shown.
// CalculateFPS and Render may be called from different goroutines.
type HUD struct {
	fps      atomic.Uint64 // math.Float64bits of the latest FPS value
	label    atomic.Value  // string
	interval time.Duration
}

// New returns a HUD that refreshes its label every interval
// (DefaultInterval if interval is not positive).
func New(interval time.Duration) *HUD {
	if interval <= 0 {
		interval = DefaultInterval
	}
	h := &HUD{interval: interval}
	h.fps.Store(math.Float64bits(60))
	h.label.Store(formatLabel(60))
	return h
}

// CalculateFPS records the frame rate implied by one frame's duration.
// Non-positive durations carry no rate and are ignored.
func (h *HUD) CalculateFPS(delta time.Duration) {
	if delta <= 0 {
		return
	}
	ms := float64(delta) / float64(time.Millisecond)
	h.fps.Store(math.Float64bits(1000 / ms))
}

// FPS returns the latest recorded frame rate.
func (h *HUD) FPS() float64 {
	return math.Float64frombits(h.fps.Load())
}

// Refresh copies the latest frame rate into the label.
func (h *HUD) Refresh() {
	h.label.Store(formatLabel(h.FPS()))
}

// Render returns the label as currently shown, e.g. "60 FPS".
func (h *HUD) Render() string {
	return h.label.Load().(string)
}

// ScheduleUpdates refreshes the label every interval until ctx is done or
// the returned cleanup function is called. Cleanup waits for the refresher
// to stop and is safe to call more than once.
func (h *HUD) ScheduleUpdates(ctx context.Context) (cleanup func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Refresh()
			}
		}
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}

func formatLabel(fps float64) string {
	return fmt.Sprintf("%d FPS", int64(math.Round(fps)))
}

// Padded returns the label padded to a fixed width.
func (h *HUD) Padded() string {
	return fmt.Sprintf("%-*s", labelWidth, h.Render())
}
