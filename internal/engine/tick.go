// Package engine provides the tick loop and the per-tick simulation
// pipeline that drives the land, the beings and their brains.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// One tick is one land minute.
const (
	TicksPerSimHour = 60   // 60 ticks = 1 sim-hour
	TicksPerSimDay  = 1440 // 24 hours × 60
)

// Engine drives the simulation forward.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval; zero runs flat out
	Limit    uint64        // Stop after this tick; zero runs until cancelled
	Running  bool

	// Callbacks for each tick layer — populated during setup.
	OnTick func(ctx context.Context, tick uint64) error // Every tick (sim-minute)
	OnHour func(tick uint64)                            // Every 60 ticks
	OnDay  func(tick uint64)                            // Every 1440 ticks
}

// NewEngine creates a simulation engine that runs as fast as it can.
func NewEngine() *Engine {
	return &Engine{
		Speed: 1.0,
	}
}

// Run starts the simulation loop. It returns when ctx is cancelled, Stop
// is called, Limit is reached or a tick fails.
func (e *Engine) Run(ctx context.Context) error {
	e.Running = true
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed, "limit", e.Limit)
	defer func() {
		e.Running = false
		slog.Info("simulation engine stopped", "tick", e.Tick)
	}()

	for e.Running {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if e.Limit > 0 && e.Tick >= e.Limit {
			return nil
		}
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		if err := e.step(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			return fmt.Errorf("tick %d: %w", e.Tick, err)
		}

		if e.Interval <= 0 {
			continue
		}
		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			select {
			case <-ctx.Done():
			case <-time.After(target - elapsed):
			}
		}
	}
	return nil
}

// Stop halts the simulation loop after the current tick.
func (e *Engine) Stop() {
	e.Running = false
}

// step advances the simulation by one tick.
func (e *Engine) step(ctx context.Context) error {
	e.Tick++

	if e.OnTick != nil {
		if err := e.OnTick(ctx, e.Tick); err != nil {
			return err
		}
	}

	if e.Tick%TicksPerSimHour == 0 && e.OnHour != nil {
		e.OnHour(e.Tick)
	}

	// Every sim-day: daily report, event trimming.
	if e.Tick%TicksPerSimDay == 0 && e.OnDay != nil {
		e.OnDay(e.Tick)
	}
	return nil
}

// SimTime returns a human-readable simulation time string from a tick
// number counted from the first day.
func SimTime(tick uint64) string {
	minutes := tick % 60
	hours := (tick / 60) % 24
	days := tick/TicksPerSimDay + 1
	return fmt.Sprintf("Day %d, %d:%02d", days, hours, minutes)
}
