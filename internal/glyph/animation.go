package glyph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/smazurov/glyphd/internal/led"
	"github.com/smazurov/glyphd/internal/wakelock"
)

// AnimationConfig bounds the pulse animation.
type AnimationConfig struct {
	// Ceiling is the wake lock timeout and the hard limit on a run.
	Ceiling time.Duration
	// StepDelay separates brightness steps within a sweep.
	StepDelay time.Duration
	// SweepDelay is the pause after each sweep.
	SweepDelay time.Duration
}

// DefaultAnimationConfig returns the production timings.
func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		Ceiling:    120 * time.Second,
		StepDelay:  25 * time.Millisecond,
		SweepDelay: 4 * time.Second,
	}
}

// Animation outcomes.
const (
	outcomeCompleted = "completed"
	outcomeCancelled = "cancelled"
	outcomeExpired   = "expired"
	outcomeFault     = "fault"
)

// plan is the step arithmetic of one run.
type plan struct {
	intensity  int
	step       int
	iterations int
}

// planAnimation derives step size and sweep count so a run fits in the ceiling.
func planAnimation(cfg AnimationConfig, intensity int) plan {
	intensity = ClampIntensity(intensity)
	step := sweepStep(intensity)

	sweep := cfg.StepDelay * time.Duration(intensity) / time.Duration(step)
	period := sweep + cfg.SweepDelay
	if period <= 0 {
		period = time.Millisecond
	}

	iterations := int(cfg.Ceiling/period) - 1
	if iterations < 0 {
		iterations = 0
	}

	return plan{intensity: intensity, step: step, iterations: iterations}
}

// sweepStep is the brightness decrement of a sweep starting at intensity.
func sweepStep(intensity int) int {
	if step := 100 * intensity / MaxIntensity; step > 1 {
		return step
	}
	return 1
}

// animation is one running pulse task. Exactly one goroutine runs per value.
type animation struct {
	cfg    AnimationConfig
	driver led.Driver
	lock   wakelock.Lock
	logger *slog.Logger
	plan   plan

	mu        sync.Mutex
	base      led.Frame
	pulse     []int
	intensity int

	cancel  context.CancelFunc
	done    chan struct{}
	outcome string
}

// startAnimation acquires the wake lock and launches the pulse loop.
func startAnimation(
	parent context.Context,
	cfg AnimationConfig,
	driver led.Driver,
	lock wakelock.Lock,
	logger *slog.Logger,
	intensity int,
	base led.Frame,
	pulse []int,
) *animation {
	ctx, cancel := context.WithTimeout(parent, cfg.Ceiling)
	a := &animation{
		cfg:    cfg,
		driver: driver,
		lock:   lock,
		logger: logger,
		plan:   planAnimation(cfg, intensity),
		base:   base.Clone(),
		pulse:  append([]int(nil), pulse...),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	a.intensity = a.plan.intensity

	if err := lock.Acquire(cfg.Ceiling); err != nil {
		logger.Warn("Failed to acquire wake lock, animating without it", "error", err)
	}

	logger.Debug("Pulse animation started",
		"pulse_channels", len(a.pulse),
		"step", a.plan.step,
		"iterations", a.plan.iterations)

	go a.run(ctx)
	return a
}

func (a *animation) run(ctx context.Context) {
	defer close(a.done)
	defer a.cancel()
	defer a.releaseWakeLock()
	defer func() {
		if r := recover(); r != nil {
			a.outcome = outcomeFault
			a.logger.Error("Pulse animation failed", "panic", fmt.Sprint(r))
		}
		animationRunsTotal.WithLabelValues(a.outcome).Inc()
		a.logger.Debug("Pulse animation finished", "outcome", a.outcome)
	}()

	a.outcome = a.loop(ctx)
}

// loop runs the sweeps and returns the outcome.
func (a *animation) loop(ctx context.Context) string {
	for i := 0; i < a.plan.iterations; i++ {
		top := a.currentIntensity()
		step := sweepStep(top)
		for light := top; light >= 0; light -= step {
			a.render(light)
			if !sleepCtx(ctx, a.cfg.StepDelay) {
				return a.interrupted(ctx)
			}
		}
		if !sleepCtx(ctx, a.cfg.SweepDelay) {
			return a.interrupted(ctx)
		}
	}

	a.render(led.MaxBrightness)
	return outcomeCompleted
}

// interrupted settles the lights when the ceiling expired; an explicit cancel
// leaves rendering to the coordinator.
func (a *animation) interrupted(ctx context.Context) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		a.render(led.MaxBrightness)
		return outcomeExpired
	}
	return outcomeCancelled
}

func (a *animation) render(light int) {
	a.mu.Lock()
	frame := a.base.Clone()
	for _, ch := range a.pulse {
		frame[ch] = light
	}
	a.mu.Unlock()

	if err := a.driver.Render(frame); err != nil {
		driverErrorsTotal.WithLabelValues("render").Inc()
		a.logger.Warn("Failed to render animation frame", "error", err)
	}
}

func (a *animation) releaseWakeLock() {
	if !a.lock.Held() {
		return
	}
	if err := a.lock.Release(); err != nil {
		a.logger.Warn("Failed to release wake lock", "error", err)
	}
}

// retarget swaps the frame the task renders from its next step on. The new
// intensity applies from the next sweep.
func (a *animation) retarget(base led.Frame, pulse []int, intensity int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.base = base.Clone()
	a.pulse = append([]int(nil), pulse...)
	a.intensity = ClampIntensity(intensity)
}

// setIntensity changes the peak of the following sweeps. The sweep count
// planned at start is kept so the run still fits the ceiling.
func (a *animation) setIntensity(intensity int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.intensity = ClampIntensity(intensity)
}

func (a *animation) currentIntensity() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.intensity
}

// stop cancels the task and waits until it has exited and released the wake lock.
func (a *animation) stop() {
	a.cancel()
	<-a.done
}

// running reports whether the loop has not exited yet.
func (a *animation) running() bool {
	select {
	case <-a.done:
		return false
	default:
		return true
	}
}

// sleepCtx waits d or until ctx ends. It returns false when ctx ended.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
