package glyph

import (
	"context"
	"log/slog"

	"github.com/smazurov/glyphd/internal/led"
	"github.com/smazurov/glyphd/internal/wakelock"
)

// Coordinator turns an Activation into driver calls, owning the single pulse
// animation. It is not safe for concurrent use; the Engine serializes access.
type Coordinator struct {
	driver led.Driver
	lock   wakelock.Lock
	cfg    AnimationConfig
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	task   *animation
}

// NewCoordinator creates a coordinator drawing through driver.
func NewCoordinator(driver led.Driver, lock wakelock.Lock, cfg AnimationConfig, logger *slog.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		driver: driver,
		lock:   lock,
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Render shows act at intensity. A running animation is started, retargeted
// or stopped as the pulse set requires; otherwise a static frame or an
// all-off is sent.
func (c *Coordinator) Render(act Activation, intensity int) {
	static := make(led.Frame, len(act.Static))
	for _, ch := range act.Static {
		static[ch] = intensity
	}

	if c.task != nil && !c.task.running() {
		c.task = nil
	}

	switch {
	case len(act.Pulse) > 0 && c.task == nil:
		rendersTotal.WithLabelValues("animation_start").Inc()
		c.task = startAnimation(c.ctx, c.cfg, c.driver, c.lock, c.logger, intensity, static, act.Pulse)
		return
	case len(act.Pulse) > 0:
		rendersTotal.WithLabelValues("animation_retarget").Inc()
		c.task.retarget(static, act.Pulse, intensity)
		return
	case c.task != nil:
		rendersTotal.WithLabelValues("animation_cancel").Inc()
		c.stopTask()
	}

	if len(act.Static) > 0 {
		rendersTotal.WithLabelValues("static").Inc()
		if err := c.driver.Render(static); err != nil {
			driverErrorsTotal.WithLabelValues("render").Inc()
			c.logger.Warn("Failed to render static frame", "error", err)
		}
		return
	}

	rendersTotal.WithLabelValues("off").Inc()
	c.turnOff()
}

// CancelAnimation stops a running animation and waits for it to release the
// wake lock.
func (c *Coordinator) CancelAnimation() {
	if c.task != nil {
		c.stopTask()
	}
}

// UpdateIntensity applies intensity to the sweeps of a running animation.
// Static channels keep their level until the next Render.
func (c *Coordinator) UpdateIntensity(intensity int) {
	if c.task != nil && c.task.running() {
		c.task.setIntensity(intensity)
	}
}

// Animating reports whether a pulse animation is running.
func (c *Coordinator) Animating() bool {
	return c.task != nil && c.task.running()
}

// TurnOff cancels any animation and switches all channels off.
func (c *Coordinator) TurnOff() {
	c.CancelAnimation()
	c.turnOff()
}

// Close cancels any animation. The coordinator must not be used afterwards.
func (c *Coordinator) Close() {
	c.CancelAnimation()
	c.cancel()
}

func (c *Coordinator) stopTask() {
	c.task.stop()
	c.task = nil
}

func (c *Coordinator) turnOff() {
	if err := c.driver.TurnOff(); err != nil {
		driverErrorsTotal.WithLabelValues("turn_off").Inc()
		c.logger.Warn("Failed to turn lights off", "error", err)
	}
}
