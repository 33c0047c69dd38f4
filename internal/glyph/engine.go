package glyph

import (
	"log/slog"
	"sync"

	"github.com/smazurov/glyphd/internal/led"
	"github.com/smazurov/glyphd/internal/wakelock"
)

// Options wires an Engine to its collaborators.
type Options struct {
	Driver     led.Driver
	Translator ZoneTranslator
	Store      MappingStore
	ZoneCount  int
	Directory  Directory
	WakeLock   wakelock.Lock

	// LockGate defaults to a LockState following lock commands.
	LockGate LockGate

	Animation AnimationConfig

	// Intensity is the initial render intensity; zero selects DefaultIntensity.
	Intensity int

	// Nil selects DefaultMessagingApps / DefaultIgnoredTitles.
	MessagingApps []string
	IgnoredTitles []string

	Logger *slog.Logger

	// OnChange, when set, receives the state after every change of the lit
	// channel sets. It runs with the engine locked and must not call back.
	OnChange func(State)
}

// State is a point-in-time view of the engine.
type State struct {
	Locked    bool           `json:"locked" doc:"Whether the screen is locked"`
	Connected bool           `json:"connected" doc:"Whether the light driver session is open"`
	Animating bool           `json:"animating" doc:"Whether a pulse animation is running"`
	Intensity int            `json:"intensity" doc:"Current render intensity"`
	Static    []int          `json:"static" doc:"Hardware channels lit statically"`
	Pulse     []int          `json:"pulse" doc:"Hardware channels pulsing"`
	Zones     map[ZoneID]int `json:"zones" doc:"Active logical zones and how many notifications hold each"`
}

// Engine maps notifications to lit zones. All entry points are serialized.
type Engine struct {
	mu sync.Mutex

	driver      led.Driver
	mapping     *Mapping
	classifier  *Classifier
	registry    *Registry
	coordinator *Coordinator
	gate        LockGate
	logger      *slog.Logger
	onChange    func(State)

	intensity int
	connected bool
}

// New builds an engine. The mapping starts empty until Reload succeeds.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	lock := opts.WakeLock
	if lock == nil {
		lock = wakelock.NewNoop()
	}

	gate := opts.LockGate
	if gate == nil {
		gate = &LockState{}
	}

	cfg := opts.Animation
	if cfg.Ceiling <= 0 {
		cfg = DefaultAnimationConfig()
	}

	intensity := opts.Intensity
	if intensity == 0 {
		intensity = DefaultIntensity
	}

	return &Engine{
		driver:      opts.Driver,
		mapping:     NewMapping(opts.Store, opts.ZoneCount),
		classifier:  NewClassifier(opts.Directory, opts.MessagingApps, opts.IgnoredTitles),
		registry:    NewRegistry(opts.Translator),
		coordinator: NewCoordinator(opts.Driver, lock, cfg, logger),
		gate:        gate,
		logger:      logger,
		onChange:    opts.OnChange,
		intensity:   ClampIntensity(intensity),
	}
}

// Reload replaces the zone mapping from the store. Active notifications are kept.
func (e *Engine) Reload() error {
	if err := e.mapping.Reload(); err != nil {
		e.logger.Warn("Keeping previous zone mapping", "error", err)
		return err
	}
	e.logger.Info("Zone mapping loaded", "entries", len(e.mapping.Table().Entries()))
	return nil
}

// Mapping returns the current table snapshot.
func (e *Engine) Mapping() *Table {
	return e.mapping.Table()
}

// OnDriverConnected opens a driver session and clears the array.
func (e *Engine) OnDriverConnected() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.driver.OpenSession(); err != nil {
		driverErrorsTotal.WithLabelValues("open_session").Inc()
		e.logger.Error("Failed to open light driver session", "error", err)
		return
	}
	e.connected = true
	if err := e.driver.TurnOff(); err != nil {
		driverErrorsTotal.WithLabelValues("turn_off").Inc()
		e.logger.Warn("Failed to clear lights on connect", "error", err)
	}
	e.logger.Info("Light driver connected")
}

// OnDriverDisconnected stops rendering and closes the session.
func (e *Engine) OnDriverDisconnected() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disconnectLocked()
}

func (e *Engine) disconnectLocked() {
	if !e.connected {
		return
	}
	e.coordinator.TurnOff()
	if err := e.driver.CloseSession(); err != nil {
		driverErrorsTotal.WithLabelValues("close_session").Inc()
		e.logger.Warn("Failed to close light driver session", "error", err)
	}
	e.connected = false
	e.logger.Info("Light driver disconnected")
}

// HandlePosted applies a posted notification.
func (e *Engine) HandlePosted(ev PostedEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.classifier.ClassifyPosted(e.mapping.Table(), ev)
	if !ok {
		notificationsTotal.WithLabelValues("posted", "ignored").Inc()
		return
	}
	notificationsTotal.WithLabelValues("posted", "mapped").Inc()

	logger := e.logger.With("key", ev.Key, "package", ev.Package)
	changed := false

	if c.App != nil {
		if e.registry.RecordActive(c.App.Zone, c.Key, c.App.Pulse) {
			changed = true
		}
		logger.Debug("App notification active", "zone", c.App.Zone, "pulse", c.App.Pulse)
	}

	if c.Message != nil && c.Contact != nil {
		switch c.Message.Kind {
		case MessageReceived:
			if e.registry.RecordActive(c.Contact.Zone, c.Key, c.Contact.Pulse) {
				changed = true
			}
			logger.Debug("Contact notification active", "zone", c.Contact.Zone, "contact", c.Message.Contact)
		case MessageReplied:
			// A reply reposts the conversation; both holdings end.
			if c.App != nil && e.registry.RecordInactive(c.App.Zone, c.Key) {
				changed = true
			}
			if e.registry.RecordInactive(c.Contact.Zone, c.Key) {
				changed = true
			}
			logger.Debug("Conversation replied", "zone", c.Contact.Zone, "contact", c.Message.Contact)
		case MessageRemoved:
			// No addressable contact: only the app mapping applies.
		}
	}

	if changed {
		e.changedLocked()
	}
}

// HandleRemoved applies a removed notification. Any zone still held by the
// key afterwards is released too, so a stale holding cannot keep a zone lit.
func (e *Engine) HandleRemoved(ev RemovedEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.classifier.ClassifyRemoved(e.mapping.Table(), ev)
	result := "ignored"
	if ok {
		result = "mapped"
	}
	notificationsTotal.WithLabelValues("removed", result).Inc()

	changed := false
	if c.App != nil && e.registry.RecordInactive(c.App.Zone, c.Key) {
		changed = true
	}
	if c.Contact != nil && e.registry.RecordInactive(c.Contact.Zone, c.Key) {
		changed = true
	}
	if e.registry.Sweep(ev.Key) {
		e.logger.Debug("Released stale zone holding", "key", ev.Key)
		changed = true
	}

	if changed {
		e.changedLocked()
	}
}

// HandleCommand applies a host command. intensity is only read for
// UPDATE_INTENSITY; nil selects the default.
func (e *Engine) HandleCommand(cmd Command, intensity *int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Debug("Handling command", "command", cmd)

	switch cmd {
	case CommandPhoneLocked:
		e.setLocked(true)
		e.renderLocked()
	case CommandPhoneUnlocked:
		e.setLocked(false)
		if e.connected {
			e.coordinator.TurnOff()
		} else {
			e.coordinator.CancelAnimation()
		}
	case CommandUpdateMapping:
		_ = e.Reload()
	case CommandUpdateIntensity:
		value := DefaultIntensity
		if intensity != nil {
			value = *intensity
		}
		e.intensity = ClampIntensity(value)
		e.coordinator.UpdateIntensity(e.intensity)
		e.logger.Info("Intensity updated", "intensity", e.intensity)
	case CommandShowGlyphs:
		if e.gate.IsLocked() {
			e.renderLocked()
		}
	default:
		e.logger.Warn("Unknown command", "command", cmd)
		return
	}
	e.notifyLocked()
}

// Show renders the current state regardless of the lock gate.
func (e *Engine) Show() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderLocked()
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Shutdown cancels the animation, turns the lights off and closes the session.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.disconnectLocked()
	e.coordinator.Close()
	e.registry.Reset()
	e.logger.Info("Engine stopped")
}

func (e *Engine) setLocked(locked bool) {
	if s, ok := e.gate.(interface{ SetLocked(bool) }); ok {
		s.SetLocked(locked)
	}
}

// changedLocked runs after a mutation that altered the lit channel sets.
func (e *Engine) changedLocked() {
	act := e.registry.Activation()
	activeChannels.WithLabelValues("static").Set(float64(len(act.Static)))
	activeChannels.WithLabelValues("pulse").Set(float64(len(act.Pulse)))
	activeZones.Set(float64(len(e.registry.Zones())))

	if e.gate.IsLocked() {
		e.renderLocked()
	}
	e.notifyLocked()
}

func (e *Engine) notifyLocked() {
	if e.onChange != nil {
		e.onChange(e.stateLocked())
	}
}

func (e *Engine) renderLocked() {
	if !e.connected {
		e.logger.Debug("Light driver not connected, skipping render")
		return
	}
	e.coordinator.Render(e.registry.Activation(), e.intensity)
}

func (e *Engine) stateLocked() State {
	act := e.registry.Activation()
	return State{
		Locked:    e.gate.IsLocked(),
		Connected: e.connected,
		Animating: e.coordinator.Animating(),
		Intensity: e.intensity,
		Static:    act.Static,
		Pulse:     act.Pulse,
		Zones:     e.registry.Zones(),
	}
}
