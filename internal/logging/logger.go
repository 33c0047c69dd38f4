package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Logger is a duck-typed interface satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config represents logging configuration.
type Config struct {
	Level   string            `toml:"level"`
	Format  string            `toml:"format"`
	Modules map[string]string `toml:"modules"`
}

// module is a handed-out logger and the level variable it reads.
type module struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

// registry owns every module logger. Loggers are never replaced, only
// re-pointed at a new handler, so callers may cache them.
type registry struct {
	mu          sync.RWMutex
	config      Config
	initialized bool
	global      slog.LevelVar
	modules     map[string]*module
}

var std = newRegistry()

func newRegistry() *registry {
	return &registry{modules: make(map[string]*module)}
}

// Initialize sets up the logging system. It may be called again to apply a
// new configuration to loggers already handed out.
func Initialize(config Config) {
	std.initialize(config)
}

// GetLogger returns the logger for module, creating it if needed.
func GetLogger(name string) *slog.Logger {
	return std.get(name)
}

func (r *registry) initialize(config Config) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.config = config
	r.initialized = true
	r.global.Set(r.globalLevelLocked())

	for name, m := range r.modules {
		m.level.Set(r.moduleLevelLocked(name))
		*m.logger = *slog.New(newHandler(config.Format, m.level)).With("module", name)
	}

	slog.SetDefault(slog.New(newHandler(config.Format, &r.global)))
}

func (r *registry) get(name string) *slog.Logger {
	r.mu.RLock()
	m, ok := r.modules[name]
	r.mu.RUnlock()
	if ok {
		return m.logger
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.modules[name]; ok {
		return m.logger
	}

	level := &slog.LevelVar{}
	level.Set(r.moduleLevelLocked(name))

	format := "text"
	if r.initialized {
		format = r.config.Format
	}

	m = &module{
		logger: slog.New(newHandler(format, level)).With("module", name),
		level:  level,
	}
	r.modules[name] = m
	return m.logger
}

func (r *registry) globalLevelLocked() slog.Level {
	if l := parseLevel(r.config.Level); l != nil {
		return *l
	}
	return slog.LevelInfo
}

// moduleLevelLocked resolves a module level: module override, then the
// global level, then info.
func (r *registry) moduleLevelLocked(name string) slog.Level {
	if !r.initialized {
		return slog.LevelInfo
	}
	if l := parseLevel(r.config.Modules[name]); l != nil {
		return *l
	}
	return r.globalLevelLocked()
}

// newHandler builds the output chain for a module: stdout when it goes
// somewhere, plus the journal when journald is reachable.
func newHandler(format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var stdout slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if format == "json" {
		stdout = slog.NewJSONHandler(os.Stdout, opts)
	}

	var handlers []slog.Handler
	if stdoutAttached() {
		handlers = append(handlers, stdout)
	}
	if IsJournalAvailable() {
		handlers = append(handlers, NewJournalHandler(level))
	}

	switch len(handlers) {
	case 0:
		return stdout
	case 1:
		return handlers[0]
	default:
		return NewMultiHandler(handlers...)
	}
}

// stdoutAttached reports whether stdout is a terminal, pipe, socket or file.
// /dev/null is a device and does not count.
func stdoutAttached() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	mode := fi.Mode()
	return mode&(os.ModeCharDevice|os.ModeNamedPipe|os.ModeSocket) != 0 || mode.IsRegular()
}

// parseLevel converts a level name to a slog.Level, or nil when unknown.
func parseLevel(level string) *slog.Level {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return nil
	}
	return &l
}
