package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smazurov/glyphd/cmd"
	"github.com/smazurov/glyphd/internal/api"
	"github.com/smazurov/glyphd/internal/config"
	"github.com/smazurov/glyphd/internal/events"
	"github.com/smazurov/glyphd/internal/glyph"
	"github.com/smazurov/glyphd/internal/led"
	"github.com/smazurov/glyphd/internal/logging"
	"github.com/smazurov/glyphd/internal/mapping"
	"github.com/smazurov/glyphd/internal/systemd"
	"github.com/smazurov/glyphd/internal/version"
	"github.com/smazurov/glyphd/internal/wakelock"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8091" toml:"server.port" env:"SERVER_PORT"`

	// Auth settings
	AuthUsername string `help:"Basic auth username (empty disables auth)" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Device settings
	DeviceModel string `help:"Light array model (20111, 22111, 23111); empty detects" default:"" toml:"device.model" env:"DEVICE_MODEL"`

	// Driver settings
	DriverType         string `help:"Light driver (sysfs, noop)" default:"sysfs" toml:"driver.type" env:"DRIVER_TYPE"`
	DriverSysfsPath    string `help:"LED class directory" default:"/sys/class/leds" toml:"driver.sysfs_path" env:"DRIVER_SYSFS_PATH"`
	DriverLEDPrefix    string `help:"LED name prefix, channel index appended" default:"glyph" toml:"driver.led_prefix" env:"DRIVER_LED_PREFIX"`
	DriverConnectDelay string `help:"Delay before the driver counts as connected" default:"0s" toml:"driver.connect_delay" env:"DRIVER_CONNECT_DELAY"`

	// Mapping settings
	MappingFile  string `help:"Zone mapping file" default:"mapping.toml" toml:"mapping.file" env:"MAPPING_FILE"`
	MappingWatch bool   `help:"Reload the mapping when the file changes" default:"true" toml:"mapping.watch" env:"MAPPING_WATCH"`

	// Animation settings
	AnimationCeiling    string `help:"Wake lock timeout and hard animation limit" default:"120s" toml:"animation.ceiling" env:"ANIMATION_CEILING"`
	AnimationStepDelay  string `help:"Delay between brightness steps" default:"25ms" toml:"animation.step_delay" env:"ANIMATION_STEP_DELAY"`
	AnimationSweepDelay string `help:"Pause after each sweep" default:"4s" toml:"animation.sweep_delay" env:"ANIMATION_SWEEP_DELAY"`

	// Glyph settings
	GlyphIntensity     int    `help:"Initial render intensity (0-4095)" default:"2047" toml:"glyph.intensity" env:"GLYPH_INTENSITY"`
	GlyphMessagingApps string `help:"Comma-separated messaging packages tracked per contact" default:"" toml:"glyph.messaging_apps" env:"GLYPH_MESSAGING_APPS"`
	GlyphIgnoredTitles string `help:"Comma-separated titles never resolved as contacts" default:"" toml:"glyph.ignored_titles" env:"GLYPH_IGNORED_TITLES"`

	// Wake lock settings
	WakelockType string `help:"Wake lock (sysfs, noop)" default:"sysfs" toml:"wakelock.type" env:"WAKELOCK_TYPE"`
	WakelockName string `help:"Kernel wake lock name" default:"glyphd" toml:"wakelock.name" env:"WAKELOCK_NAME"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingGlyph   string `help:"Engine logging level" default:"info" toml:"logging.glyph" env:"LOGGING_GLYPH"`
	LoggingLED     string `help:"Light driver logging level" default:"info" toml:"logging.led" env:"LOGGING_LED"`
	LoggingMapping string `help:"Mapping store logging level" default:"info" toml:"logging.mapping" env:"LOGGING_MAPPING"`
	LoggingAPI     string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP    string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
	LoggingConfig  string `help:"Config watcher logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically; CLI flags win
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"glyph":   opts.LoggingGlyph,
				"led":     opts.LoggingLED,
				"mapping": opts.LoggingMapping,
				"api":     opts.LoggingAPI,
				"http":    opts.LoggingHTTP,
				"config":  opts.LoggingConfig,
			},
		})

		logger := logging.GetLogger("main")
		logger.Info("Starting glyphd", "version", version.String())

		eventBus := events.New()

		driver, model := led.New(led.Options{
			Type:      opts.DriverType,
			Model:     parseModel(opts.DeviceModel),
			SysfsPath: opts.DriverSysfsPath,
			LEDPrefix: opts.DriverLEDPrefix,
		}, logging.GetLogger("led"))
		translator := led.NewTranslator(model)

		store := mapping.NewTOML(opts.MappingFile, logging.GetLogger("mapping"))

		engine := glyph.New(glyph.Options{
			Driver:        driver,
			Translator:    translator,
			Store:         store,
			ZoneCount:     model.ZoneCount(),
			Directory:     store,
			WakeLock:      wakelock.New(opts.WakelockType, opts.WakelockName, logger),
			Animation:     animationConfig(opts, logger),
			Intensity:     opts.GlyphIntensity,
			MessagingApps: splitList(opts.GlyphMessagingApps),
			IgnoredTitles: splitList(opts.GlyphIgnoredTitles),
			Logger:        logging.GetLogger("glyph"),
			OnChange:      events.PublishState(eventBus),
		})
		if reloadErr := engine.Reload(); reloadErr != nil {
			logger.Warn("Failed to load mapping, starting with no zones mapped", "path", opts.MappingFile, "error", reloadErr)
		}
		unbind := events.BindEngine(eventBus, engine)

		var watcher *config.Watcher[mapping.File]
		if opts.MappingWatch {
			configLogger := logging.GetLogger("config")
			watcher = config.NewConfigWatcher(opts.MappingFile, mapping.ReadFile, configLogger,
				config.WithErrorHandler[mapping.File](func(err error) {
					configLogger.Warn("Mapping file changed but does not parse, keeping current mapping", "error", err)
				}),
			)
			watcher.OnReload(func(mapping.File) {
				eventBus.Publish(events.CommandEvent{
					Command:   string(glyph.CommandUpdateMapping),
					Source:    "watcher",
					Timestamp: time.Now().Format(time.RFC3339),
				})
			})
		}

		server := api.NewServer(&api.Options{
			AuthUsername:      opts.AuthUsername,
			AuthPassword:      opts.AuthPassword,
			EventBus:          eventBus,
			Engine:            engine,
			Mapping:           store,
			Translator:        translator,
			Model:             model,
			PrometheusHandler: promhttp.Handler(),
		})

		notifier := systemd.NewNotifier(logger)
		unsubStatus := eventBus.Subscribe(func(e events.ZonesChangedEvent) {
			notifier.Status("%d zones lit, locked=%t", len(e.State.Zones), e.State.Locked)
		})

		var connectTimer *time.Timer

		hooks.OnStart(func() {
			if watcher != nil {
				if startErr := watcher.Start(); startErr != nil {
					logger.Warn("Failed to watch mapping file", "path", opts.MappingFile, "error", startErr)
				}
			}

			delay, err := time.ParseDuration(opts.DriverConnectDelay)
			if err != nil {
				logger.Warn("Invalid driver connect delay, connecting now", "value", opts.DriverConnectDelay, "error", err)
				delay = 0
			}
			connectTimer = time.AfterFunc(delay, func() {
				eventBus.Publish(events.DriverStateEvent{
					Connected: true,
					Timestamp: time.Now().Format(time.RFC3339),
				})
			})

			notifier.Ready()
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			notifier.Stopping()
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if connectTimer != nil {
				connectTimer.Stop()
			}
			if watcher != nil {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping mapping watcher", "error", stopErr)
				}
			}
			unsubStatus()
			unbind()
			engine.Shutdown()
		})
	})

	cli.Root().Use = "glyphd"
	cli.Root().Version = version.String()
	cli.Root().AddCommand(cmd.CreateMappingCmd())
	cli.Root().AddCommand(cmd.CreateZonesCmd())

	cli.Run()
}

// parseModel returns the configured model, or empty to trigger detection.
func parseModel(s string) led.Model {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return led.ParseModel(s)
}

// animationConfig parses the animation durations, keeping the default for
// any value that does not parse.
func animationConfig(opts *Options, logger *slog.Logger) glyph.AnimationConfig {
	cfg := glyph.DefaultAnimationConfig()
	fields := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"animation.ceiling", opts.AnimationCeiling, &cfg.Ceiling},
		{"animation.step_delay", opts.AnimationStepDelay, &cfg.StepDelay},
		{"animation.sweep_delay", opts.AnimationSweepDelay, &cfg.SweepDelay},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		d, err := time.ParseDuration(f.value)
		if err != nil || d < 0 {
			logger.Warn("Invalid duration, using default", "option", f.name, "value", f.value, "default", *f.dst)
			continue
		}
		*f.dst = d
	}
	return cfg
}

// splitList splits a comma-separated option. Empty input returns nil so the
// engine falls back to its defaults.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
