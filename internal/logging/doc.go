// Package logging provides structured logging with per-module log level configuration.
//
// Loggers are plain *slog.Logger values tagged with a "module" attribute.
// Output goes to stdout when it is attached to something useful and to the
// systemd journal when journald is reachable; both at once is common on a
// device running glyphd as a service.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"glyph": "debug",
//			"api":   "warn",
//		},
//	})
//
// Then ask for a module logger wherever one is needed:
//
//	logger := logging.GetLogger("glyph")
//	logger.Debug("zone activated", "zone", 2, "key", key)
//
// Loggers handed out before Initialize keep working: their level is held in a
// slog.LevelVar and is updated in place.
//
// Matching TOML:
//
//	[logging]
//	level = "info"
//	format = "text"
//	glyph = "debug"
//	led = "warn"
//
// Journal fields follow the attribute keys in upper case, so
//
//	journalctl -t glyphd MODULE=glyph ZONE=2
//
// narrows output to one zone.
package logging
