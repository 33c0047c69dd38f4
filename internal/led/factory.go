package led

import (
	"log/slog"
	"os"
	"strings"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// Driver types accepted by New.
const (
	DriverSysfs = "sysfs"
	DriverNoop  = "noop"
)

// Options selects and configures a driver.
type Options struct {
	Type      string // sysfs or noop
	Model     Model  // empty triggers detection
	SysfsPath string
	LEDPrefix string
}

// New creates a light driver for the configured or detected model.
// Falls back to a no-op driver when sysfs LEDs are not present.
func New(opts Options, logger *slog.Logger) (Driver, Model) {
	model := opts.Model
	if model == "" {
		boardModel := detectBoard()
		model = ParseModel(boardModel)
		logger.Info("Detected light array model", "board_model", boardModel, "model", model)
	}

	channels := model.ChannelCount()

	if opts.Type == DriverNoop {
		logger.Info("Using no-op light driver", "model", model)
		return newNoop(channels, logger), model
	}

	prefix := opts.LEDPrefix
	if prefix == "" {
		prefix = "glyph"
	}
	drv := newSysfs(opts.SysfsPath, prefix, channels)

	if _, err := os.Stat(drv.ledPath(0)); err != nil {
		logger.Warn("No sysfs LEDs found, using no-op light driver",
			"path", drv.ledPath(0),
			"error", err)
		return newNoop(channels, logger), model
	}

	logger.Info("Using sysfs light driver",
		"model", model,
		"root", drv.root,
		"channels", channels)
	return drv, model
}

// detectBoard reads the device tree model to identify the device.
func detectBoard() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return "unknown"
	}
	// Device tree model contains null bytes, trim them
	return strings.TrimRight(string(data), "\x00")
}
