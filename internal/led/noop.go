package led

import "log/slog"

// noop implements Driver for systems without a light array.
type noop struct {
	logger   *slog.Logger
	channels int
}

func newNoop(channels int, logger *slog.Logger) *noop {
	return &noop{
		logger:   logger,
		channels: channels,
	}
}

// Render logs the frame but touches no hardware.
func (n *noop) Render(frame Frame) error {
	n.logger.Debug("Light driver not available (no-op)", "channels_lit", len(frame))
	return nil
}

// TurnOff is a no-op.
func (n *noop) TurnOff() error {
	n.logger.Debug("Light driver not available (no-op), turn off")
	return nil
}

// OpenSession is a no-op.
func (n *noop) OpenSession() error { return nil }

// CloseSession is a no-op.
func (n *noop) CloseSession() error { return nil }

// Channels returns the channel count the driver was built for.
func (n *noop) Channels() int { return n.channels }
