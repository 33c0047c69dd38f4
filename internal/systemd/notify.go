// Package systemd reports service state to the systemd service manager.
package systemd

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
)

// Notifier sends sd_notify messages. Outside systemd every call is a no-op.
type Notifier struct {
	logger *slog.Logger
	notify func(state string) (bool, error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewNotifier returns a notifier writing to $NOTIFY_SOCKET.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{
		logger: logger,
		notify: func(state string) (bool, error) {
			return daemon.SdNotify(false, state)
		},
	}
}

func (n *Notifier) send(state string) {
	sent, err := n.notify(state)
	if err != nil {
		n.logger.Warn("sd_notify failed", "state", state, "error", err)
		return
	}
	if sent {
		n.logger.Debug("sd_notify sent", "state", state)
	}
}

// Ready reports startup complete and starts the watchdog when enabled.
func (n *Notifier) Ready() {
	n.send(daemon.SdNotifyReady)

	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return
	}
	n.startWatchdog(interval / 2)
}

// Status sets the free-form status line shown by systemctl status.
func (n *Notifier) Status(format string, args ...any) {
	n.send("STATUS=" + fmt.Sprintf(format, args...))
}

// Stopping reports shutdown and stops the watchdog.
func (n *Notifier) Stopping() {
	n.mu.Lock()
	cancel, done := n.cancel, n.done
	n.cancel, n.done = nil, nil
	n.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	n.send(daemon.SdNotifyStopping)
}

func (n *Notifier) startWatchdog(every time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil || every <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	n.cancel, n.done = cancel, done

	n.logger.Info("systemd watchdog enabled", "interval", every)
	go func() {
		defer close(done)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n.send(daemon.SdNotifyWatchdog)
			}
		}
	}()
}
