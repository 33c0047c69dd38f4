package glyph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glyphd",
		Subsystem: "engine",
		Name:      "notifications_total",
		Help:      "Notification events handled, by event and whether any mapping matched",
	}, []string{"event", "result"})

	rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glyphd",
		Subsystem: "engine",
		Name:      "renders_total",
		Help:      "Render coordinator decisions",
	}, []string{"decision"})

	driverErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glyphd",
		Subsystem: "driver",
		Name:      "errors_total",
		Help:      "Light driver calls that failed",
	}, []string{"op"})

	animationRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glyphd",
		Subsystem: "animation",
		Name:      "runs_total",
		Help:      "Finished pulse animations by outcome",
	}, []string{"outcome"})

	activeChannels = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "glyphd",
		Subsystem: "engine",
		Name:      "active_channels",
		Help:      "Hardware channels currently lit, by mode",
	}, []string{"mode"})

	activeZones = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "glyphd",
		Subsystem: "engine",
		Name:      "active_zones",
		Help:      "Logical zones held on by at least one notification",
	})
)
