package api

import (
	"context"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/glyphd/internal/api/models"
	"github.com/smazurov/glyphd/internal/events"
	"github.com/smazurov/glyphd/internal/glyph"
)

func (s *Server) registerZoneRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-zones",
		Method:      http.MethodGet,
		Path:        "/api/zones",
		Summary:     "Zones",
		Description: "Current engine state with a per-zone breakdown",
		Tags:        []string{"zones"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.ZonesResponse, error) {
		return &models.ZonesResponse{Body: s.zonesData(s.options.Engine.State())}, nil
	})

	sse.Register(s.api, huma.Operation{
		OperationID: "zones-stream",
		Method:      http.MethodGet,
		Path:        "/api/zones/events",
		Summary:     "Zone Events Stream",
		Description: "Real-time stream of engine state changes",
		Tags:        []string{"zones"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"zones": events.ZonesChangedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)
		unsub := events.SubscribeToChannel[events.ZonesChangedEvent](s.eventBus, eventCh)
		defer unsub()

		if err := send.Data(events.ZonesChangedEvent{
			State:     s.options.Engine.State(),
			Timestamp: now(),
		}); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-eventCh:
				if err := send.Data(ev); err != nil {
					s.logger.Debug("SSE client gone", "error", err)
					return
				}
			}
		}
	})
}

// zonesData expands the engine state into one entry per configurable zone.
func (s *Server) zonesData(state glyph.State) models.ZonesData {
	count := s.options.Model.ZoneCount()
	zones := make([]models.ZoneInfo, 0, count)
	for zone := range count {
		channels := s.options.Translator.Translate(zone)
		info := models.ZoneInfo{
			Zone:     zone,
			Channels: channels,
			Holders:  state.Zones[glyph.ZoneID(zone)],
			Mode:     "off",
		}
		switch {
		case overlaps(state.Pulse, channels):
			info.Mode = "pulse"
		case overlaps(state.Static, channels):
			info.Mode = "static"
		}
		zones = append(zones, info)
	}

	return models.ZonesData{
		Model: string(s.options.Model),
		State: state,
		Zones: zones,
	}
}

func overlaps(lit, channels []int) bool {
	for _, ch := range channels {
		if slices.Contains(lit, ch) {
			return true
		}
	}
	return false
}
