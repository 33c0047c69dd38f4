package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/glyphd/internal/api/models"
	"github.com/smazurov/glyphd/internal/events"
	"github.com/smazurov/glyphd/internal/glyph"
	"github.com/smazurov/glyphd/internal/mapping"
)

// registerMappingRoutes registers mapping file editing. Every successful edit
// is followed by an UPDATE_MAPPING command so the engine reloads the file.
func (s *Server) registerMappingRoutes() {
	if s.options.Mapping == nil {
		return
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-mapping",
		Method:      http.MethodGet,
		Path:        "/api/mapping",
		Summary:     "Mapping",
		Description: "Zone mapping as persisted in the mapping file",
		Tags:        []string{"mapping"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.MappingResponse, error) {
		return &models.MappingResponse{Body: s.mappingData()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-mapping-zone",
		Method:      http.MethodPut,
		Path:        "/api/mapping/zones/{zone}",
		Summary:     "Set Zone",
		Description: "Create or replace the mapping of one zone",
		Tags:        []string{"mapping"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422, 500},
	}, func(_ context.Context, input *models.SetZoneRequest) (*models.MappingResponse, error) {
		if err := s.checkZone(input.Zone); err != nil {
			return nil, err
		}

		zone := mapping.Zone{
			Zone:     input.Zone,
			Pulse:    input.Body.Pulse,
			Apps:     input.Body.Apps,
			Contacts: input.Body.Contacts,
		}
		if err := s.options.Mapping.SetZone(zone); err != nil {
			return nil, mappingError(err)
		}

		s.mappingChanged()
		return &models.MappingResponse{Body: s.mappingData()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-mapping-zone",
		Method:        http.MethodDelete,
		Path:          "/api/mapping/zones/{zone}",
		Summary:       "Delete Zone",
		Description:   "Remove the mapping of one zone",
		Tags:          []string{"mapping"},
		DefaultStatus: http.StatusNoContent,
		Security:      withAuth(),
		Errors:        []int{400, 401, 404, 500},
	}, func(_ context.Context, input *models.ZonePath) (*struct{}, error) {
		if err := s.checkZone(input.Zone); err != nil {
			return nil, err
		}
		if err := s.options.Mapping.RemoveZone(input.Zone); err != nil {
			return nil, mappingError(err)
		}

		s.mappingChanged()
		return nil, nil
	})
}

func (s *Server) checkZone(zone int) error {
	if count := s.options.Model.ZoneCount(); zone < 0 || zone >= count {
		return huma.Error400BadRequest(fmt.Sprintf("zone %d out of range for model %s (0-%d)", zone, s.options.Model, count-1))
	}
	return nil
}

func (s *Server) mappingChanged() {
	s.eventBus.Publish(events.CommandEvent{
		Command:   string(glyph.CommandUpdateMapping),
		Source:    "api",
		Timestamp: now(),
	})
}

func (s *Server) mappingData() models.MappingData {
	file := s.options.Mapping.File()
	zones := make([]models.MappingZone, 0, len(file.Zones))
	for _, z := range file.Zones {
		zones = append(zones, models.MappingZone{
			Zone:     z.Zone,
			Pulse:    z.Pulse,
			Apps:     z.Apps,
			Contacts: z.Contacts,
		})
	}
	return models.MappingData{
		Path:  s.options.Mapping.Path(),
		Zones: zones,
	}
}
