package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/glyphd/internal/api/models"
	"github.com/smazurov/glyphd/internal/events"
)

// registerRelayRoutes registers the endpoints the host uses to relay
// notifications and commands. Delivery to the engine is asynchronous.
func (s *Server) registerRelayRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "send-command",
		Method:        http.MethodPost,
		Path:          "/api/commands",
		Summary:       "Send Command",
		Description:   "Relay a host command such as a screen lock change",
		Tags:          []string{"relay"},
		DefaultStatus: http.StatusAccepted,
		Security:      withAuth(),
		Errors:        []int{400, 401, 422},
	}, func(_ context.Context, input *models.CommandRequest) (*struct{}, error) {
		s.eventBus.Publish(events.CommandEvent{
			Command:   input.Body.Command,
			Intensity: input.Body.Intensity,
			Source:    "api",
			Timestamp: now(),
		})
		return nil, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "notification-posted",
		Method:        http.MethodPost,
		Path:          "/api/notifications/posted",
		Summary:       "Notification Posted",
		Description:   "Relay a posted notification",
		Tags:          []string{"relay"},
		DefaultStatus: http.StatusAccepted,
		Security:      withAuth(),
		Errors:        []int{400, 401, 422},
	}, func(_ context.Context, input *models.NotificationRequest) (*struct{}, error) {
		n := input.Body
		s.eventBus.Publish(events.NotificationPostedEvent{
			Package:   n.Package,
			Key:       n.Key,
			Title:     n.Title,
			People:    n.People,
			Timestamp: now(),
		})
		return nil, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "notification-removed",
		Method:        http.MethodPost,
		Path:          "/api/notifications/removed",
		Summary:       "Notification Removed",
		Description:   "Relay a removed notification",
		Tags:          []string{"relay"},
		DefaultStatus: http.StatusAccepted,
		Security:      withAuth(),
		Errors:        []int{400, 401, 422},
	}, func(_ context.Context, input *models.NotificationRequest) (*struct{}, error) {
		n := input.Body
		s.eventBus.Publish(events.NotificationRemovedEvent{
			Package:   n.Package,
			Key:       n.Key,
			Title:     n.Title,
			People:    n.People,
			Timestamp: now(),
		})
		return nil, nil
	})
}

func now() string {
	return time.Now().Format(time.RFC3339)
}
