package api

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/smazurov/glyphd/internal/api/models"
	"github.com/smazurov/glyphd/internal/events"
	"github.com/smazurov/glyphd/internal/glyph"
	"github.com/smazurov/glyphd/internal/led"
	"github.com/smazurov/glyphd/internal/logging"
	"github.com/smazurov/glyphd/internal/mapping"
	"github.com/smazurov/glyphd/internal/version"
)

const authRealm = `Basic realm="glyphd API"`

// StateReader exposes the engine state.
type StateReader interface {
	State() glyph.State
}

// MappingEditor reads and edits the persisted zone mapping.
type MappingEditor interface {
	Path() string
	File() mapping.File
	SetZone(mapping.Zone) error
	RemoveZone(zone int) error
}

// Options configures the API server.
type Options struct {
	AuthUsername string
	AuthPassword string

	EventBus *events.Bus
	Engine   StateReader
	Mapping  MappingEditor // optional; mapping routes are skipped when nil

	Translator glyph.ZoneTranslator
	Model      led.Model

	PrometheusHandler http.Handler // optional
}

// Server is the huma API server relaying host events to the engine.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	options    *Options
	eventBus   *events.Bus
	logger     *slog.Logger
}

// basicAuthMiddleware creates middleware for HTTP basic authentication
func (s *Server) basicAuthMiddleware(username, password string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		// Skip auth for operations without security requirements
		op := ctx.Operation()
		if op != nil && len(op.Security) == 0 {
			next(ctx)
			return
		}

		credentials, err := requestCredentials(ctx)
		if err != nil {
			ctx.SetHeader("WWW-Authenticate", authRealm)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Invalid credentials format", err)
			return
		}
		if credentials == "" {
			ctx.SetHeader("WWW-Authenticate", authRealm)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, pass, ok := strings.Cut(credentials, ":")
		if !ok {
			ctx.SetHeader("WWW-Authenticate", authRealm)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Invalid credentials format")
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
		if !userOK || !passOK {
			ctx.SetHeader("WWW-Authenticate", authRealm)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		next(ctx)
	}
}

// requestCredentials returns the decoded "user:pass" from the Authorization
// header, or from the auth query parameter for SSE clients that cannot set
// headers.
func requestCredentials(ctx huma.Context) (string, error) {
	encoded := ""
	if authHeader := ctx.Header("Authorization"); authHeader != "" {
		const prefix = "Basic "
		if !strings.HasPrefix(authHeader, prefix) {
			return "", errInvalidAuthType
		}
		encoded = authHeader[len(prefix):]
	} else {
		encoded = ctx.Query("auth")
	}
	if encoded == "" {
		return "", nil
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// NewServer creates the API server using Go 1.22+ native routing
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	corsConfig := DefaultCORSConfig()
	AddCORSHandler(mux, corsConfig)

	config := huma.DefaultConfig("glyphd API", version.Get().Version)
	config.Info.Description = "Host relay and state API for the notification light array"
	// Relative server paths, working with any host
	config.Servers = []*huma.Server{}
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"basicAuth": {
			Type:   "http",
			Scheme: "basic",
		},
	}

	api := humago.New(mux, config)

	server := &Server{
		api:      api,
		mux:      mux,
		options:  opts,
		eventBus: opts.EventBus,
		logger:   logging.GetLogger("api"),
	}

	// CORS first, then logging, then auth
	api.UseMiddleware(NewCORSMiddleware(corsConfig))
	api.UseMiddleware(HTTPLoggingMiddleware)
	if opts.AuthUsername != "" && opts.AuthPassword != "" {
		api.UseMiddleware(server.basicAuthMiddleware(opts.AuthUsername, opts.AuthPassword))
	}

	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()
	return server
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on addr and serves until Stop.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting glyphd API server", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down without waiting for open connections.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")
	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
		Security:    []map[string][]string{}, // no auth
	}, func(_ context.Context, _ *struct{}) (*models.HealthResponse, error) {
		return &models.HealthResponse{
			Body: models.HealthData{
				Status:  "ok",
				Message: "API is healthy",
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
		Security:    []map[string][]string{}, // no auth
	}, func(_ context.Context, _ *struct{}) (*models.VersionResponse, error) {
		info := version.Get()
		return &models.VersionResponse{
			Body: models.VersionData{
				Version:   info.Version,
				GitCommit: info.GitCommit,
				BuildDate: info.BuildDate,
				GoVersion: info.GoVersion,
				Platform:  info.Platform,
			},
		}, nil
	})

	s.registerRelayRoutes()
	s.registerZoneRoutes()
	s.registerMappingRoutes()
}

// withAuth returns security requirement for basic auth
func withAuth() []map[string][]string {
	return []map[string][]string{
		{"basicAuth": {}},
	}
}
