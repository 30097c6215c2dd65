package server

import (
	"log/slog"
	"net/http"

	"prompt2world-server/internal/blueprint"
	blueprinthandlers "prompt2world-server/internal/blueprint/handlers"
	"prompt2world-server/internal/experience"
	experiencehandlers "prompt2world-server/internal/experience/handlers"
	"prompt2world-server/internal/middleware"
	"prompt2world-server/internal/prefab"
	prefabhandlers "prompt2world-server/internal/prefab/handlers"
	serverhandlers "prompt2world-server/internal/server/handlers"
	"prompt2world-server/internal/session"
	sessionhandlers "prompt2world-server/internal/session/handlers"
	"prompt2world-server/internal/shared/database"
	"prompt2world-server/internal/telemetry"
	telemetryhandlers "prompt2world-server/internal/telemetry/handlers"
)

// Services bundles everything the router needs.
type Services struct {
	DB          *database.DB
	Sessions    *session.Service
	Prefabs     *prefab.Service
	Blueprints  *blueprint.Service
	Experiences *experience.Service
	Telemetry   *telemetry.Service
	RateLimiter *middleware.RateLimiter
	Logger      *slog.Logger
}

// NewRouter wires every endpoint with its middleware chain. The outermost
// layers (CORS, rate limiting) wrap the whole mux; auth and admin gates are
// applied per route.
func NewRouter(svcs *Services) http.Handler {
	mux := http.NewServeMux()

	healthHandler := serverhandlers.NewHealthHandler(svcs.DB)
	sessionHandler := sessionhandlers.NewSessionHandler(svcs.Sessions)
	prefabHandler := prefabhandlers.NewPrefabHandler(svcs.Prefabs, svcs.Logger)
	blueprintHandler := blueprinthandlers.NewBlueprintHandler(svcs.Blueprints, svcs.Logger)
	experienceHandler := experiencehandlers.NewExperienceHandler(svcs.Experiences, svcs.Logger)
	telemetryHandler := telemetryhandlers.NewTelemetryHandler(svcs.Telemetry, svcs.Logger)

	auth := middleware.Auth(svcs.Sessions)
	authed := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(svcs.Sessions, h)
	}

	mux.HandleFunc("GET /health", healthHandler.Health)

	// Guest sessions
	mux.HandleFunc("POST /api/auth/login", sessionHandler.Login)
	mux.HandleFunc("GET /api/auth/validate", sessionHandler.Validate)
	mux.HandleFunc("POST /api/auth/logout", sessionHandler.Logout)

	// Prefab catalog: reads are public, mutation is administrative
	mux.HandleFunc("GET /api/prefabs", prefabHandler.List)
	mux.HandleFunc("GET /api/prefabs/{id}", prefabHandler.Get)
	mux.Handle("POST /api/prefabs", admin(prefabHandler.Create))
	mux.Handle("PUT /api/prefabs/{id}", admin(prefabHandler.Update))
	mux.Handle("DELETE /api/prefabs/{id}", admin(prefabHandler.Delete))

	// World generation and retrieval
	mux.Handle("POST /api/prompt2world", authed(blueprintHandler.Generate))
	mux.Handle("GET /api/worlds", authed(blueprintHandler.ListMine))
	mux.HandleFunc("GET /api/worlds/{id}", blueprintHandler.Get)

	// Public experience gallery
	mux.Handle("POST /api/experiences", authed(experienceHandler.Publish))
	mux.HandleFunc("GET /api/experiences", experienceHandler.List)
	mux.HandleFunc("GET /api/experiences/{id}", experienceHandler.Get)
	mux.Handle("DELETE /api/experiences/{id}", authed(experienceHandler.Unpublish))

	// Telemetry
	mux.Handle("POST /api/telemetry", authed(telemetryHandler.Ingest))
	mux.Handle("GET /api/admin/telemetry", admin(telemetryHandler.List))

	var handler http.Handler = mux
	handler = svcs.RateLimiter.Middleware(handler)
	handler = middleware.NewCORS().Middleware(handler)
	return handler
}
