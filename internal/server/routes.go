package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/metrics"
	"github.com/yasinhessnawi1/jcadmin/internal/middleware"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Accept, Content-Type, X-Request-ID"
	corsMaxAge       = "300"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check, version and route listing endpoints
// - Call log window and per-caller endpoints
// - Safe and blocked list fetches
// - Rename and classification mutations, rate limited per client when enabled
// - The Prometheus scrape endpoint when metrics are enabled
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(corsMiddleware(s.Config.CORS.AllowedOrigins, s.Config.CORS.AllowCredentials))

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery())
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.SecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	h := s.Handlers.CallerHandler

	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, h.HealthCheck)
		r.Get(constants.VersionPath, h.Version)
		r.Get(constants.RoutesPath, s.GetAPIRoutes)

		if s.Config.Metrics.Enabled {
			r.Handle(s.Config.Metrics.Path, metrics.Handler())
		}
	})

	// Every /api answer reflects file state, so none of it may be cached.
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.NoCache)

		r.Get(constants.PollPath, h.Poll)

		r.Get(constants.CallsDefaultPath, h.GetRecentCalls)
		r.Get(constants.CallsPath, h.GetRecentCalls)

		r.Get(constants.CallerPath, h.GetCaller)

		r.Get(constants.FetchPath, h.FetchList)
		r.Get(constants.FetchDetailPath, h.FetchListDetail)

		// Mutations rewrite files on the device
		r.Group(func(r chi.Router) {
			if s.mutationLimits != nil {
				r.Use(middleware.RateLimit(s.mutationLimits))
			}

			r.Put(constants.CallerPath, h.UpdateCaller)
			r.Delete(constants.CallerPath, h.DeleteCaller)

			r.Post(constants.RenamePath, h.Rename)
			r.Post(constants.RenameClearPath, h.Rename)

			r.Post(constants.ClassifyPath, h.Classify)
			r.Post(constants.ClassifyBodyPath, h.ClassifyBody)
		})
	})

	s.router = r
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// originAllowed reports whether origin matches an entry of allowedOrigins.
func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || strings.EqualFold(strings.TrimSpace(allowedOrigin), origin) {
			return true
		}
	}
	return false
}

// corsMiddleware creates a CORS middleware with the specified allowed origins.
// Requests from other origins pass through without CORS headers, which leaves
// the browser to refuse them. Preflight requests from allowed origins are
// answered with 204 and never reach the router.
func corsMiddleware(allowedOrigins []string, allowCredentials bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !originAllowed(allowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if allowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// route describes one endpoint in the route listing.
type route struct {
	Description string            `json:"description"`
	Params      map[string]string `json:"params,omitempty"`
	Body        map[string]string `json:"body,omitempty"`
}

// GetAPIRoutes returns documentation about all API routes, grouped by area.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	numberParam := map[string]string{
		constants.ParamPhoneNumber: "10-digit phone number",
	}
	listParam := map[string]string{
		constants.ParamFileType: "safe or blocked",
	}

	routes := map[string]map[string]route{
		"system": {
			"GET " + constants.HealthPath:  {Description: "Report whether every jcblock file is reachable"},
			"GET " + constants.VersionPath: {Description: "Report the build name, version and environment"},
			"GET " + constants.RoutesPath:  {Description: "List the API routes"},
			"GET " + constants.PollPath:    {Description: "Report the last-modified time of each file; callerid is the later of the call log and the name database"},
		},
		"calls": {
			"GET " + constants.CallsDefaultPath: {Description: "Return the newest calls using the configured window size"},
			"GET " + constants.CallsPath: {
				Description: "Return calls [start, start+limit) counting from the newest",
				Params: map[string]string{
					constants.ParamStart: "non-negative integer",
					constants.ParamLimit: "non-negative integer",
				},
			},
		},
		"callers": {
			"GET " + constants.CallerPath:    {Description: "Return a caller's name, call count, current status and history", Params: numberParam},
			"PUT " + constants.CallerPath:    {Description: "Rename a caller", Params: numberParam, Body: map[string]string{"name": "string, empty clears the name"}},
			"DELETE " + constants.CallerPath: {Description: "Forget a number that has never called", Params: numberParam},
			"POST " + constants.RenamePath: {
				Description: "Set a caller's display name",
				Params: map[string]string{
					constants.ParamPhoneNumber: "10-digit phone number",
					constants.ParamName:        "display name, trimmed",
				},
			},
			"POST " + constants.RenameClearPath: {Description: "Clear a caller's display name", Params: numberParam},
		},
		"lists": {
			"GET " + constants.FetchPath:       {Description: "Map each list pattern to its comment", Params: listParam},
			"GET " + constants.FetchDetailPath: {Description: "Return list records in file order", Params: listParam},
		},
		"classification": {
			"POST " + constants.ClassifyPath: {
				Description: "Move a number to safe, blocked or neutral",
				Params: map[string]string{
					constants.ParamStatus:      "safe, blocked or neutral",
					constants.ParamPhoneNumber: "10-digit phone number",
				},
			},
			"POST " + constants.ClassifyBodyPath: {
				Description: "Move a number using a JSON body",
				Body: map[string]string{
					"number": "10-digit phone number",
					"status": "safe, blocked or neutral",
				},
			},
		},
	}

	if s.Config.Metrics.Enabled {
		routes["system"]["GET "+s.Config.Metrics.Path] = route{Description: "Prometheus metrics"}
	}

	utils.JSON(w, constants.StatusOK, routes)
}
