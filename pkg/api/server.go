// Package api VenueDB REST API
//
// @title           VenueDB REST API
// @version         1.0.0
// @description     REST API for VenueDB: venues, seating plans and seat reservations.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/swaggo/swag"
)

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>VenueDB API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/doc.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// NewRouter wires every route of the server. gatherer serves /metrics.
func NewRouter(server *Server, gatherer prometheus.Gatherer) http.Handler {
	metrics := server.metrics
	route := func(method, pattern string, handler http.HandlerFunc) http.HandlerFunc {
		return metrics.InstrumentHandler(method, "/api/v1"+pattern, server.serialized(handler))
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// unprotected for scraping
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		r.Get("/health", route("GET", "/health", server.handleHealth))
		r.Get("/stats", route("GET", "/stats", server.handleStats))

		r.Get("/venues", route("GET", "/venues", server.handleListVenues))
		r.Post("/venues", route("POST", "/venues", server.handleCreateVenue))
		r.Get("/venues/{id}", route("GET", "/venues/{id}", server.handleGetVenue))
		r.Patch("/venues/{id}", route("PATCH", "/venues/{id}", server.handleUpdateVenue))
		r.Delete("/venues/{id}", route("DELETE", "/venues/{id}", server.handleDeleteVenue))

		r.Put("/venues/{id}/plan", route("PUT", "/venues/{id}/plan", server.handleInitializePlan))
		r.Get("/venues/{id}/plan", route("GET", "/venues/{id}/plan", server.handleRenderPlan))
		r.Post("/venues/{id}/plan/standard", route("POST", "/venues/{id}/plan/standard", server.handleStandardSeats))
		r.Get("/venues/{id}/plan/rows/{row}", route("GET", "/venues/{id}/plan/rows/{row}", server.handleRowSeats))
		r.Get("/venues/{id}/plan/cells/{row}/{col}", route("GET", "/venues/{id}/plan/cells/{row}/{col}", server.handleSeatAt))

		r.Post("/venues/{id}/seats", route("POST", "/venues/{id}/seats", server.handleAddSeat))
		r.Delete("/venues/{id}/seats/{seatID}", route("DELETE", "/venues/{id}/seats/{seatID}", server.handleRemoveSeat))
		r.Put("/venues/{id}/seats/{seatID}/status", route("PUT", "/venues/{id}/seats/{seatID}/status", server.handleUpdateSeatStatus))
		r.Get("/venues/{id}/adjacent", route("GET", "/venues/{id}/adjacent", server.handleFindAdjacent))
		r.Post("/venues/{id}/reservations", route("POST", "/venues/{id}/reservations", server.handleReserveBlock))

		r.Post("/snapshots", route("POST", "/snapshots", server.handleCreateSnapshot))
		r.Get("/snapshots", route("GET", "/snapshots", server.handleListSnapshots))
		r.Post("/snapshots/{snapshotID}/restore", route("POST", "/snapshots/{snapshotID}/restore", server.handleRestoreSnapshot))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/swagger/", "/swagger/index.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(swaggerUI))
		case "/swagger/doc.json":
			doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
			if err != nil {
				http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(doc))
		default:
			http.NotFound(w, r)
		}
	})

	return r
}

// StartServer serves the API until the listener fails
func StartServer(store IVenueStore, config ServerConfig, logger *logrus.Logger) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(store, config, metrics, logger)
	metrics.UpdateStoreStats(store.Stats())

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	logger.WithField("addr", addr).Info("starting VenueDB REST API server")
	logger.Infof("metrics available at http://localhost:%d/metrics", config.Port)

	return http.ListenAndServe(addr, NewRouter(server, prometheus.DefaultGatherer))
}
