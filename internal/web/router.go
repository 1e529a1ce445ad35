package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"nmapview/middleware"
)

func (h *WebHandler) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/nmap-data", h.APINmapData).Methods("GET")
	api.HandleFunc("/nmap-data", h.APIUploadNmapData).Methods("POST")
	api.HandleFunc("/port-range", h.APIPortRange).Methods("GET")

	if h.config.MetricsEnabled && h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler()).Methods("GET")
	}

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	return r
}

// Handler returns the routes wrapped in the request logging and CORS
// middleware.
func (h *WebHandler) Handler() http.Handler {
	return middleware.LoggingMiddleware(middleware.SetupCORS()(h.SetupRoutes()))
}
