package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"nmapview/internal/config"
	"nmapview/internal/logging"
	"nmapview/internal/metrics"
	"nmapview/internal/nmapdata"
	"nmapview/internal/portrange"
	"nmapview/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type WebHandler struct {
	nmapDataService *nmapdata.NmapDataService
	metrics         *metrics.Metrics
	templates       *template.Template
	config          *config.Config
}

type PageData struct {
	Title    string
	ScanFile string
	Bands    []string
}

// ErrorResponse is the failure envelope: every collection present and empty,
// plus the error description.
type ErrorResponse struct {
	Error string `json:"error"`
	models.NmapReport
}

type PortRangeResponse struct {
	Port  string `json:"port"`
	Range string `json:"range"`
}

func NewWebHandler(nmapDataService *nmapdata.NmapDataService, m *metrics.Metrics, cfg *config.Config) (*WebHandler, error) {
	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &WebHandler{
		nmapDataService: nmapDataService,
		metrics:         m,
		templates:       tmpl,
		config:          cfg,
	}, nil
}

func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:    "Nmap Scan Viewer",
		ScanFile: h.config.ScanFile,
		Bands:    portrange.Bands,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// APINmapData serves the report computed from the configured scan file.
func (h *WebHandler) APINmapData(w http.ResponseWriter, r *http.Request) {
	report, err := h.nmapDataService.ReportFromFile()
	if err != nil {
		logging.Errorf("Error in APINmapData: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// APIUploadNmapData serves the report computed from the request body.
func (h *WebHandler) APIUploadNmapData(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	report, err := h.nmapDataService.ReportFromReader(r.Body, h.config.MaxUploadBytes)
	if err != nil {
		logging.Errorf("Error in APIUploadNmapData: %v", err)
		status := http.StatusBadRequest
		if errors.Is(err, nmapdata.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *WebHandler) APIPortRange(w http.ResponseWriter, r *http.Request) {
	port := r.URL.Query().Get("port")
	if port == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "port query parameter is required"})
		return
	}
	writeJSON(w, http.StatusOK, PortRangeResponse{Port: port, Range: portrange.Classify(port)})
}

func (h *WebHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *WebHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{
		Error:      err.Error(),
		NmapReport: *models.NewEmptyReport(),
	})
}
