package dashboard

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/rpattn/infraboard/internal/domain"
)

// Handler serves the dashboard JSON API.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps a dashboard service in an http.Handler.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, "/dashboard"):
		h.handleSnapshot(w, r)
	case strings.HasSuffix(r.URL.Path, "/filters"):
		h.handleFilterOptions(w)
	case strings.HasSuffix(r.URL.Path, "/projects"):
		h.handleProjects(w, r)
	case strings.HasSuffix(r.URL.Path, "/load-issues"):
		h.handleLoadIssues(w)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// FilterFromQuery builds a filter from the request query string. Each filter
// column maps to a query parameter of the same name; an absent or "All"
// value contributes no constraint.
func FilterFromQuery(values url.Values) domain.Filter {
	var filter domain.Filter
	for _, column := range FilterColumns {
		if value := strings.TrimSpace(values.Get(column)); value != "" {
			filter = filter.WithPredicate(column, value)
		}
	}
	return filter
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Snapshot(FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, snapshot)
}

func (h *Handler) handleFilterOptions(w http.ResponseWriter) {
	options, err := h.service.FilterOptions()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, options)
}

func (h *Handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.Projects(FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handler) handleLoadIssues(w http.ResponseWriter) {
	issues, err := h.service.LoadIssues()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"count":  len(issues),
		"issues": issues,
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[HTTP] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrUnknownColumn) {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
