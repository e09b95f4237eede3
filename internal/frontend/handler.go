// Package frontend provides the HTTP API consumed by planet viewer frontends.
package frontend

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/giterra/giterra/internal/catalog"
	commitapp "github.com/giterra/giterra/internal/commits/application"
	"github.com/giterra/giterra/internal/log"
	"github.com/giterra/giterra/internal/planet/application"
	"github.com/giterra/giterra/internal/planet/domain"
	"github.com/giterra/giterra/internal/planet/geometry"
	"github.com/giterra/giterra/internal/planet/placement"
	"github.com/giterra/giterra/internal/render"
)

// Handler provides HTTP endpoints for planet viewers.
type Handler struct {
	source  commitapp.CommitSource
	catalog *catalog.Catalog
	radius  float64
	seed    int64
}

// HandlerOption configures Handler.
type HandlerOption func(*Handler)

// WithRadius sets the planet radius used for generation.
func WithRadius(radius float64) HandlerOption {
	return func(h *Handler) {
		h.radius = radius
	}
}

// WithSeed sets the seed used when a request does not pass ?seed=.
// Zero means a fresh seed per request.
func WithSeed(seed int64) HandlerOption {
	return func(h *Handler) {
		h.seed = seed
	}
}

// NewHandler creates a Handler that generates segments from source.
// Panics if source or cat is nil.
func NewHandler(source commitapp.CommitSource, cat *catalog.Catalog, opts ...HandlerOption) *Handler {
	if source == nil {
		panic("source is required for Handler")
	}
	if cat == nil {
		panic("catalog is required for Handler")
	}
	h := &Handler{
		source:  source,
		catalog: cat,
		radius:  placement.DefaultRadius,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterAPIRoutes registers the API routes on the provided mux.
func (h *Handler) RegisterAPIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/themes", h.ListThemes)
	mux.HandleFunc("GET /api/segments/{segment}", h.GetSegment)
}

// Health returns a simple health check response.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ListThemes returns display metadata for every theme and asset type.
// GET /api/themes
func (h *Handler) ListThemes(w http.ResponseWriter, _ *http.Request) {
	resp := ThemeListResponse{
		Themes: make([]ThemeInfo, 0, len(h.catalog.Themes)),
		Assets: h.catalog.Assets,
	}
	for _, t := range domain.Themes {
		entry, ok := h.catalog.Theme(t)
		if !ok {
			continue
		}
		resp.Themes = append(resp.Themes, ThemeInfo{
			Key:         t,
			Name:        entry.Name,
			Description: entry.Description,
			Color:       entry.Color,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// GetSegment generates the configuration of one segment from the current
// commits. An optional ?seed= makes the placement reproducible.
// GET /api/segments/{segment}
func (h *Handler) GetSegment(w http.ResponseWriter, r *http.Request) {
	segment, err := strconv.Atoi(r.PathValue("segment"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_segment", "Segment must be an integer", err.Error())
		return
	}

	seed := h.seed
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid_seed", "Seed must be an integer", err.Error())
			return
		}
	}

	// Reject a bad segment before touching the commit source.
	if err := geometry.ValidateSegment(segment); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_segment", "Segment out of range", err.Error())
		return
	}

	commits, err := h.source.Commits(r.Context())
	if err != nil {
		log.ErrorErr(log.CatServer, "Failed to read commits", err)
		h.writeError(w, http.StatusBadGateway, "source_error", "Failed to read commits", err.Error())
		return
	}

	gen := application.NewGenerator(application.WithRadius(h.radius), application.WithSeed(seed))
	cfg, err := gen.Generate(r.Context(), commits, segment)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "generation_error", "Failed to generate segment", err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, render.NewSegment(cfg, h.catalog))
}

// writeJSON writes data as JSON with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error(log.CatServer, "Failed to encode JSON response", "error", err)
	}
}

// writeError writes an error response in the standard APIError format.
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message, details string) {
	h.writeJSON(w, status, APIError{
		Error:   message,
		Code:    code,
		Details: details,
	})
}
