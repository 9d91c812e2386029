package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/validator"
)

// SearchHandler handles search, history and recommendation endpoints.
type SearchHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.StorefrontService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// AddRecentRequest is the JSON request body for recording a search.
type AddRecentRequest struct {
	Query string `json:"query" validate:"required,notblank,max=100"`
}

// Suggestions handles GET /api/v1/search/suggestions?q=
// The X-Session-ID header is optional here; when present and well formed
// the session's recent searches are included.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var sid string
	if id := r.Header.Get(middleware.SessionHeader); middleware.ValidSessionID(id) {
		sid = id
	}

	suggestions, err := h.service.Suggest(r.Context(), r.URL.Query().Get("q"), sid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, suggestions)
}

// ListRecent handles GET /api/v1/search/recent
func (h *SearchHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	recent, err := h.service.RecentSearches(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, recent)
}

// AddRecent handles POST /api/v1/search/recent
func (h *SearchHandler) AddRecent(w http.ResponseWriter, r *http.Request) {
	var req AddRecentRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, badRequest(err), h.logger)
		return
	}

	recent, err := h.service.AddRecentSearch(r.Context(), sessionID(r), req.Query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, recent)
}

// ClearRecent handles DELETE /api/v1/search/recent
func (h *SearchHandler) ClearRecent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearRecentSearches(r.Context(), sessionID(r)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Recommendations handles GET /api/v1/recommendations
func (h *SearchHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.service.Recommendations(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, recs)
}
