package api

import (
	"net/http"
	"strings"
)

// UnitsHandler serves the performance unit catalog.
type UnitsHandler struct {
	deps Dependencies
}

// NewUnitsHandler creates a new units handler.
func NewUnitsHandler(deps Dependencies) *UnitsHandler {
	return &UnitsHandler{deps: deps}
}

// HandleListUnits handles GET /units requests, returning the label-sorted
// unit selector options.
func (h *UnitsHandler) HandleListUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.UnitOptions(r.Context()))
}

// resolveResponse is the shape of a successful free-text resolution.
type resolveResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// HandleResolveUnit handles GET /units/resolve?q=<text> requests, matching
// free text against unit keys and display labels.
func (h *UnitsHandler) HandleResolveUnit(w http.ResponseWriter, r *http.Request) {
	const op = "api.resolve_unit"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	u, ok := h.deps.ResolveUnit(r.Context(), query)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_unit", nil)
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{Key: u.Key, Label: u.Label})
}
