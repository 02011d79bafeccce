package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/samprox/tally/internal/domain/metric"
	"github.com/samprox/tally/internal/domain/unit"
)

// PreviewHandler computes metrics for prospective entries without storing
// anything; the edit form uses it for live feedback.
type PreviewHandler struct {
	deps Dependencies
}

// NewPreviewHandler creates a new metric preview handler.
func NewPreviewHandler(deps Dependencies) *PreviewHandler {
	return &PreviewHandler{deps: deps}
}

// previewRequest carries the prospective entry.
type previewRequest struct {
	UnitKey     string `json:"unitKey"`
	Responsible string `json:"responsible"`
	Actual      string `json:"actual"`
}

func (p previewRequest) validate() error {
	if strings.TrimSpace(p.UnitKey) == "" {
		return errors.New("missing unitKey")
	}
	return nil
}

// previewResponse pairs the metric with its band.
type previewResponse struct {
	Metric metric.Metric `json:"metric"`
	Band   metric.Band   `json:"band"`
}

// HandlePreview handles POST /metric/preview requests.
func (h *PreviewHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	const op = "api.metric_preview"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	m, band, err := h.deps.PreviewMetric(r.Context(), req.UnitKey, req.Responsible, req.Actual)
	if err != nil {
		if errors.Is(err, unit.ErrUnknownUnit) {
			writeError(w, http.StatusNotFound, "unknown_unit", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Metric: m, Band: band})
}
