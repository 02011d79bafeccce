package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/samprox/tally/internal/domain/recurrence"
)

// RecurrenceHandler validates and labels recurrence specs for the record
// edit flow.
type RecurrenceHandler struct {
	deps Dependencies
}

// NewRecurrenceHandler creates a new recurrence handler.
func NewRecurrenceHandler(deps Dependencies) *RecurrenceHandler {
	return &RecurrenceHandler{deps: deps}
}

// recurrenceRequest carries a recurrence spec plus a reference date for
// labeling.
type recurrenceRequest struct {
	Kind          string `json:"kind"`
	Weekdays      []int  `json:"weekdays,omitempty"`
	ReferenceDate string `json:"referenceDate,omitempty"`
}

func (r recurrenceRequest) spec() (recurrence.Spec, error) {
	kind, err := recurrence.ParseKind(r.Kind)
	if err != nil {
		return recurrence.Spec{}, err
	}
	days := make([]recurrence.Weekday, 0, len(r.Weekdays))
	for _, d := range r.Weekdays {
		days = append(days, recurrence.Weekday(d))
	}
	return recurrence.New(kind, days), nil
}

// HandleValidate handles POST /recurrence/validate requests. An invalid
// custom recurrence is a blocking, user-facing failure.
func (h *RecurrenceHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate_recurrence"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	spec, err := req.spec()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.ValidateRecurrence(r.Context(), spec); err != nil {
		if errors.Is(err, recurrence.ErrMissingWeekdays) {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "valid"})
}

// labelResponse returns the rendered recurrence label.
type labelResponse struct {
	Label string `json:"label"`
}

// HandleLabel handles POST /recurrence/label requests. The reference date
// defaults to today when omitted.
func (h *RecurrenceHandler) HandleLabel(w http.ResponseWriter, r *http.Request) {
	const op = "api.label_recurrence"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	spec, err := req.spec()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	ref := time.Now().UTC()
	if req.ReferenceDate != "" {
		ref, err = time.Parse("2006-01-02", req.ReferenceDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
	}
	writeJSON(w, http.StatusOK, labelResponse{Label: h.deps.RecurrenceLabel(r.Context(), spec, ref)})
}
