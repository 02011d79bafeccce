package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/samprox/tally/internal/adapters/repository"
	service "github.com/samprox/tally/internal/app"
	"github.com/samprox/tally/internal/domain/recurrence"
	"github.com/samprox/tally/internal/domain/sorting"
	"github.com/samprox/tally/internal/domain/unit"
)

// RecordsHandler handles responsibility record requests.
type RecordsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies, maxLimit int) *RecordsHandler {
	return &RecordsHandler{deps: deps, maxLimit: maxLimit}
}

// createResponse wraps a stored record with its duplicate flag.
type createResponse struct {
	Record    RecordView `json:"record"`
	Duplicate bool       `json:"duplicate"`
}

// HandleRecords handles GET /records (sorted listing) and POST /records
// (create).
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *RecordsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_records"

	state, err := sortStateFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if limit > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
	}

	views, err := h.deps.ListRecords(r.Context(), state, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *RecordsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_record"

	var in RecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	view, duplicate, err := h.deps.CreateRecord(r.Context(), in)
	if err != nil {
		writeSubmitError(w, op, err)
		return
	}
	status := http.StatusCreated
	if duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, createResponse{Record: view, Duplicate: duplicate})
}

// HandleRecordByID handles GET/PUT/DELETE /records/{id}.
func (h *RecordsHandler) HandleRecordByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.record_by_id"

	id := strings.TrimPrefix(r.URL.Path, "/records/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		view, err := h.deps.GetRecord(r.Context(), id)
		if err != nil {
			writeLookupError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	case http.MethodPut:
		var in RecordInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		view, err := h.deps.UpdateRecord(r.Context(), id, in)
		if err != nil {
			writeSubmitError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	case http.MethodDelete:
		if err := h.deps.DeleteRecord(r.Context(), id); err != nil {
			writeLookupError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		http.NotFound(w, r)
	}
}

// toggleRequest asks for the next sort state.
type toggleRequest struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
	Requested string `json:"requested"`
}

// HandleToggleSort handles POST /sort/toggle requests.
func (h *RecordsHandler) HandleToggleSort(w http.ResponseWriter, r *http.Request) {
	const op = "api.toggle_sort"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	requested, err := parseSortKey(req.Requested)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	state := sorting.DefaultState()
	if req.Key != "" {
		key, err := parseSortKey(req.Key)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		direction, err := parseSortDirection(req.Direction)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		state = sorting.State{Key: key, Direction: direction}
	}
	writeJSON(w, http.StatusOK, h.deps.ToggleSort(r.Context(), state, requested))
}

// sortStateFromQuery reads ?sort= and ?direction=, defaulting to the
// metric column descending.
func sortStateFromQuery(r *http.Request) (sorting.State, error) {
	state := sorting.DefaultState()
	if sortStr := r.URL.Query().Get("sort"); sortStr != "" {
		key, err := parseSortKey(sortStr)
		if err != nil {
			return sorting.State{}, err
		}
		state.Key = key
	}
	if dirStr := r.URL.Query().Get("direction"); dirStr != "" {
		direction, err := parseSortDirection(dirStr)
		if err != nil {
			return sorting.State{}, err
		}
		state.Direction = direction
	}
	return state, nil
}

func parseSortKey(s string) (sorting.Key, error) {
	switch sorting.Key(strings.ToLower(strings.TrimSpace(s))) {
	case sorting.KeyMetric:
		return sorting.KeyMetric, nil
	case sorting.KeyActual:
		return sorting.KeyActual, nil
	default:
		return "", errors.New("sort key must be metric or actual")
	}
}

func parseSortDirection(s string) (sorting.Direction, error) {
	switch sorting.Direction(strings.ToLower(strings.TrimSpace(s))) {
	case sorting.Ascending:
		return sorting.Ascending, nil
	case sorting.Descending:
		return sorting.Descending, nil
	default:
		return "", errors.New("direction must be asc or desc")
	}
}

// writeSubmitError translates create/update failures: invalid input and
// recurrence problems are user-facing 422s, unknown units 404s.
func writeSubmitError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, recurrence.ErrMissingWeekdays):
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
	case errors.Is(err, unit.ErrUnknownUnit):
		writeError(w, http.StatusNotFound, "unknown_unit", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

func writeLookupError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
