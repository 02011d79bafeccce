// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	service "github.com/samprox/tally/internal/app"
	"github.com/samprox/tally/internal/domain/metric"
	"github.com/samprox/tally/internal/domain/recurrence"
	"github.com/samprox/tally/internal/domain/sorting"
	"github.com/samprox/tally/internal/domain/unit"
	"github.com/samprox/tally/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	UnitOptions(ctx context.Context) []unit.Option
	ResolveUnit(ctx context.Context, text string) (unit.Unit, bool)
	PreviewMetric(ctx context.Context, unitKey, responsibleRaw, actualRaw string) (metric.Metric, metric.Band, error)

	CreateRecord(ctx context.Context, in RecordInput) (RecordView, bool, error)
	UpdateRecord(ctx context.Context, id string, in RecordInput) (RecordView, error)
	GetRecord(ctx context.Context, id string) (RecordView, error)
	DeleteRecord(ctx context.Context, id string) error
	ListRecords(ctx context.Context, state sorting.State, limit int) ([]RecordView, error)
	ToggleSort(ctx context.Context, state sorting.State, requested sorting.Key) sorting.State

	ValidateRecurrence(ctx context.Context, spec recurrence.Spec) error
	RecurrenceLabel(ctx context.Context, spec recurrence.Spec, ref time.Time) string
}

// RecordInput and RecordView mirror the service-layer request and
// response shapes.
type (
	RecordInput = service.RecordInput
	RecordView  = service.View
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	unitsHandler      *UnitsHandler
	previewHandler    *PreviewHandler
	recordsHandler    *RecordsHandler
	recurrenceHandler *RecurrenceHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxListLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		unitsHandler:      NewUnitsHandler(deps),
		previewHandler:    NewPreviewHandler(deps),
		recordsHandler:    NewRecordsHandler(deps, maxListLimit),
		recurrenceHandler: NewRecurrenceHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/units", MetricsMiddleware(s.unitsHandler.HandleListUnits, "units"))
	mux.HandleFunc("/units/resolve", MetricsMiddleware(s.unitsHandler.HandleResolveUnit, "units_resolve"))
	mux.HandleFunc("/metric/preview", MetricsMiddleware(s.previewHandler.HandlePreview, "metric_preview"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleRecords, "records"))
	mux.HandleFunc("/records/", MetricsMiddleware(s.recordsHandler.HandleRecordByID, "record"))
	mux.HandleFunc("/sort/toggle", MetricsMiddleware(s.recordsHandler.HandleToggleSort, "sort_toggle"))
	mux.HandleFunc("/recurrence/validate", MetricsMiddleware(s.recurrenceHandler.HandleValidate, "recurrence_validate"))
	mux.HandleFunc("/recurrence/label", MetricsMiddleware(s.recurrenceHandler.HandleLabel, "recurrence_label"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
