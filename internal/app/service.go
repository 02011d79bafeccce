// Package service provides the core business service that implements
// the dependencies required by the HTTP API: the immutable unit catalog,
// record evaluation and the record store.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samprox/tally/internal/adapters/repository"
	"github.com/samprox/tally/internal/domain/dedupe"
	"github.com/samprox/tally/internal/domain/metric"
	"github.com/samprox/tally/internal/domain/model"
	"github.com/samprox/tally/internal/domain/progress"
	"github.com/samprox/tally/internal/domain/recurrence"
	"github.com/samprox/tally/internal/domain/sorting"
	"github.com/samprox/tally/internal/domain/unit"
	"github.com/samprox/tally/pkg/logger"
	"github.com/samprox/tally/pkg/metrics"
)

// Service implements the API dependencies for the responsibility
// performance engine. The unit catalog is built once at Start and is the
// only long-lived shared structure; records pass through by value.
type Service struct {
	mu sync.RWMutex

	catalog *unit.Catalog
	store   repository.Store
	deduper dedupe.Deduper

	extraUnits   []unit.Unit
	shardCount   int
	dedupeSize   int
	maxListLimit int

	started bool
	now     func() time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExtraUnits appends configured units to the built-in catalog.
func WithExtraUnits(units []unit.Unit) Option {
	return func(s *Service) {
		s.extraUnits = units
	}
}

// WithShardCount sets the record store shard count.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithDedupeSize bounds the duplicate-submission cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxListLimit caps the number of records a listing returns.
func WithMaxListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxListLimit = limit
		}
	}
}

// WithClock overrides the time source, keeping creation stamps
// reproducible in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		shardCount:   8,
		dedupeSize:   50000,
		maxListLimit: 500,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the catalog and storage. Safe to call once; subsequent
// calls are no-ops.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	catalog, err := unit.NewCatalog(append(unit.Builtin(), s.extraUnits...))
	if err != nil {
		return err
	}
	s.catalog = catalog
	s.store = repository.NewMemStore(repository.WithShardCount(s.shardCount))
	s.deduper = dedupe.NewMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	metrics.UpdateCatalogSize(catalog.Len())

	s.started = true
	s.logger.Info(ctx, "responsibility engine started",
		logger.Int("units", catalog.Len()),
		logger.Int("extraUnits", len(s.extraUnits)),
		logger.Int("shards", s.shardCount),
	)
	return nil
}

// Stop releases nothing today but keeps the lifecycle symmetric.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "responsibility engine stopped")
}

// RecordInput is the submitted shape of a record create or update. Raw
// values stay strings until normalization decides what they mean.
type RecordInput struct {
	ID             string `json:"id,omitempty"`
	Title          string `json:"title"`
	ScheduledDate  string `json:"scheduledDate"`
	Recurrence     string `json:"recurrence"`
	CustomWeekdays []int  `json:"customWeekdays,omitempty"`
	AssigneeRef    string `json:"assigneeRef,omitempty"`
	AssignerRef    string `json:"assignerRef,omitempty"`
	DelegateRef    string `json:"delegateRef,omitempty"`
	Action         string `json:"action,omitempty"`
	Progress       string `json:"progress,omitempty"`
	UnitKey        string `json:"unitKey,omitempty"`
	ResponsibleRaw string `json:"responsibleRaw,omitempty"`
	ActualRaw      string `json:"actualRaw,omitempty"`
}

// View is a record paired with its derived display values: band, fill and
// text colors and the recurrence label.
type View struct {
	model.Record
	Band            metric.Band  `json:"band"`
	FillColor       progress.RGB `json:"fillColor"`
	TextColor       progress.RGB `json:"textColor"`
	RecurrenceLabel string       `json:"recurrenceLabel"`
}

// UnitOptions returns the label-sorted unit selector entries.
func (s *Service) UnitOptions(_ context.Context) []unit.Option {
	return s.catalog.Options()
}

// ResolveUnit matches free text against unit keys and labels.
func (s *Service) ResolveUnit(_ context.Context, text string) (unit.Unit, bool) {
	key, ok := s.catalog.ResolveKey(text)
	if !ok {
		metrics.RecordUnitResolution("miss")
		return unit.Unit{}, false
	}
	metrics.RecordUnitResolution("hit")
	u, _ := s.catalog.Lookup(key)
	return u, true
}

// PreviewMetric computes the metric and band for a prospective entry
// without storing anything.
func (s *Service) PreviewMetric(_ context.Context, unitKey, responsibleRaw, actualRaw string) (metric.Metric, metric.Band, error) {
	u, ok := s.catalog.Lookup(unitKey)
	if !ok {
		return metric.Metric{}, metric.BandNeutral, unit.ErrUnknownUnit
	}
	m := s.computeMetric(u, responsibleRaw, actualRaw)
	return m, metric.Classify(m.Value), nil
}

// CreateRecord validates and stores a new record. A client-supplied ID
// makes the call idempotent: resubmitting the same ID acknowledges the
// stored record instead of writing twice. The returned bool reports a
// duplicate submission.
func (s *Service) CreateRecord(ctx context.Context, in RecordInput) (View, bool, error) {
	rec, err := s.buildRecord(in)
	if err != nil {
		return View{}, false, err
	}

	if in.ID != "" {
		if s.deduper.SeenAndRecord(ctx, in.ID) {
			existing, err := s.store.Get(ctx, in.ID)
			if err == nil {
				metrics.RecordDuplicateSubmission()
				return s.view(existing), true, nil
			}
			// Seen but never stored: the original write failed, retry.
		}
		rec.ID = in.ID
	} else {
		rec.ID = uuid.NewString()
	}

	rec.CreatedAt = s.now().UTC()
	if err := s.store.Put(ctx, rec); err != nil {
		if in.ID != "" {
			s.deduper.Unrecord(ctx, in.ID)
		}
		return View{}, false, err
	}

	metrics.RecordRecordCreated()
	metrics.UpdateRecordCount(s.store.Count(ctx))
	s.logger.Info(ctx, "record created",
		logger.String("id", rec.ID),
		logger.String("unit", rec.Performance.UnitKey),
	)
	return s.view(rec), false, nil
}

// UpdateRecord replaces the editable fields of an existing record and
// recomputes its performance sub-object.
func (s *Service) UpdateRecord(ctx context.Context, id string, in RecordInput) (View, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	rec, err := s.buildRecord(in)
	if err != nil {
		return View{}, err
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt

	if err := s.store.Put(ctx, rec); err != nil {
		return View{}, err
	}
	return s.view(rec), nil
}

// GetRecord returns one evaluated record.
func (s *Service) GetRecord(ctx context.Context, id string) (View, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(rec), nil
}

// DeleteRecord removes a record from the store.
func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	metrics.UpdateRecordCount(s.store.Count(ctx))
	return nil
}

// ListRecords returns evaluated records ordered by the sort state, capped
// at limit (0 means the configured maximum).
func (s *Service) ListRecords(ctx context.Context, state sorting.State, limit int) ([]View, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	metrics.RecordSortRequest(string(state.Key), string(state.Direction))
	ordered := sorting.Records(records, state)

	if limit <= 0 || limit > s.maxListLimit {
		limit = s.maxListLimit
	}
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	views := make([]View, 0, len(ordered))
	for _, rec := range ordered {
		views = append(views, s.view(rec))
	}
	return views, nil
}

// ToggleSort advances the sort state for a requested key.
func (s *Service) ToggleSort(_ context.Context, state sorting.State, requested sorting.Key) sorting.State {
	return sorting.Toggle(state, requested)
}

// ValidateRecurrence enforces the recurrence rules; failures block the
// submit flow.
func (s *Service) ValidateRecurrence(_ context.Context, spec recurrence.Spec) error {
	if err := spec.Validate(); err != nil {
		metrics.RecordRecurrenceRejection()
		return err
	}
	return nil
}

// RecurrenceLabel renders the recurrence relative to a reference date.
func (s *Service) RecurrenceLabel(_ context.Context, spec recurrence.Spec, ref time.Time) string {
	return spec.Label(ref)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":      s.started,
		"dedupeSize":   s.dedupeSize,
		"maxListLimit": s.maxListLimit,
	}
	if s.started {
		count := s.store.Count(ctx)
		stats["recordCount"] = count
		stats["catalogSize"] = s.catalog.Len()
		stats["trackedSubmissions"] = s.deduper.Size()
		metrics.UpdateRecordCount(count)
	}
	return stats
}

// buildRecord validates input and assembles an unstored record.
func (s *Service) buildRecord(in RecordInput) (model.Record, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Record{}, errInput("title is required")
	}

	scheduled, err := time.Parse("2006-01-02", strings.TrimSpace(in.ScheduledDate))
	if err != nil {
		return model.Record{}, errInput("scheduledDate must be a valid date (YYYY-MM-DD)")
	}

	kind, err := recurrence.ParseKind(in.Recurrence)
	if err != nil {
		return model.Record{}, errInput("unknown recurrence kind")
	}
	days := make([]recurrence.Weekday, 0, len(in.CustomWeekdays))
	for _, d := range in.CustomWeekdays {
		days = append(days, recurrence.Weekday(d))
	}
	spec := recurrence.New(kind, days)
	if err := spec.Validate(); err != nil {
		metrics.RecordRecurrenceRejection()
		return model.Record{}, err
	}

	action := model.ActionPlanned
	if strings.TrimSpace(in.Action) != "" {
		action, err = model.ParseActionState(in.Action)
		if err != nil {
			return model.Record{}, errInput("unknown action state")
		}
	}

	rec := model.Record{
		Title:           strings.TrimSpace(in.Title),
		ScheduledDate:   scheduled,
		Recurrence:      spec,
		AssigneeRef:     in.AssigneeRef,
		AssignerRef:     in.AssignerRef,
		DelegateRef:     in.DelegateRef,
		Action:          action,
		ProgressPercent: model.ParseProgress(in.Progress),
	}

	if in.UnitKey != "" {
		u, ok := s.catalog.Lookup(in.UnitKey)
		if !ok {
			return model.Record{}, unit.ErrUnknownUnit
		}
		rec.Performance = s.buildPerformance(u, in.ResponsibleRaw, in.ActualRaw)
	}
	return rec, nil
}

// buildPerformance normalizes both raw values and derives the metric. A
// failed normalization leaves the metric undefined with the placeholder
// display; it never blocks the rest of the record.
func (s *Service) buildPerformance(u unit.Unit, responsibleRaw, actualRaw string) model.Performance {
	p := model.Performance{
		UnitKey:        u.Key,
		ResponsibleRaw: responsibleRaw,
		ActualRaw:      actualRaw,
	}

	responsible, rErr := unit.Normalize(u, responsibleRaw)
	if rErr != nil {
		metrics.RecordNormalizationFailure(failureKind(rErr))
	}
	actual, aErr := unit.Normalize(u, actualRaw)
	if aErr != nil {
		metrics.RecordNormalizationFailure(failureKind(aErr))
	}
	if rErr != nil || aErr != nil {
		// Raw entries stay visible even when they don't normalize.
		p.ResponsibleDisplay = responsibleRaw
		p.ActualDisplay = actualRaw
		p.MetricDisplay = metric.PlaceholderDisplay
		metrics.RecordMetricComputation(string(metric.BandNeutral))
		return p
	}

	rv, _ := responsible.Float64()
	av, _ := actual.Float64()
	p.ResponsibleValue = &rv
	p.ActualValue = &av
	p.ResponsibleDisplay = unit.FormatValue(u, responsible)
	p.ActualDisplay = unit.FormatValue(u, actual)

	m := metric.FromNormalized(u, responsible, actual)
	p.MetricValue = m.Value
	p.MetricDisplay = m.Display
	metrics.RecordMetricComputation(string(metric.Classify(m.Value)))
	return p
}

// computeMetric mirrors buildPerformance for previews, without recording
// normalized values.
func (s *Service) computeMetric(u unit.Unit, responsibleRaw, actualRaw string) metric.Metric {
	m := metric.Compute(u, responsibleRaw, actualRaw)
	metrics.RecordMetricComputation(string(metric.Classify(m.Value)))
	return m
}

func (s *Service) view(rec model.Record) View {
	return View{
		Record:          rec,
		Band:            metric.Classify(rec.Performance.MetricValue),
		FillColor:       progress.ColorFor(rec.ProgressPercent, rec.Action),
		TextColor:       progress.TextColorFor(rec.ProgressPercent, rec.Action),
		RecurrenceLabel: rec.Recurrence.Label(rec.ScheduledDate),
	}
}

func failureKind(err error) string {
	if errors.Is(err, unit.ErrOutOfRange) {
		return "out_of_range"
	}
	return "invalid_format"
}
