package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"ngramsubset/internal/artifact"
	"ngramsubset/internal/history"
	"ngramsubset/internal/logging"
	"ngramsubset/internal/ngrams"
	"ngramsubset/internal/sink"
)

// NoLanguagesMessage is reported when a save is requested with an empty subset.
const NoLanguagesMessage = "No languages found"

// Recorder persists delivered exports. *history.Store implements it.
type Recorder interface {
	Insert(ctx context.Context, rec *history.Record) error
}

// Request describes one save.
type Request struct {
	Subset    ngrams.Subset
	Table     ngrams.Table
	Lookup    artifact.LanguageLookup
	FormatTag string
}

// Result reports what a save produced.
type Result struct {
	RequestID string
	Empty     bool // subset had no languages, nothing else happened
	Message   string
	Artifact  artifact.Artifact
	Delivered bool
	Location  string
	RecordID  string // empty when nothing was recorded
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logging.NewComponentLogger(logger, "exporter") }
}

// WithClock sets the clock used for artifact timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = clock
		s.builder = artifact.NewBuilder(artifact.WithClock(clock))
	}
}

// WithRecorder enables history recording.
func WithRecorder(rec Recorder) Option {
	return func(s *Service) { s.recorder = rec }
}

// WithRequestIDs overrides request ID generation.
func WithRequestIDs(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.newID = next
		}
	}
}

// Service saves subset artifacts through a sink.
type Service struct {
	sink     sink.Sink
	builder  *artifact.Builder
	recorder Recorder
	logger   *slog.Logger
	clock    clockwork.Clock
	newID    func() string
}

// New constructs a Service delivering to dst.
func New(dst sink.Sink, opts ...Option) *Service {
	s := &Service{
		sink:    dst,
		builder: artifact.NewBuilder(),
		logger:  logging.NewComponentLogger(nil, "exporter"),
		clock:   clockwork.NewRealClock(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveSubset builds the artifact for req and emits it. The returned error is
// nil for the empty-subset and no-delivery-environment outcomes; inspect
// Result.Empty and Result.Delivered to tell them apart.
func (s *Service) SaveSubset(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	result := Result{RequestID: s.newID()}
	ctx = logging.WithRequestID(ctx, result.RequestID)
	logger := logging.WithContext(ctx, s.logger)

	start := s.clock.Now()
	art, err := s.builder.Build(req.Subset, req.Table, req.Lookup, req.FormatTag)
	if errors.Is(err, artifact.ErrEmptySubset) {
		logger.Info(NoLanguagesMessage, logging.String(logging.FieldEventType, "empty_subset"))
		result.Empty = true
		result.Message = NoLanguagesMessage
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("build artifact: %w", err)
	}
	result.Artifact = art

	logger.Info("subset artifact built",
		logging.String(logging.FieldFilename, art.Filename),
		logging.String(logging.FieldFormatTag, art.FormatTag),
		logging.Int(logging.FieldSubsetSize, art.Subset.Len()),
		logging.Int("ngrams", art.Stats.Ngrams),
		logging.Int("bytes", art.Size()),
		logging.Duration("build_duration", s.clock.Since(start)),
	)

	if s.sink == nil {
		return result, errors.New("emit artifact: no sink configured")
	}
	err = s.sink.Emit(ctx, art.Bytes(), art.Filename, art.MIMEType)
	if errors.Is(err, sink.ErrNoDeliveryEnvironment) {
		logging.WarnWithContext(logger, "artifact not delivered", "delivery_unavailable",
			logging.String(logging.FieldSink, s.sink.Name()),
			logging.String(logging.FieldFilename, art.Filename),
			logging.String(logging.FieldErrorHint, "redirect stdout or set sink.kind to file, s3 or minio"),
			logging.String(logging.FieldImpact, "artifact was built but not saved"),
			logging.Error(err),
		)
		result.Message = "artifact built but no delivery environment is available"
		return result, nil
	}
	if err != nil {
		logging.ErrorWithContext(logger, "artifact delivery failed", "delivery_failed",
			logging.String(logging.FieldSink, s.sink.Name()),
			logging.String(logging.FieldFilename, art.Filename),
			logging.String(logging.FieldErrorHint, "check the sink destination and its permissions"),
			logging.Error(err),
		)
		return result, fmt.Errorf("emit artifact: %w", err)
	}

	result.Delivered = true
	result.Location = sink.Location(s.sink, art.Filename)
	logger.Info("subset artifact delivered",
		logging.String(logging.FieldSink, s.sink.Name()),
		logging.String(logging.FieldFilename, art.Filename),
		logging.String("location", result.Location),
	)

	if s.recorder != nil {
		rec := &history.Record{
			RequestID:  result.RequestID,
			Filename:   art.Filename,
			FormatTag:  art.FormatTag,
			Languages:  codes(art),
			SubsetSize: art.Subset.Len(),
			Ngrams:     art.Stats.Ngrams,
			Bytes:      art.Size(),
			Sink:       s.sink.Name(),
			Location:   result.Location,
			Delivered:  true,
			CreatedAt:  art.CreatedAt,
		}
		if err := s.recorder.Insert(ctx, rec); err != nil {
			logging.WarnWithContext(logger, "export history not recorded", "history_write_failed",
				logging.String(logging.FieldErrorHint, "check paths.history_db permissions"),
				logging.String(logging.FieldImpact, "artifact delivered but missing from history"),
				logging.Error(err),
			)
		} else {
			result.RecordID = rec.ID
		}
	}

	return result, nil
}

func codes(art artifact.Artifact) []string {
	out := make([]string, 0, len(art.Languages))
	for _, entry := range art.Languages {
		out = append(out, entry.Code)
	}
	return out
}
