package eventlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/strrl/filmfind/pkg/search"
)

var tracer = otel.Tracer("github.com/strrl/filmfind/pkg/eventlog")

// Logger records one event per search. Writes are attempted once: a failed
// write is logged and returned, never retried or buffered.
type Logger struct {
	store     Store
	sessionID string
	now       func() time.Time
	logger    *zap.Logger
}

// NewLogger returns a Logger that tags every event with a fresh session id.
func NewLogger(store Store, logger *zap.Logger) *Logger {
	return &Logger{
		store:     store,
		sessionID: uuid.NewString(),
		now:       time.Now,
		logger:    logger,
	}
}

// SessionID identifies the events written by this process.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// LogSearch appends an event describing a finished search.
func (l *Logger) LogSearch(ctx context.Context, searchType search.Type, params Params, resultsCount int) error {
	ctx, span := tracer.Start(ctx, "eventlog.LogSearch",
		trace.WithAttributes(
			attribute.String("search.type", string(searchType)),
			attribute.Int("search.results", resultsCount),
		))
	defer span.End()

	e := Event{
		Timestamp:    l.now(),
		SearchType:   searchType,
		Params:       params,
		ResultsCount: resultsCount,
		SessionID:    l.sessionID,
	}
	if err := l.store.Insert(ctx, e); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		l.logger.Warn("Failed to save search log",
			zap.String("search_type", string(searchType)),
			zap.Int("results_count", resultsCount),
			zap.Error(err),
		)
		return err
	}
	l.logger.Debug("Search log saved",
		zap.String("search_type", string(searchType)),
		zap.Int("results_count", resultsCount),
	)
	return nil
}
