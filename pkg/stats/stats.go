package stats

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/strrl/filmfind/pkg/eventlog"
)

// Limit is the number of rows each summary returns.
const Limit = 5

var tracer = otel.Tracer("github.com/strrl/filmfind/pkg/stats")

// Reader provides the two summaries shown from the menu.
type Reader struct {
	store eventlog.Store
}

// NewReader creates a new Reader backed by the given event store.
func NewReader(s eventlog.Store) *Reader {
	return &Reader{store: s}
}

// TopPopular returns the most frequent searches.
func (r *Reader) TopPopular(ctx context.Context) ([]eventlog.PopularSearch, error) {
	ctx, span := tracer.Start(ctx, "stats.TopPopular")
	defer span.End()

	rows, err := r.store.TopPopular(ctx, Limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("stats.rows", len(rows)))
	return rows, nil
}

// LastUnique returns the latest search for each of the most recently
// searched keywords or genres.
func (r *Reader) LastUnique(ctx context.Context) ([]eventlog.RecentSearch, error) {
	ctx, span := tracer.Start(ctx, "stats.LastUnique")
	defer span.End()

	rows, err := r.store.LastUnique(ctx, Limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("stats.rows", len(rows)))
	return rows, nil
}
