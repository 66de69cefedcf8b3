package eventlog

import (
	"context"
	"time"

	"github.com/strrl/filmfind/pkg/search"
)

// Params are the parameters of one search. Only the fields that belong to
// the event's search type are set.
type Params struct {
	Keyword    string `bson:"keyword,omitempty"`
	CategoryID int    `bson:"category_id,omitempty"`
	YearStart  int    `bson:"year_start,omitempty"`
	YearEnd    int    `bson:"year_end,omitempty"`
}

// KeywordParams returns the parameters recorded for a keyword search.
func KeywordParams(q search.KeywordQuery) Params {
	return Params{Keyword: q.Keyword}
}

// GenreYearParams returns the parameters recorded for a genre/year search.
func GenreYearParams(q search.GenreYearQuery) Params {
	return Params{CategoryID: q.CategoryID, YearStart: q.YearStart, YearEnd: q.YearEnd}
}

// Event is one logged search. Events are never updated once written.
type Event struct {
	Timestamp    time.Time   `bson:"timestamp"`
	SearchType   search.Type `bson:"search_type"`
	Params       Params      `bson:"params"`
	ResultsCount int         `bson:"results_count"`
	SessionID    string      `bson:"session_id,omitempty"`
}

// PopularSearch counts the events sharing one parameter set. Type tells
// whether Keyword or CategoryID is the grouping value.
type PopularSearch struct {
	Type         search.Type
	Keyword      string
	CategoryID   int
	Count        int
	LastSearched time.Time
}

// RecentSearch is the latest event for one distinct keyword or category.
type RecentSearch struct {
	Type         search.Type
	Params       Params
	LastSearched time.Time
	ResultsCount int
}

// Store persists search events and aggregates them.
type Store interface {
	// Insert appends one event.
	Insert(ctx context.Context, e Event) error
	// TopPopular groups events by (keyword, category_id) and returns the
	// limit most frequent groups, most recently searched first on ties.
	TopPopular(ctx context.Context, limit int) ([]PopularSearch, error)
	// LastUnique keeps the latest event per keyword (keyword searches) or
	// category id (genre searches) and returns the limit most recent ones.
	LastUnique(ctx context.Context, limit int) ([]RecentSearch, error)
}

func popularType(keyword *string, categoryID *int) search.Type {
	switch {
	case keyword != nil && *keyword != "":
		return search.TypeKeyword
	case categoryID != nil && *categoryID != 0:
		return search.TypeGenreYear
	default:
		return ""
	}
}
