package eventlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/strrl/filmfind/pkg/search"
)

func newTestStore(t *testing.T) *DuckDBStore {
	t.Helper()
	return NewDuckDBStore(filepath.Join(t.TempDir(), "events.duckdb"))
}

func keywordEvent(keyword string, ts time.Time, count int) Event {
	return Event{
		Timestamp:    ts,
		SearchType:   search.TypeKeyword,
		Params:       Params{Keyword: keyword},
		ResultsCount: count,
		SessionID:    "test-session",
	}
}

func genreEvent(categoryID, start, end int, ts time.Time, count int) Event {
	return Event{
		Timestamp:    ts,
		SearchType:   search.TypeGenreYear,
		Params:       Params{CategoryID: categoryID, YearStart: start, YearEnd: end},
		ResultsCount: count,
		SessionID:    "test-session",
	}
}

func insertAll(t *testing.T, s Store, events ...Event) {
	t.Helper()
	for _, e := range events {
		if err := s.Insert(context.Background(), e); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
}

func TestDuckDBLastUniqueLatestWins(t *testing.T) {
	s := newTestStore(t)
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t1.Add(2 * time.Minute)

	insertAll(t, s,
		keywordEvent("matrix", t1, 4),
		keywordEvent("alien", t2, 2),
		keywordEvent("matrix", t3, 0),
	)

	recent, err := s.LastUnique(context.Background(), 5)
	if err != nil {
		t.Fatalf("LastUnique: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 unique searches, got %d: %+v", len(recent), recent)
	}

	if recent[0].Params.Keyword != "matrix" {
		t.Errorf("first: got %q, want matrix", recent[0].Params.Keyword)
	}
	if !recent[0].LastSearched.Equal(t3) {
		t.Errorf("matrix time: got %v, want %v", recent[0].LastSearched, t3)
	}
	if recent[0].ResultsCount != 0 {
		t.Errorf("matrix results: got %d, want 0 (from the latest event)", recent[0].ResultsCount)
	}
	if recent[0].Type != search.TypeKeyword {
		t.Errorf("matrix type: got %q", recent[0].Type)
	}
	if recent[1].Params.Keyword != "alien" || !recent[1].LastSearched.Equal(t2) {
		t.Errorf("second: got %+v, want alien at %v", recent[1], t2)
	}
}

func TestDuckDBLastUniqueGenreKey(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	insertAll(t, s,
		genreEvent(14, 2000, 2005, base, 9),
		keywordEvent("14", base.Add(time.Minute), 1),
		genreEvent(14, 2010, 2010, base.Add(2*time.Minute), 3),
	)

	recent, err := s.LastUnique(context.Background(), 5)
	if err != nil {
		t.Fatalf("LastUnique: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected genre 14 and keyword \"14\" as separate keys, got %d", len(recent))
	}

	g := recent[0]
	if g.Type != search.TypeGenreYear {
		t.Fatalf("first type: got %q, want genre_year", g.Type)
	}
	want := Params{CategoryID: 14, YearStart: 2010, YearEnd: 2010}
	if g.Params != want {
		t.Errorf("genre params: got %+v, want %+v", g.Params, want)
	}
	if g.ResultsCount != 3 {
		t.Errorf("genre results: got %d, want 3", g.ResultsCount)
	}
}

func TestDuckDBLastUniqueLimit(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	keywords := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, kw := range keywords {
		insertAll(t, s, keywordEvent(kw, base.Add(time.Duration(i)*time.Minute), i))
	}

	recent, err := s.LastUnique(context.Background(), 5)
	if err != nil {
		t.Fatalf("LastUnique: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("expected 5, got %d", len(recent))
	}
	for i, want := range []string{"g", "f", "e", "d", "c"} {
		if recent[i].Params.Keyword != want {
			t.Errorf("row %d: got %q, want %q", i, recent[i].Params.Keyword, want)
		}
	}
}

func TestDuckDBTopPopular(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	var events []Event
	for i := 0; i < 3; i++ {
		events = append(events, keywordEvent("matrix", base.Add(time.Duration(i)*time.Second), 4))
	}
	for i := 0; i < 5; i++ {
		events = append(events, keywordEvent("alien", base.Add(time.Duration(10+i)*time.Second), 2))
	}
	events = append(events,
		genreEvent(14, 2000, 2005, base.Add(30*time.Second), 7),
		genreEvent(14, 2010, 2010, base.Add(31*time.Second), 1),
	)
	insertAll(t, s, events...)

	top, err := s.TopPopular(context.Background(), 5)
	if err != nil {
		t.Fatalf("TopPopular: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 groups, got %d: %+v", len(top), top)
	}

	if top[0].Type != search.TypeKeyword || top[0].Keyword != "alien" || top[0].Count != 5 {
		t.Errorf("first: got %+v, want alien x5", top[0])
	}
	if top[1].Keyword != "matrix" || top[1].Count != 3 {
		t.Errorf("second: got %+v, want matrix x3", top[1])
	}
	if top[2].Type != search.TypeGenreYear || top[2].CategoryID != 14 || top[2].Count != 2 {
		t.Errorf("third: got %+v, want genre 14 x2", top[2])
	}
}

func TestDuckDBTopPopularTieBreak(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	insertAll(t, s,
		keywordEvent("old", base, 1),
		keywordEvent("new", base.Add(time.Hour), 1),
	)

	top, err := s.TopPopular(context.Background(), 5)
	if err != nil {
		t.Fatalf("TopPopular: %v", err)
	}
	if len(top) != 2 || top[0].Keyword != "new" {
		t.Errorf("expected most recent first on equal counts, got %+v", top)
	}
}

func TestDuckDBEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	top, err := s.TopPopular(ctx, 5)
	if err != nil {
		t.Fatalf("TopPopular: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("expected no popular searches, got %d", len(top))
	}

	recent, err := s.LastUnique(ctx, 5)
	if err != nil {
		t.Fatalf("LastUnique: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected no recent searches, got %d", len(recent))
	}
}

func TestDuckDBUnavailable(t *testing.T) {
	s := NewDuckDBStore("/nonexistent/dir/events.duckdb")

	if err := s.Insert(context.Background(), keywordEvent("x", time.Now(), 0)); err == nil {
		t.Fatal("expected error for unreachable store")
	}
	if _, err := s.TopPopular(context.Background(), 5); err == nil {
		t.Fatal("expected error for unreachable store")
	}
}
