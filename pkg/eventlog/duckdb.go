package eventlog

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/go-errors/errors"

	"github.com/strrl/filmfind/pkg/search"
)

var _ Store = (*DuckDBStore)(nil)

// DuckDBStore keeps events in a local DuckDB file, for running without a
// MongoDB server. Each call opens the file, ensures the schema and closes it.
type DuckDBStore struct {
	path string
}

// NewDuckDBStore returns a store backed by the DuckDB file at path.
func NewDuckDBStore(path string) *DuckDBStore {
	return &DuckDBStore{path: path}
}

func (s *DuckDBStore) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := sql.Open("duckdb", s.path)
	if err != nil {
		return errors.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := initSchema(ctx, db); err != nil {
		return err
	}
	return fn(db)
}

func initSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE SEQUENCE IF NOT EXISTS search_events_id_seq START 1`); err != nil {
		return errors.Errorf("create sequence: %w", err)
	}
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS search_events (
			id BIGINT DEFAULT nextval('search_events_id_seq'),
			session_id VARCHAR,
			timestamp TIMESTAMP,
			search_type VARCHAR,
			keyword VARCHAR,
			category_id INTEGER,
			year_start INTEGER,
			year_end INTEGER,
			results_count INTEGER
		)
	`)
	if err != nil {
		return errors.Errorf("create search_events table: %w", err)
	}
	return nil
}

// Insert stores one event. Parameters that do not belong to the event's
// type are stored as NULL.
func (s *DuckDBStore) Insert(ctx context.Context, e Event) error {
	return s.withDB(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO search_events
			 (session_id, timestamp, search_type, keyword, category_id, year_start, year_end, results_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.SessionID,
			e.Timestamp,
			string(e.SearchType),
			nullable(e.Params.Keyword),
			nullable(e.Params.CategoryID),
			nullable(e.Params.YearStart),
			nullable(e.Params.YearEnd),
			e.ResultsCount,
		)
		if err != nil {
			return errors.Errorf("insert event: %w", err)
		}
		return nil
	})
}

// TopPopular groups events by (keyword, category_id).
func (s *DuckDBStore) TopPopular(ctx context.Context, limit int) ([]PopularSearch, error) {
	var out []PopularSearch
	err := s.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT keyword, category_id, COUNT(*) AS cnt, MAX(timestamp) AS last_ts
			 FROM search_events
			 GROUP BY keyword, category_id
			 ORDER BY cnt DESC, last_ts DESC
			 LIMIT ?`,
			limit,
		)
		if err != nil {
			return errors.Errorf("top popular: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				keyword    sql.NullString
				categoryID sql.NullInt64
				p          PopularSearch
			)
			if err := rows.Scan(&keyword, &categoryID, &p.Count, &p.LastSearched); err != nil {
				return errors.Errorf("scan popular: %w", err)
			}
			var kw *string
			if keyword.Valid {
				p.Keyword = keyword.String
				kw = &p.Keyword
			}
			var cat *int
			if categoryID.Valid {
				p.CategoryID = int(categoryID.Int64)
				cat = &p.CategoryID
			}
			p.Type = popularType(kw, cat)
			out = append(out, p)
		}
		if err := rows.Err(); err != nil {
			return errors.Errorf("rows err: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LastUnique keeps the newest event per unique key, then ranks those
// events by time. Keyword and genre keys never collide because the
// partition includes the search type.
func (s *DuckDBStore) LastUnique(ctx context.Context, limit int) ([]RecentSearch, error) {
	var out []RecentSearch
	err := s.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`WITH keyed AS (
				SELECT *,
				       CASE WHEN search_type = 'keyword' THEN keyword
				            ELSE CAST(category_id AS VARCHAR) END AS unique_key
				FROM search_events
			), ranked AS (
				SELECT *,
				       ROW_NUMBER() OVER (
				           PARTITION BY search_type = 'keyword', unique_key
				           ORDER BY timestamp DESC, id DESC
				       ) AS rn
				FROM keyed
			)
			SELECT timestamp, search_type, keyword, category_id, year_start, year_end, results_count
			FROM ranked
			WHERE rn = 1
			ORDER BY timestamp DESC, id DESC
			LIMIT ?`,
			limit,
		)
		if err != nil {
			return errors.Errorf("last unique: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				r          RecentSearch
				ts         time.Time
				searchType string
				keyword    sql.NullString
				categoryID sql.NullInt64
				yearStart  sql.NullInt64
				yearEnd    sql.NullInt64
			)
			if err := rows.Scan(&ts, &searchType, &keyword, &categoryID, &yearStart, &yearEnd, &r.ResultsCount); err != nil {
				return errors.Errorf("scan recent: %w", err)
			}
			r.LastSearched = ts
			r.Type = search.Type(searchType)
			r.Params = Params{
				Keyword:    keyword.String,
				CategoryID: int(categoryID.Int64),
				YearStart:  int(yearStart.Int64),
				YearEnd:    int(yearEnd.Int64),
			}
			out = append(out, r)
		}
		if err := rows.Err(); err != nil {
			return errors.Errorf("rows err: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// nullable maps the zero value to NULL.
func nullable[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}
