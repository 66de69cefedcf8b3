package catalog

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/go-errors/errors"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/strrl/filmfind/pkg/search"
)

var tracer = otel.Tracer("github.com/strrl/filmfind/pkg/catalog")

const keywordQuery = `
	SELECT film.film_id, film.title, film.release_year, category.name, film.rental_rate
	FROM film
	LEFT JOIN film_category ON film.film_id = film_category.film_id
	LEFT JOIN category ON film_category.category_id = category.category_id
	WHERE LOWER(film.title) LIKE ?
	ORDER BY film.release_year DESC, film.title`

const genreYearQuery = `
	SELECT film.film_id, film.title, film.release_year, category.name
	FROM film
	LEFT JOIN film_category ON film.film_id = film_category.film_id
	LEFT JOIN category ON film_category.category_id = category.category_id
	WHERE category.category_id = ?
	  AND (film.release_year BETWEEN ? AND ? OR film.release_year = ?)
	ORDER BY film.release_year DESC, film.title`

const genresQuery = `SELECT category_id, name FROM category ORDER BY category_id`

// Catalog is the read-only film catalog.
type Catalog interface {
	FindByKeyword(ctx context.Context, q search.KeywordQuery) ([]search.KeywordHit, error)
	FindByGenreYear(ctx context.Context, q search.GenreYearQuery) ([]search.GenreHit, error)
	ListGenres(ctx context.Context) ([]search.Genre, error)
}

var _ Catalog = (*SQLCatalog)(nil)

// SQLCatalog implements Catalog over database/sql. Every call opens its own
// connection and closes it before returning.
type SQLCatalog struct {
	driver string
	dsn    string
}

// New validates the configuration and returns a catalog for it.
// No connection is made until the first query.
func New(cfg Config) (*SQLCatalog, error) {
	dsn, err := cfg.DataSourceName()
	if err != nil {
		return nil, errors.Errorf("catalog config: %w", err)
	}
	return &SQLCatalog{driver: cfg.Driver, dsn: dsn}, nil
}

// FindByKeyword returns films whose title contains the keyword, ignoring case,
// newest first and then by title.
func (c *SQLCatalog) FindByKeyword(ctx context.Context, q search.KeywordQuery) ([]search.KeywordHit, error) {
	ctx, span := tracer.Start(ctx, "catalog.FindByKeyword",
		trace.WithAttributes(attribute.String("search.keyword", q.Keyword)))
	defer span.End()

	pattern := "%" + strings.ToLower(q.Keyword) + "%"

	var hits []search.KeywordHit
	err := c.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, rebind(c.driver, keywordQuery), pattern)
		if err != nil {
			return errors.Errorf("keyword query: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				h     search.KeywordHit
				year  sql.NullInt64
				genre sql.NullString
				rate  sql.NullFloat64
			)
			if err := rows.Scan(&h.ID, &h.Title, &year, &genre, &rate); err != nil {
				return errors.Errorf("scan keyword hit: %w", err)
			}
			h.ReleaseYear = int(year.Int64)
			h.Genre = genre.String
			if rate.Valid {
				r := rate.Float64
				h.RentalRate = &r
			}
			hits = append(hits, h)
		}
		if err := rows.Err(); err != nil {
			return errors.Errorf("rows err: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "keyword search failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.results", len(hits)))
	return hits, nil
}

// FindByGenreYear returns films of one category released within
// [YearStart, YearEnd], newest first and then by title.
func (c *SQLCatalog) FindByGenreYear(ctx context.Context, q search.GenreYearQuery) ([]search.GenreHit, error) {
	ctx, span := tracer.Start(ctx, "catalog.FindByGenreYear",
		trace.WithAttributes(
			attribute.Int("search.category_id", q.CategoryID),
			attribute.Int("search.year_start", q.YearStart),
			attribute.Int("search.year_end", q.YearEnd),
		))
	defer span.End()

	var hits []search.GenreHit
	err := c.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, rebind(c.driver, genreYearQuery),
			q.CategoryID, q.YearStart, q.YearEnd, q.YearStart)
		if err != nil {
			return errors.Errorf("genre/year query: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				h     search.GenreHit
				year  sql.NullInt64
				genre sql.NullString
			)
			if err := rows.Scan(&h.ID, &h.Title, &year, &genre); err != nil {
				return errors.Errorf("scan genre hit: %w", err)
			}
			h.ReleaseYear = int(year.Int64)
			h.Genre = genre.String
			hits = append(hits, h)
		}
		if err := rows.Err(); err != nil {
			return errors.Errorf("rows err: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "genre/year search failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.results", len(hits)))
	return hits, nil
}

// ListGenres returns every category ordered by id.
func (c *SQLCatalog) ListGenres(ctx context.Context) ([]search.Genre, error) {
	ctx, span := tracer.Start(ctx, "catalog.ListGenres")
	defer span.End()

	var genres []search.Genre
	err := c.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, genresQuery)
		if err != nil {
			return errors.Errorf("genres query: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var g search.Genre
			if err := rows.Scan(&g.ID, &g.Name); err != nil {
				return errors.Errorf("scan genre: %w", err)
			}
			genres = append(genres, g)
		}
		if err := rows.Err(); err != nil {
			return errors.Errorf("rows err: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list genres failed")
		return nil, err
	}
	return genres, nil
}

// withDB opens a connection for the duration of fn.
func (c *SQLCatalog) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := sql.Open(c.driver, c.dsn)
	if err != nil {
		return errors.Errorf("open %s: %w", c.driver, err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return errors.Errorf("connect %s: %w", c.driver, err)
	}
	return fn(db)
}
