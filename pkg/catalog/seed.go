package catalog

import (
	"context"
	"database/sql"

	"github.com/go-errors/errors"

	"github.com/strrl/filmfind/pkg/search"
)

// Film is a catalog row as loaded by Seed.
type Film struct {
	ID          int
	Title       string
	ReleaseYear int
	RentalRate  float64
	// CategoryID of 0 leaves the film without a genre.
	CategoryID int
}

// Seed creates the film, category and film_category tables in the DuckDB
// file at path and replaces their contents with the given rows.
func Seed(ctx context.Context, path string, genres []search.Genre, films []Film) error {
	db, err := sql.Open(DriverDuckDB, path)
	if err != nil {
		return errors.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS category (
			category_id INTEGER PRIMARY KEY,
			name VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS film (
			film_id INTEGER PRIMARY KEY,
			title VARCHAR NOT NULL,
			release_year INTEGER,
			rental_rate DOUBLE
		)`,
		`CREATE TABLE IF NOT EXISTS film_category (
			film_id INTEGER,
			category_id INTEGER
		)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Errorf("create schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"film_category", "film", "category"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Errorf("clear %s: %w", table, err)
		}
	}

	for _, g := range genres {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO category (category_id, name) VALUES (?, ?)`, g.ID, g.Name); err != nil {
			return errors.Errorf("insert category %d: %w", g.ID, err)
		}
	}

	for _, f := range films {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO film (film_id, title, release_year, rental_rate) VALUES (?, ?, ?, ?)`,
			f.ID, f.Title, f.ReleaseYear, f.RentalRate); err != nil {
			return errors.Errorf("insert film %d: %w", f.ID, err)
		}
		if f.CategoryID == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO film_category (film_id, category_id) VALUES (?, ?)`,
			f.ID, f.CategoryID); err != nil {
			return errors.Errorf("insert film_category %d: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Errorf("commit: %w", err)
	}
	return nil
}

// DemoGenres are the Sakila categories.
var DemoGenres = []search.Genre{
	{ID: 1, Name: "Action"},
	{ID: 2, Name: "Animation"},
	{ID: 3, Name: "Children"},
	{ID: 4, Name: "Classics"},
	{ID: 5, Name: "Comedy"},
	{ID: 6, Name: "Documentary"},
	{ID: 7, Name: "Drama"},
	{ID: 8, Name: "Family"},
	{ID: 9, Name: "Foreign"},
	{ID: 10, Name: "Games"},
	{ID: 11, Name: "Horror"},
	{ID: 12, Name: "Music"},
	{ID: 13, Name: "New"},
	{ID: 14, Name: "Sci-Fi"},
	{ID: 15, Name: "Sports"},
	{ID: 16, Name: "Travel"},
}

// DemoFilms is a small catalog for running without a Sakila server.
var DemoFilms = []Film{
	{ID: 1, Title: "ACADEMY DINOSAUR", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 6},
	{ID: 2, Title: "ACE GOLDFINGER", ReleaseYear: 2006, RentalRate: 4.99, CategoryID: 11},
	{ID: 3, Title: "ADAPTATION HOLES", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 6},
	{ID: 4, Title: "AFFAIR PREJUDICE", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 11},
	{ID: 5, Title: "AFRICAN EGG", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 8},
	{ID: 6, Title: "AGENT TRUMAN", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 9},
	{ID: 7, Title: "AIRPLANE SIERRA", ReleaseYear: 2006, RentalRate: 4.99, CategoryID: 5},
	{ID: 8, Title: "AIRPORT POLLOCK", ReleaseYear: 2006, RentalRate: 4.99, CategoryID: 11},
	{ID: 9, Title: "ALABAMA DEVIL", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 11},
	{ID: 10, Title: "ALADDIN CALENDAR", ReleaseYear: 2006, RentalRate: 4.99, CategoryID: 15},
	{ID: 11, Title: "ALAMO VIDEOTAPE", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 9},
	{ID: 12, Title: "ALASKA PHANTOM", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 12},
	{ID: 13, Title: "ALI FOREVER", ReleaseYear: 2006, RentalRate: 4.99, CategoryID: 11},
	{ID: 14, Title: "ALICE FANTASIA", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 4},
	{ID: 15, Title: "ALIEN CENTER", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 9},
	{ID: 16, Title: "ALLEY EVOLUTION", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 9},
	{ID: 17, Title: "ALONE TRIP", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 12},
	{ID: 18, Title: "ALTER VICTORY", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 2},
	{ID: 19, Title: "AMADEUS HOLY", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 1},
	{ID: 20, Title: "AMELIE HELLFIGHTERS", ReleaseYear: 2006, RentalRate: 4.99, CategoryID: 12},
	{ID: 21, Title: "AMERICAN CIRCUS", ReleaseYear: 2006, RentalRate: 4.99, CategoryID: 1},
	{ID: 22, Title: "AMISTAD MIDSUMMER", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 13},
	{ID: 23, Title: "ANACONDA CONFESSIONS", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 2},
	{ID: 24, Title: "ANALYZE HOOSIERS", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 11},
	{ID: 25, Title: "ANGELS LIFE", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 13},
	{ID: 26, Title: "ANNIE IDENTITY", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 14},
	{ID: 27, Title: "ANONYMOUS HUMAN", ReleaseYear: 2006, RentalRate: 0.99, CategoryID: 7},
	{ID: 28, Title: "ANTHEM LUKE", ReleaseYear: 2006, RentalRate: 4.99, CategoryID: 16},
	{ID: 29, Title: "ANTITRUST TOMATOES", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 1},
	{ID: 30, Title: "ANYTHING SAVANNAH", ReleaseYear: 2006, RentalRate: 2.99, CategoryID: 11},
}
