package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-errors/errors"
	"go.uber.org/zap"

	"github.com/strrl/filmfind/pkg/catalog"
	"github.com/strrl/filmfind/pkg/eventlog"
	"github.com/strrl/filmfind/pkg/present"
	"github.com/strrl/filmfind/pkg/search"
	"github.com/strrl/filmfind/pkg/terminal"
)

const (
	menuPrompt    = "Choose an option (1-5): "
	keywordPrompt = "Enter a keyword (part of film title): "
	genrePrompt   = "Enter genre ID: "
	yearPrompt    = "Enter year or range (e.g. 2005 or 1990-2025): "
)

// SearchLogger records one event per search.
type SearchLogger interface {
	LogSearch(ctx context.Context, t search.Type, params eventlog.Params, resultsCount int) error
}

// StatsReader provides the search summaries.
type StatsReader interface {
	TopPopular(ctx context.Context) ([]eventlog.PopularSearch, error)
	LastUnique(ctx context.Context) ([]eventlog.RecentSearch, error)
}

// App runs the interactive menu.
type App struct {
	catalog  catalog.Catalog
	events   SearchLogger
	stats    StatsReader
	prompter present.Prompter
	view     *present.Presenter
	logger   *zap.Logger
}

// New wires the menu to its backends.
func New(
	cat catalog.Catalog,
	events SearchLogger,
	stats StatsReader,
	prompter present.Prompter,
	view *present.Presenter,
	logger *zap.Logger,
) *App {
	return &App{
		catalog:  cat,
		events:   events,
		stats:    stats,
		prompter: prompter,
		view:     view,
		logger:   logger,
	}
}

// Run shows the menu until the user exits, interrupts or input ends.
// Backend failures are reported and never end the loop.
func (a *App) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			a.view.Notice("\nProgram stopped by user.")
			return nil
		}

		a.view.Menu()
		choice, err := a.prompter.Prompt(ctx, menuPrompt)
		if err != nil {
			if errors.Is(err, terminal.ErrInterrupted) || errors.Is(err, io.EOF) {
				a.view.Notice("\nProgram stopped by user.")
				return nil
			}
			return errors.Errorf("read menu choice: %w", err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			a.runAction(ctx, "keyword search", a.searchByKeyword)
		case "2":
			a.runAction(ctx, "genre search", a.searchByGenreYear)
		case "3":
			a.runAction(ctx, "top popular", a.showTopPopular)
		case "4":
			a.runAction(ctx, "last unique", a.showLastUnique)
		case "5":
			a.view.Println("Goodbye!")
			return nil
		default:
			a.view.Error("Invalid option, please choose 1–5.")
		}
	}
}

// runAction recovers a panic inside one menu action so the loop survives it.
func (a *App) runAction(ctx context.Context, name string, action func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("menu action panicked",
				zap.String("action", name), zap.Any("panic", r), zap.Stack("stack"))
			a.view.Error(fmt.Sprintf("Unexpected error: %v", r))
		}
	}()
	action(ctx)
}

func (a *App) searchByKeyword(ctx context.Context) {
	raw, err := a.prompter.Prompt(ctx, keywordPrompt)
	if err != nil {
		a.inputAborted(err)
		return
	}
	q, err := search.ParseKeyword(raw)
	if err != nil {
		a.view.Error(err.Error())
		return
	}

	hits, err := a.catalog.FindByKeyword(ctx, q)
	if err != nil {
		a.logger.Error("keyword search failed", zap.String("keyword", q.Keyword), zap.Error(err))
		a.view.Error("Error during keyword search: " + err.Error())
		hits = nil
	}

	a.logSearch(ctx, search.TypeKeyword, eventlog.KeywordParams(q), len(hits))
	a.view.Results(ctx, search.Results{Type: search.TypeKeyword, Keyword: hits})
}

func (a *App) searchByGenreYear(ctx context.Context) {
	genres, err := a.catalog.ListGenres(ctx)
	if err != nil {
		a.logger.Error("list genres failed", zap.Error(err))
		a.view.Error("Error loading genres: " + err.Error())
	} else {
		a.view.Genres(genres)
	}

	rawGenre, err := a.prompter.Prompt(ctx, genrePrompt)
	if err != nil {
		a.inputAborted(err)
		return
	}
	rawYears, err := a.prompter.Prompt(ctx, yearPrompt)
	if err != nil {
		a.inputAborted(err)
		return
	}
	q, err := search.ParseGenreYear(rawGenre, rawYears)
	if err != nil {
		a.view.Error(err.Error())
		return
	}

	hits, err := a.catalog.FindByGenreYear(ctx, q)
	if err != nil {
		a.logger.Error("genre search failed",
			zap.Int("category_id", q.CategoryID),
			zap.Int("year_start", q.YearStart),
			zap.Int("year_end", q.YearEnd),
			zap.Error(err))
		a.view.Error("Error during genre and year search: " + err.Error())
		hits = nil
	}

	a.logSearch(ctx, search.TypeGenreYear, eventlog.GenreYearParams(q), len(hits))
	a.view.Results(ctx, search.Results{Type: search.TypeGenreYear, Genre: hits})
}

func (a *App) showTopPopular(ctx context.Context) {
	rows, err := a.stats.TopPopular(ctx)
	if err != nil {
		a.logger.Error("top popular failed", zap.Error(err))
		a.view.Error("Error fetching top 5 searches: " + err.Error())
		rows = nil
	}
	a.view.TopPopular(rows)
}

func (a *App) showLastUnique(ctx context.Context) {
	rows, err := a.stats.LastUnique(ctx)
	if err != nil {
		a.logger.Error("last unique failed", zap.Error(err))
		a.view.Error("Error fetching last 5 searches: " + err.Error())
		rows = nil
	}
	a.view.LastUnique(rows)
}

// logSearch records the search. A failed write is shown and otherwise ignored.
func (a *App) logSearch(ctx context.Context, t search.Type, params eventlog.Params, count int) {
	if err := a.events.LogSearch(ctx, t, params, count); err != nil {
		a.view.Error("Error while saving log: " + err.Error())
		return
	}
	a.view.Success("Search log saved.")
}

func (a *App) inputAborted(err error) {
	if errors.Is(err, terminal.ErrInterrupted) {
		a.view.Notice("\nInterrupted by user.")
		return
	}
	if !errors.Is(err, io.EOF) {
		a.logger.Warn("read input", zap.Error(err))
	}
}
