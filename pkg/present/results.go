package present

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/strrl/filmfind/pkg/search"
	"github.com/strrl/filmfind/pkg/terminal"
)

const notAvailable = "N/A"

// Results shows search results page by page using the column layout of the
// search type.
func (p *Presenter) Results(ctx context.Context, r search.Results) {
	switch r.Type {
	case search.TypeKeyword:
		rows := make([]table.Row, 0, len(r.Keyword))
		for _, h := range r.Keyword {
			rows = append(rows, table.Row{h.ID, h.Title, year(h.ReleaseYear), orNA(h.Genre), rate(h.RentalRate)})
		}
		p.paginate(ctx, table.Row{"ID", "Title", "Year", "Genre", "Rate"}, rows)
	case search.TypeGenreYear:
		rows := make([]table.Row, 0, len(r.Genre))
		for _, h := range r.Genre {
			rows = append(rows, table.Row{h.ID, h.Title, year(h.ReleaseYear), orNA(h.Genre)})
		}
		p.paginate(ctx, table.Row{"ID", "Title", "Year", "Genre"}, rows)
	default:
		p.paginate(ctx, table.Row{"Data"}, nil)
	}
}

// Generic shows arbitrary rows in a single Data column, one record per line.
func (p *Presenter) Generic(ctx context.Context, records [][]any) {
	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		parts := make([]string, 0, len(rec))
		for _, v := range rec {
			parts = append(parts, fmt.Sprint(v))
		}
		rows = append(rows, table.Row{strings.Join(parts, ", ")})
	}
	p.paginate(ctx, table.Row{"Data"}, rows)
}

// paginate renders rows pageSize at a time. After every page except the last
// it asks whether to continue; anything but "y" stops quietly.
func (p *Presenter) paginate(ctx context.Context, header table.Row, rows []table.Row) {
	if len(rows) == 0 {
		p.Error("No films found.")
		return
	}

	for start := 0; start < len(rows); start += p.pageSize {
		end := min(start+p.pageSize, len(rows))

		t := p.newTable()
		t.SetTitle(fmt.Sprintf("Search Results (Page %d)", start/p.pageSize+1))
		t.AppendHeader(header)
		t.AppendRows(rows[start:end])
		t.SetColumnConfigs(columns(len(header), text.AlignCenter))
		t.Render()

		if end >= len(rows) {
			p.Success("\nEnd of results.")
			return
		}

		answer, err := p.prompter.Prompt(ctx, fmt.Sprintf("Show next %d? (y/n): ", p.pageSize))
		if err != nil {
			if errors.Is(err, terminal.ErrInterrupted) {
				p.Notice("\nInterrupted by user.")
			}
			return
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return
		}
	}
}

func year(y int) string {
	if y == 0 {
		return notAvailable
	}
	return strconv.Itoa(y)
}

func rate(r *float64) string {
	if r == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*r, 'f', 2, 64)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
