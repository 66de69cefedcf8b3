package present

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/strrl/filmfind/pkg/eventlog"
	"github.com/strrl/filmfind/pkg/search"
)

// TimeLayout formats search timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// TopPopular prints the most frequent searches.
func (p *Presenter) TopPopular(rows []eventlog.PopularSearch) {
	if len(rows) == 0 {
		p.Error("No searches yet.")
		return
	}

	t := p.newTable()
	t.SetTitle("Top 5 Popular Searches")
	t.AppendHeader(table.Row{"Search Type", "Details", "Times Searched"})
	for _, r := range rows {
		label, details := popularDetails(r)
		t.AppendRow(table.Row{label, details, r.Count})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, Colors: cellColors},
		{Number: 2, Align: text.AlignLeft, Colors: cellColors},
		{Number: 3, Align: text.AlignCenter, Colors: cellColors},
	})
	t.Render()
}

// LastUnique prints the latest search of each recently searched keyword or genre.
func (p *Presenter) LastUnique(rows []eventlog.RecentSearch) {
	if len(rows) == 0 {
		p.Error("No recent searches found.")
		return
	}

	t := p.newTable()
	t.SetTitle("Last 5 Unique Searches")
	t.AppendHeader(table.Row{"Time", "Search Type", "Details", "Results Found"})
	for _, r := range rows {
		t.AppendRow(table.Row{FormatTime(r.LastSearched), r.Type.Label(), recentDetails(r), r.ResultsCount})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, Colors: cellColors},
		{Number: 2, Align: text.AlignCenter, Colors: cellColors},
		{Number: 3, Align: text.AlignLeft, Colors: cellColors},
		{Number: 4, Align: text.AlignCenter, Colors: cellColors},
	})
	t.Render()
}

// Genres prints the "id - name" list shown before the genre prompt.
func (p *Presenter) Genres(genres []search.Genre) {
	if len(genres) == 0 {
		p.Error("No genres found.")
		return
	}
	p.Success("Available genres:")
	for _, g := range genres {
		fmt.Fprintf(p.out, "%d - %s\n", g.ID, g.Name)
	}
}

// FormatTime renders t in local time, or N/A for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return notAvailable
	}
	return t.Local().Format(TimeLayout)
}

func popularDetails(r eventlog.PopularSearch) (label, details string) {
	switch r.Type {
	case search.TypeKeyword:
		return "Keyword Search", "Keyword: " + r.Keyword
	case search.TypeGenreYear:
		return "Genre Search", "Genre ID: " + strconv.Itoa(r.CategoryID)
	default:
		return "Unknown", notAvailable
	}
}

func recentDetails(r eventlog.RecentSearch) string {
	switch r.Type {
	case search.TypeKeyword:
		return "Keyword: " + r.Params.Keyword
	case search.TypeGenreYear:
		return fmt.Sprintf("Genre ID: %d, Year: %s", r.Params.CategoryID, yearRange(r.Params.YearStart, r.Params.YearEnd))
	default:
		return notAvailable
	}
}

func yearRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
