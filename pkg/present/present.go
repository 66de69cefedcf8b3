package present

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// PageSize is the number of result rows shown per page.
const PageSize = 10

// Title is shown in the panel above the menu.
const Title = "FILM SEARCH APP - SAKILA -"

// Prompter reads one line of user input.
type Prompter interface {
	Prompt(ctx context.Context, prompt string) (string, error)
}

var (
	titleColors   = text.Colors{text.Bold, text.FgCyan}
	cellColors    = text.Colors{text.FgCyan}
	errorColors   = text.Colors{text.Bold, text.FgRed}
	noticeColors  = text.Colors{text.Bold, text.FgYellow}
	successColors = text.Colors{text.Bold, text.FgGreen}
)

// Presenter renders menus, messages and tables to a terminal.
type Presenter struct {
	out      io.Writer
	prompter Prompter
	pageSize int
}

// New returns a presenter writing to out. The prompter is used to ask
// whether to continue paging.
func New(out io.Writer, prompter Prompter) *Presenter {
	return &Presenter{out: out, prompter: prompter, pageSize: PageSize}
}

// Menu prints the title panel and the numbered options.
func (p *Presenter) Menu() {
	t := p.newTable()
	t.AppendRow(table.Row{titleColors.Sprint(Title)})
	t.Style().Color.Border = text.Colors{text.FgBlue}
	t.Render()

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, successColors.Sprint("Choose an action:"))
	for i, opt := range []string{
		"Search films by keyword",
		"Search films by genre and year",
		"View top 5 popular searches",
		"View last 5 unique searches",
		"Exit",
	} {
		fmt.Fprintf(p.out, "   %s  %s %s\n", text.FgYellow.Sprint(">"), text.Bold.Sprintf("%d.", i+1), opt)
	}
	fmt.Fprintln(p.out)
}

// Error prints a message in the error style.
func (p *Presenter) Error(msg string) {
	fmt.Fprintln(p.out, errorColors.Sprint(msg))
}

// Notice prints a message in the warning style.
func (p *Presenter) Notice(msg string) {
	fmt.Fprintln(p.out, noticeColors.Sprint(msg))
}

// Success prints a message in the success style.
func (p *Presenter) Success(msg string) {
	fmt.Fprintln(p.out, successColors.Sprint(msg))
}

// Println prints an unstyled line.
func (p *Presenter) Println(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p *Presenter) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Colors = titleColors
	t.Style().Title.Align = text.AlignCenter
	t.Style().Format.Header = text.FormatDefault
	return t
}

func columns(n int, align text.Align) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, 0, n)
	for i := 1; i <= n; i++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: i, Align: align, Colors: cellColors})
	}
	return cfgs
}
