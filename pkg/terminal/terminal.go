package terminal

import (
	"context"
	"strings"

	"github.com/go-errors/errors"
	"github.com/peterh/liner"
)

// ErrInterrupted is returned when the user presses Ctrl-C at a prompt or the
// context is cancelled while waiting for input.
var ErrInterrupted = errors.New("interrupted by user")

// result wraps either a line read from the terminal or the read error.
type result struct {
	line string
	err  error
}

// Prompter reads lines from the terminal with line editing and history.
// Ctrl-C aborts the current prompt instead of killing the process.
type Prompter struct {
	state *liner.State
}

// NewPrompter puts the terminal under line editing control. Close must be
// called to restore it.
func NewPrompter() *Prompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &Prompter{state: state}
}

// Prompt prints prompt and returns the line the user typed, without the
// trailing newline. Ctrl-C yields ErrInterrupted; end of input yields io.EOF.
func (p *Prompter) Prompt(ctx context.Context, prompt string) (string, error) {
	ch := make(chan result, 1)
	go func() {
		line, err := p.state.Prompt(prompt)
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case r := <-ch:
		if r.err != nil {
			return "", translate(r.err)
		}
		if strings.TrimSpace(r.line) != "" {
			p.state.AppendHistory(r.line)
		}
		return r.line, nil
	}
}

// Close restores the terminal mode.
func (p *Prompter) Close() error {
	if err := p.state.Close(); err != nil {
		return errors.Errorf("restore terminal: %w", err)
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) {
		return ErrInterrupted
	}
	return err
}
