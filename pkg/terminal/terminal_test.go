package terminal

import (
	"errors"
	"io"
	"testing"

	"github.com/peterh/liner"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "ctrl-c", in: liner.ErrPromptAborted, want: ErrInterrupted},
		{name: "eof", in: io.EOF, want: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translate(tt.in); !errors.Is(got, tt.want) {
				t.Errorf("translate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
