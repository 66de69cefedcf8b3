package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "defaults", want: zapcore.WarnLevel},
		{name: "console debug", format: "console", level: "debug", want: zapcore.DebugLevel},
		{name: "json info", format: "json", level: "info", want: zapcore.InfoLevel},
		{name: "unknown format", format: "xml", wantErr: true},
		{name: "bad level", format: "console", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.format, tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger: %v", err)
			}
			if !l.Core().Enabled(tt.want) {
				t.Errorf("level %v should be enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
				t.Errorf("level %v should be disabled", tt.want-1)
			}
		})
	}
}
