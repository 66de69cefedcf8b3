package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/strrl/filmfind/pkg/config"
	"github.com/strrl/filmfind/pkg/eventlog"
)

func TestOpenEventStore(t *testing.T) {
	tests := []struct {
		name    string
		events  config.EventsConfig
		want    string
		wantErr bool
	}{
		{name: "mongo", events: config.EventsConfig{Driver: config.EventsMongo, URI: "mongodb://localhost:27017"}, want: "mongo"},
		{name: "duckdb", events: config.EventsConfig{Driver: config.EventsDuckDB, Path: "events.duckdb"}, want: "duckdb"},
		{name: "unknown", events: config.EventsConfig{Driver: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := openEventStore(config.Config{Events: tt.events})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("openEventStore: %v", err)
			}
			switch s.(type) {
			case *eventlog.MongoStore:
				if tt.want != "mongo" {
					t.Errorf("got mongo store, want %s", tt.want)
				}
			case *eventlog.DuckDBStore:
				if tt.want != "duckdb" {
					t.Errorf("got duckdb store, want %s", tt.want)
				}
			default:
				t.Errorf("unexpected store %T", s)
			}
		})
	}
}

func TestSeedCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.duckdb")
	cmd := seedCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("output: got %q", out.String())
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if out.String() != "filmfind dev\n" {
		t.Errorf("got %q", out.String())
	}
}
