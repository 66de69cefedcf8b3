package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var envKeys = []string{
	"CATALOG_DRIVER", "CATALOG_DSN", "CATALOG_PATH",
	"MYSQL_HOST", "MYSQL_PORT", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DATABASE",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DATABASE", "POSTGRES_SSLMODE",
	"EVENTS_DRIVER", "EVENTS_PATH", "MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION",
	"LOG_LEVEL", "LOG_FORMAT", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filmfind.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Driver != "mysql" || cfg.Catalog.Host != "localhost" || cfg.Catalog.Port != 3306 {
		t.Errorf("catalog: got %+v", cfg.Catalog)
	}
	if cfg.Catalog.Database != "sakila" || cfg.Catalog.User != "root" {
		t.Errorf("catalog credentials: got %+v", cfg.Catalog)
	}
	if cfg.Events.Driver != "mongo" || cfg.Events.URI != "mongodb://localhost:27017" {
		t.Errorf("events: got %+v", cfg.Events)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Errorf("logging: got %+v", cfg.Logging)
	}
	if cfg.Tracing.Endpoint != "" || cfg.Tracing.ServiceName != "filmfind" {
		t.Errorf("tracing: got %+v", cfg.Tracing)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MONGO_COLLECTION", "events")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Host != "db.internal" || cfg.Catalog.Port != 3307 {
		t.Errorf("catalog: got %+v", cfg.Catalog)
	}
	if cfg.Events.Collection != "events" {
		t.Errorf("collection: got %q", cfg.Events.Collection)
	}
}

func TestLoadFileWithExpansion(t *testing.T) {
	clearEnv(t)
	t.Setenv("FILMFIND_DATA", "/var/lib/filmfind")

	path := writeConfig(t, `
catalog:
  driver: duckdb
  path: ${FILMFIND_DATA}/catalog.duckdb
events:
  driver: duckdb
  path: ${FILMFIND_EVENTS:-/tmp/events.duckdb}
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Path != "/var/lib/filmfind/catalog.duckdb" {
		t.Errorf("catalog path: got %q", cfg.Catalog.Path)
	}
	if cfg.Events.Path != "/tmp/events.duckdb" {
		t.Errorf("events path: got %q", cfg.Events.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging: got %+v", cfg.Logging)
	}

	cc := cfg.CatalogConfig()
	dsn, err := cc.DataSourceName()
	if err != nil {
		t.Fatalf("DataSourceName: %v", err)
	}
	if dsn != "/var/lib/filmfind/catalog.duckdb" {
		t.Errorf("dsn: got %q", dsn)
	}
}

func TestLoadPostgresDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "catalog:\n  driver: postgres\n  password: secret\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Port != 5432 || cfg.Catalog.Database != "pagila" || cfg.Catalog.SSLMode != "disable" {
		t.Errorf("catalog: got %+v", cfg.Catalog)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown catalog driver", body: "catalog:\n  driver: sqlite\n", wantErr: "catalog.driver"},
		{name: "unknown events driver", body: "events:\n  driver: redis\n", wantErr: "events.driver"},
		{name: "bad level", body: "logging:\n  level: loud\n", wantErr: "logging.level"},
		{name: "bad format", body: "logging:\n  format: xml\n", wantErr: "logging.format"},
		{name: "bad port env", env: map[string]string{"MYSQL_PORT": "abc"}, wantErr: "catalog.port"},
		{name: "malformed yaml", body: "catalog: [\n", wantErr: "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMongoConfig(t *testing.T) {
	cfg := Config{Events: EventsConfig{URI: "mongodb://m:27017", Database: "d", Collection: "c"}}
	mc := cfg.MongoConfig()
	if mc.URI != "mongodb://m:27017" || mc.Database != "d" || mc.Collection != "c" {
		t.Errorf("got %+v", mc)
	}
}
