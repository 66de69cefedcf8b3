package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"

	"github.com/strrl/filmfind/pkg/catalog"
	"github.com/strrl/filmfind/pkg/eventlog"
)

// Supported event store drivers.
const (
	EventsMongo  = "mongo"
	EventsDuckDB = "duckdb"
)

// Config holds the filmfind configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Events  EventsConfig  `yaml:"events"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
}

// CatalogConfig locates the relational film catalog.
type CatalogConfig struct {
	Driver   string `yaml:"driver"` // mysql, postgres, duckdb (default: mysql)
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

// EventsConfig locates the search event store.
type EventsConfig struct {
	Driver     string `yaml:"driver"` // mongo, duckdb (default: mongo)
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
	Path       string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: warn)
	Format string `yaml:"format"` // console, json (default: console)
}

// TracingConfig holds OpenTelemetry settings. Tracing is off without an endpoint.
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file. An empty path builds the
// configuration from environment variables and defaults only.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, errors.Errorf("read config %s: %w", path, err)
		}

		data = expandEnvVars(data)

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Errorf("parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields, checking the environment first and then
// the built-in default.
func (c *Config) ApplyDefaults() {
	cat := &c.Catalog
	cat.Driver = resolve(cat.Driver, "CATALOG_DRIVER", catalog.DriverMySQL)
	cat.DSN = resolve(cat.DSN, "CATALOG_DSN", "")
	switch cat.Driver {
	case catalog.DriverMySQL:
		cat.Host = resolve(cat.Host, "MYSQL_HOST", "localhost")
		cat.Port = resolvePort(cat.Port, "MYSQL_PORT", 3306)
		cat.User = resolve(cat.User, "MYSQL_USER", "root")
		cat.Password = resolve(cat.Password, "MYSQL_PASSWORD", "")
		cat.Database = resolve(cat.Database, "MYSQL_DATABASE", "sakila")
	case catalog.DriverPostgres:
		cat.Host = resolve(cat.Host, "POSTGRES_HOST", "localhost")
		cat.Port = resolvePort(cat.Port, "POSTGRES_PORT", 5432)
		cat.User = resolve(cat.User, "POSTGRES_USER", "postgres")
		cat.Password = resolve(cat.Password, "POSTGRES_PASSWORD", "")
		cat.Database = resolve(cat.Database, "POSTGRES_DATABASE", "pagila")
		cat.SSLMode = resolve(cat.SSLMode, "POSTGRES_SSLMODE", "disable")
	case catalog.DriverDuckDB:
		cat.Path = resolve(cat.Path, "CATALOG_PATH", "filmfind.duckdb")
	}

	ev := &c.Events
	ev.Driver = resolve(ev.Driver, "EVENTS_DRIVER", EventsMongo)
	switch ev.Driver {
	case EventsMongo:
		ev.URI = resolve(ev.URI, "MONGO_URI", "mongodb://localhost:27017")
		ev.Database = resolve(ev.Database, "MONGO_DATABASE", "filmfind")
		ev.Collection = resolve(ev.Collection, "MONGO_COLLECTION", "search_events")
	case EventsDuckDB:
		ev.Path = resolve(ev.Path, "EVENTS_PATH", "events.duckdb")
	}

	c.Logging.Level = resolve(c.Logging.Level, "LOG_LEVEL", "warn")
	c.Logging.Format = resolve(c.Logging.Format, "LOG_FORMAT", "console")

	c.Tracing.Endpoint = resolve(c.Tracing.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT", "")
	c.Tracing.ServiceName = resolve(c.Tracing.ServiceName, "OTEL_SERVICE_NAME", "filmfind")
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Catalog.Driver {
	case catalog.DriverMySQL, catalog.DriverPostgres:
		if c.Catalog.DSN == "" {
			if c.Catalog.Host == "" {
				return errors.Errorf("catalog.host is required for driver %q", c.Catalog.Driver)
			}
			if c.Catalog.Port <= 0 || c.Catalog.Port > 65535 {
				return errors.Errorf("catalog.port must be between 1 and 65535, got %d", c.Catalog.Port)
			}
		}
	case catalog.DriverDuckDB:
		if c.Catalog.DSN == "" && c.Catalog.Path == "" {
			return errors.Errorf("catalog.path is required for driver %q", c.Catalog.Driver)
		}
	default:
		return errors.Errorf("catalog.driver must be mysql, postgres or duckdb, got %q", c.Catalog.Driver)
	}

	switch c.Events.Driver {
	case EventsMongo:
		if c.Events.URI == "" || c.Events.Database == "" || c.Events.Collection == "" {
			return errors.Errorf("events.uri, events.database and events.collection are required for mongo")
		}
	case EventsDuckDB:
		if c.Events.Path == "" {
			return errors.Errorf("events.path is required for driver %q", c.Events.Driver)
		}
	default:
		return errors.Errorf("events.driver must be mongo or duckdb, got %q", c.Events.Driver)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errors.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// CatalogConfig converts the catalog section for the catalog package.
func (c *Config) CatalogConfig() catalog.Config {
	return catalog.Config{
		Driver:   c.Catalog.Driver,
		DSN:      c.Catalog.DSN,
		Host:     c.Catalog.Host,
		Port:     c.Catalog.Port,
		User:     c.Catalog.User,
		Password: c.Catalog.Password,
		Database: c.Catalog.Database,
		SSLMode:  c.Catalog.SSLMode,
		Path:     c.Catalog.Path,
	}
}

// MongoConfig converts the events section for the MongoDB store.
func (c *Config) MongoConfig() eventlog.MongoConfig {
	return eventlog.MongoConfig{
		URI:        c.Events.URI,
		Database:   c.Events.Database,
		Collection: c.Events.Collection,
	}
}

// resolve returns the explicit value if set, then the environment variable,
// and finally the default.
func resolve(value, envKey, def string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return def
}

// resolvePort is resolve for ports. A malformed environment value is left
// for Validate to report.
func resolvePort(value int, envKey string, def int) int {
	if value != 0 {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		p, err := strconv.Atoi(env)
		if err != nil {
			return -1
		}
		return p
	}
	return def
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
