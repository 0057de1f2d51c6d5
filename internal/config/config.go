// Package config handles loading and validating the cartkeeper configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the cartkeeper daemon.
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`
	Database  DatabaseConfig            `mapstructure:"database"`
	Annotator AnnotatorConfig           `mapstructure:"annotator"`
	Languages map[string]IntentKeywords `mapstructure:"languages"`
	Tables    TablesConfig              `mapstructure:"tables"`
	Logging   LoggingConfig             `mapstructure:"logging"`
}

// ServerConfig holds the API and health server settings.
type ServerConfig struct {
	Port       int `mapstructure:"port"`
	HealthPort int `mapstructure:"health_port"`
}

// DatabaseConfig holds the SQLite database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AnnotatorConfig selects and configures the linguistic annotation backend.
type AnnotatorConfig struct {
	Backend string      `mapstructure:"backend"` // "spacy"
	SpaCy   SpaCyConfig `mapstructure:"spacy"`
}

// SpaCyConfig holds settings for a spaCy REST annotation service.
//
// For a single multilingual instance, set Endpoint. For per-language
// instances (one loaded model each, recommended for production), set
// Endpoints which maps ISO-639-1 codes to individual endpoints. If both are
// set, Endpoints takes precedence and Endpoint is the fallback for unlisted
// languages.
type SpaCyConfig struct {
	Endpoint  string            `mapstructure:"endpoint"`  // Default endpoint (e.g. http://localhost:8000/annotate)
	Endpoints map[string]string `mapstructure:"endpoints"` // ISO-639-1 language code -> endpoint
	AuthToken string            `mapstructure:"auth_token"`
	TimeoutMS int               `mapstructure:"timeout_ms"`
}

// IntentKeywords maps intent names ("add", "remove", "search") to the surface
// lemmas that trigger them. Entries here extend or replace the built-in
// profiles for that language.
type IntentKeywords map[string][]string

// TablesConfig overrides the built-in classification tables.
type TablesConfig struct {
	// Categories is an ordered list of keyword -> category rules. Order
	// matters: the first keyword contained in an item name wins.
	Categories []CategoryRule `mapstructure:"categories"`

	// Substitutes maps a lowercase item name to suggested replacements.
	Substitutes map[string][]string `mapstructure:"substitutes"`

	// Seasonal maps a season name (winter, spring, summer, autumn) to items.
	Seasonal map[string][]string `mapstructure:"seasonal"`
}

// CategoryRule assigns a category to any item name containing the keyword.
type CategoryRule struct {
	Keyword  string `mapstructure:"keyword"`
	Category string `mapstructure:"category"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./cartkeeper.yaml, ./configs/cartkeeper.yaml, /etc/cartkeeper/cartkeeper.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("database.path", "cartkeeper.db")
	v.SetDefault("annotator.backend", "spacy")
	v.SetDefault("annotator.spacy.endpoint", "http://localhost:8000/annotate")
	v.SetDefault("annotator.spacy.timeout_ms", 5000)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("cartkeeper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/cartkeeper")
	}

	// Environment variables: CARTKEEPER_SERVER_PORT, CARTKEEPER_ANNOTATOR_BACKEND, etc.
	v.SetEnvPrefix("CARTKEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${SPACY_TOKEN}")
	cfg.Annotator.SpaCy.AuthToken = resolveEnvRef(cfg.Annotator.SpaCy.AuthToken)

	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
