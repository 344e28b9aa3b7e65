// Package config holds the runtime configuration for the report generator.
// Defaults target La Serena, Chile; an optional YAML file and environment
// variables override them field by field, and CLI flags override both.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/RHDSz/GmailAPI/pkg/errs"
)

// Config is passed explicitly into each entry point instead of living as
// process-wide globals.
type Config struct {
	City     string `yaml:"city"`
	Country  string `yaml:"country"`
	Language string `yaml:"language"`

	Sender    string `yaml:"sender"`
	Recipient string `yaml:"recipient"`
	Subject   string `yaml:"subject"`

	WeatherAPIKey string `yaml:"weather_api_key"`

	NewsSources      []string `yaml:"news_sources"`
	NewsMaxPerSource int      `yaml:"news_max_per_source"`
	NewsMaxTotal     int      `yaml:"news_max_total"`

	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		City:             "La Serena",
		Country:          "CL",
		Language:         "es",
		Sender:           "Servicio de Reportes <noreply@example.com>",
		Recipient:        "",
		Subject:          "Reporte Diario: Clima y Noticias de Chile",
		NewsSources:      []string{"emol", "la_tercera", "el_mostrador", "biobio", "cooperativa"},
		NewsMaxPerSource: 3,
		NewsMaxTotal:     10,
		CredentialsFile:  "credentials.json",
		TokenFile:        "token.json",
		HTTPTimeout:      10 * time.Second,
	}
}

// Load builds a Config from the defaults, an optional YAML file and the
// environment, in that order. A missing file is only an error when its path
// was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	// Best effort: a .env file is a convenience, not a requirement.
	_ = godotenv.Load()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", errs.ErrConfig, path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", errs.ErrConfig, path, err)
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.City, "REPORT_CITY")
	setString(&c.Country, "REPORT_COUNTRY")
	setString(&c.Language, "REPORT_LANGUAGE")
	setString(&c.Sender, "REPORT_SENDER")
	setString(&c.Recipient, "REPORT_RECIPIENT")
	setString(&c.Subject, "REPORT_SUBJECT")
	setString(&c.WeatherAPIKey, "OPENWEATHER_API_KEY")
	setString(&c.CredentialsFile, "GMAIL_CREDENTIALS_FILE")
	setString(&c.TokenFile, "GMAIL_TOKEN_FILE")
	setInt(&c.NewsMaxPerSource, "NEWS_MAX_PER_SOURCE")
	setInt(&c.NewsMaxTotal, "NEWS_MAX_TOTAL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}
