// Package config handles loading and validating the scanner configuration
// from an optional YAML file, environment variables, and a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backend names.
const (
	BackendAuto     = ""
	BackendGist     = "gist"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendFile     = "file"
	BackendNone     = "none"
)

// Config is the top-level application configuration.
type Config struct {
	Vinted        VintedConfig        `yaml:"vinted"`
	Scan          ScanConfig          `yaml:"scan"`
	Queries       []map[string]any    `yaml:"queries"`
	QueriesFile   string              `yaml:"queries_file"`
	Store         StoreConfig         `yaml:"store"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Tracing       TracingConfig       `yaml:"tracing"`
	Logging       LoggingConfig       `yaml:"logging"`

	// QueriesJSON holds the VINTED_QUERIES environment value. It takes
	// precedence over QueriesFile and Queries.
	QueriesJSON string `yaml:"-"`
}

// VintedConfig defines the catalog endpoint and session settings.
type VintedConfig struct {
	BaseURL        string          `yaml:"base_url"        validate:"url"`
	UserAgent      string          `yaml:"user_agent"`
	AcceptLanguage string          `yaml:"accept_language"`
	SearchTimeout  time.Duration   `yaml:"search_timeout"  validate:"gt=0"`
	DetailTimeout  time.Duration   `yaml:"detail_timeout"  validate:"gt=0"`
	Enrich         *bool           `yaml:"enrich"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// EnrichEnabled reports whether novel listings get a detail fetch.
// Enrichment is on unless explicitly disabled.
func (v *VintedConfig) EnrichEnabled() bool {
	return v.Enrich == nil || *v.Enrich
}

// RateLimitConfig defines outbound catalog request pacing.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second" validate:"gt=0"`
	Burst     int     `yaml:"burst"      validate:"gt=0"`
	MaxCalls  int64   `yaml:"max_calls"  validate:"gte=0"` // per run; 0 means unlimited
}

// ScanConfig defines pacing between listings and queries.
type ScanConfig struct {
	ListingDelay time.Duration `yaml:"listing_delay" validate:"gte=0"`
	QueryDelay   time.Duration `yaml:"query_delay"   validate:"gte=0"`
	DryRun       bool          `yaml:"dry_run"`
}

// StoreConfig selects and configures the seen-set backend.
type StoreConfig struct {
	Backend  string         `yaml:"backend" env:"SEEN_STORE_BACKEND"`
	Key      string         `yaml:"key"`
	Timeout  time.Duration  `yaml:"timeout" validate:"gt=0"`
	Gist     GistConfig     `yaml:"gist"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Mongo    MongoConfig    `yaml:"mongo"`
	File     FileConfig     `yaml:"file"`
}

// GistConfig defines GitHub Gist persistence settings.
type GistConfig struct {
	Token    string `yaml:"token"    env:"GITHUB_TOKEN"`
	ID       string `yaml:"id"       env:"GIST_ID"`
	Filename string `yaml:"filename"`
	APIURL   string `yaml:"api_url"  validate:"url"`
}

// PostgresConfig defines the PostgreSQL seen-set backend.
type PostgresConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_URL"`
}

// RedisConfig defines the Redis seen-set backend.
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL"`
}

// MongoConfig defines the MongoDB seen-set backend.
type MongoConfig struct {
	URI        string `yaml:"uri"        env:"MONGO_URI"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// FileConfig defines the local file seen-set backend.
type FileConfig struct {
	Path string `yaml:"path"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Timeout        time.Duration  `yaml:"timeout"         validate:"gt=0"`
	RetryFailed    bool           `yaml:"retry_failed"`
	CurrencySymbol string         `yaml:"currency_symbol"`
	Telegram       TelegramConfig `yaml:"telegram"`
	Discord        DiscordConfig  `yaml:"discord"`
	Kafka          KafkaConfig    `yaml:"kafka"`
}

// TelegramConfig defines Telegram Bot API settings.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `yaml:"chat_id"   env:"TELEGRAM_CHAT_ID"`
	APIURL   string `yaml:"api_url"   validate:"url"`
}

// Enabled reports whether both credentials are present.
func (t *TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url" env:"DISCORD_WEBHOOK_URL" validate:"omitempty,url"`
}

// KafkaConfig defines the Kafka new-listing event sink.
type KafkaConfig struct {
	Brokers  []string `yaml:"brokers"   env:"KAFKA_BROKERS" envSeparator:","`
	Topic    string   `yaml:"topic"`
	ClientID string   `yaml:"client_id"`
}

// MetricsConfig defines the Prometheus Pushgateway target.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url" env:"PUSHGATEWAY_URL" validate:"omitempty,url"`
	Job            string `yaml:"job"`
	Instance       string `yaml:"instance"`
}

// TracingConfig defines OpenTelemetry export settings.
type TracingConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure     bool   `yaml:"insecure"`
	ServiceName  string `yaml:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"  validate:"oneof=debug info warn warning error"` // debug, info, warn, error
	Format string `yaml:"format" validate:"oneof=text json"`
}

// envOverrides mirrors the credential surface the scanner reads from the
// environment. Non-empty values win over the YAML file.
type envOverrides struct {
	Store         StoreConfig
	Telegram      TelegramConfig
	Discord       DiscordConfig
	Kafka         KafkaConfig
	Metrics       MetricsConfig
	Tracing       TracingConfig
	VintedQueries string `env:"VINTED_QUERIES"`
}

// Load reads the optional YAML config file at path, performing environment
// variable substitution, applies environment overrides and defaults, and
// validates the result. A missing file is not an error: every setting has a
// default and every credential may come from the environment.
func Load(path string) (*Config, error) {
	// A .env file is a convenience for local runs; it never overrides
	// variables already set in the environment.
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, fmt.Errorf("parsing config YAML: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return err
	}

	setIf(&cfg.Store.Backend, o.Store.Backend)
	setIf(&cfg.Store.Gist.Token, o.Store.Gist.Token)
	setIf(&cfg.Store.Gist.ID, o.Store.Gist.ID)
	setIf(&cfg.Store.Postgres.DSN, o.Store.Postgres.DSN)
	setIf(&cfg.Store.Redis.URL, o.Store.Redis.URL)
	setIf(&cfg.Store.Mongo.URI, o.Store.Mongo.URI)
	setIf(&cfg.Notifications.Telegram.BotToken, o.Telegram.BotToken)
	setIf(&cfg.Notifications.Telegram.ChatID, o.Telegram.ChatID)
	setIf(&cfg.Notifications.Discord.WebhookURL, o.Discord.WebhookURL)
	setIf(&cfg.Metrics.PushgatewayURL, o.Metrics.PushgatewayURL)
	setIf(&cfg.Tracing.OTLPEndpoint, o.Tracing.OTLPEndpoint)
	if len(o.Kafka.Brokers) > 0 {
		cfg.Notifications.Kafka.Brokers = o.Kafka.Brokers
	}
	cfg.QueriesJSON = o.VintedQueries

	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	applyVintedDefaults(&cfg.Vinted)
	applyScanDefaults(&cfg.Scan)
	applyStoreDefaults(&cfg.Store)
	applyNotificationDefaults(&cfg.Notifications)
	applyMetricsDefaults(&cfg.Metrics)
	applyLoggingDefaults(&cfg.Logging)

	if cfg.QueriesFile == "" {
		cfg.QueriesFile = "queries.json"
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "vinted-scanner"
	}
}

func applyVintedDefaults(v *VintedConfig) {
	if v.BaseURL == "" {
		v.BaseURL = "https://www.vinted.co.uk"
	}
	if v.UserAgent == "" {
		v.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if v.AcceptLanguage == "" {
		v.AcceptLanguage = "en-GB,en;q=0.9"
	}
	if v.SearchTimeout == 0 {
		v.SearchTimeout = 30 * time.Second
	}
	if v.DetailTimeout == 0 {
		v.DetailTimeout = 10 * time.Second
	}
	if v.RateLimit.PerSecond == 0 {
		v.RateLimit.PerSecond = 2
	}
	if v.RateLimit.Burst == 0 {
		v.RateLimit.Burst = 1
	}
}

func applyScanDefaults(s *ScanConfig) {
	if s.ListingDelay == 0 {
		s.ListingDelay = time.Second
	}
	if s.QueryDelay == 0 {
		s.QueryDelay = 2 * time.Second
	}
}

func applyStoreDefaults(s *StoreConfig) {
	if s.Key == "" {
		s.Key = "vinted_seen_items"
	}
	if s.Timeout == 0 {
		s.Timeout = 15 * time.Second
	}
	if s.Gist.Filename == "" {
		s.Gist.Filename = "vinted_seen_items.json"
	}
	if s.Gist.APIURL == "" {
		s.Gist.APIURL = "https://api.github.com"
	}
	if s.Mongo.Database == "" {
		s.Mongo.Database = "vinted_scanner"
	}
	if s.Mongo.Collection == "" {
		s.Mongo.Collection = "seen_sets"
	}
	if s.File.Path == "" {
		s.File.Path = "seen_items.json"
	}
}

func applyNotificationDefaults(n *NotificationsConfig) {
	if n.Timeout == 0 {
		n.Timeout = 10 * time.Second
	}
	if n.Telegram.APIURL == "" {
		n.Telegram.APIURL = "https://api.telegram.org"
	}
	if n.CurrencySymbol == "" {
		n.CurrencySymbol = "£"
	}
	if n.Kafka.Topic == "" {
		n.Kafka.Topic = "vinted.new_listings"
	}
	if n.Kafka.ClientID == "" {
		n.Kafka.ClientID = "vinted-scanner"
	}
}

func applyMetricsDefaults(m *MetricsConfig) {
	if m.Job == "" {
		m.Job = "vinted_scanner"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s failed %q validation (got %v)",
					fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			errs = append(errs, err)
		}
	}

	switch cfg.Store.Backend {
	case BackendAuto, BackendGist, BackendPostgres, BackendRedis, BackendMongo, BackendFile, BackendNone:
	default:
		errs = append(errs, fmt.Errorf(
			"store.backend must be one of: gist, postgres, redis, mongo, file, none (got %q)",
			cfg.Store.Backend,
		))
	}

	return errors.Join(errs...)
}
