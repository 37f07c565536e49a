package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"casinobot/database"

	"github.com/caarlos0/env/v11"
)

// Ledger backends
const (
	LedgerBackendFile     = "file"
	LedgerBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken      string `env:"DISCORD_TOKEN"`
	GuildID           string `env:"GUILD_ID"` // Guild that receives relayed DMs; first joined guild when empty
	CommandPrefix     string `env:"COMMAND_PREFIX" envDefault:"!"`
	CasinoChannelName string `env:"CASINO_CHANNEL_NAME" envDefault:"casino"`
	MintRoleName      string `env:"MINT_ROLE_NAME" envDefault:"GenkiJi"`

	// Ledger configuration
	LedgerBackend       string        `env:"LEDGER_BACKEND" envDefault:"file"`
	LedgerPath          string        `env:"LEDGER_PATH" envDefault:"accounts.json"`
	LedgerFailOpen      bool          `env:"LEDGER_FAIL_OPEN" envDefault:"false"`
	StartingBalance     int64         `env:"STARTING_BALANCE" envDefault:"1000"`
	BlackjackSessionTTL time.Duration `env:"BLACKJACK_SESSION_TTL" envDefault:"0s"`

	// Database configuration
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseName string `env:"DATABASE_NAME"`

	// NATS configuration
	NATSURL           string `env:"NATS_URL"`
	NATSSubjectPrefix string `env:"NATS_SUBJECT_PREFIX" envDefault:"casino"`

	// Logging configuration
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"LOG_FILE"`

	// Debug API configuration
	DebugAPIAddr string `env:"DEBUG_API_ADDR" envDefault:"127.0.0.1:8899"`

	// OpenTelemetry configuration
	OTelEnabled              bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTelServiceName          string `env:"OTEL_SERVICE_NAME" envDefault:"casinobot"`
	OTelExporterType         string `env:"OTEL_EXPORTER_TYPE" envDefault:"console"` // console, otlp or none
	OTelOTLPEndpoint         string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTelExportIntervalMillis int    `env:"OTEL_EXPORT_INTERVAL_MILLIS" envDefault:"60000"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = Load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Load parses configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks required settings and value ranges
func (c *Config) Validate() error {
	switch c.LedgerBackend {
	case LedgerBackendFile, LedgerBackendPostgres:
	default:
		return fmt.Errorf("LEDGER_BACKEND must be %q or %q, got %q", LedgerBackendFile, LedgerBackendPostgres, c.LedgerBackend)
	}

	if c.StartingBalance < 0 {
		return fmt.Errorf("STARTING_BALANCE cannot be negative")
	}
	if c.BlackjackSessionTTL < 0 {
		return fmt.Errorf("BLACKJACK_SESSION_TTL cannot be negative")
	}
	if strings.TrimSpace(c.CommandPrefix) == "" {
		return fmt.Errorf("COMMAND_PREFIX cannot be empty")
	}

	if c.Environment == "test" {
		return nil
	}

	// Validate required configuration
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.LedgerBackend == LedgerBackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for the postgres ledger backend")
	}
	if c.LedgerBackend == LedgerBackendFile && c.LedgerPath == "" {
		return fmt.Errorf("LEDGER_PATH is required for the file ledger backend")
	}
	return nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:       "test",
		DiscordToken:      "test-token",
		CommandPrefix:     "!",
		CasinoChannelName: "casino",
		MintRoleName:      "GenkiJi",
		LedgerBackend:     LedgerBackendFile,
		LedgerPath:        "accounts.json",
		StartingBalance:   1000,
		NATSSubjectPrefix: "casino",
		LogLevel:          "info",
		LogFormat:         "text",
		OTelExporterType:  "none",
	}
}
