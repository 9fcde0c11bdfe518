package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Division selects which mailbox receives duty redemptions.
const (
	DivisionNCK = "NCK"
	DivisionNTP = "NTP"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	BotToken string `validate:"required"`
	Division string `validate:"oneof=NCK NTP"`

	PrimaryDatabaseURI   string `validate:"required"`
	SecondaryDatabaseURI string `validate:"required"`
	Migrate              bool

	RedisURL string
	StateTTL time.Duration

	Email Email

	NotifySupervisor   bool
	RedeemOncePerMonth bool

	RunAddress      string `validate:"required"`
	WebhookURL      string `validate:"omitempty,url"`
	WebhookSecret   string `validate:"required_with=WebhookURL"`
	PollTimeout     time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string `validate:"oneof=debug info warn error"`
}

// Email describes the SMTP account used for redemption notices.
type Email struct {
	Host     string
	Port     int `validate:"gte=0,lte=65535"`
	User     string
	Password string
	UseSSL   bool
	NCKAddr  string `validate:"omitempty,email"`
	NTPAddr  string `validate:"omitempty,email"`
}

// Enabled reports whether an SMTP host is configured.
func (e Email) Enabled() bool {
	return e.Host != ""
}

// DivisionAddr returns the mailbox of the configured division.
func (c *Config) DivisionAddr() string {
	switch c.Division {
	case DivisionNCK:
		return c.Email.NCKAddr
	case DivisionNTP:
		return c.Email.NTPAddr
	default:
		return ""
	}
}

// UseWebhook reports whether updates arrive through the HTTP webhook instead of polling.
func (c *Config) UseWebhook() bool {
	return c.WebhookURL != ""
}

const (
	defaultDivision        = DivisionNTP
	defaultRunAddress      = ":8080"
	defaultStateTTL        = 24 * time.Hour
	defaultEmailPort       = 465
	defaultPollTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultEnvFile         = ".env"
)

var validate = validator.New()

// Load reads an optional .env file, then parses configuration from flags and environment variables.
func Load() (*Config, error) {
	if err := loadEnvFile(defaultEnvFile); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		BotToken:             getString(lookup, "BOT_TOKEN", ""),
		Division:             strings.ToUpper(getString(lookup, "DIVISION", defaultDivision)),
		PrimaryDatabaseURI:   getString(lookup, "PRIMARY_DATABASE_URI", ""),
		SecondaryDatabaseURI: getString(lookup, "SECONDARY_DATABASE_URI", ""),
		Migrate:              getBool(lookup, "MIGRATE", false),
		RedisURL:             getString(lookup, "REDIS_URL", ""),
		StateTTL:             getDuration(lookup, "STATE_TTL", defaultStateTTL),
		Email: Email{
			Host:     getString(lookup, "EMAIL_HOST", ""),
			Port:     getInt(lookup, "EMAIL_PORT", defaultEmailPort),
			User:     getString(lookup, "EMAIL_USER", ""),
			Password: getString(lookup, "EMAIL_PASS", ""),
			UseSSL:   getBool(lookup, "EMAIL_USE_SSL", true),
			NCKAddr:  getString(lookup, "NCK_EMAIL_ADDR", ""),
			NTPAddr:  getString(lookup, "NTP_EMAIL_ADDR", ""),
		},
		NotifySupervisor:   getBool(lookup, "NOTIFY_SUPERVISOR", false),
		RedeemOncePerMonth: getBool(lookup, "REDEEM_ONCE_PER_MONTH", false),
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		WebhookURL:         getString(lookup, "WEBHOOK_URL", ""),
		WebhookSecret:      getString(lookup, "WEBHOOK_SECRET", ""),
		PollTimeout:        getDuration(lookup, "POLL_TIMEOUT", defaultPollTimeout),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:           strings.ToLower(getString(lookup, "LOG_LEVEL", defaultLogLevel)),
	}

	flags := flag.NewFlagSet("achieverbot", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		stateTTLStr        = cfg.StateTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.PrimaryDatabaseURI, "primary-db", cfg.PrimaryDatabaseURI, "Primary PostgreSQL DSN (staff, schedules)")
	flags.StringVar(&cfg.SecondaryDatabaseURI, "secondary-db", cfg.SecondaryDatabaseURI, "Secondary PostgreSQL DSN (points, awards)")
	flags.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for conversation state")
	flags.StringVar(&cfg.Division, "division", cfg.Division, "Division mailbox: NCK or NTP")
	flags.BoolVar(&cfg.Migrate, "migrate", cfg.Migrate, "Apply embedded migrations on start")
	flags.StringVar(&stateTTLStr, "state-ttl", stateTTLStr, "Conversation state expiry")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StateTTL, err = time.ParseDuration(stateTTLStr); err != nil {
		return nil, fmt.Errorf("invalid state ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if tokenFile, ok := lookup("BOT_TOKEN_FILE"); ok && tokenFile != "" {
		content, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("read bot token file: %w", err)
		}
		cfg.BotToken = strings.TrimSpace(string(content))
	}

	if cfg.StateTTL <= 0 {
		cfg.StateTTL = defaultStateTTL
	}

	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = defaultPollTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.Division = strings.ToUpper(cfg.Division)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
