package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	ShutdownTimeout time.Duration
	LogLevel        string

	BotToken       string
	WebhookSecret  string
	OperatorChatID int64
	WelcomePhoto   string

	AdminUsername string
	AdminPassword string
	TokenSecret   string
	AdminOrigins  []string

	ImageHostURL      string
	ImageHostUserHash string

	CatalogMaxDisplay int
	ButtonsPerRow     int

	Bank      BankAccount
	PaymentQR bool
}

// BankAccount is printed on every invoice.
type BankAccount struct {
	Bank   string
	Number string
	Holder string
}

// BotEnabled reports whether a chat transport token was configured.
func (c *Config) BotEnabled() bool {
	return strings.TrimSpace(c.BotToken) != ""
}

const (
	defaultRunAddress        = ":8080"
	defaultShutdownTimeout   = 10 * time.Second
	defaultLogLevel          = "info"
	defaultAdminUsername     = "admin"
	defaultTokenSecret       = "change-me-in-production"
	defaultImageHostURL      = "https://catbox.moe/user/api.php"
	defaultCatalogMaxDisplay = 50
	defaultButtonsPerRow     = 6
	defaultBankName          = "BCA"
	defaultBankNumber        = "1234-5678-9000"
	defaultBankHolder        = "STORE OFFICIAL"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
		BotToken:          getString(lookup, "TELEGRAM_BOT_TOKEN", ""),
		WebhookSecret:     getString(lookup, "TELEGRAM_WEBHOOK_SECRET", ""),
		OperatorChatID:    getInt64(lookup, "OPERATOR_CHAT_ID", 0),
		WelcomePhoto:      getString(lookup, "WELCOME_PHOTO_URL", ""),
		AdminUsername:     getString(lookup, "ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword:     getString(lookup, "ADMIN_PASSWORD", ""),
		TokenSecret:       getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		AdminOrigins:      getList(lookup, "ADMIN_ORIGINS"),
		ImageHostURL:      getString(lookup, "IMAGE_HOST_URL", defaultImageHostURL),
		ImageHostUserHash: getString(lookup, "IMAGE_HOST_USERHASH", ""),
		CatalogMaxDisplay: getInt(lookup, "CATALOG_MAX_DISPLAY", defaultCatalogMaxDisplay),
		ButtonsPerRow:     getInt(lookup, "CATALOG_BUTTONS_PER_ROW", defaultButtonsPerRow),
		Bank: BankAccount{
			Bank:   getString(lookup, "BANK_NAME", defaultBankName),
			Number: getString(lookup, "BANK_ACCOUNT", defaultBankNumber),
			Holder: getString(lookup, "BANK_HOLDER", defaultBankHolder),
		},
		PaymentQR: getBool(lookup, "PAYMENT_QR", false),
	}

	fs := flag.NewFlagSet("storebot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.BotToken, "bot-token", cfg.BotToken, "Telegram bot token")
	fs.Int64Var(&cfg.OperatorChatID, "operator", cfg.OperatorChatID, "Operator chat id for payment notifications")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.CatalogMaxDisplay <= 0 {
		cfg.CatalogMaxDisplay = defaultCatalogMaxDisplay
	}

	if cfg.ButtonsPerRow <= 0 {
		cfg.ButtonsPerRow = defaultButtonsPerRow
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AdminPassword != "" && (cfg.TokenSecret == "" || cfg.TokenSecret == defaultTokenSecret) {
		return nil, fmt.Errorf("TOKEN_SECRET must be set when ADMIN_PASSWORD is configured")
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

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
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

func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
