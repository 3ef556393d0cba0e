// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	Workers      int

	// Ingestion
	IngestKey string
	InboxDir  string

	// Notification
	DirectoryPath string
	SMTPAddr      string
	SMTPUsername  string
	SMTPPassword  string
	MailFrom      string
	SMSWebhookURL string
}

// LoadDotEnv loads variables from an env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("phasecheck", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.Workers, "w", 0, "Submissions processed concurrently")

	// Ingestion
	fs.StringVar(&cfg.IngestKey, "ingest-key", "", "Shared secret for submissions and result reads (prefer env)")
	fs.StringVar(&cfg.InboxDir, "inbox", "", "Directory watched for batch files")

	// Notification
	fs.StringVar(&cfg.DirectoryPath, "directory", "", "User directory file (YAML or JSON)")
	fs.StringVar(&cfg.SMTPAddr, "smtp", "", "SMTP relay host:port")
	fs.StringVar(&cfg.MailFrom, "mail-from", "", "Sender address for email")
	fs.StringVar(&cfg.SMSWebhookURL, "sms-webhook", "", "SMS gateway webhook URL")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 3318)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.Workers == 0 {
		workers, err := envInt("WORKERS", 4)
		if err != nil {
			return Config{}, err
		}
		cfg.Workers = workers
	}
	if cfg.Workers < 1 {
		return Config{}, errors.New("workers must be at least 1")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	envDefault(&cfg.IngestKey, "INGEST_KEY")
	envDefault(&cfg.InboxDir, "INBOX_DIR")
	envDefault(&cfg.DirectoryPath, "DIRECTORY_PATH")
	envDefault(&cfg.SMTPAddr, "SMTP_ADDR")
	envDefault(&cfg.MailFrom, "MAIL_FROM")
	envDefault(&cfg.SMSWebhookURL, "SMS_WEBHOOK_URL")

	// Secrets are env only
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")

	if cfg.SMTPAddr != "" && cfg.MailFrom == "" {
		return Config{}, errors.New("MAIL_FROM required when SMTP_ADDR is set")
	}

	return cfg, nil
}

func envDefault(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}
