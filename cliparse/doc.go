// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv reads a .env file into the environment (existing variables win),
then ParseFlags returns a Config struct with all settings:

	_ = cliparse.LoadDotEnv(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type (sqlite or postgres)
	-w             Concurrent submissions
	-ingest-key    Shared secret for submissions and result reads
	-inbox         Batch drop directory
	-directory     User directory file
	-smtp          SMTP relay host:port
	-mail-from     Email sender address
	-sms-webhook   SMS gateway URL

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p   (default 3318)
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t   (default sqlite)
	WORKERS         → -w   (default 4)
	INGEST_KEY      → -ingest-key
	INBOX_DIR       → -inbox
	DIRECTORY_PATH  → -directory
	SMTP_ADDR       → -smtp
	MAIL_FROM       → -mail-from
	SMS_WEBHOOK_URL → -sms-webhook

SMTP_USERNAME and SMTP_PASSWORD are read from the environment only.
CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error when:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not sqlite or postgres
  - PORT or WORKERS is not a number, or WORKERS is below 1
  - SMTP_ADDR is set without MAIL_FROM
*/
package cliparse
