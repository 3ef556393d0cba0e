// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the phasecheck API server.

phasecheck classifies daily menstrual-cycle questionnaires into a phase
(Menstruation, Follicular, Ovulation or Luteal), sends each user the
recommendations for that phase, and keeps the outcome.

# Starting the Server

Settings come from flags, the environment, or a .env file:

	DATABASE_URL=file:phasecheck.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file/URI or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - WORKERS (-w): Submissions handled concurrently (default: 4)
  - INGEST_KEY (--ingest-key): Shared secret for POST /submissions and result reads
  - INBOX_DIR (--inbox): Directory watched for batch files
  - DIRECTORY_PATH (--directory): YAML or JSON user contact list
  - SMTP_ADDR, SMTP_USERNAME, SMTP_PASSWORD, MAIL_FROM: Email delivery
  - SMS_WEBHOOK_URL (--sms-webhook): SMS gateway

Without SMTP or SMS settings, notifications are written to the log.

# Architecture

Batches enter over HTTP or the inbox and flow through the pipeline:

  - intake: Record validation and answer normalization
  - classify: Heuristic phase scoring
  - recommend: Static recommendations per phase
  - notify: User directory and delivery (email, SMS, log)
  - db: Result storage (SQLite or PostgreSQL)
  - pipeline: Runs the stages for each record, concurrently
  - handlers, router, middleware: HTTP API
  - inbox: Drop-folder ingestion
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
