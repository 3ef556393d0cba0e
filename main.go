// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/phasecheck/cliparse"
	"github.com/danielhkuo/phasecheck/db"
	"github.com/danielhkuo/phasecheck/inbox"
	"github.com/danielhkuo/phasecheck/middleware"
	"github.com/danielhkuo/phasecheck/models"
	"github.com/danielhkuo/phasecheck/notify"
	"github.com/danielhkuo/phasecheck/pipeline"
	"github.com/danielhkuo/phasecheck/router"
)

func main() {
	var err error

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database (opens and pings)
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	notifier, err := newNotifier(cfg)
	if err != nil {
		slog.Error("notifier setup failed", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(db.NewResultStore(dbConn), notifier, cfg.Workers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Drop-folder ingestion
	if cfg.InboxDir != "" {
		w := inbox.New(cfg.InboxDir, p)
		go func() {
			if err := w.Run(ctx); err != nil {
				slog.Error("inbox stopped", "dir", cfg.InboxDir, "error", err)
			}
		}()
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, p)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "workers", cfg.Workers)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// newNotifier loads the user directory and registers a sender per configured
// transport. With no transport configured, messages go to the log.
func newNotifier(cfg cliparse.Config) (*notify.Notifier, error) {
	directory := notify.NewDirectory(nil)
	if cfg.DirectoryPath != "" {
		d, err := notify.LoadDirectory(cfg.DirectoryPath)
		if err != nil {
			return nil, err
		}
		directory = d
		slog.Info("User directory loaded", "path", cfg.DirectoryPath, "contacts", d.Len())
	} else {
		slog.Warn("no user directory configured, notifications will be skipped")
	}

	senders := map[string]notify.Sender{}
	if cfg.SMTPAddr != "" {
		senders[models.ChannelEmail] = notify.NewEmailSender(cfg.SMTPAddr, cfg.MailFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	if cfg.SMSWebhookURL != "" {
		senders[models.ChannelSMS] = notify.NewSMSSender(cfg.SMSWebhookURL)
	}
	if len(senders) == 0 {
		senders[models.ChannelLog] = notify.LogSender{}
	}

	return notify.NewNotifier(directory, senders), nil
}
