// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify delivers phase recommendations to users by email or SMS.

# User Directory

Addresses come from a directory file (YAML or JSON list):

	dir, err := notify.LoadDirectory("users.yaml")

A user missing from the directory, or without an address for any
configured channel, is skipped rather than treated as an error.

# Senders

  - EmailSender: SMTP relay, multipart text and HTML
  - SMSSender: JSON POST to an SMS gateway webhook
  - LogSender: logs instead of sending (no transport configured)

# Notifier

	n := notify.NewNotifier(dir, map[string]notify.Sender{
		models.ChannelEmail: notify.NewEmailSender(addr, from, user, pass),
	})
	delivery := n.Notify(ctx, userID, phase, recs)

The contact's preferred channel is tried first, then email, SMS and log.
The returned models.Delivery has status sent, skipped, or failed.
*/
package notify
