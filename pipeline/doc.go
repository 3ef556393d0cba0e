// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pipeline composes the processing stages for a batch of submissions.

# Flow

Every record flows one way:

	intake (validate) → classify → recommend → notify → store

Rejected records are logged and counted. Accepted records are handled
concurrently, at most Workers at a time; there is no shared state between
them, so the order of handling does not matter.

# Usage

	p := pipeline.New(store, notifier, cfg.Workers)
	summary, err := p.ProcessJSON(ctx, body)

# Failures

Notification and storage failures are logged and reflected in the
Summary (Delivered, StoreFailures). They never abort the batch and
nothing is retried.
*/
package pipeline
