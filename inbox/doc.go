// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package inbox ingests batch files dropped into a directory.

Any *.json file written to the inbox is handed to the pipeline once it has
stopped changing for DefaultSettle. Files already present when Run starts
are handled first, in name order.

# Layout

	INBOX_DIR/
	    2024-03-15.json   waiting
	    processed/        batches that decoded as a JSON array
	    failed/           files that did not

A batch with invalid records still counts as processed; per-record
rejections are logged by the pipeline. Files are never deleted.

# Usage

	w := inbox.New(cfg.InboxDir, p)
	go w.Run(ctx)
*/
package inbox
