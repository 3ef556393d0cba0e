// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards ingestion and stored results.

# Ingest Keys

Batch uploads and result reads may be protected by a shared secret
(INGEST_KEY). Clients
send it in the X-Ingest-Key header:

	err := auth.ValidateIngestKey(r.Header.Get("X-Ingest-Key"), cfg.IngestKey)

Both values are hashed with SHA-256 and compared in constant time. An
empty presented or configured key never validates; callers that want the
check disabled skip it entirely (see middleware.RequireIngestKey).
*/
package auth
