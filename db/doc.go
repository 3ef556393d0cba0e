// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and result storage.

# Connections

Open selects the driver from DATABASE_TYPE ("sqlite" or "postgres"):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on SQLite and PostgreSQL.

# Tables

  - phase_result: one row per (user_id, submission_ts) with answers,
    scores, phase, recommendations and delivery outcome

# Results

	store := db.NewResultStore(conn)
	id, err := store.SaveResult(ctx, result)        // upsert
	r, err := store.GetResult(ctx, userID, ts)      // ErrNotFound if absent
	rs, err := store.ListResults(ctx, userID, 30)   // newest first

# Indexes

  - phase_result.(user_id, submission_ts) (unique)
  - phase_result.user_id
  - phase_result.phase
*/
package db
