// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	migrate "github.com/rubenv/sql-migrate"
)

// The serial counter is seeded at 999 so the first allocated serial is
// 1000, matching OpenSSL-style serial files.
func Migration() *migrate.MemoryMigrationSource {
	return &migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id: "simpleca_1",
				Up: []string{
					`CREATE TABLE IF NOT EXISTS certs (
						serial_number      NUMERIC(49) PRIMARY KEY,
						subject            TEXT NOT NULL,
						certificate        TEXT,
						key                TEXT,
						fingerprint        VARCHAR(64) NOT NULL,
						not_before         TIMESTAMP NOT NULL,
						not_after          TIMESTAMP NOT NULL,
						revoked            BOOLEAN NOT NULL DEFAULT false,
						revoked_at         TIMESTAMP,
						revocation_reason  SMALLINT,
						predecessor_serial NUMERIC(49),
						created_at         TIMESTAMP NOT NULL
					)`,
					`CREATE INDEX IF NOT EXISTS idx_certs_subject ON certs (subject, created_at)`,
					`CREATE TABLE IF NOT EXISTS ca_state (
						id              SMALLINT PRIMARY KEY CHECK (id = 1),
						last_serial     NUMERIC(49) NOT NULL,
						last_crl_number NUMERIC(49) NOT NULL
					)`,
					`INSERT INTO ca_state (id, last_serial, last_crl_number)
						VALUES (1, 999, 0) ON CONFLICT (id) DO NOTHING`,
				},
				Down: []string{
					"DROP TABLE certs",
					"DROP TABLE ca_state",
				},
			},
		},
	}
}
