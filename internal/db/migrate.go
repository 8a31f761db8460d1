package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and are
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS campaigns (
		id                TEXT PRIMARY KEY,
		short_id          TEXT NOT NULL,
		title             TEXT NOT NULL,
		target_amount     INTEGER NOT NULL DEFAULT 0 CHECK(target_amount >= 0),
		fundraising_start TEXT NOT NULL,
		fundraising_end   TEXT NOT NULL,
		status            TEXT NOT NULL DEFAULT 'draft'
		                  CHECK(status IN ('draft','fundraising','executing','completed','cancelled')),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_campaigns_short_id ON campaigns(UPPER(short_id))`,

	`CREATE TABLE IF NOT EXISTS campaign_phases (
		id                 TEXT PRIMARY KEY,
		campaign_id        TEXT NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
		position           INTEGER NOT NULL CHECK(position >= 0),
		name               TEXT NOT NULL,
		location           TEXT NOT NULL,
		procurement_at     TEXT NOT NULL,
		preparation_at     TEXT NOT NULL,
		distribution_at    TEXT NOT NULL,
		ingredient_share   TEXT NOT NULL,
		preparation_share  TEXT NOT NULL,
		distribution_share TEXT NOT NULL,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_campaign_phases_campaign ON campaign_phases(campaign_id, position)`,
}
