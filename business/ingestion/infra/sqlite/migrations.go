package sqlite

import "github.com/fd1az/eclesiar-analyzer/internal/database"

// Migrations is the snapshot store schema. Decimals are stored as TEXT so
// they round-trip exactly.
var Migrations = []database.Migration{
	{
		Version: 1,
		Name:    "snapshots",
		SQL: `
CREATE TABLE IF NOT EXISTS api_snapshots (
	id         TEXT PRIMARY KEY,
	fetched_at TEXT NOT NULL,
	currencies INTEGER NOT NULL,
	offers     INTEGER NOT NULL,
	regions    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_api_snapshots_fetched_at ON api_snapshots(fetched_at);

CREATE TABLE IF NOT EXISTS snapshot_currencies (
	snapshot_id TEXT NOT NULL REFERENCES api_snapshots(id) ON DELETE CASCADE,
	currency_id TEXT NOT NULL,
	api_id      INTEGER NOT NULL,
	name        TEXT NOT NULL,
	country_id  INTEGER NOT NULL,
	PRIMARY KEY (snapshot_id, currency_id)
);

CREATE TABLE IF NOT EXISTS currency_rates (
	snapshot_id        TEXT NOT NULL REFERENCES api_snapshots(id) ON DELETE CASCADE,
	ts                 TEXT NOT NULL,
	currency_id        INTEGER NOT NULL,
	code               TEXT NOT NULL,
	rate_gold_per_unit TEXT NOT NULL,
	PRIMARY KEY (snapshot_id, code)
);
CREATE INDEX IF NOT EXISTS idx_currency_rates_code_ts ON currency_rates(code, ts);

CREATE TABLE IF NOT EXISTS market_offers (
	snapshot_id      TEXT NOT NULL REFERENCES api_snapshots(id) ON DELETE CASCADE,
	currency_id      TEXT NOT NULL,
	transaction_type TEXT NOT NULL,
	rate             TEXT NOT NULL,
	amount           TEXT NOT NULL,
	owner_id         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_market_offers_snapshot ON market_offers(snapshot_id);

CREATE TABLE IF NOT EXISTS regions_data (
	snapshot_id       TEXT NOT NULL REFERENCES api_snapshots(id) ON DELETE CASCADE,
	region_id         INTEGER NOT NULL,
	region_name       TEXT NOT NULL,
	country_id        INTEGER NOT NULL,
	country_name      TEXT NOT NULL,
	pollution         TEXT NOT NULL,
	bonus_score       TEXT NOT NULL,
	bonus_description TEXT NOT NULL,
	bonus_by_type     TEXT NOT NULL,
	population        INTEGER NOT NULL,
	npc_wage_gold     TEXT NOT NULL,
	PRIMARY KEY (snapshot_id, region_id)
)`,
	},
	{
		Version: 2,
		Name:    "historical reports",
		SQL: `
CREATE TABLE IF NOT EXISTS historical_reports (
	run_id         TEXT PRIMARY KEY,
	snapshot_id    TEXT NOT NULL,
	generated_at   TEXT NOT NULL,
	opportunities  INTEGER NOT NULL,
	top_profit_pct TEXT NOT NULL,
	regions_ranked INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_historical_reports_generated_at ON historical_reports(generated_at)`,
	},
}
