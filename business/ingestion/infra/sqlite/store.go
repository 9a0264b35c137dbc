// Package sqlite persists snapshots and run summaries in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
	production "github.com/fd1az/eclesiar-analyzer/business/production/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
	"github.com/fd1az/eclesiar-analyzer/internal/database"
)

// Fixed-width so that timestamps sort lexically.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements the snapshot and run stores on one *sql.DB.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database. Call Migrate before first use.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate applies the schema and returns the resulting version.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	v, err := database.Migrate(ctx, s.db, Migrations)
	if err != nil {
		return v, apperror.Internal(apperror.CodeStorageError, "migrate", err)
	}
	return v, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveSnapshot writes the snapshot and all its rows in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback()

	fetchedAt := formatTime(snap.FetchedAt)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO api_snapshots (id, fetched_at, currencies, offers, regions) VALUES (?, ?, ?, ?, ?)`,
		snap.ID.String(), fetchedAt, len(snap.Currencies), len(snap.Offers), len(snap.Regions)); err != nil {
		return storageErr("insert snapshot", err)
	}

	apiIDs := make(map[market.CurrencyID]int, len(snap.Currencies))
	for _, c := range snap.Currencies {
		apiIDs[c.ID] = c.APIID
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_currencies (snapshot_id, currency_id, api_id, name, country_id) VALUES (?, ?, ?, ?, ?)`,
			snap.ID.String(), string(c.ID), c.APIID, c.Name, c.CountryID); err != nil {
			return storageErr("insert currency", err)
		}
	}

	for _, r := range snap.Rates.Rates() {
		ts := r.Timestamp
		if ts.IsZero() {
			ts = snap.FetchedAt
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO currency_rates (snapshot_id, ts, currency_id, code, rate_gold_per_unit) VALUES (?, ?, ?, ?, ?)`,
			snap.ID.String(), formatTime(ts), apiIDs[r.Currency], string(r.Currency), r.GoldPerUnit.String()); err != nil {
			return storageErr("insert rate", err)
		}
	}

	offerStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO market_offers (snapshot_id, currency_id, transaction_type, rate, amount, owner_id) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return storageErr("prepare offers", err)
	}
	defer offerStmt.Close()
	for _, o := range snap.Offers {
		if _, err := offerStmt.ExecContext(ctx,
			snap.ID.String(), string(o.Currency), string(o.Type), o.Rate.String(), o.Amount.String(), o.OwnerRef); err != nil {
			return storageErr("insert offer", err)
		}
	}

	for _, r := range snap.Regions {
		bonuses, err := encodeBonuses(r.BonusByType)
		if err != nil {
			return storageErr("encode bonuses", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO regions_data (
				snapshot_id, region_id, region_name, country_id, country_name, pollution,
				bonus_score, bonus_description, bonus_by_type, population, npc_wage_gold
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID.String(), r.RegionID, r.Name, r.CountryID, r.CountryName, r.Pollution.String(),
			r.BonusScore.String(), r.BonusDescription, bonuses, r.Population, r.NPCWageGold.String()); err != nil {
			return storageErr("insert region", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

// LatestSnapshot loads the most recently fetched snapshot. Rate history is
// not attached.
func (s *Store) LatestSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var id, fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fetched_at FROM api_snapshots ORDER BY fetched_at DESC, rowid DESC LIMIT 1`).Scan(&id, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.CodeNoSnapshot)
	}
	if err != nil {
		return nil, storageErr("latest snapshot", err)
	}

	snapID, err := uuid.Parse(id)
	if err != nil {
		return nil, storageErr("snapshot id", err)
	}
	at, err := parseTime(fetchedAt)
	if err != nil {
		return nil, storageErr("snapshot time", err)
	}

	snap := domain.NewSnapshot(at)
	snap.ID = snapID

	if snap.Currencies, err = s.loadCurrencies(ctx, id); err != nil {
		return nil, err
	}
	rates, err := s.loadRates(ctx, id)
	if err != nil {
		return nil, err
	}
	snap.Rates = market.NewRateTable(rates...)
	if snap.Offers, err = s.loadOffers(ctx, id); err != nil {
		return nil, err
	}
	if snap.Regions, err = s.loadRegions(ctx, id); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) loadCurrencies(ctx context.Context, snapshotID string) ([]market.Currency, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT currency_id, api_id, name, country_id FROM snapshot_currencies WHERE snapshot_id = ? ORDER BY currency_id`,
		snapshotID)
	if err != nil {
		return nil, storageErr("load currencies", err)
	}
	defer rows.Close()

	var out []market.Currency
	for rows.Next() {
		var (
			c  market.Currency
			id string
		)
		if err := rows.Scan(&id, &c.APIID, &c.Name, &c.CountryID); err != nil {
			return nil, storageErr("scan currency", err)
		}
		c.ID = market.CurrencyID(id)
		out = append(out, c)
	}
	return out, rowsErr(rows, "load currencies")
}

func (s *Store) loadRates(ctx context.Context, snapshotID string) ([]market.CurrencyRate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, ts, rate_gold_per_unit FROM currency_rates WHERE snapshot_id = ?`, snapshotID)
	if err != nil {
		return nil, storageErr("load rates", err)
	}
	defer rows.Close()

	var out []market.CurrencyRate
	for rows.Next() {
		var code, ts string
		var rate decimal.Decimal
		if err := rows.Scan(&code, &ts, &rate); err != nil {
			return nil, storageErr("scan rate", err)
		}
		at, err := parseTime(ts)
		if err != nil {
			return nil, storageErr("rate time", err)
		}
		out = append(out, market.CurrencyRate{Currency: market.CurrencyID(code), GoldPerUnit: rate, Timestamp: at})
	}
	return out, rowsErr(rows, "load rates")
}

func (s *Store) loadOffers(ctx context.Context, snapshotID string) ([]market.MarketOffer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT currency_id, transaction_type, rate, amount, owner_id FROM market_offers WHERE snapshot_id = ? ORDER BY rowid`,
		snapshotID)
	if err != nil {
		return nil, storageErr("load offers", err)
	}
	defer rows.Close()

	var out []market.MarketOffer
	for rows.Next() {
		var (
			o        market.MarketOffer
			cur, typ string
		)
		if err := rows.Scan(&cur, &typ, &o.Rate, &o.Amount, &o.OwnerRef); err != nil {
			return nil, storageErr("scan offer", err)
		}
		o.Currency = market.CurrencyID(cur)
		o.Type = market.TransactionType(typ)
		out = append(out, o)
	}
	return out, rowsErr(rows, "load offers")
}

func (s *Store) loadRegions(ctx context.Context, snapshotID string) ([]production.RegionProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT region_id, region_name, country_id, country_name, pollution, bonus_score,
		       bonus_description, bonus_by_type, population, npc_wage_gold
		  FROM regions_data
		 WHERE snapshot_id = ?
		 ORDER BY region_id`, snapshotID)
	if err != nil {
		return nil, storageErr("load regions", err)
	}
	defer rows.Close()

	var out []production.RegionProfile
	for rows.Next() {
		var (
			r       production.RegionProfile
			bonuses string
		)
		if err := rows.Scan(&r.RegionID, &r.Name, &r.CountryID, &r.CountryName, &r.Pollution, &r.BonusScore,
			&r.BonusDescription, &bonuses, &r.Population, &r.NPCWageGold); err != nil {
			return nil, storageErr("scan region", err)
		}
		if r.BonusByType, err = decodeBonuses(bonuses); err != nil {
			return nil, storageErr("decode bonuses", err)
		}
		out = append(out, r)
	}
	return out, rowsErr(rows, "load regions")
}

// RateHistory returns the last limit rates of a currency across snapshots,
// oldest first.
func (s *Store) RateHistory(ctx context.Context, currency market.CurrencyID, limit int) ([]decimal.Decimal, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT rate_gold_per_unit FROM currency_rates WHERE code = ? ORDER BY ts DESC LIMIT ?`,
		string(currency), limit)
	if err != nil {
		return nil, storageErr("rate history", err)
	}
	defer rows.Close()

	var out []decimal.Decimal
	for rows.Next() {
		var rate decimal.Decimal
		if err := rows.Scan(&rate); err != nil {
			return nil, storageErr("scan rate history", err)
		}
		out = append(out, rate)
	}
	if err := rowsErr(rows, "rate history"); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// SaveReportSummary stores one run summary.
func (s *Store) SaveReportSummary(ctx context.Context, r domain.RunRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO historical_reports (run_id, snapshot_id, generated_at, opportunities, top_profit_pct, regions_ranked)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID.String(), r.SnapshotID.String(), formatTime(r.GeneratedAt),
		r.Opportunities, r.TopProfitPct.String(), r.RegionsRanked)
	if err != nil {
		return storageErr("save report summary", err)
	}
	return nil
}

// ReportHistory returns up to limit run summaries, newest first.
// A non-positive limit returns all of them.
func (s *Store) ReportHistory(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	query := `
		SELECT run_id, snapshot_id, generated_at, opportunities, top_profit_pct, regions_ranked
		  FROM historical_reports
		 ORDER BY generated_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("report history", err)
	}
	defer rows.Close()

	var out []domain.RunRecord
	for rows.Next() {
		var (
			r                   domain.RunRecord
			runID, snapID, when string
		)
		if err := rows.Scan(&runID, &snapID, &when, &r.Opportunities, &r.TopProfitPct, &r.RegionsRanked); err != nil {
			return nil, storageErr("scan report", err)
		}
		if r.RunID, err = uuid.Parse(runID); err != nil {
			return nil, storageErr("run id", err)
		}
		if r.SnapshotID, err = uuid.Parse(snapID); err != nil {
			return nil, storageErr("snapshot id", err)
		}
		if r.GeneratedAt, err = parseTime(when); err != nil {
			return nil, storageErr("report time", err)
		}
		out = append(out, r)
	}
	return out, rowsErr(rows, "report history")
}

func encodeBonuses(b map[production.BonusType]decimal.Decimal) (string, error) {
	if len(b) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(b)
	return string(raw), err
}

func decodeBonuses(s string) (map[production.BonusType]decimal.Decimal, error) {
	out := make(map[production.BonusType]decimal.Decimal)
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(tsLayout, s)
}

func rowsErr(rows *sql.Rows, op string) error {
	if err := rows.Err(); err != nil {
		return storageErr(op, err)
	}
	return nil
}

func storageErr(op string, err error) error {
	return apperror.Internal(apperror.CodeStorageError, op, err)
}
