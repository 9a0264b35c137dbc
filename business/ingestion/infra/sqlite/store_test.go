package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
	production "github.com/fd1az/eclesiar-analyzer/business/production/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
	"github.com/fd1az/eclesiar-analyzer/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewStore(db)
	v, err := store.Migrate(ctx)
	require.NoError(t, err)
	require.Equal(t, len(Migrations), v)
	return store
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleSnapshot(at time.Time, plnRate string) *domain.Snapshot {
	snap := domain.NewSnapshot(at)
	snap.Currencies = []market.Currency{
		{ID: market.Gold, APIID: 1, Name: "Gold"},
		{ID: "PLN", APIID: 10, Name: "Zloty", CountryID: 1},
	}
	snap.Rates = market.NewRateTable(
		market.CurrencyRate{Currency: market.Gold, GoldPerUnit: d("1"), Timestamp: at},
		market.CurrencyRate{Currency: "PLN", GoldPerUnit: d(plnRate), Timestamp: at},
	)
	snap.Offers = []market.MarketOffer{
		{Currency: "PLN", Type: market.Buy, Rate: d(plnRate), Amount: d("100"), OwnerRef: "account:5"},
		{Currency: "PLN", Type: market.Sell, Rate: d("0.24"), Amount: d("80")},
	}
	snap.Regions = []production.RegionProfile{{
		RegionID:         101,
		Name:             "Mazovia",
		CountryID:        1,
		CountryName:      "Poland",
		Pollution:        d("12.5"),
		BonusScore:       d("35"),
		BonusByType:      map[production.BonusType]decimal.Decimal{production.BonusWeapons: d("20"), production.BonusIron: d("15")},
		BonusDescription: "IRON:15 WEAPONS:20",
		Population:       900,
		NPCWageGold:      d("3.5"),
	}}
	return snap
}

func TestStore_LatestSnapshotEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LatestSnapshot(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeNoSnapshot))
}

func TestStore_SaveAndLoadLatest(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	older := sampleSnapshot(t0, "0.25")
	newer := sampleSnapshot(t0.Add(time.Hour), "0.27")
	require.NoError(t, store.SaveSnapshot(ctx, newer))
	require.NoError(t, store.SaveSnapshot(ctx, older))

	got, err := store.LatestSnapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, newer.ID, got.ID)
	assert.True(t, got.FetchedAt.Equal(newer.FetchedAt))
	assert.Equal(t, newer.Currencies, got.Currencies)

	rate, ok := got.Rates.Get("PLN")
	require.True(t, ok)
	assert.Equal(t, "0.27", rate.GoldPerUnit.String())
	assert.True(t, rate.Timestamp.Equal(newer.FetchedAt))
	assert.Equal(t, 2, got.Rates.Len())

	require.Len(t, got.Offers, 2)
	assert.Equal(t, market.Buy, got.Offers[0].Type)
	assert.Equal(t, "account:5", got.Offers[0].OwnerRef)
	assert.Equal(t, "80", got.Offers[1].Amount.String())

	require.Len(t, got.Regions, 1)
	r := got.Regions[0]
	assert.Equal(t, "Mazovia", r.Name)
	assert.Equal(t, "12.5", r.Pollution.String())
	assert.Equal(t, "20", r.BonusPct(production.BonusWeapons).String())
	assert.Equal(t, "15", r.BonusPct(production.BonusIron).String())
	assert.Equal(t, "3.5", r.NPCWageGold.String())
	assert.Equal(t, 900, r.Population)
}

func TestStore_RateHistoryOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, rate := range []string{"0.21", "0.22", "0.23", "0.24"} {
		require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot(t0.Add(time.Duration(i)*time.Minute), rate)))
	}

	hist, err := store.RateHistory(ctx, "PLN", 3)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, []string{"0.22", "0.23", "0.24"}, []string{hist[0].String(), hist[1].String(), hist[2].String()})

	none, err := store.RateHistory(ctx, "USD", 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_ReportHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveReportSummary(ctx, domain.RunRecord{
			RunID:         uuid.New(),
			SnapshotID:    uuid.New(),
			GeneratedAt:   t0.Add(time.Duration(i) * time.Hour),
			Opportunities: i,
			TopProfitPct:  d("1.5").Add(decimal.NewFromInt(int64(i))),
			RegionsRanked: 10 * i,
		}))
	}

	got, err := store.ReportHistory(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Opportunities)
	assert.Equal(t, "3.5", got[0].TopProfitPct.String())
	assert.True(t, got[0].GeneratedAt.Equal(t0.Add(2*time.Hour)))
	assert.Equal(t, 1, got[1].Opportunities)

	all, err := store.ReportHistory(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_Ping(t *testing.T) {
	assert.NoError(t, newTestStore(t).Ping(context.Background()))
}
