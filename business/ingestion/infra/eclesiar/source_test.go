package eclesiar

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
	production "github.com/fd1az/eclesiar-analyzer/business/production/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
	"github.com/fd1az/eclesiar-analyzer/internal/logger"
)

const countriesJSON = `{"code":200,"description":"ok","data":[
 {"id":1,"name":"Poland","currency":{"id":10,"name":"Zloty","code":"PLN"}},
 {"id":2,"name":"USA","currency":{"id":11,"name":"Dollar","code":"USD"}},
 {"id":3,"name":"Closed","is_available":false,"currency":{"id":12,"name":"Old","code":"OLD"}},
 {"id":4,"name":"Treasury","currency":{"id":1,"name":"Gold","code":"GOLD"}}
]}`

type fakeAPI struct {
	t         *testing.T
	countries atomic.Int32
	failUSD   bool
	failWages bool
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/countries", func(w http.ResponseWriter, r *http.Request) {
		f.countries.Add(1)
		assert.Equal(f.t, "secret", r.URL.Query().Get("api_key"))
		assert.Equal(f.t, "Bearer tok", r.Header.Get("Authorization"))
		io.WriteString(w, countriesJSON)
	})
	mux.HandleFunc("/market/coin/get", func(w http.ResponseWriter, r *http.Request) {
		cur, tx := r.URL.Query().Get("currency_id"), r.URL.Query().Get("transaction")
		switch {
		case cur == "11" && f.failUSD:
			io.WriteString(w, `{"code":500,"description":"boom","data":null}`)
		case cur == "10" && tx == "SELL":
			io.WriteString(w, `{"code":200,"data":[
			 {"rate":0.26,"amount":100,"owner":{"id":5,"type":"account"}},
			 {"rate":"0.251","amount":"40","owner_id":6}]}`)
		case cur == "10" && tx == "BUY":
			io.WriteString(w, `{"code":200,"data":[{"rate":0.24,"amount":80}]}`)
		case cur == "11" && tx == "SELL":
			io.WriteString(w, `{"code":200,"data":[{"rate":0.15,"amount":10}]}`)
		case cur == "11" && tx == "BUY":
			io.WriteString(w, `{"code":200,"data":[]}`)
		default:
			f.t.Errorf("unexpected market call currency=%s tx=%s", cur, tx)
			io.WriteString(w, `{"code":200,"data":[]}`)
		}
	})
	mux.HandleFunc("/country/regions", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("country_id") {
		case "1":
			io.WriteString(w, `{"code":200,"data":[
			 {"id":101,"region_name":"Mazovia","country_id":1,"pollution":12,"population":900,
			  "bonus":[{"type":"weapons","value":20},{"type":"IRON","value":15}]}]}`)
		case "2":
			io.WriteString(w, `{"code":200,"data":[{"region_id":201,"name":"Texas","country_id":2,"pollution":0,"bonus":[]}]}`)
		default:
			io.WriteString(w, `{"code":200,"data":[]}`)
		}
	})
	mux.HandleFunc("/statistics/country", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(f.t, "npcwage", r.URL.Query().Get("statistic"))
		if f.failWages {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		io.WriteString(w, `{"code":200,"data":[{"country":{"id":1,"name":"Poland"},"value":3.5}]}`)
	})
	return mux
}

func newTestSource(t *testing.T, api *fakeAPI) *Source {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	log := logger.New(io.Discard, logger.LevelDebug, "test", nil)
	client, err := NewClient(ClientConfig{
		BaseURL:   srv.URL,
		APIKey:    "secret",
		AuthToken: "tok",
		Timeout:   time.Second,
	}, log)
	require.NoError(t, err)

	src := NewSource(client, SourceConfig{
		MarketWorkers:   2,
		RegionWorkers:   2,
		CountriesTTL:    time.Minute,
		NPCWageFallback: decimal.NewFromInt(5),
	}, log)
	src.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return src
}

func TestSource_FetchSnapshot(t *testing.T) {
	api := &fakeAPI{t: t}
	src := newTestSource(t, api)

	snap, err := src.FetchSnapshot(context.Background())
	require.NoError(t, err)

	// unavailable country currency is skipped, GOLD is recognised by code
	ids := make([]market.CurrencyID, 0, len(snap.Currencies))
	for _, c := range snap.Currencies {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []market.CurrencyID{market.Gold, "PLN", "USD"}, ids)

	// rate is the lowest ask
	pln, ok := snap.Rates.Get("PLN")
	require.True(t, ok)
	assert.Equal(t, "0.251", pln.GoldPerUnit.String())
	gold, ok := snap.Rates.Get(market.Gold)
	require.True(t, ok)
	assert.True(t, gold.GoldPerUnit.Equal(decimal.NewFromInt(1)))

	// API SELL offers are the trader's buy side
	books := snap.Books()
	best, ok := books["PLN"].Best(market.Buy)
	require.True(t, ok)
	assert.Equal(t, "0.251", best.Rate.String())
	assert.Equal(t, "6", best.OwnerRef)
	bid, ok := books["PLN"].Best(market.Sell)
	require.True(t, ok)
	assert.Equal(t, "0.24", bid.Rate.String())
	assert.Len(t, snap.Offers, 4)

	require.Len(t, snap.Regions, 2)
	maz := snap.Regions[0]
	assert.Equal(t, 101, maz.RegionID)
	assert.Equal(t, "Mazovia", maz.Name)
	assert.Equal(t, "Poland", maz.CountryName)
	assert.Equal(t, "20", maz.BonusPct(production.BonusWeapons).String())
	assert.Equal(t, "35", maz.BonusScore.String())
	assert.Equal(t, "IRON:15 WEAPONS:20", maz.BonusDescription)
	assert.Equal(t, "3.5", maz.NPCWageGold.String())

	tex := snap.Regions[1]
	assert.Equal(t, 201, tex.RegionID)
	assert.Equal(t, "Texas", tex.Name)
	assert.Equal(t, "5", tex.NPCWageGold.String(), "fallback wage")
}

func TestSource_SkipsFailingCurrency(t *testing.T) {
	api := &fakeAPI{t: t, failUSD: true}
	src := newTestSource(t, api)

	snap, err := src.FetchSnapshot(context.Background())
	require.NoError(t, err)

	assert.False(t, snap.Rates.Has("USD"))
	assert.True(t, snap.Rates.Has("PLN"))
	for _, o := range snap.Offers {
		assert.NotEqual(t, market.CurrencyID("USD"), o.Currency)
	}
}

func TestSource_WageFallbackWhenStatisticFails(t *testing.T) {
	api := &fakeAPI{t: t, failWages: true}
	src := newTestSource(t, api)

	snap, err := src.FetchSnapshot(context.Background())
	require.NoError(t, err)
	for _, r := range snap.Regions {
		assert.Equal(t, "5", r.NPCWageGold.String())
	}
}

func TestSource_CachesCountries(t *testing.T) {
	api := &fakeAPI{t: t}
	src := newTestSource(t, api)

	for i := 0; i < 2; i++ {
		_, err := src.FetchSnapshot(context.Background())
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, api.countries.Load())
}

func TestCurrenciesFrom_RequiresGold(t *testing.T) {
	_, err := currenciesFrom([]CountryDTO{{ID: 1, Currency: CurrencyDTO{ID: 10, Code: "PLN"}}})
	assert.True(t, apperror.HasCode(err, apperror.CodeGoldNotFound))

	// GOLD matched by name when the code is empty
	got, err := currenciesFrom([]CountryDTO{
		{ID: 1, Currency: CurrencyDTO{ID: 10, Code: "pln"}},
		{ID: 2, Currency: CurrencyDTO{ID: 1, Name: "gold"}},
		{ID: 3, Currency: CurrencyDTO{ID: 10, Code: "PLN"}},
		{ID: 4, Currency: CurrencyDTO{ID: 13}},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, market.CurrencyID("CUR13"), got[0].ID)
	assert.Equal(t, market.Gold, got[1].ID)
	assert.Equal(t, market.CurrencyID("PLN"), got[2].ID)
}

func TestClient_EnvelopeErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   apperror.Code
	}{
		{"envelope code", http.StatusOK, `{"code":403,"description":"forbidden"}`, apperror.CodeEclesiarAPIError},
		{"http error", http.StatusNotFound, `{"code":404,"description":"missing"}`, apperror.CodeEclesiarAPIError},
		{"rate limited", http.StatusTooManyRequests, ``, apperror.CodeEclesiarRateLimited},
		{"not json", http.StatusOK, `<html>`, apperror.CodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client, err := NewClient(ClientConfig{BaseURL: srv.URL}, logger.New(io.Discard, logger.LevelInfo, "test", nil))
			require.NoError(t, err)

			_, err = client.Countries(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.GetCode(err))
		})
	}
}
