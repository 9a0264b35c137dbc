package eclesiar

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
	production "github.com/fd1az/eclesiar-analyzer/business/production/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
	"github.com/fd1az/eclesiar-analyzer/internal/cache"
	"github.com/fd1az/eclesiar-analyzer/internal/logger"
)

const (
	npcWageStatistic = "npcwage"
	countriesKey     = "countries"
)

// SourceConfig holds the fan-out and caching settings of a Source.
type SourceConfig struct {
	MarketWorkers   int
	RegionWorkers   int
	CountriesTTL    time.Duration
	NPCWageFallback decimal.Decimal
}

// Source builds snapshots from the live API.
type Source struct {
	client    *Client
	config    SourceConfig
	logger    logger.LoggerInterface
	countries *cache.Cache[string, []CountryDTO]
	now       func() time.Time
}

// NewSource creates a Source. The country list is cached for CountriesTTL.
func NewSource(client *Client, cfg SourceConfig, log logger.LoggerInterface) *Source {
	if cfg.MarketWorkers < 1 {
		cfg.MarketWorkers = 1
	}
	if cfg.RegionWorkers < 1 {
		cfg.RegionWorkers = 1
	}
	return &Source{
		client:    client,
		config:    cfg,
		logger:    log,
		countries: cache.New[string, []CountryDTO](0),
		now:       time.Now,
	}
}

// FetchSnapshot fetches currencies, both sides of every coin market and
// every country's regions. Markets and regions are fetched in parallel.
// A currency or country whose calls fail is skipped; a failed country list
// aborts the pass.
func (s *Source) FetchSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	countries, err := s.countryList(ctx)
	if err != nil {
		return nil, err
	}
	currencies, err := currenciesFrom(countries)
	if err != nil {
		return nil, err
	}

	snap := domain.NewSnapshot(s.now().UTC())
	snap.Currencies = currencies

	var (
		rates   []market.CurrencyRate
		offers  []market.MarketOffer
		regions []production.RegionProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rates, offers, err = s.fetchMarkets(gctx, currencies, snap.FetchedAt)
		return err
	})
	g.Go(func() error {
		var err error
		regions, err = s.fetchRegions(gctx, countries)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rates = append(rates, market.CurrencyRate{Currency: market.Gold, GoldPerUnit: decimal.NewFromInt(1), Timestamp: snap.FetchedAt})
	snap.Rates = market.NewRateTable(rates...)
	snap.Offers = offers
	snap.Regions = regions
	return snap, nil
}

func (s *Source) countryList(ctx context.Context) ([]CountryDTO, error) {
	if cached, ok := s.countries.Get(ctx, countriesKey); ok {
		return cached, nil
	}
	countries, err := s.client.Countries(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeSnapshotFetchFailed, "countries")
	}
	if s.config.CountriesTTL > 0 {
		s.countries.Set(ctx, countriesKey, countries, s.config.CountriesTTL)
	}
	return countries, nil
}

// currenciesFrom extracts the distinct currencies of available countries.
// GOLD must be among them.
func currenciesFrom(countries []CountryDTO) ([]market.Currency, error) {
	seen := make(map[int]bool)
	var out []market.Currency
	goldFound := false

	for _, c := range countries {
		if !c.Available() || c.Currency.ID == 0 || seen[c.Currency.ID] {
			continue
		}
		seen[c.Currency.ID] = true

		cur := market.Currency{APIID: c.Currency.ID, Name: c.Currency.Name, CountryID: c.ID}
		switch {
		case !goldFound && market.IsGoldCurrency(c.Currency.Code, c.Currency.Name):
			cur.ID = market.Gold
			cur.CountryID = 0
			goldFound = true
		case strings.TrimSpace(c.Currency.Code) != "":
			cur.ID = market.CurrencyID(strings.ToUpper(strings.TrimSpace(c.Currency.Code)))
		default:
			cur.ID = market.CurrencyID(fmt.Sprintf("CUR%d", c.Currency.ID))
		}
		out = append(out, cur)
	}

	if !goldFound {
		return nil, apperror.New(apperror.CodeGoldNotFound)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type marketResult struct {
	rate   *market.CurrencyRate
	offers []market.MarketOffer
}

func (s *Source) fetchMarkets(ctx context.Context, currencies []market.Currency, at time.Time) ([]market.CurrencyRate, []market.MarketOffer, error) {
	results := make([]marketResult, len(currencies))

	var g errgroup.Group
	g.SetLimit(s.config.MarketWorkers)
	for i, cur := range currencies {
		if cur.ID.IsGold() {
			continue
		}
		g.Go(func() error {
			res, err := s.fetchMarket(ctx, cur, at)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn(ctx, "skipping currency", "currency", string(cur.ID), "error", err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		rates  []market.CurrencyRate
		offers []market.MarketOffer
	)
	for _, r := range results {
		if r.rate != nil {
			rates = append(rates, *r.rate)
		}
		offers = append(offers, r.offers...)
	}
	return rates, offers, nil
}

// fetchMarket reads both sides of one coin market. The rate is the lowest
// ask: the cheapest offer selling the currency for GOLD.
func (s *Source) fetchMarket(ctx context.Context, cur market.Currency, at time.Time) (marketResult, error) {
	asks, err := s.client.CoinOffers(ctx, cur.APIID, TransactionSell)
	if err != nil {
		return marketResult{}, err
	}
	bids, err := s.client.CoinOffers(ctx, cur.APIID, TransactionBuy)
	if err != nil {
		return marketResult{}, err
	}

	var res marketResult
	for _, o := range asks {
		res.offers = append(res.offers, toOffer(cur.ID, market.Buy, o))
		if o.Rate.IsPositive() && (res.rate == nil || o.Rate.LessThan(res.rate.GoldPerUnit)) {
			res.rate = &market.CurrencyRate{Currency: cur.ID, GoldPerUnit: o.Rate, Timestamp: at}
		}
	}
	for _, o := range bids {
		res.offers = append(res.offers, toOffer(cur.ID, market.Sell, o))
	}
	return res, nil
}

func toOffer(id market.CurrencyID, side market.TransactionType, o CoinOfferDTO) market.MarketOffer {
	return market.MarketOffer{
		Currency: id,
		Type:     side,
		Rate:     o.Rate,
		Amount:   o.Amount,
		OwnerRef: o.OwnerRef(),
	}
}

func (s *Source) fetchRegions(ctx context.Context, countries []CountryDTO) ([]production.RegionProfile, error) {
	wages := s.npcWages(ctx)

	names := make(map[int]string, len(countries))
	for _, c := range countries {
		names[c.ID] = c.Name
	}

	var (
		mu  sync.Mutex
		out []production.RegionProfile
		g   errgroup.Group
	)
	g.SetLimit(s.config.RegionWorkers)
	for _, c := range countries {
		if !c.Available() {
			continue
		}
		g.Go(func() error {
			list, err := s.client.Regions(ctx, c.ID)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn(ctx, "skipping country regions", "country_id", c.ID, "error", err)
				return nil
			}
			profiles := make([]production.RegionProfile, 0, len(list))
			for _, r := range list {
				profiles = append(profiles, s.toRegion(r, names, wages))
			}
			mu.Lock()
			out = append(out, profiles...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].RegionID < out[j].RegionID })
	return out, nil
}

// npcWages maps country id to NPC wage in GOLD. A failed statistic call
// leaves every country on the fallback wage.
func (s *Source) npcWages(ctx context.Context) map[int]decimal.Decimal {
	stats, err := s.client.CountryStatistic(ctx, npcWageStatistic)
	if err != nil {
		s.logger.Warn(ctx, "npc wages unavailable, using fallback",
			"fallback_gold", s.config.NPCWageFallback.String(), "error", err)
		return nil
	}
	wages := make(map[int]decimal.Decimal, len(stats))
	for _, st := range stats {
		if id := st.CountryID(); id != 0 && st.Value.IsPositive() {
			wages[id] = st.Value
		}
	}
	return wages
}

func (s *Source) toRegion(r RegionDTO, names map[int]string, wages map[int]decimal.Decimal) production.RegionProfile {
	countryID := r.CountryID
	if countryID == 0 {
		countryID = r.OriginalCountryID
	}
	countryName, ok := names[countryID]
	if !ok {
		countryName = names[r.OriginalCountryID]
	}
	if countryName == "" {
		countryName = "Unknown"
	}

	bonuses := make(map[production.BonusType]decimal.Decimal, len(r.Bonus))
	score := decimal.Zero
	for _, b := range r.Bonus {
		bt := production.ParseBonusType(b.Type)
		if bt == "" {
			continue
		}
		bonuses[bt] = b.Value
		score = score.Add(b.Value)
	}

	wage, ok := wages[countryID]
	if !ok {
		wage = s.config.NPCWageFallback
	}

	return production.RegionProfile{
		RegionID:         r.Identifier(),
		Name:             r.DisplayName(),
		CountryID:        countryID,
		CountryName:      countryName,
		Pollution:        r.Pollution,
		BonusScore:       score,
		BonusByType:      bonuses,
		BonusDescription: production.FormatBonusDescription(bonuses),
		Population:       r.Population,
		NPCWageGold:      wage,
	}
}
