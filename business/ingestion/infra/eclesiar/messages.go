// Package eclesiar implements the snapshot source on top of the Eclesiar
// game REST API.
package eclesiar

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction types as the API names them. They describe the offer owner:
// a SELL offer sells the currency, so the trader buys from it.
const (
	TransactionBuy  = "BUY"
	TransactionSell = "SELL"
)

// Envelope is the wrapper every endpoint returns.
type Envelope struct {
	Code        int             `json:"code"`
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
}

// CountryDTO is one entry of /countries.
type CountryDTO struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	IsAvailable *bool       `json:"is_available"`
	Currency    CurrencyDTO `json:"currency"`
}

// Available reports whether the country is playable. Missing means yes.
func (c CountryDTO) Available() bool {
	return c.IsAvailable == nil || *c.IsAvailable
}

// CurrencyDTO is the currency embedded in a country.
type CurrencyDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// CoinOfferDTO is one entry of /market/coin/get.
type CoinOfferDTO struct {
	Rate    decimal.Decimal `json:"rate"`
	Amount  decimal.Decimal `json:"amount"`
	OwnerID int             `json:"owner_id"`
	Owner   *OwnerDTO       `json:"owner"`
}

// OwnerDTO identifies who posted an offer.
type OwnerDTO struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// OwnerRef renders the owner as "type:id", or the bare id.
func (o CoinOfferDTO) OwnerRef() string {
	if o.Owner != nil && o.Owner.ID != 0 {
		kind := o.Owner.Type
		if kind == "" {
			kind = "account"
		}
		return kind + ":" + strconv.Itoa(o.Owner.ID)
	}
	if o.OwnerID != 0 {
		return strconv.Itoa(o.OwnerID)
	}
	return ""
}

// RegionDTO is one entry of /country/regions.
type RegionDTO struct {
	ID                int             `json:"id"`
	RegionID          int             `json:"region_id"`
	RegionName        string          `json:"region_name"`
	Name              string          `json:"name"`
	CountryID         int             `json:"country_id"`
	OriginalCountryID int             `json:"original_country_id"`
	Pollution         decimal.Decimal `json:"pollution"`
	Bonus             []BonusDTO      `json:"bonus"`
	Population        int             `json:"population"`
	NPCs              int             `json:"nb_npcs"`
}

// Identifier returns the region id under whichever key the API used.
func (r RegionDTO) Identifier() int {
	if r.ID != 0 {
		return r.ID
	}
	return r.RegionID
}

// DisplayName returns the region name under whichever key the API used.
func (r RegionDTO) DisplayName() string {
	if name := strings.TrimSpace(r.RegionName); name != "" {
		return name
	}
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return "Unknown"
}

// BonusDTO is one regional production bonus, in percent.
type BonusDTO struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// StatisticDTO is one entry of /statistics/country.
type StatisticDTO struct {
	ID      int `json:"id"`
	Country struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"country"`
	Value decimal.Decimal `json:"value"`
}

// CountryID returns the country the value belongs to.
func (s StatisticDTO) CountryID() int {
	if s.Country.ID != 0 {
		return s.Country.ID
	}
	return s.ID
}
