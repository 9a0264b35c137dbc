// Package domain contains the core domain types for the market context:
// currencies, GOLD rates and coin-market offer books.
package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CurrencyID identifies a currency by its market code (e.g. "PLN").
type CurrencyID string

// Gold is the reference currency every rate is expressed in.
const Gold CurrencyID = "GOLD"

// IsGold reports whether id is the reference currency.
func (id CurrencyID) IsGold() bool {
	return id == Gold
}

// Currency describes one tradable currency.
type Currency struct {
	ID        CurrencyID
	APIID     int // numeric id used by the game API
	Name      string
	CountryID int // issuing country, 0 for GOLD
}

// IsGoldCurrency reports whether a raw API currency is GOLD, matching by
// code or name the way the game lists it.
func IsGoldCurrency(code, name string) bool {
	return strings.EqualFold(strings.TrimSpace(code), string(Gold)) ||
		strings.EqualFold(strings.TrimSpace(name), "gold")
}

// Registry indexes the currencies of one snapshot by code and API id.
// It is built once and then only read.
type Registry struct {
	byID    map[CurrencyID]Currency
	byAPIID map[int]CurrencyID
}

// NewRegistry creates a new empty currency registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[CurrencyID]Currency),
		byAPIID: make(map[int]CurrencyID),
	}
}

// Register adds a currency. Registering the same code or API id twice is an error.
func (r *Registry) Register(c Currency) error {
	if c.ID == "" {
		return fmt.Errorf("currency: empty code for api id %d", c.APIID)
	}
	if _, exists := r.byID[c.ID]; exists {
		return fmt.Errorf("currency: %s already registered", c.ID)
	}
	if prev, exists := r.byAPIID[c.APIID]; exists {
		return fmt.Errorf("currency: api id %d already registered as %s", c.APIID, prev)
	}

	r.byID[c.ID] = c
	r.byAPIID[c.APIID] = c.ID
	return nil
}

// Get retrieves a currency by code.
func (r *Registry) Get(id CurrencyID) (Currency, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// ByAPIID retrieves a currency by its numeric API id.
func (r *Registry) ByAPIID(apiID int) (Currency, bool) {
	id, ok := r.byAPIID[apiID]
	if !ok {
		return Currency{}, false
	}
	return r.byID[id], true
}

// Gold returns the registered GOLD currency, if any.
func (r *Registry) Gold() (Currency, bool) {
	return r.Get(Gold)
}

// All returns every registered currency ordered by code.
func (r *Registry) All() []Currency {
	result := make([]Currency, 0, len(r.byID))
	for _, c := range r.byID {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Tradable returns every non-GOLD currency ordered by code.
func (r *Registry) Tradable() []Currency {
	all := r.All()
	result := all[:0]
	for _, c := range all {
		if !c.ID.IsGold() {
			result = append(result, c)
		}
	}
	return result
}

// Count returns the number of registered currencies.
func (r *Registry) Count() int {
	return len(r.byID)
}
