// Package domain contains the core domain types for the production context:
// item types, regions, company setups and production results.
package domain

import (
	"fmt"
	"strings"

	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
)

// Category separates raw materials from manufactured products.
type Category string

const (
	RawMaterial Category = "RAW_MATERIAL"
	Product     Category = "PRODUCT"
)

// Building is the facility whose level boosts production of an item.
type Building string

const (
	ProductionField Building = "Production Field"
	IndustrialZone  Building = "Industrial Zone"
)

// BonusType is the regional bonus category an item draws from, as the game
// names it in bonus descriptions.
type BonusType string

const (
	BonusGrain    BonusType = "GRAIN"
	BonusIron     BonusType = "IRON"
	BonusTitanium BonusType = "TITANIUM"
	BonusOil      BonusType = "OIL"
	BonusFood     BonusType = "FOOD"
	BonusWeapons  BonusType = "WEAPONS"
	BonusAircraft BonusType = "AIRCRAFT"
	BonusTickets  BonusType = "TICKETS"
	BonusFuel     BonusType = "FUEL"
	BonusGeneral  BonusType = "GENERAL"
)

// ItemType is a producible item family. Qualities Q1..Q5 are computed for
// each family separately.
type ItemType string

const (
	Grain          ItemType = "GRAIN"
	Iron           ItemType = "IRON"
	Titanium       ItemType = "TITANIUM"
	Fuel           ItemType = "FUEL"
	Weapon         ItemType = "WEAPON"
	Aircraft       ItemType = "AIRCRAFT"
	Food           ItemType = "FOOD"
	AirplaneTicket ItemType = "AIRPLANE_TICKET"
)

// Qualities is the number of quality levels per item.
const Qualities = 5

type itemSpec struct {
	category Category
	bonuses  []BonusType // first present in a region wins
	base     [Qualities]int
}

var (
	rawBase    = [Qualities]int{19, 29, 58, 78, 97}
	foodBase   = [Qualities]int{60, 49, 38, 27, 16}
	weaponBase = [Qualities]int{197, 143, 105, 77, 56}
	planeBase  = [Qualities]int{90, 65, 47, 34, 25}
	ticketBase = [Qualities]int{40, 29, 21, 15, 11}
)

var items = map[ItemType]itemSpec{
	Grain:          {RawMaterial, []BonusType{BonusGrain, BonusFood, BonusGeneral}, rawBase},
	Iron:           {RawMaterial, []BonusType{BonusIron, BonusWeapons, BonusAircraft, BonusGeneral}, rawBase},
	Titanium:       {RawMaterial, []BonusType{BonusTitanium, BonusAircraft, BonusGeneral}, rawBase},
	Fuel:           {RawMaterial, []BonusType{BonusOil, BonusFuel, BonusAircraft, BonusGeneral}, rawBase},
	Food:           {Product, []BonusType{BonusFood, BonusGrain, BonusGeneral}, foodBase},
	Weapon:         {Product, []BonusType{BonusWeapons, BonusIron, BonusGeneral}, weaponBase},
	Aircraft:       {Product, []BonusType{BonusAircraft, BonusTitanium, BonusIron, BonusGeneral}, planeBase},
	AirplaneTicket: {Product, []BonusType{BonusTickets, BonusAircraft, BonusGeneral}, ticketBase},
}

// AllItems lists every item type in report order.
var AllItems = []ItemType{Grain, Iron, Titanium, Fuel, Food, Weapon, Aircraft, AirplaneTicket}

var itemAliases = map[string]ItemType{
	"OIL":             Fuel,
	"WEAPONS":         Weapon,
	"AIR-WEAPON":      Aircraft,
	"AIRPLANE TICKET": AirplaneTicket,
	"TICKET":          AirplaneTicket,
	"TICKETS":         AirplaneTicket,
}

// ParseItemType resolves an item name case-insensitively, accepting the
// names the game uses in its own tables.
func ParseItemType(s string) (ItemType, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if it := ItemType(key); it.IsValid() {
		return it, nil
	}
	if it, ok := itemAliases[key]; ok {
		return it, nil
	}
	return "", apperror.New(apperror.CodeUnknownItemType, apperror.WithContextf("item=%q", s))
}

// IsValid reports whether the item type is known.
func (t ItemType) IsValid() bool {
	_, ok := items[t]
	return ok
}

// Category returns RAW_MATERIAL or PRODUCT.
func (t ItemType) Category() Category {
	return items[t].category
}

// BonusType returns the item's own regional bonus category.
func (t ItemType) BonusType() BonusType {
	if bts := items[t].bonuses; len(bts) > 0 {
		return bts[0]
	}
	return ""
}

// BonusTypes returns the bonus categories the item draws from, in lookup
// order. The first is BonusType.
func (t ItemType) BonusTypes() []BonusType {
	return append([]BonusType(nil), items[t].bonuses...)
}

// Building returns the facility that boosts the item.
func (t ItemType) Building() Building {
	if t.Category() == RawMaterial {
		return ProductionField
	}
	return IndustrialZone
}

// IsMilitary reports whether a military base boosts the item.
func (t ItemType) IsMilitary() bool {
	return t == Weapon || t == Aircraft
}

// BaseOutputs returns the base production for Q1..Q5.
func (t ItemType) BaseOutputs() [Qualities]int {
	return items[t].base
}

func (t ItemType) String() string {
	return string(t)
}

// Label formats an item for report headers, e.g. "Airplane ticket".
func (t ItemType) Label() string {
	s := strings.ToLower(strings.ReplaceAll(string(t), "_", " "))
	if s == "" {
		return s
	}
	return fmt.Sprintf("%s%s", strings.ToUpper(s[:1]), s[1:])
}
