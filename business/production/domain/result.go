package domain

import "github.com/shopspring/decimal"

// Factors records the multiplier each pipeline stage applied.
type Factors struct {
	NPCDebuff       decimal.Decimal
	MilitaryBonus   decimal.Decimal
	WorkersDebuff   decimal.Decimal
	EcoBonus        decimal.Decimal
	BonusMultiplier decimal.Decimal
	PollutionDebuff decimal.Decimal
	BuildingBonus   decimal.Decimal
	HospitalBonus   decimal.Decimal
	SaleDebuff      decimal.Decimal
}

// ProductionResult is the output of one region, item and company setup.
// Bonuses are fractions (0.2 means +20%).
type ProductionResult struct {
	RegionID       int
	RegionName     string
	CountryID      int
	CountryName    string
	Item           ItemType
	Tier           int
	QualityOutputs [Qualities]int // Q1..Q5
	Efficiency     decimal.Decimal
	RegionalBonus  decimal.Decimal
	CountryBonus   decimal.Decimal
	BonusType      BonusType
	Building       Building
	Pollution      decimal.Decimal
	NPCWageGold    decimal.Decimal
	Factors        Factors
}

// Output returns the production at the company's own tier.
func (r ProductionResult) Output() int {
	return r.QualityOutputs[r.Tier-1]
}

// TotalBonus returns regional plus country bonus as a fraction.
func (r ProductionResult) TotalBonus() decimal.Decimal {
	return r.RegionalBonus.Add(r.CountryBonus)
}

// CountryBonusInfo summarises how a country's regions add up for one bonus
// type. TotalRegionalPct and CountryBonusPct are percentages.
type CountryBonusInfo struct {
	CountryID        int
	CountryName      string
	BonusType        BonusType
	TotalRegionalPct decimal.Decimal
	Regions          int
	CountryBonusPct  decimal.Decimal
}

// RankedRegion is one row of a region ranking.
type RankedRegion struct {
	Rank       int
	BonusScore decimal.Decimal
	Result     ProductionResult
}
