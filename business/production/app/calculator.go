// Package app contains the production application services: the production
// formula, country bonus aggregation and region rankings.
package app

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/production/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	three   = decimal.NewFromInt(3)
	five    = decimal.NewFromInt(5)
	ten     = decimal.NewFromInt(10)
	fifteen = decimal.NewFromInt(15)
	fifty   = decimal.NewFromInt(50)
	hundred = decimal.NewFromInt(100)

	militaryBonus    = decimal.RequireFromString("1.05")
	workersBase      = decimal.RequireFromString("1.3")
	workersFloor     = decimal.RequireFromString("0.1")
	pollutionLoss    = decimal.RequireFromString("0.9")
	buildingPerLevel = decimal.RequireFromString("0.05")
	hospitalPerLevel = decimal.RequireFromString("0.02")
	pollutionPenalty = decimal.RequireFromString("0.5")
)

// militaryBaseMinLevel is the base level from which weapons and aircraft get the bonus.
const militaryBaseMinLevel = 3

// DefaultNPCWageGold is used when a region carries no NPC wage.
var DefaultNPCWageGold = decimal.NewFromInt(5)

// Calculator applies the production formula. It holds no state besides its
// configuration and is safe for concurrent use.
type Calculator struct {
	wageFallback decimal.Decimal
}

// NewCalculator creates a calculator. A non-positive fallback wage means
// DefaultNPCWageGold.
func NewCalculator(wageFallback decimal.Decimal) *Calculator {
	if !wageFallback.IsPositive() {
		wageFallback = DefaultNPCWageGold
	}
	return &Calculator{wageFallback: wageFallback}
}

// Calculate computes Q1..Q5 output for a company in a region. countryBonusPct
// is the country bonus in percent, as returned by CountryBonus. All inputs
// are validated before any stage runs.
func (c *Calculator) Calculate(region domain.RegionProfile, company domain.Company, countryBonusPct decimal.Decimal) (domain.ProductionResult, error) {
	if err := company.Validate(); err != nil {
		return domain.ProductionResult{}, err
	}
	if err := region.Validate(); err != nil {
		return domain.ProductionResult{}, err
	}
	if countryBonusPct.IsNegative() {
		return domain.ProductionResult{}, apperror.New(apperror.CodeInvalidParameter,
			apperror.WithContextf("country_bonus=%s", countryBonusPct))
	}

	item := company.Item
	bonusType, regionalPct := region.ItemBonus(item)
	regional := regionalPct.Div(hundred)
	country := countryBonusPct.Div(hundred)
	f := stageFactors(company, regional, country, region.Pollution)

	var outputs [domain.Qualities]int
	for q, base := range item.BaseOutputs() {
		outputs[q] = produce(decimal.NewFromInt(int64(base)), company, f)
	}

	wage := region.NPCWageGold
	if !wage.IsPositive() {
		wage = c.wageFallback
	}

	return domain.ProductionResult{
		RegionID:       region.RegionID,
		RegionName:     region.Name,
		CountryID:      region.CountryID,
		CountryName:    region.CountryName,
		Item:           item,
		Tier:           company.Tier,
		QualityOutputs: outputs,
		Efficiency:     Efficiency(outputs, regional.Add(country), region.Pollution),
		RegionalBonus:  regional,
		CountryBonus:   country,
		BonusType:      bonusType,
		Building:       item.Building(),
		Pollution:      region.Pollution,
		NPCWageGold:    wage,
		Factors:        f,
	}, nil
}

func stageFactors(company domain.Company, regional, country, pollution decimal.Decimal) domain.Factors {
	f := domain.Factors{
		NPCDebuff:       one,
		MilitaryBonus:   one,
		SaleDebuff:      one,
		WorkersDebuff:   decimal.Max(workersFloor, workersBase.Sub(decimal.NewFromInt(int64(company.WorkersToday)).Div(ten))),
		EcoBonus:        one.Add(decimal.NewFromInt(int64(company.EcoSkill)).Div(fifty)),
		BonusMultiplier: one.Add(regional).Add(country),
		PollutionDebuff: one.Sub(pollutionLoss.Mul(pollution).Div(hundred)),
		BuildingBonus:   one.Add(buildingPerLevel.Mul(decimal.NewFromInt(int64(company.BuildingLevel)))),
		HospitalBonus:   one.Add(hospitalPerLevel.Mul(decimal.NewFromInt(int64(company.HospitalLevel)))),
	}
	if company.Item.Category() == domain.Product && company.Owner.IsNPC() {
		f.NPCDebuff = one.Div(three)
	}
	if company.Item.IsMilitary() && company.MilitaryBaseLevel >= militaryBaseMinLevel {
		f.MilitaryBonus = militaryBonus
	}
	if company.ForSale {
		f.SaleDebuff = one.Div(two)
	}
	return f
}

// produce runs the stages in order on one base value. The NPC third is
// taken after the multiplicative stages and right before the eco floor:
// a rounded third multiplied back up can land just under an integer.
func produce(p decimal.Decimal, company domain.Company, f domain.Factors) int {
	p = p.Mul(f.MilitaryBonus)
	p = p.Mul(f.WorkersDebuff)
	p = p.Mul(f.EcoBonus)
	if company.Item.Category() == domain.Product && company.Owner.IsNPC() {
		p = p.Div(three)
	}
	p = p.Floor()
	p = p.Mul(f.BonusMultiplier)
	p = p.Mul(f.PollutionDebuff)
	p = p.Mul(f.BuildingBonus)
	p = p.Mul(f.HospitalBonus)
	if company.ForSale {
		p = p.Div(two)
	}
	return int(p.IntPart())
}

// Efficiency scores a result: quality-weighted output, plus bonus in points,
// minus half a point per pollution point, floored at zero. It never drops
// when outputs or bonus rise and never rises with pollution.
func Efficiency(outputs [domain.Qualities]int, totalBonus, pollution decimal.Decimal) decimal.Decimal {
	weighted := decimal.Zero
	for q, out := range outputs {
		weighted = weighted.Add(decimal.NewFromInt(int64((q + 1) * out)))
	}
	score := weighted.Div(fifteen).
		Add(totalBonus.Mul(hundred)).
		Sub(pollution.Mul(pollutionPenalty))
	return decimal.Max(decimal.Zero, score)
}
