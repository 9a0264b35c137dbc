package app

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/production/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
)

func region(id, country int, pollution string, bonuses map[domain.BonusType]string) domain.RegionProfile {
	r := domain.RegionProfile{
		RegionID:    id,
		CountryID:   country,
		Pollution:   decimal.RequireFromString(pollution),
		BonusScore:  decimal.Zero,
		BonusByType: make(map[domain.BonusType]decimal.Decimal),
	}
	for bt, v := range bonuses {
		r.BonusByType[bt] = decimal.RequireFromString(v)
	}
	return r
}

// neutralWorkers makes the workers factor exactly 1.0.
const neutralWorkers = 3

func TestCalculator_Calculate(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	ironBonus := map[domain.BonusType]string{domain.BonusIron: "20"}

	tests := []struct {
		name       string
		region     domain.RegionProfile
		company    domain.Company
		countryPct string
		want       [domain.Qualities]int
	}{
		{
			name:    "raw_material_npc_owned_no_debuff",
			region:  region(1, 1, "0", ironBonus),
			company: domain.Company{Item: domain.Iron, Tier: 5, WorkersToday: neutralWorkers, Owner: domain.NPCOwner()},
			// 97 * 1.20 = 116.4
			want: [domain.Qualities]int{22, 34, 69, 93, 116},
		},
		{
			name:    "raw_material_player_owned_same_output",
			region:  region(1, 1, "0", ironBonus),
			company: domain.Company{Item: domain.Iron, Tier: 5, WorkersToday: neutralWorkers, Owner: domain.PlayerOwner(1)},
			want:    [domain.Qualities]int{22, 34, 69, 93, 116},
		},
		{
			name:    "product_npc_owned_divided_by_three",
			region:  region(1, 1, "0", nil),
			company: domain.Company{Item: domain.Food, Tier: 1, WorkersToday: neutralWorkers, Owner: domain.NPCOwner()},
			// 60/3, 49/3, 38/3, 27/3, 16/3
			want: [domain.Qualities]int{20, 16, 12, 9, 5},
		},
		{
			name:    "product_npc_owned_exact_third_after_eco",
			region:  region(1, 1, "0", nil),
			company: domain.Company{Item: domain.Food, Tier: 1, WorkersToday: neutralWorkers, EcoSkill: 100, Owner: domain.NPCOwner()},
			// 60*3/3, 49*3/3, 38*3/3, 27*3/3, 16*3/3
			want: [domain.Qualities]int{60, 49, 38, 27, 16},
		},
		{
			name:    "raw_material_falls_back_to_weapons_bonus",
			region:  region(1, 1, "0", map[domain.BonusType]string{domain.BonusWeapons: "20", domain.BonusTickets: "50"}),
			company: domain.Company{Item: domain.Iron, Tier: 5, WorkersToday: neutralWorkers},
			// 97 * 1.20 = 116.4
			want: [domain.Qualities]int{22, 34, 69, 93, 116},
		},
		{
			name:    "zero_workers_boost",
			region:  region(1, 1, "0", nil),
			company: domain.Company{Item: domain.Iron, Tier: 5},
			// 97 * 1.3 = 126.1
			want: [domain.Qualities]int{24, 37, 75, 101, 126},
		},
		{
			name:    "workers_floor_ten_percent",
			region:  region(1, 1, "0", nil),
			company: domain.Company{Item: domain.Weapon, Tier: 1, WorkersToday: 50},
			// 197 * 0.1 = 19.7
			want: [domain.Qualities]int{19, 14, 10, 7, 5},
		},
		{
			name:    "military_base_level_three",
			region:  region(1, 1, "0", nil),
			company: domain.Company{Item: domain.Weapon, Tier: 1, WorkersToday: neutralWorkers, MilitaryBaseLevel: 3},
			// 197 * 1.05 = 206.85
			want: [domain.Qualities]int{206, 150, 110, 80, 58},
		},
		{
			name:    "military_base_ignored_for_food",
			region:  region(1, 1, "0", nil),
			company: domain.Company{Item: domain.Food, Tier: 1, WorkersToday: neutralWorkers, MilitaryBaseLevel: 5},
			want:    [domain.Qualities]int{60, 49, 38, 27, 16},
		},
		{
			name:    "eco_skill_floors",
			region:  region(1, 1, "0", nil),
			company: domain.Company{Item: domain.Iron, Tier: 5, WorkersToday: neutralWorkers, EcoSkill: 25},
			// 19*1.5=28.5 29*1.5=43.5 58*1.5=87 78*1.5=117 97*1.5=145.5
			want: [domain.Qualities]int{28, 43, 87, 117, 145},
		},
		{
			name:       "country_bonus_added",
			region:     region(1, 1, "0", ironBonus),
			company:    domain.Company{Item: domain.Iron, Tier: 5, WorkersToday: neutralWorkers},
			countryPct: "4",
			// 97 * 1.24 = 120.28
			want: [domain.Qualities]int{23, 35, 71, 96, 120},
		},
		{
			name:    "full_pollution_keeps_ten_percent",
			region:  region(1, 1, "100", nil),
			company: domain.Company{Item: domain.Iron, Tier: 5, WorkersToday: neutralWorkers},
			want:    [domain.Qualities]int{1, 2, 5, 7, 9},
		},
		{
			name:    "building_and_hospital",
			region:  region(1, 1, "0", nil),
			company: domain.Company{Item: domain.Iron, Tier: 5, WorkersToday: neutralWorkers, BuildingLevel: 5, HospitalLevel: 5},
			// 97 * 1.25 * 1.10 = 133.375
			want: [domain.Qualities]int{26, 39, 79, 107, 133},
		},
		{
			name:    "for_sale_halves",
			region:  region(1, 1, "0", nil),
			company: domain.Company{Item: domain.Iron, Tier: 5, WorkersToday: neutralWorkers, ForSale: true},
			want:    [domain.Qualities]int{9, 14, 29, 39, 48},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			country := decimal.Zero
			if tt.countryPct != "" {
				country = decimal.RequireFromString(tt.countryPct)
			}

			got, err := calc.Calculate(tt.region, tt.company, country)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.QualityOutputs != tt.want {
				t.Errorf("outputs = %v, want %v", got.QualityOutputs, tt.want)
			}
			if got.Output() != tt.want[tt.company.Tier-1] {
				t.Errorf("Output() = %d, want tier %d value", got.Output(), tt.company.Tier)
			}
		})
	}
}

func TestCalculator_ResultMetadata(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	r := region(7, 3, "10", map[domain.BonusType]string{domain.BonusWeapons: "20"})
	r.Name = "Mazovia"
	r.CountryName = "Poland"

	got, err := calc.Calculate(r, domain.Baseline(domain.Weapon, 5), decimal.RequireFromString("4"))
	if err != nil {
		t.Fatal(err)
	}

	if got.RegionID != 7 || got.CountryID != 3 || got.RegionName != "Mazovia" || got.CountryName != "Poland" {
		t.Errorf("identity = %+v", got)
	}
	if got.BonusType != domain.BonusWeapons || got.Building != domain.IndustrialZone {
		t.Errorf("bonus/building = %s/%s", got.BonusType, got.Building)
	}
	if !got.RegionalBonus.Equal(decimal.RequireFromString("0.2")) || !got.CountryBonus.Equal(decimal.RequireFromString("0.04")) {
		t.Errorf("bonuses = %s/%s", got.RegionalBonus, got.CountryBonus)
	}
	if !got.NPCWageGold.Equal(DefaultNPCWageGold) {
		t.Errorf("wage fallback = %s", got.NPCWageGold)
	}
	if !got.Factors.PollutionDebuff.Equal(decimal.RequireFromString("0.91")) {
		t.Errorf("pollution factor = %s", got.Factors.PollutionDebuff)
	}

	got, err = calc.Calculate(r, domain.Baseline(domain.Iron, 5), decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	if got.BonusType != domain.BonusWeapons || !got.RegionalBonus.Equal(decimal.RequireFromString("0.2")) {
		t.Errorf("iron fallback = %s %s", got.BonusType, got.RegionalBonus)
	}

	r.NPCWageGold = decimal.RequireFromString("2.5")
	got, _ = calc.Calculate(r, domain.Baseline(domain.Weapon, 5), decimal.Zero)
	if !got.NPCWageGold.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("wage = %s", got.NPCWageGold)
	}
}

func TestCalculator_ValidatesBeforeRunning(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	good := region(1, 1, "0", nil)

	tests := []struct {
		name     string
		region   domain.RegionProfile
		company  domain.Company
		country  string
		wantCode apperror.Code
	}{
		{"unknown_item", good, domain.Company{Item: "LASER", Tier: 5}, "0", apperror.CodeUnknownItemType},
		{"tier_out_of_range", good, domain.Company{Item: domain.Iron, Tier: 9}, "0", apperror.CodeInvalidParameter},
		{"negative_workers", good, domain.Company{Item: domain.Iron, Tier: 5, WorkersToday: -2}, "0", apperror.CodeInvalidParameter},
		{"negative_pollution", region(1, 1, "-3", nil), domain.Baseline(domain.Iron, 5), "0", apperror.CodeInvalidParameter},
		{"negative_regional_bonus", region(1, 1, "0", map[domain.BonusType]string{domain.BonusIron: "-1"}), domain.Baseline(domain.Iron, 5), "0", apperror.CodeInvalidParameter},
		{"negative_country_bonus", good, domain.Baseline(domain.Iron, 5), "-1", apperror.CodeInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Calculate(tt.region, tt.company, decimal.RequireFromString(tt.country))
			if !apperror.HasCode(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestCalculator_EcoSkillNeverLowersOutput(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	r := region(1, 1, "35", map[domain.BonusType]string{domain.BonusAircraft: "12"})

	for _, item := range domain.AllItems {
		var prev [domain.Qualities]int
		for eco := 0; eco <= 100; eco += 5 {
			company := domain.Company{Item: item, Tier: 3, EcoSkill: eco, WorkersToday: 4, Owner: domain.NPCOwner(), BuildingLevel: 2}
			got, err := calc.Calculate(r, company, decimal.RequireFromString("3"))
			if err != nil {
				t.Fatal(err)
			}
			for q := range got.QualityOutputs {
				if got.QualityOutputs[q] < prev[q] {
					t.Fatalf("%s eco=%d Q%d dropped from %d to %d", item, eco, q+1, prev[q], got.QualityOutputs[q])
				}
			}
			prev = got.QualityOutputs
		}
	}
}

func TestCalculator_PollutionNeverRaisesEfficiency(t *testing.T) {
	calc := NewCalculator(decimal.Zero)

	for _, item := range domain.AllItems {
		prev := decimal.NewFromInt(1 << 30)
		for pollution := 0; pollution <= 100; pollution += 5 {
			r := region(1, 1, decimal.NewFromInt(int64(pollution)).String(), map[domain.BonusType]string{item.BonusType(): "15"})
			got, err := calc.Calculate(r, domain.Baseline(item, 5), decimal.RequireFromString("6"))
			if err != nil {
				t.Fatal(err)
			}
			if got.Efficiency.GreaterThan(prev) {
				t.Fatalf("%s pollution=%d efficiency rose from %s to %s", item, pollution, prev, got.Efficiency)
			}
			prev = got.Efficiency
		}
	}
}

func TestCalculator_ForSaleIsExactlyHalf(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	r := region(1, 1, "23", map[domain.BonusType]string{domain.BonusWeapons: "17", domain.BonusFood: "9"})

	setups := []domain.Company{
		{Item: domain.Weapon, Tier: 5, EcoSkill: 37, WorkersToday: 1, MilitaryBaseLevel: 4, BuildingLevel: 3, HospitalLevel: 2},
		{Item: domain.Food, Tier: 2, EcoSkill: 100, Owner: domain.NPCOwner(), BuildingLevel: 5},
		{Item: domain.Titanium, Tier: 1, WorkersToday: 8, HospitalLevel: 5},
	}

	for _, active := range setups {
		sale := active
		sale.ForSale = true

		a, err := calc.Calculate(r, active, decimal.RequireFromString("5.4"))
		if err != nil {
			t.Fatal(err)
		}
		s, err := calc.Calculate(r, sale, decimal.RequireFromString("5.4"))
		if err != nil {
			t.Fatal(err)
		}
		for q := range a.QualityOutputs {
			if s.QualityOutputs[q] != a.QualityOutputs[q]/2 {
				t.Errorf("%s Q%d: for sale %d, active %d", active.Item, q+1, s.QualityOutputs[q], a.QualityOutputs[q])
			}
		}
	}
}

func TestEfficiency(t *testing.T) {
	tests := []struct {
		name      string
		outputs   [domain.Qualities]int
		bonus     string
		pollution string
		want      string
	}{
		{"weighted_outputs", [domain.Qualities]int{1, 2, 3, 4, 5}, "0", "0", "3.6667"},
		{"bonus_points", [domain.Qualities]int{1, 2, 3, 4, 5}, "0.2", "10", "18.6667"},
		{"floored_at_zero", [domain.Qualities]int{}, "0", "100", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Efficiency(tt.outputs, decimal.RequireFromString(tt.bonus), decimal.RequireFromString(tt.pollution))
			if !got.Round(4).Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("got %s, want %s", got.Round(4), tt.want)
			}
		})
	}
}
