package domain

import (
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
)

// MaxBuildingLevel is the highest level of any building.
const MaxBuildingLevel = 5

// Company is one production setup: what it makes and every player-side
// factor the production formula reads.
type Company struct {
	Item              ItemType
	Tier              int // 1..5
	EcoSkill          int // 0..100
	WorkersToday      int
	Owner             Owner
	MilitaryBaseLevel int
	BuildingLevel     int // Production Field or Industrial Zone, by item category
	HospitalLevel     int
	ForSale           bool
}

// Baseline returns the uniform setup regions are compared with: no skill,
// no workers, no buildings, player owned and not for sale.
func Baseline(item ItemType, tier int) Company {
	return Company{Item: item, Tier: tier, Owner: PlayerOwner(0)}
}

// Validate checks every field before the formula runs.
func (c Company) Validate() error {
	if !c.Item.IsValid() {
		return apperror.New(apperror.CodeUnknownItemType, apperror.WithContextf("item=%q", c.Item))
	}

	checks := []struct {
		name     string
		value    int
		min, max int
	}{
		{"tier", c.Tier, 1, Qualities},
		{"eco_skill", c.EcoSkill, 0, 100},
		{"military_base_level", c.MilitaryBaseLevel, 0, MaxBuildingLevel},
		{"building_level", c.BuildingLevel, 0, MaxBuildingLevel},
		{"hospital_level", c.HospitalLevel, 0, MaxBuildingLevel},
	}
	for _, ch := range checks {
		if ch.value < ch.min || ch.value > ch.max {
			return apperror.New(apperror.CodeInvalidParameter,
				apperror.WithContextf("%s=%d not in [%d,%d]", ch.name, ch.value, ch.min, ch.max))
		}
	}

	if c.WorkersToday < 0 {
		return apperror.New(apperror.CodeInvalidParameter,
			apperror.WithContextf("workers_today=%d", c.WorkersToday))
	}
	return nil
}
