package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/eclesiar-analyzer/business/production/domain"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "eclesiar-analyzer dev")
}

func TestRegionsCommand_RequiresItem(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"regions"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item")
}

func TestPrintRegions(t *testing.T) {
	ranked := []domain.RankedRegion{{
		Rank: 1,
		Result: domain.ProductionResult{
			RegionName:     "Mazovia",
			CountryName:    "Poland",
			Item:           domain.Iron,
			Tier:           2,
			QualityOutputs: [domain.Qualities]int{12, 10, 8, 6, 4},
			Efficiency:     decimal.RequireFromString("1.25"),
			RegionalBonus:  decimal.RequireFromString("0.15"),
			CountryBonus:   decimal.RequireFromString("0.05"),
			Pollution:      decimal.RequireFromString("12.5"),
			NPCWageGold:    decimal.RequireFromString("3.5"),
		},
	}}

	var out bytes.Buffer
	printRegions(&out, ranked)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"1", "Mazovia", "Poland", "1.25", "20%", "10", "12.5", "3.50"}, strings.Fields(lines[1]))
}

func TestPrintCountries_Limit(t *testing.T) {
	countries := make([]domain.CountryBonusInfo, 8)
	for i := range countries {
		countries[i] = domain.CountryBonusInfo{CountryName: "C", Regions: 1}
	}

	var out bytes.Buffer
	printCountries(&out, countries, 5)
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 6)
}
