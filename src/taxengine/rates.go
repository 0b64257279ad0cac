// Package taxengine holds the deterministic tax computation core.
//
// ALL tax math lives here. Every rate, limit, and slab is a named
// constant or versioned table — never hardcoded inside logic. The
// extraction layer never computes tax amounts.
package taxengine

import (
	"math"

	"github.com/username/taxhawk/backend/src/models"
)

// Slab is one progressive tier: income up to UpperLimit is taxed at Rate.
// The final tier of every table is unbounded (math.Inf).
type Slab struct {
	UpperLimit float64
	Rate       float64
}

// AgeCategory selects the old-regime slab table.
type AgeCategory string

const (
	AgeBelow60     AgeCategory = "below_60"
	AgeSenior      AgeCategory = "senior"       // 60+
	AgeSuperSenior AgeCategory = "super_senior" // 80+
)

// DefaultFY is the fallback for any unrecognized financial year string.
const DefaultFY = "2024-25"

var NewRegimeSlabsFY2024_25 = []Slab{
	{300_000, 0.00},
	{700_000, 0.05},
	{1_000_000, 0.10},
	{1_200_000, 0.15},
	{1_500_000, 0.20},
	{math.Inf(1), 0.30},
}

var NewRegimeSlabsFY2025_26 = []Slab{
	{400_000, 0.00},
	{800_000, 0.05},
	{1_200_000, 0.10},
	{1_600_000, 0.15},
	{2_000_000, 0.20},
	{2_400_000, 0.25},
	{math.Inf(1), 0.30},
}

var OldRegimeSlabsBelow60 = []Slab{
	{250_000, 0.00},
	{500_000, 0.05},
	{1_000_000, 0.20},
	{math.Inf(1), 0.30},
}

var OldRegimeSlabsSenior = []Slab{
	{300_000, 0.00},
	{500_000, 0.05},
	{1_000_000, 0.20},
	{math.Inf(1), 0.30},
}

var OldRegimeSlabsSuperSenior = []Slab{
	{500_000, 0.00},
	{1_000_000, 0.20},
	{math.Inf(1), 0.30},
}

// SlabsFor returns the slab table for a regime, financial year, and age
// bracket. Unknown years fall back to DefaultFY; age only matters under
// the old regime.
func SlabsFor(regime models.TaxRegime, fy string, age AgeCategory) []Slab {
	if regime == models.RegimeNew {
		if fy == "2025-26" {
			return NewRegimeSlabsFY2025_26
		}
		return NewRegimeSlabsFY2024_25
	}
	switch age {
	case AgeSuperSenior:
		return OldRegimeSlabsSuperSenior
	case AgeSenior:
		return OldRegimeSlabsSenior
	default:
		return OldRegimeSlabsBelow60
	}
}

// CessRate is the 4% Health & Education Cess on (tax + surcharge).
const CessRate = 0.04

var standardDeduction = map[string]map[models.TaxRegime]float64{
	"2024-25": {models.RegimeOld: 50_000, models.RegimeNew: 75_000},
	"2025-26": {models.RegimeOld: 75_000, models.RegimeNew: 75_000},
}

// StandardDeductionFor returns the year-specific standard deduction,
// falling back to DefaultFY for unknown years.
func StandardDeductionFor(fy string, regime models.TaxRegime) float64 {
	byRegime, ok := standardDeduction[fy]
	if !ok {
		byRegime = standardDeduction[DefaultFY]
	}
	return byRegime[regime]
}

// RebateRule is the Section 87A rebate: a full zeroing of tax up to
// MaxRebate, available only at or below IncomeLimit. It is a cliff, not
// a phase-out — one rupee above the limit forfeits the whole rebate.
type RebateRule struct {
	IncomeLimit float64
	MaxRebate   float64
}

var rebate87A = map[string]map[models.TaxRegime]RebateRule{
	"2024-25": {
		models.RegimeOld: {IncomeLimit: 500_000, MaxRebate: 12_500},
		models.RegimeNew: {IncomeLimit: 700_000, MaxRebate: 25_000},
	},
	"2025-26": {
		models.RegimeOld: {IncomeLimit: 500_000, MaxRebate: 12_500},
		models.RegimeNew: {IncomeLimit: 1_200_000, MaxRebate: 60_000},
	},
}

// RebateFor returns the 87A rule for a year and regime, falling back to
// DefaultFY for unknown years.
func RebateFor(fy string, regime models.TaxRegime) RebateRule {
	byRegime, ok := rebate87A[fy]
	if !ok {
		byRegime = rebate87A[DefaultFY]
	}
	return byRegime[regime]
}

// Surcharge step functions of taxable income, applied to post-rebate tax.
// The new regime's top rate is capped at 25% (old goes to 37%).
var SurchargeSlabsOld = []Slab{
	{5_000_000, 0.00},
	{10_000_000, 0.10},
	{20_000_000, 0.15},
	{50_000_000, 0.25},
	{math.Inf(1), 0.37},
}

var SurchargeSlabsNew = []Slab{
	{5_000_000, 0.00},
	{10_000_000, 0.10},
	{20_000_000, 0.15},
	{50_000_000, 0.25},
	{math.Inf(1), 0.25},
}

// Chapter VI-A ceilings.
const (
	// 80C + 80CCC + 80CCD(1) share one limit.
	Limit80C = 150_000

	// 80CCD(1B) additional NPS, above and independent of the 80C limit.
	Limit80CCD1B = 50_000

	// 80CCD(2) employer NPS, as a fraction of Basic + DA.
	Limit80CCD2Private = 0.10
	Limit80CCD2Govt    = 0.14

	Limit80DSelfBelow60    = 25_000
	Limit80DSelfSenior     = 50_000
	Limit80DParentsBelow60 = 25_000
	Limit80DParentsSenior  = 50_000

	// Home loan interest, self-occupied property.
	Limit24BSelfOccupied = 200_000
)

// HRA exemption formula constants.
const (
	HRAMetroPercent          = 0.50
	HRANonMetroPercent       = 0.40
	HRARentMinusBasicPercent = 0.10
)

// Capital gains, FY 2024-25 onwards (post Budget 2024).
const (
	LTCGExemption          = 125_000
	LTCGRate               = 0.125
	STCGRate               = 0.20 // listed equity, STT paid
	EquityLTCGHoldingMonth = 12
	DebtLTCGHoldingMonths  = 24
)
