package taxengine

import (
	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/utils"
)

// TaxComputation is the full pipeline breakdown for one regime.
// Rounding happens independently at each stage (rebate, surcharge, cess,
// total) — it is not deferred to the end.
type TaxComputation struct {
	TaxableIncome  float64 `json:"taxable_income"`
	BaseTax        float64 `json:"base_tax"`
	Rebate87A      float64 `json:"rebate_87a"`
	TaxAfterRebate float64 `json:"tax_after_rebate"`
	Surcharge      float64 `json:"surcharge"`
	Cess           float64 `json:"cess"`
	TotalTax       float64 `json:"total_tax"`
}

// TaxOnSlabs applies progressive slab rates to taxable income and
// returns the unrounded base tax. Slabs must be ascending with an
// unbounded final tier; callers own table correctness.
func TaxOnSlabs(taxableIncome float64, slabs []Slab) float64 {
	tax := 0.0
	prevLimit := 0.0
	for _, s := range slabs {
		if taxableIncome <= prevLimit {
			break
		}
		taxableInSlab := min(taxableIncome, s.UpperLimit) - prevLimit
		tax += taxableInSlab * s.Rate
		prevLimit = s.UpperLimit
	}
	return tax
}

// ApplyCess returns the 4% Health & Education Cess amount (not the
// total), rounded to the nearest rupee.
func ApplyCess(tax float64) float64 {
	return utils.RoundRupee(tax * CessRate)
}

// ApplyRebate87A returns tax after the Section 87A rebate. The rebate
// fully zeroes tax up to the per-regime maximum, but only when taxable
// income sits at or below the cliff; above it the tax passes through
// untouched.
func ApplyRebate87A(tax, taxableIncome float64, regime models.TaxRegime, fy string) float64 {
	rule := RebateFor(fy, regime)
	if taxableIncome <= rule.IncomeLimit {
		rebate := min(tax, rule.MaxRebate)
		return utils.RoundRupee(tax - rebate)
	}
	return tax
}

// surchargeFor computes the surcharge on post-rebate tax. The rate is a
// step function of taxable income; in the salaried target range this is
// zero.
func surchargeFor(taxableIncome, tax float64, slabs []Slab) float64 {
	rate := 0.0
	for _, s := range slabs {
		if taxableIncome <= s.UpperLimit {
			rate = s.Rate
			break
		}
	}
	return utils.RoundRupee(tax * rate)
}

// MarginalRate returns the slab rate at a given taxable income level for
// the regime, year, and age bracket. Tier boundaries are inclusive of
// their upper bound. Used to estimate tax savings from an additional
// deduction: savings = amount * marginal * (1 + CessRate).
func MarginalRate(taxableIncome float64, regime models.TaxRegime, fy string, age AgeCategory) float64 {
	slabs := SlabsFor(regime, fy, age)
	rate := 0.0
	for _, s := range slabs {
		rate = s.Rate
		if taxableIncome <= s.UpperLimit {
			break
		}
	}
	return rate
}

// CalculateTax runs the full pipeline for a taxable income figure:
// slab tax, 87A rebate, surcharge, cess.
func CalculateTax(taxableIncome float64, regime models.TaxRegime, fy string, age AgeCategory) TaxComputation {
	slabs := SlabsFor(regime, fy, age)
	surchargeSlabs := SurchargeSlabsOld
	if regime == models.RegimeNew {
		surchargeSlabs = SurchargeSlabsNew
	}

	baseTax := TaxOnSlabs(taxableIncome, slabs)
	taxAfterRebate := ApplyRebate87A(baseTax, taxableIncome, regime, fy)
	surcharge := surchargeFor(taxableIncome, taxAfterRebate, surchargeSlabs)
	cess := ApplyCess(taxAfterRebate + surcharge)
	totalTax := utils.RoundRupee(taxAfterRebate + surcharge + cess)

	return TaxComputation{
		TaxableIncome:  taxableIncome,
		BaseTax:        utils.RoundRupee(baseTax),
		Rebate87A:      utils.RoundRupee(baseTax - taxAfterRebate),
		TaxAfterRebate: taxAfterRebate,
		Surcharge:      surcharge,
		Cess:           cess,
		TotalTax:       totalTax,
	}
}
