package taxengine

import (
	"github.com/username/taxhawk/backend/src/models"
)

// NewRegimeTaxableIncome derives taxable income under the new regime.
// Only the standard deduction, professional tax, and employer NPS
// (80CCD(2)) are admitted — no exemptions, no other deductions.
func NewRegimeTaxableIncome(salary models.SalaryProfile) float64 {
	stdDed := StandardDeductionFor(salary.FinancialYear, models.RegimeNew)
	taxable := salary.GrossSalary - stdDed - salary.ProfessionalTax - salary.Deduction80CCD2
	return max(taxable, 0)
}

// OldRegimeOverrides carries optional what-if values for the old-regime
// derivation. A nil field means "use the profile's claimed value"; a
// set field substitutes without mutating the profile.
type OldRegimeOverrides struct {
	HRAExemption *float64
	Total80C     *float64
	Total80D     *float64
	Total80CCD1B *float64
}

// OldRegimeBreakdown is the full line-item derivation of old-regime
// taxable income, returned for transparency and display.
type OldRegimeBreakdown struct {
	GrossSalary       float64 `json:"gross_salary"`
	HRAExemption      float64 `json:"hra_exemption"`
	LTAExemption      float64 `json:"lta_exemption"`
	OtherExemptions   float64 `json:"other_exemptions"`
	NetSalary         float64 `json:"net_salary"`
	StandardDeduction float64 `json:"standard_deduction"`
	ProfessionalTax   float64 `json:"professional_tax"`
	GrossTotalIncome  float64 `json:"gross_total_income"`
	Deduction80C      float64 `json:"deduction_80c"`
	Deduction80CCD1B  float64 `json:"deduction_80ccd_1b"`
	Deduction80CCD2   float64 `json:"deduction_80ccd_2"`
	Deduction80D      float64 `json:"deduction_80d"`
	DeductionOther    float64 `json:"deduction_other"`
	TotalVIA          float64 `json:"total_vi_a"`
	TaxableIncome     float64 `json:"taxable_income"`
}

// OldRegimeTaxableIncome derives taxable income under the old regime.
// Overrides support what-if optimization scenarios; the zero value of
// OldRegimeOverrides reproduces the Form 16 as filed.
func OldRegimeTaxableIncome(salary models.SalaryProfile, ov OldRegimeOverrides) OldRegimeBreakdown {
	stdDed := StandardDeductionFor(salary.FinancialYear, models.RegimeOld)

	hraExempt := salary.HRAExemption
	if ov.HRAExemption != nil {
		hraExempt = *ov.HRAExemption
	}
	netSalary := salary.GrossSalary - hraExempt - salary.LTAExemption - salary.OtherExemptions

	gti := netSalary - stdDed - salary.ProfessionalTax

	// 80C family shares one ceiling.
	ded80C := min(salary.Deduction80C+salary.Deduction80CCC+salary.Deduction80CCD1, Limit80C)
	if ov.Total80C != nil {
		ded80C = *ov.Total80C
	}
	ded80D := salary.Deduction80D
	if ov.Total80D != nil {
		ded80D = *ov.Total80D
	}
	ded80CCD1B := salary.Deduction80CCD1B
	if ov.Total80CCD1B != nil {
		ded80CCD1B = *ov.Total80CCD1B
	}
	// Employer NPS passes through uncapped.
	ded80CCD2 := salary.Deduction80CCD2
	dedOther := salary.Deduction80E + salary.Deduction80G + salary.Deduction80TTA +
		salary.Deduction24B + salary.OtherDeductions

	totalVIA := ded80C + ded80CCD1B + ded80CCD2 + ded80D + dedOther
	taxableIncome := max(gti-totalVIA, 0)

	return OldRegimeBreakdown{
		GrossSalary:       salary.GrossSalary,
		HRAExemption:      hraExempt,
		LTAExemption:      salary.LTAExemption,
		OtherExemptions:   salary.OtherExemptions,
		NetSalary:         netSalary,
		StandardDeduction: stdDed,
		ProfessionalTax:   salary.ProfessionalTax,
		GrossTotalIncome:  gti,
		Deduction80C:      ded80C,
		Deduction80CCD1B:  ded80CCD1B,
		Deduction80CCD2:   ded80CCD2,
		Deduction80D:      ded80D,
		DeductionOther:    dedOther,
		TotalVIA:          totalVIA,
		TaxableIncome:     taxableIncome,
	}
}

// Float returns a pointer to v, for populating OldRegimeOverrides.
func Float(v float64) *float64 { return &v }
