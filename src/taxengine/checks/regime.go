// Package checks implements the six tax optimization checks and the
// orchestrator that reconciles their overlapping savings claims.
//
// Every check is a pure function over a SalaryProfile (and, for capital
// gains, a Holdings portfolio) returning a models.Finding. Checks never
// mutate their inputs; only the orchestrator's regime-zeroing step
// rewrites a Finding after the fact.
package checks

import (
	"fmt"

	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/taxengine"
	"github.com/username/taxhawk/backend/src/utils"
)

// RegimeOptions carries taxpayer context the Form 16 does not contain.
type RegimeOptions struct {
	ParentsSenior bool // either parent is 60+
	SelfSenior    bool // taxpayer is 60+
}

// CheckRegime compares the new-regime tax as filed against a fully
// optimized old-regime tax: HRA exemption at its statutory optimum, the
// 80C family filled to its ceiling, 80D at the age-appropriate target,
// and the additional NPS ceiling used in full. The savings reported
// here IS the ground-truth regime switch benefit; the other deduction
// checks only break it into components.
func CheckRegime(salary models.SalaryProfile, opts RegimeOptions) models.Finding {
	fy := salary.FinancialYear
	age := taxengine.AgeBelow60
	if opts.SelfSenior {
		age = taxengine.AgeSenior
	}

	newTaxable := taxengine.NewRegimeTaxableIncome(salary)
	newTax := taxengine.CalculateTax(newTaxable, models.RegimeNew, fy, taxengine.AgeBelow60).TotalTax

	optimalHRA := 0.0
	if salary.HRAReceived > 0 && salary.MonthlyRent > 0 {
		optimalHRA = taxengine.HRAExemption(
			salary.BasicSalary,
			salary.HRAReceived,
			salary.MonthlyRent*12,
			salary.IsMetro(),
		)
	}

	current80C := salary.Deduction80C + salary.Deduction80CCC + salary.Deduction80CCD1
	// Assume the taxpayer fills the remaining 80C gap (ELSS/PPF).
	optimal80C := float64(taxengine.Limit80C)

	// Non-seniors usually have employer group cover for self, so only
	// the parents' policy is targeted; seniors optimize both.
	selfLimit := float64(taxengine.Limit80DSelfBelow60)
	if opts.SelfSenior {
		selfLimit = taxengine.Limit80DSelfSenior
	}
	parentsLimit := float64(taxengine.Limit80DParentsBelow60)
	if opts.ParentsSenior {
		parentsLimit = taxengine.Limit80DParentsSenior
	}
	optimal80DTarget := parentsLimit
	if opts.SelfSenior {
		optimal80DTarget = selfLimit + parentsLimit
	}
	optimal80D := max(salary.Deduction80D, optimal80DTarget)

	optimalNPS1B := float64(taxengine.Limit80CCD1B)

	oldBreakdown := taxengine.OldRegimeTaxableIncome(salary, taxengine.OldRegimeOverrides{
		HRAExemption: taxengine.Float(optimalHRA),
		Total80C:     taxengine.Float(optimal80C),
		Total80D:     taxengine.Float(optimal80D),
		Total80CCD1B: taxengine.Float(optimalNPS1B),
	})
	oldTax := taxengine.CalculateTax(oldBreakdown.TaxableIncome, models.RegimeOld, fy, age).TotalTax

	savings := newTax - oldTax
	recommended := models.RegimeNew
	if savings > 0 {
		recommended = models.RegimeOld
	}

	deductionsNeeded := map[string]float64{}
	if optimalHRA > salary.HRAExemption {
		deductionsNeeded["hra_exemption"] = optimalHRA
	}
	if gap := taxengine.Limit80C - current80C; gap > 0 {
		deductionsNeeded["section_80c"] = optimal80C
		deductionsNeeded["section_80c_gap"] = gap
	}
	if optimal80D > salary.Deduction80D {
		deductionsNeeded["section_80d"] = optimal80D
	}
	if optimalNPS1B > salary.Deduction80CCD1B {
		deductionsNeeded["section_80ccd_1b"] = optimalNPS1B
	}

	details := map[string]any{
		"new_regime_tax":       newTax,
		"new_regime_taxable":   newTaxable,
		"old_regime_tax":       oldTax,
		"old_regime_taxable":   oldBreakdown.TaxableIncome,
		"recommended_regime":   recommended,
		"old_regime_breakdown": oldBreakdown,
	}

	if savings > 0 {
		details["deductions_needed"] = deductionsNeeded
		return models.Finding{
			CheckID:   "regime_arbitrage",
			CheckName: "Tax Regime Optimization",
			Status:    models.StatusOpportunity,
			Finding:   fmt.Sprintf("Switching to old regime with full deductions saves ₹%s", utils.FormatINR(savings)),
			Savings:   savings,
			Action: fmt.Sprintf("File ITR under old tax regime for FY %s. "+
				"Invest in ELSS/PPF for 80C, get parents' health insurance for 80D, "+
				"and open NPS for 80CCD(1B) before March 31", fy),
			Deadline:   "July 31 (ITR filing) — but investments needed before March 31",
			Confidence: models.ConfidenceDefinite,
			Explanation: fmt.Sprintf("Your employer applied the new regime (default), resulting in tax of "+
				"₹%s. Under the old regime with optimized deductions "+
				"(HRA ₹%s + 80C ₹%s + 80D ₹%s + NPS ₹%s), your tax drops to ₹%s.",
				utils.FormatINR(newTax), utils.FormatINR(optimalHRA), utils.FormatINR(optimal80C),
				utils.FormatINR(optimal80D), utils.FormatINR(optimalNPS1B), utils.FormatINR(oldTax)),
			Details: details,
		}
	}

	return models.Finding{
		CheckID:    "regime_arbitrage",
		CheckName:  "Tax Regime Optimization",
		Status:     models.StatusOptimized,
		Finding:    fmt.Sprintf("New regime is already optimal (saves ₹%s vs old)", utils.FormatINR(-savings)),
		Savings:    0,
		Action:     "No action needed — continue with new regime",
		Deadline:   "N/A",
		Confidence: models.ConfidenceDefinite,
		Explanation: fmt.Sprintf("New regime tax: ₹%s. Old regime tax (even with optimized deductions): ₹%s. "+
			"New regime is better by ₹%s.",
			utils.FormatINR(newTax), utils.FormatINR(oldTax), utils.FormatINR(-savings)),
		Details: details,
	}
}
