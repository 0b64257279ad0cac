package checks

import (
	"fmt"

	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/taxengine"
	"github.com/username/taxhawk/backend/src/utils"
)

// Check80C measures the gap between current 80C-family usage (usually
// just EPF) and the ₹1.5L ceiling. The savings shown are a component of
// the regime switch benefit, not additive to it.
func Check80C(salary models.SalaryProfile) models.Finding {
	fy := salary.FinancialYear

	// 80C + 80CCC + 80CCD(1) share the ceiling.
	current80C := min(salary.Deduction80C+salary.Deduction80CCC+salary.Deduction80CCD1, taxengine.Limit80C)
	epf := salary.EPFEmployeeContribution
	gap := max(taxengine.Limit80C-current80C, 0)

	if gap <= 0 {
		return models.Finding{
			CheckID:    "80c_gap",
			CheckName:  "Section 80C Gap",
			Status:     models.StatusOptimized,
			Finding:    fmt.Sprintf("80C fully utilized at ₹%s", utils.FormatINR(current80C)),
			Savings:    0,
			Action:     "No action needed — 80C limit already maxed",
			Deadline:   "N/A",
			Confidence: models.ConfidenceDefinite,
			Details: map[string]any{
				"epf_contribution":  epf,
				"current_80c_total": current80C,
				"limit":             float64(taxengine.Limit80C),
				"gap":               0.0,
			},
		}
	}

	// Marginal rate at gross total income before VI-A deductions: the
	// rate at which each additional rupee of deduction saves tax.
	gti := taxengine.OldRegimeTaxableIncome(salary, taxengine.OldRegimeOverrides{}).GrossTotalIncome
	marginal := taxengine.MarginalRate(gti, models.RegimeOld, fy, taxengine.AgeBelow60)
	taxSaved := utils.RoundRupee(gap * marginal * (1 + taxengine.CessRate))

	return models.Finding{
		CheckID:   "80c_gap",
		CheckName: "Section 80C Gap",
		Status:    models.StatusOpportunity,
		Finding: fmt.Sprintf("₹%s gap in 80C limit. EPF covers ₹%s of ₹%.0fK",
			utils.FormatINR(gap), utils.FormatINR(epf), float64(taxengine.Limit80C)/1000),
		Savings: taxSaved,
		Action: fmt.Sprintf("Invest ₹%s in ELSS mutual fund "+
			"(e.g., Mirae Asset ELSS, Axis ELSS) before March 31", utils.FormatINR(gap)),
		Deadline:   fmt.Sprintf("March 31 (for FY %s deduction)", fy),
		Confidence: models.ConfidenceDefinite,
		Explanation: fmt.Sprintf("Your EPF contribution of ₹%s covers only %.0f%% of the ₹%s limit. "+
			"ELSS has the shortest lock-in (3 years) among 80C instruments "+
			"and offers equity market returns.",
			utils.FormatINR(epf), epf/taxengine.Limit80C*100, utils.FormatINR(taxengine.Limit80C)),
		Details: map[string]any{
			"epf_contribution":       epf,
			"current_80c_total":      current80C,
			"limit":                  float64(taxengine.Limit80C),
			"gap":                    gap,
			"marginal_rate":          marginal,
			"tax_saved_component":    taxSaved,
			"recommended_instrument": "ELSS (3-year lock-in, equity growth)",
		},
	}
}
