package checks

import (
	"fmt"

	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/taxengine"
	"github.com/username/taxhawk/backend/src/utils"
)

// CheckNPS measures the gap to the 80CCD(1B) ceiling — an additional
// deduction over and above the 80C limit, available only under the old
// regime. A component of the regime switch benefit.
func CheckNPS(salary models.SalaryProfile) models.Finding {
	fy := salary.FinancialYear
	currentNPS1B := salary.Deduction80CCD1B
	gap := max(taxengine.Limit80CCD1B-currentNPS1B, 0)

	if gap <= 0 {
		return models.Finding{
			CheckID:    "nps_check",
			CheckName:  "NPS Tax Benefit (80CCD(1B))",
			Status:     models.StatusOptimized,
			Finding:    fmt.Sprintf("NPS 80CCD(1B) fully utilized at ₹%s", utils.FormatINR(currentNPS1B)),
			Savings:    0,
			Action:     "No action needed",
			Deadline:   "N/A",
			Confidence: models.ConfidenceDefinite,
			Details: map[string]any{
				"current_nps_1b": currentNPS1B,
				"limit_1b":       float64(taxengine.Limit80CCD1B),
				"gap":            0.0,
			},
		}
	}

	gti := taxengine.OldRegimeTaxableIncome(salary, taxengine.OldRegimeOverrides{}).GrossTotalIncome
	marginal := taxengine.MarginalRate(gti, models.RegimeOld, fy, taxengine.AgeBelow60)
	taxSaved := utils.RoundRupee(gap * marginal * (1 + taxengine.CessRate))

	return models.Finding{
		CheckID:   "nps_check",
		CheckName: "NPS Tax Benefit (80CCD(1B))",
		Status:    models.StatusOpportunity,
		Finding: fmt.Sprintf("₹%s NPS contribution saves ₹%s in tax (additional to 80C)",
			utils.FormatINR(gap), utils.FormatINR(taxSaved)),
		Savings: taxSaved,
		Action: fmt.Sprintf("Open NPS Tier 1 account and invest ₹%s. "+
			"This is ABOVE the ₹1.5L 80C limit", utils.FormatINR(gap)),
		Deadline:   fmt.Sprintf("March 31 (for FY %s deduction)", fy),
		Confidence: models.ConfidenceDefinite,
		Explanation: fmt.Sprintf("Section 80CCD(1B) provides an additional ₹%s "+
			"deduction over the 80C limit. At your %.0f%% marginal rate, "+
			"this saves ₹%s immediately. The trade-off: NPS is "+
			"locked until age 60, but the tax saving is immediate.",
			utils.FormatINR(taxengine.Limit80CCD1B), marginal*100, utils.FormatINR(taxSaved)),
		Details: map[string]any{
			"current_nps_1b":      currentNPS1B,
			"limit_1b":            float64(taxengine.Limit80CCD1B),
			"gap":                 gap,
			"marginal_rate":       marginal,
			"tax_saved_component": taxSaved,
			"note":                "Locked until age 60. Tax saving is immediate, but money is illiquid",
		},
	}
}
