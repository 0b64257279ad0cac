package checks

import (
	"fmt"

	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/taxengine"
	"github.com/username/taxhawk/backend/src/utils"
)

// CheckHRA reports the optimal Section 10(13A) exemption purely for
// explanatory display. Its savings value is ALWAYS 0: the HRA benefit is
// already embedded in the regime comparator's differential, and
// reporting it twice would double-count.
func CheckHRA(salary models.SalaryProfile) models.Finding {
	if salary.HRAReceived <= 0 || salary.MonthlyRent <= 0 {
		return models.Finding{
			CheckID:    "hra_optimizer",
			CheckName:  "HRA Exemption",
			Status:     models.StatusNotApplicable,
			Finding:    "No HRA received or no rent paid",
			Savings:    0,
			Action:     "N/A",
			Deadline:   "N/A",
			Confidence: models.ConfidenceDefinite,
			Details: map[string]any{
				"hra_received": salary.HRAReceived,
				"monthly_rent": salary.MonthlyRent,
			},
		}
	}

	rentAnnual := salary.MonthlyRent * 12
	optimalExemption := taxengine.HRAExemption(salary.BasicSalary, salary.HRAReceived, rentAnnual, salary.IsMetro())
	currentExemption := salary.HRAExemption

	// The three legs, for transparency.
	optionA := salary.HRAReceived
	optionB := rentAnnual - taxengine.HRARentMinusBasicPercent*salary.BasicSalary
	metroPct := taxengine.HRANonMetroPercent
	cityType := "non-metro"
	if salary.IsMetro() {
		metroPct = taxengine.HRAMetroPercent
		cityType = "metro"
	}
	optionC := metroPct * salary.BasicSalary

	if optimalExemption <= 0 {
		return models.Finding{
			CheckID:    "hra_optimizer",
			CheckName:  "HRA Exemption",
			Status:     models.StatusNotApplicable,
			Finding:    "Rent is too low relative to basic salary for HRA benefit",
			Savings:    0,
			Action:     "N/A",
			Deadline:   "N/A",
			Confidence: models.ConfidenceDefinite,
			Details: map[string]any{
				"rent_annual":       rentAnnual,
				"hra_received":      salary.HRAReceived,
				"optimal_exemption": 0.0,
			},
		}
	}

	if currentExemption > 0 && currentExemption >= optimalExemption {
		return models.Finding{
			CheckID:    "hra_optimizer",
			CheckName:  "HRA Exemption",
			Status:     models.StatusOptimized,
			Finding:    fmt.Sprintf("HRA exemption already claimed at ₹%s", utils.FormatINR(currentExemption)),
			Savings:    0,
			Action:     "No action needed",
			Deadline:   "N/A",
			Confidence: models.ConfidenceDefinite,
			Details: map[string]any{
				"rent_annual":       rentAnnual,
				"hra_received":      salary.HRAReceived,
				"current_exemption": currentExemption,
				"optimal_exemption": optimalExemption,
			},
		}
	}

	// Opportunity: HRA not claimed (typically because the employer
	// applied the new regime).
	return models.Finding{
		CheckID:   "hra_optimizer",
		CheckName: "HRA Exemption",
		Status:    models.StatusOpportunity,
		Finding: fmt.Sprintf("Paying ₹%s/month rent but claiming ₹%s HRA (%s regime). "+
			"Old regime unlocks ₹%s exemption",
			utils.FormatINR(salary.MonthlyRent), utils.FormatINR(currentExemption),
			salary.Regime, utils.FormatINR(optimalExemption)),
		Savings: 0, // captured in regime_arbitrage
		Action: "Collect rent receipts and landlord PAN. " +
			"HRA benefit is captured in regime switch recommendation",
		Deadline:   "Include in ITR filing by July 31",
		Confidence: models.ConfidenceDefinite,
		Explanation: fmt.Sprintf("HRA exemption = min of three amounts:\n"+
			"  A) Actual HRA received = ₹%s\n"+
			"  B) Rent - 10%% of Basic = ₹%s\n"+
			"  C) %d%% of Basic (%s) = ₹%s\n"+
			"  Exempt amount = ₹%s",
			utils.FormatINR(optionA), utils.FormatINR(optionB),
			int(metroPct*100), cityType, utils.FormatINR(optionC),
			utils.FormatINR(optimalExemption)),
		Details: map[string]any{
			"rent_annual":                rentAnnual,
			"hra_received":               salary.HRAReceived,
			"optimal_exemption":          optimalExemption,
			"current_exemption":          currentExemption,
			"is_metro":                   salary.IsMetro(),
			"option_a_hra_received":      optionA,
			"option_b_rent_minus_basic":  optionB,
			"option_c_percent_basic":     optionC,
			"note":                       "Savings included in regime arbitrage check",
		},
	}
}
