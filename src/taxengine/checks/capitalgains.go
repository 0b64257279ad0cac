package checks

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/taxengine"
	"github.com/username/taxhawk/backend/src/utils"
)

// CheckCapitalGains wraps the portfolio analyzer into a Finding. This is
// the only check whose savings add to the regime savings: capital gains
// tax applies identically under both regimes.
//
// asOf must be the reference date for holding-period math; callers that
// want "current FY end" derive it via utils.FiscalYearEnd before calling.
func CheckCapitalGains(holdings models.Holdings, asOf time.Time) models.Finding {
	if len(holdings.Holdings) == 0 {
		return models.Finding{
			CheckID:    "capital_gains",
			CheckName:  "Capital Gains Optimization",
			Status:     models.StatusNotApplicable,
			Finding:    "No investment holdings to analyze",
			Savings:    0,
			Action:     "N/A",
			Deadline:   "N/A",
			Confidence: models.ConfidenceDefinite,
			Details:    map[string]any{},
		}
	}

	a := taxengine.AnalyzePortfolio(holdings, asOf)

	if a.HarvestableLTCG <= 0 && len(a.Alerts) == 0 {
		return models.Finding{
			CheckID:    "capital_gains",
			CheckName:  "Capital Gains Optimization",
			Status:     models.StatusOptimized,
			Finding:    "No harvestable LTCG or holding period optimizations found",
			Savings:    0,
			Action:     "No action needed",
			Deadline:   "N/A",
			Confidence: models.ConfidenceDefinite,
			Details: map[string]any{
				"unrealized_ltcg":      a.TotalUnrealizedLTCG,
				"unrealized_stcg":      a.TotalUnrealizedSTCG,
				"ltcg_exemption_limit": float64(taxengine.LTCGExemption),
			},
		}
	}

	action := "Monitor holdings for LTCG harvesting opportunity"
	if len(a.HoldingsToHarvest) > 0 {
		action = fmt.Sprintf("Before March 31: Sell %s. "+
			"Immediately repurchase. This resets cost basis and uses "+
			"your ₹%.0fK annual LTCG exemption",
			strings.Join(a.HoldingsToHarvest, ", "), float64(taxengine.LTCGExemption)/1000)
	}

	details := map[string]any{
		"unrealized_ltcg":       a.TotalUnrealizedLTCG,
		"unrealized_stcg":       a.TotalUnrealizedSTCG,
		"realized_ltcg_this_fy": holdings.RealizedLTCGThisFY,
		"ltcg_exemption_limit":  float64(taxengine.LTCGExemption),
		"exemption_used":        a.HarvestableLTCG,
		"exemption_remaining":   a.ExemptionRemaining - a.HarvestableLTCG,
		"future_tax_saved":      a.FutureTaxSaved,
		"holdings_to_harvest":   a.HoldingsToHarvest,
	}
	if len(a.Alerts) > 0 {
		details["holding_period_alerts"] = a.Alerts
	}
	if len(a.Losses) > 0 {
		details["unrealized_losses"] = a.Losses
	}

	return models.Finding{
		CheckID:   "capital_gains",
		CheckName: "Capital Gains Optimization",
		Status:    models.StatusOpportunity,
		Finding: fmt.Sprintf("₹%s unrealized LTCG can be harvested tax-free. Saves ₹%s in future taxes",
			utils.FormatINR(a.TotalUnrealizedLTCG), utils.FormatINR(a.FutureTaxSaved)),
		Savings:    a.FutureTaxSaved,
		Action:     action,
		Deadline:   "March 31 (end of financial year)",
		Confidence: models.ConfidenceDefinite,
		Explanation: fmt.Sprintf("You have ₹%s in unrealized long-term "+
			"capital gains, well under the ₹%s annual exemption. "+
			"By selling and immediately repurchasing (legal in India — no wash sale rule), "+
			"you reset your cost basis higher and avoid 12.5%% tax on these gains in the future.",
			utils.FormatINR(a.TotalUnrealizedLTCG), utils.FormatINR(taxengine.LTCGExemption)),
		Details: details,
	}
}
