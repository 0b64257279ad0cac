package checks

import (
	"fmt"

	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/taxengine"
	"github.com/username/taxhawk/backend/src/utils"
)

// Options80D carries taxpayer context for the health insurance check.
// PolicyParentsFirst is a heuristic ordering preference, not a statutory
// rule: when nothing is claimed yet, lead with the parents' policy (the
// larger, usually-missed opportunity) instead of a generic top-up.
type Options80D struct {
	ParentsSenior      bool
	SelfSenior         bool
	PolicyParentsFirst bool
}

// DefaultOptions80D returns the standard policy: parents-first.
func DefaultOptions80D() Options80D {
	return Options80D{PolicyParentsFirst: true}
}

// Check80D analyzes the health insurance premium deduction opportunity.
// A component of the regime switch benefit.
func Check80D(salary models.SalaryProfile, opts Options80D) models.Finding {
	fy := salary.FinancialYear
	current80D := salary.Deduction80D

	selfLimit := float64(taxengine.Limit80DSelfBelow60)
	if opts.SelfSenior {
		selfLimit = taxengine.Limit80DSelfSenior
	}
	parentsLimit := float64(taxengine.Limit80DParentsBelow60)
	if opts.ParentsSenior {
		parentsLimit = taxengine.Limit80DParentsSenior
	}
	totalLimit := selfLimit + parentsLimit

	if current80D >= totalLimit {
		return models.Finding{
			CheckID:    "80d_check",
			CheckName:  "Health Insurance (Section 80D)",
			Status:     models.StatusOptimized,
			Finding:    fmt.Sprintf("80D fully utilized at ₹%s", utils.FormatINR(current80D)),
			Savings:    0,
			Action:     "No action needed",
			Deadline:   "N/A",
			Confidence: models.ConfidenceDefinite,
			Details: map[string]any{
				"self_family_claimed": current80D,
				"self_family_limit":   selfLimit,
				"parents_limit":       parentsLimit,
				"total_limit":         totalLimit,
			},
		}
	}

	additional80D := totalLimit - current80D

	var recommendedPremium float64
	var opportunityType string
	if current80D == 0 && opts.PolicyParentsFirst {
		recommendedPremium = parentsLimit
		opportunityType = "parents"
	} else {
		recommendedPremium = additional80D
		opportunityType = "additional"
	}

	gti := taxengine.OldRegimeTaxableIncome(salary, taxengine.OldRegimeOverrides{}).GrossTotalIncome
	marginal := taxengine.MarginalRate(gti, models.RegimeOld, fy, taxengine.AgeBelow60)
	taxSaved := utils.RoundRupee(recommendedPremium * marginal * (1 + taxengine.CessRate))

	var findingText, actionText string
	if opportunityType == "parents" {
		findingText = fmt.Sprintf("Parents have no health insurance. ₹%s policy = ₹%s tax saving",
			utils.FormatINR(recommendedPremium), utils.FormatINR(taxSaved))
		actionText = "Buy a ₹5-10L family floater health insurance for parents " +
			"(annual premium ~₹20-25K). Claim under Section 80D"
	} else {
		findingText = fmt.Sprintf("₹%s additional 80D deduction available", utils.FormatINR(additional80D))
		actionText = fmt.Sprintf("Increase health insurance coverage to claim additional ₹%s under 80D",
			utils.FormatINR(additional80D))
	}

	return models.Finding{
		CheckID:    "80d_check",
		CheckName:  "Health Insurance (Section 80D)",
		Status:     models.StatusOpportunity,
		Finding:    findingText,
		Savings:    taxSaved,
		Action:     actionText,
		Deadline:   fmt.Sprintf("March 31 (for FY %s deduction)", fy),
		Confidence: models.ConfidenceDefinite,
		Explanation: fmt.Sprintf("Section 80D allows deduction for health insurance premiums: "+
			"up to ₹%s for self/family and ₹%s for parents. "+
			"A family floater for parents costs ~₹25K/year and the effective "+
			"cost after tax saving is only ₹%s.",
			utils.FormatINR(selfLimit), utils.FormatINR(parentsLimit),
			utils.FormatINR(recommendedPremium-taxSaved)),
		Details: map[string]any{
			"self_family_claimed": current80D,
			"self_family_limit":   selfLimit,
			"parents_claimed":     0.0,
			"parents_limit":       parentsLimit,
			"parents_senior":      opts.ParentsSenior,
			"recommended_premium": recommendedPremium,
			"marginal_rate":       marginal,
			"tax_saved_component": taxSaved,
		},
	}
}
