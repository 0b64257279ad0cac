package checks

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/utils"
)

// OrchestratorOptions configures one analysis run.
type OrchestratorOptions struct {
	ParentsSenior bool
	SelfSenior    bool
	// CGAsOf is the reference date for capital gains holding periods.
	// Zero value: the end of the financial year containing time.Now().
	CGAsOf time.Time
}

// RunAllChecks runs all six checks and produces the final report.
//
// Interdependency rules:
//   - the regime comparator runs first; its recommendation gates the rest
//   - if NEW is recommended, deduction-based savings (80C, 80D, HRA, NPS)
//     are zeroed and marked not applicable
//   - capital gains applies in BOTH regimes
//   - total savings = regime savings + capital gains savings, never the
//     sum of all six: 80C/80D/NPS/HRA savings are components already
//     folded into the regime differential
func RunAllChecks(salary models.SalaryProfile, holdings *models.Holdings, opts OrchestratorOptions) models.TaxHawkResult {
	hld := models.Holdings{}
	if holdings != nil {
		hld = *holdings
	}
	cgAsOf := opts.CGAsOf
	if cgAsOf.IsZero() {
		cgAsOf = utils.FiscalYearEnd(time.Now().UTC())
	}

	regimeResult := CheckRegime(salary, RegimeOptions{
		ParentsSenior: opts.ParentsSenior,
		SelfSenior:    opts.SelfSenior,
	})

	// The remaining checks are pure and independent of each other, so
	// they fan out in parallel. Each gets its own copy of the inputs and
	// writes to a distinct slot.
	opts80D := DefaultOptions80D()
	opts80D.ParentsSenior = opts.ParentsSenior
	opts80D.SelfSenior = opts.SelfSenior

	var result80C, result80D, resultHRA, resultCG, resultNPS models.Finding
	var wg sync.WaitGroup
	wg.Add(5)
	go func() { defer wg.Done(); result80C = Check80C(salary) }()
	go func() { defer wg.Done(); result80D = Check80D(salary, opts80D) }()
	go func() { defer wg.Done(); resultHRA = CheckHRA(salary) }()
	go func() { defer wg.Done(); resultCG = CheckCapitalGains(hld, cgAsOf) }()
	go func() { defer wg.Done(); resultNPS = CheckNPS(salary) }()
	wg.Wait()

	recommendedRegime := models.RegimeNew
	if r, ok := regimeResult.Details["recommended_regime"].(models.TaxRegime); ok {
		recommendedRegime = r
	}

	allChecks := []models.Finding{regimeResult, result80C, result80D, resultHRA, resultCG, resultNPS}

	if recommendedRegime == models.RegimeNew {
		// Deduction-based savings don't exist under the new regime.
		// Keep the forfeited amount visible for transparency.
		for i, c := range allChecks {
			switch c.CheckID {
			case "80c_gap", "80d_check", "hra_optimizer", "nps_check":
				oldSavings := c.Savings
				allChecks[i].Savings = 0
				allChecks[i].Status = models.StatusNotApplicable
				if oldSavings > 0 {
					allChecks[i].Finding = fmt.Sprintf("Not applicable under new regime "+
						"(would save ₹%s under old regime)", utils.FormatINR(oldSavings))
				}
			}
		}
	}

	totalSavings := regimeResult.Savings + resultCG.Savings

	sort.SliceStable(allChecks, func(i, j int) bool {
		return allChecks[i].Savings > allChecks[j].Savings
	})

	return models.TaxHawkResult{
		UserName:          salary.EmployeeName,
		FinancialYear:     salary.FinancialYear,
		CurrentRegime:     salary.Regime,
		RecommendedRegime: recommendedRegime,
		TotalSavings:      totalSavings,
		Checks:            allChecks,
		Summary:           generateSummary(salary, allChecks, totalSavings, recommendedRegime),
		Disclaimer:        models.Disclaimer,
	}
}

// generateSummary produces the plain-language recap of all findings.
func generateSummary(salary models.SalaryProfile, checks []models.Finding, totalSavings float64, recommendedRegime models.TaxRegime) string {
	var opportunities []models.Finding
	for _, c := range checks {
		if c.Status == models.StatusOpportunity {
			opportunities = append(opportunities, c)
		}
	}

	var lines []string

	if totalSavings > 0 {
		lines = append(lines, fmt.Sprintf("TaxHawk found ₹%s in potential tax savings for %s (FY %s).",
			utils.FormatINR(totalSavings), salary.EmployeeName, salary.FinancialYear))

		if recommendedRegime == models.RegimeOld && salary.Regime == models.RegimeNew {
			lines = append(lines, "The biggest opportunity: switching from the new tax regime "+
				"(employer default) to the old regime with optimized deductions.")
		}

		if len(opportunities) > 0 {
			lines = append(lines, fmt.Sprintf("\n%d optimization(s) found:", len(opportunities)))
			for _, opp := range opportunities {
				if opp.Savings > 0 {
					lines = append(lines, fmt.Sprintf("  - %s: ₹%s", opp.CheckName, utils.FormatINR(opp.Savings)))
				}
			}
		}
	} else {
		lines = append(lines, fmt.Sprintf("Your tax setup is already well-optimized for FY %s. "+
			"No significant savings opportunities found.", salary.FinancialYear))
	}

	return strings.Join(lines, "\n")
}
