package taxengine

import (
	"fmt"
	"time"

	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/utils"
)

// HarvestCandidate is a long-term position with an unrealized gain that
// can be sold (and immediately repurchased) against the annual LTCG
// exemption.
type HarvestCandidate struct {
	Name   string  `json:"name"`
	Gain   float64 `json:"gain"`
	Months int     `json:"months"`
	Cost   float64 `json:"cost"`
	Value  float64 `json:"value"`
}

// ShortTermPosition is any not-yet-long-term holding, kept for display
// (including losses).
type ShortTermPosition struct {
	Name         string  `json:"name"`
	Gain         float64 `json:"gain"`
	Months       int     `json:"months"`
	MonthsToLTCG int     `json:"months_to_ltcg"`
	Cost         float64 `json:"cost"`
	Value        float64 `json:"value"`
}

// HoldingPeriodAlert flags an equity-like short-term gainer held 10-12
// months: selling now pays the short-term rate that waiting would avoid.
type HoldingPeriodAlert struct {
	Security     string  `json:"security"`
	MonthsHeld   int     `json:"months_held"`
	MonthsToLTCG int     `json:"months_to_ltcg"`
	Gain         float64 `json:"gain"`
	STCGTax      float64 `json:"stcg_tax"`
	Advice       string  `json:"advice"`
}

// LossCandidate is a position with a negative unrealized gain, usable
// for tax-loss harvesting. India has no wash sale rule, so selling and
// repurchasing the same day is legal.
type LossCandidate struct {
	Name       string  `json:"name"`
	Loss       float64 `json:"loss"`
	IsLongTerm bool    `json:"is_long_term"`
}

// PortfolioAnalysis is the full capital-gains picture for one portfolio
// at one reference date.
type PortfolioAnalysis struct {
	LongTermGainers []HarvestCandidate
	ShortTerm       []ShortTermPosition
	Alerts          []HoldingPeriodAlert
	Losses          []LossCandidate

	TotalUnrealizedLTCG float64
	TotalUnrealizedSTCG float64 // positive short-term gains only
	ExemptionRemaining  float64 // before harvesting
	HarvestableLTCG     float64
	FutureTaxSaved      float64
	HoldingsToHarvest   []string
}

// AnalyzePortfolio classifies every holding by holding period against
// the reference date, computes the harvestable long-term gain within the
// remaining annual exemption budget, and collects near-threshold alerts
// and loss-harvest candidates. Pure: identical inputs give identical
// outputs regardless of wall-clock time.
func AnalyzePortfolio(holdings models.Holdings, asOf time.Time) PortfolioAnalysis {
	var a PortfolioAnalysis

	for _, h := range holdings.Holdings {
		months := h.HoldingMonths(asOf)
		gain := h.UnrealizedGain()

		if h.IsLongTerm(asOf) {
			if gain > 0 {
				a.LongTermGainers = append(a.LongTermGainers, HarvestCandidate{
					Name:   h.SecurityName,
					Gain:   gain,
					Months: months,
					Cost:   h.TotalCost(),
					Value:  h.CurrentValue(),
				})
			}
		} else {
			monthsToLTCG := 0
			if months < 13 {
				monthsToLTCG = 13 - months
			}
			a.ShortTerm = append(a.ShortTerm, ShortTermPosition{
				Name:         h.SecurityName,
				Gain:         gain,
				Months:       months,
				MonthsToLTCG: monthsToLTCG,
				Cost:         h.TotalCost(),
				Value:        h.CurrentValue(),
			})
			if months >= 10 && months <= 12 && gain > 0 {
				a.Alerts = append(a.Alerts, HoldingPeriodAlert{
					Security:     h.SecurityName,
					MonthsHeld:   months,
					MonthsToLTCG: 13 - months,
					Gain:         gain,
					STCGTax:      utils.RoundRupee(gain * STCGRate * (1 + CessRate)),
					Advice: fmt.Sprintf("Wait %d month(s) before selling to qualify for LTCG rate (12.5%% vs 20%%)",
						13-months),
				})
			}
		}

		if gain < 0 {
			a.Losses = append(a.Losses, LossCandidate{
				Name:       h.SecurityName,
				Loss:       -gain,
				IsLongTerm: h.IsLongTerm(asOf),
			})
		}
	}

	for _, c := range a.LongTermGainers {
		a.TotalUnrealizedLTCG += c.Gain
		a.HoldingsToHarvest = append(a.HoldingsToHarvest, c.Name)
	}
	for _, p := range a.ShortTerm {
		if p.Gain > 0 {
			a.TotalUnrealizedSTCG += p.Gain
		}
	}

	// Realized LTCG this year already consumed part of the budget.
	a.ExemptionRemaining = max(LTCGExemption-holdings.RealizedLTCGThisFY, 0)
	a.HarvestableLTCG = min(a.TotalUnrealizedLTCG, a.ExemptionRemaining)
	a.FutureTaxSaved = utils.RoundRupee(a.HarvestableLTCG * LTCGRate * (1 + CessRate))

	return a
}
