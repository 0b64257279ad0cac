package taxengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/taxhawk/backend/src/models"
)

var fyEnd2025 = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

func samplePortfolio() models.Holdings {
	return models.Holdings{
		Holdings: []models.Holding{
			{SecurityName: "HDFC Bank Ltd", SecurityType: models.SecurityEquityShare,
				PurchaseDate: models.NewDate(2023, time.June, 10), Quantity: 10, PurchasePrice: 1500, CurrentPrice: 2150},
			{SecurityName: "Infosys Ltd", SecurityType: models.SecurityEquityShare,
				PurchaseDate: models.NewDate(2023, time.January, 20), Quantity: 40, PurchasePrice: 1300, CurrentPrice: 1560},
			{SecurityName: "Axis Bluechip Fund - Growth", SecurityType: models.SecurityEquityMF,
				PurchaseDate: models.NewDate(2022, time.July, 5), Quantity: 500, PurchasePrice: 41, CurrentPrice: 82},
			{SecurityName: "Parag Parikh Flexi Cap Fund", SecurityType: models.SecurityEquityMF,
				PurchaseDate: models.NewDate(2024, time.August, 12), Quantity: 250, PurchasePrice: 65, CurrentPrice: 78},
		},
	}
}

func TestAnalyzePortfolio_Classification(t *testing.T) {
	a := AnalyzePortfolio(samplePortfolio(), fyEnd2025)

	require.Len(t, a.LongTermGainers, 3)
	assert.Equal(t, []string{"HDFC Bank Ltd", "Infosys Ltd", "Axis Bluechip Fund - Growth"}, a.HoldingsToHarvest)

	require.Len(t, a.ShortTerm, 1)
	assert.Equal(t, "Parag Parikh Flexi Cap Fund", a.ShortTerm[0].Name)
	assert.Equal(t, 7, a.ShortTerm[0].Months)
	assert.Equal(t, 6, a.ShortTerm[0].MonthsToLTCG)

	assert.Empty(t, a.Alerts, "7 months held is outside the 10-12 month alert window")
	assert.Empty(t, a.Losses)
}

func TestAnalyzePortfolio_HarvestMath(t *testing.T) {
	a := AnalyzePortfolio(samplePortfolio(), fyEnd2025)

	assert.Equal(t, 37_400.0, a.TotalUnrealizedLTCG)
	assert.Equal(t, 3_250.0, a.TotalUnrealizedSTCG)
	assert.Equal(t, 125_000.0, a.ExemptionRemaining)
	assert.Equal(t, 37_400.0, a.HarvestableLTCG, "all LTCG fits under the exemption")
	// 37,400 * 12.5% * 1.04 cess
	assert.Equal(t, 4_862.0, a.FutureTaxSaved)
}

func TestAnalyzePortfolio_RealizedLTCGShrinksBudget(t *testing.T) {
	h := samplePortfolio()
	h.RealizedLTCGThisFY = 100_000

	a := AnalyzePortfolio(h, fyEnd2025)
	assert.Equal(t, 25_000.0, a.ExemptionRemaining)
	assert.Equal(t, 25_000.0, a.HarvestableLTCG)
	assert.Equal(t, 3_250.0, a.FutureTaxSaved)
}

func TestAnalyzePortfolio_ExemptionFullyConsumed(t *testing.T) {
	h := samplePortfolio()
	h.RealizedLTCGThisFY = 200_000

	a := AnalyzePortfolio(h, fyEnd2025)
	assert.Equal(t, 0.0, a.ExemptionRemaining)
	assert.Equal(t, 0.0, a.HarvestableLTCG)
	assert.Equal(t, 0.0, a.FutureTaxSaved)
}

func TestAnalyzePortfolio_HoldingPeriodAlert(t *testing.T) {
	h := models.Holdings{Holdings: []models.Holding{
		// 11 months held at the reference date, sitting on a gain.
		{SecurityName: "Tata Motors Ltd", SecurityType: models.SecurityEquityShare,
			PurchaseDate: models.NewDate(2024, time.April, 15), Quantity: 100, PurchasePrice: 900, CurrentPrice: 1000},
	}}

	a := AnalyzePortfolio(h, fyEnd2025)
	require.Len(t, a.Alerts, 1)
	alert := a.Alerts[0]
	assert.Equal(t, "Tata Motors Ltd", alert.Security)
	assert.Equal(t, 11, alert.MonthsHeld)
	assert.Equal(t, 2, alert.MonthsToLTCG)
	assert.Equal(t, 10_000.0, alert.Gain)
	// 10,000 * 20% STCG * 1.04 cess
	assert.Equal(t, 2_080.0, alert.STCGTax)
	assert.Contains(t, alert.Advice, "Wait 2 month(s)")
}

func TestAnalyzePortfolio_NoAlertWithoutGain(t *testing.T) {
	h := models.Holdings{Holdings: []models.Holding{
		{SecurityName: "Zee Entertainment", SecurityType: models.SecurityEquityShare,
			PurchaseDate: models.NewDate(2024, time.May, 10), Quantity: 100, PurchasePrice: 300, CurrentPrice: 250},
	}}

	a := AnalyzePortfolio(h, fyEnd2025)
	assert.Empty(t, a.Alerts, "losses never trigger holding period alerts")
	require.Len(t, a.Losses, 1)
	assert.Equal(t, 5_000.0, a.Losses[0].Loss)
	assert.False(t, a.Losses[0].IsLongTerm)
	assert.Equal(t, 0.0, a.TotalUnrealizedSTCG, "only positive short-term gains count")
}

func TestAnalyzePortfolio_LongTermLoss(t *testing.T) {
	h := models.Holdings{Holdings: []models.Holding{
		{SecurityName: "Yes Bank Ltd", SecurityType: models.SecurityEquityShare,
			PurchaseDate: models.NewDate(2021, time.January, 5), Quantity: 1000, PurchasePrice: 25, CurrentPrice: 18},
	}}

	a := AnalyzePortfolio(h, fyEnd2025)
	assert.Empty(t, a.LongTermGainers)
	require.Len(t, a.Losses, 1)
	assert.Equal(t, 7_000.0, a.Losses[0].Loss)
	assert.True(t, a.Losses[0].IsLongTerm)
	assert.Equal(t, 0.0, a.TotalUnrealizedLTCG)
}

func TestAnalyzePortfolio_DebtUsesLongerThreshold(t *testing.T) {
	h := models.Holdings{Holdings: []models.Holding{
		// 20 months: long-term for equity, still short-term for debt.
		{SecurityName: "HDFC Corporate Bond Fund", SecurityType: models.SecurityDebtMF,
			PurchaseDate: models.NewDate(2023, time.July, 15), Quantity: 100, PurchasePrice: 50, CurrentPrice: 60},
	}}

	a := AnalyzePortfolio(h, fyEnd2025)
	assert.Empty(t, a.LongTermGainers)
	require.Len(t, a.ShortTerm, 1)
	assert.Equal(t, 20, a.ShortTerm[0].Months)
	assert.Empty(t, a.Alerts, "debt past 12 months is outside the equity alert window")
}

func TestAnalyzePortfolio_Empty(t *testing.T) {
	a := AnalyzePortfolio(models.Holdings{}, fyEnd2025)
	assert.Empty(t, a.LongTermGainers)
	assert.Empty(t, a.ShortTerm)
	assert.Equal(t, 125_000.0, a.ExemptionRemaining)
	assert.Equal(t, 0.0, a.FutureTaxSaved)
}
