package taxengine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/username/taxhawk/backend/src/models"
)

func TestTaxOnSlabs_NewRegimeFY2024_25(t *testing.T) {
	cases := []struct {
		income float64
		want   float64
	}{
		{0, 0},
		{300_000, 0},
		{500_000, 10_000},
		{700_000, 20_000},
		{1_000_000, 50_000},
		{1_200_000, 80_000},
		{1_422_600, 124_520},
		{1_500_000, 140_000},
		{2_000_000, 290_000},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, TaxOnSlabs(c.income, NewRegimeSlabsFY2024_25), 0.01, "income %v", c.income)
	}
}

func TestTaxOnSlabs_OldRegimeBelow60(t *testing.T) {
	cases := []struct {
		income float64
		want   float64
	}{
		{250_000, 0},
		{500_000, 12_500},
		{982_600, 109_020},
		{1_000_000, 112_500},
		{1_500_000, 262_500},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, TaxOnSlabs(c.income, OldRegimeSlabsBelow60), 0.01, "income %v", c.income)
	}
}

func TestApplyCess(t *testing.T) {
	assert.Equal(t, 4361.0, ApplyCess(109_020))
	assert.Equal(t, 4981.0, ApplyCess(124_520))
	assert.Equal(t, 0.0, ApplyCess(0))
}

func TestApplyRebate87A_Cliff(t *testing.T) {
	// At the limit the rebate zeroes the tax entirely.
	tax := TaxOnSlabs(700_000, NewRegimeSlabsFY2024_25)
	assert.Equal(t, 0.0, ApplyRebate87A(tax, 700_000, models.RegimeNew, "2024-25"))

	// One rupee over the limit forfeits the whole rebate.
	taxOver := TaxOnSlabs(700_001, NewRegimeSlabsFY2024_25)
	assert.InDelta(t, taxOver, ApplyRebate87A(taxOver, 700_001, models.RegimeNew, "2024-25"), 0.01)
	assert.Greater(t, ApplyRebate87A(taxOver, 700_001, models.RegimeNew, "2024-25"), 19_999.0)
}

func TestApplyRebate87A_OldRegime(t *testing.T) {
	tax := TaxOnSlabs(500_000, OldRegimeSlabsBelow60)
	assert.Equal(t, 0.0, ApplyRebate87A(tax, 500_000, models.RegimeOld, "2024-25"))

	taxOver := TaxOnSlabs(500_001, OldRegimeSlabsBelow60)
	assert.InDelta(t, taxOver, ApplyRebate87A(taxOver, 500_001, models.RegimeOld, "2024-25"), 0.01)
}

func TestApplyRebate87A_FY2025_26NewRegime(t *testing.T) {
	tax := TaxOnSlabs(1_200_000, NewRegimeSlabsFY2025_26)
	assert.InDelta(t, 60_000, tax, 0.01)
	assert.Equal(t, 0.0, ApplyRebate87A(tax, 1_200_000, models.RegimeNew, "2025-26"))
}

func TestMarginalRate_InclusiveBoundaries(t *testing.T) {
	cases := []struct {
		income float64
		regime models.TaxRegime
		fy     string
		age    AgeCategory
		want   float64
	}{
		{450_000, models.RegimeOld, "2024-25", AgeBelow60, 0.05},
		{1_000_000, models.RegimeOld, "2024-25", AgeBelow60, 0.20},
		{1_000_001, models.RegimeOld, "2024-25", AgeBelow60, 0.30},
		{1_447_600, models.RegimeOld, "2024-25", AgeBelow60, 0.30},
		{700_000, models.RegimeNew, "2024-25", AgeBelow60, 0.05},
		{700_001, models.RegimeNew, "2024-25", AgeBelow60, 0.10},
		{1_422_600, models.RegimeNew, "2024-25", AgeBelow60, 0.20},
		{2_000_000, models.RegimeNew, "2024-25", AgeBelow60, 0.30},
		{300_000, models.RegimeOld, "2024-25", AgeSenior, 0.00},
		{500_000, models.RegimeOld, "2024-25", AgeSuperSenior, 0.00},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MarginalRate(c.income, c.regime, c.fy, c.age), "income %v %s", c.income, c.regime)
	}
}

func TestCalculateTax_DemoNewRegime(t *testing.T) {
	comp := CalculateTax(1_422_600, models.RegimeNew, "2024-25", AgeBelow60)
	assert.Equal(t, 124_520.0, comp.BaseTax)
	assert.Equal(t, 0.0, comp.Rebate87A)
	assert.Equal(t, 0.0, comp.Surcharge)
	assert.Equal(t, 4_981.0, comp.Cess)
	assert.Equal(t, 129_501.0, comp.TotalTax)
}

func TestCalculateTax_DemoOldRegimeOptimized(t *testing.T) {
	comp := CalculateTax(982_600, models.RegimeOld, "2024-25", AgeBelow60)
	assert.Equal(t, 109_020.0, comp.BaseTax)
	assert.Equal(t, 4_361.0, comp.Cess)
	assert.Equal(t, 113_381.0, comp.TotalTax)
}

func TestCalculateTax_RebateZeroesTax(t *testing.T) {
	comp := CalculateTax(700_000, models.RegimeNew, "2024-25", AgeBelow60)
	assert.Equal(t, 0.0, comp.TotalTax)
	assert.Equal(t, 20_000.0, comp.Rebate87A)

	comp = CalculateTax(500_000, models.RegimeOld, "2024-25", AgeBelow60)
	assert.Equal(t, 0.0, comp.TotalTax)

	comp = CalculateTax(1_200_000, models.RegimeNew, "2025-26", AgeBelow60)
	assert.Equal(t, 0.0, comp.TotalTax)
}

func TestCalculateTax_RebateCliffJump(t *testing.T) {
	atLimit := CalculateTax(700_000, models.RegimeNew, "2024-25", AgeBelow60)
	overLimit := CalculateTax(700_001, models.RegimeNew, "2024-25", AgeBelow60)
	assert.Equal(t, 0.0, atLimit.TotalTax)
	assert.Equal(t, 20_800.0, overLimit.TotalTax)
}

func TestCalculateTax_Surcharge(t *testing.T) {
	comp := CalculateTax(6_000_000, models.RegimeNew, "2024-25", AgeBelow60)
	assert.Equal(t, 1_490_000.0, comp.BaseTax)
	assert.Equal(t, 149_000.0, comp.Surcharge)
	assert.Equal(t, 65_560.0, comp.Cess)
	assert.Equal(t, 1_704_560.0, comp.TotalTax)

	// Above ₹5 crore the old regime hits 37% while the new is capped at 25%.
	oldComp := CalculateTax(60_000_000, models.RegimeOld, "2024-25", AgeBelow60)
	assert.Equal(t, 6_590_625.0, oldComp.Surcharge)
	newComp := CalculateTax(60_000_000, models.RegimeNew, "2024-25", AgeBelow60)
	assert.Equal(t, 4_422_500.0, newComp.Surcharge)
}

func TestCalculateTax_Monotonic(t *testing.T) {
	for _, regime := range []models.TaxRegime{models.RegimeOld, models.RegimeNew} {
		prev := 0.0
		for income := 0.0; income <= 3_000_000; income += 25_000 {
			total := CalculateTax(income, regime, "2024-25", AgeBelow60).TotalTax
			assert.GreaterOrEqual(t, total, prev, "regime %s income %v", regime, income)
			prev = total
		}
	}
}

func TestSlabsFor_UnknownYearFallsBack(t *testing.T) {
	assert.Equal(t, NewRegimeSlabsFY2024_25, SlabsFor(models.RegimeNew, "2030-31", AgeBelow60))
	assert.Equal(t, OldRegimeSlabsSenior, SlabsFor(models.RegimeOld, "2030-31", AgeSenior))
}

func TestStandardDeductionFor(t *testing.T) {
	assert.Equal(t, 50_000.0, StandardDeductionFor("2024-25", models.RegimeOld))
	assert.Equal(t, 75_000.0, StandardDeductionFor("2024-25", models.RegimeNew))
	assert.Equal(t, 75_000.0, StandardDeductionFor("2025-26", models.RegimeOld))
	assert.Equal(t, 75_000.0, StandardDeductionFor("2025-26", models.RegimeNew))
	// Unknown years use the default-year table.
	assert.Equal(t, 50_000.0, StandardDeductionFor("2030-31", models.RegimeOld))
}
