package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fyEnd2025 = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

func TestHoldingMonths(t *testing.T) {
	cases := []struct {
		purchase Date
		want     int
	}{
		{NewDate(2023, time.June, 10), 21},
		{NewDate(2023, time.January, 20), 26},
		{NewDate(2022, time.July, 5), 32},
		{NewDate(2024, time.August, 12), 7},
		{NewDate(2024, time.March, 31), 12},
	}
	for _, c := range cases {
		h := Holding{PurchaseDate: c.purchase}
		assert.Equal(t, c.want, h.HoldingMonths(fyEnd2025), "purchase %v", c.purchase)
	}
}

func TestIsLongTerm_EquityThreshold(t *testing.T) {
	// Exactly 12 months is still short-term; the threshold is strict.
	h := Holding{SecurityType: SecurityEquityShare, PurchaseDate: NewDate(2024, time.March, 31)}
	assert.False(t, h.IsLongTerm(fyEnd2025))

	h.PurchaseDate = NewDate(2024, time.February, 28)
	assert.True(t, h.IsLongTerm(fyEnd2025))
}

func TestIsLongTerm_DebtThreshold(t *testing.T) {
	h := Holding{SecurityType: SecurityDebtMF, PurchaseDate: NewDate(2023, time.March, 31)}
	assert.Equal(t, 24, h.HoldingMonths(fyEnd2025))
	assert.False(t, h.IsLongTerm(fyEnd2025), "24 months of debt is still short-term")

	h.PurchaseDate = NewDate(2023, time.February, 15)
	assert.True(t, h.IsLongTerm(fyEnd2025))
}

func TestIsEquityLike(t *testing.T) {
	assert.True(t, Holding{SecurityType: SecurityEquityShare}.IsEquityLike())
	assert.True(t, Holding{SecurityType: SecurityEquityMF}.IsEquityLike())
	assert.True(t, Holding{SecurityType: SecurityELSS}.IsEquityLike())
	assert.False(t, Holding{SecurityType: SecurityDebtMF}.IsEquityLike())
	assert.False(t, Holding{SecurityType: SecurityOther}.IsEquityLike())
}

func TestHoldingDerivedValues(t *testing.T) {
	h := Holding{PurchasePrice: 1500, CurrentPrice: 2150, Quantity: 10}
	assert.Equal(t, 15000.0, h.TotalCost())
	assert.Equal(t, 21500.0, h.CurrentValue())
	assert.Equal(t, 6500.0, h.UnrealizedGain())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2023, time.June, 10)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-06-10"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back.Time))

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())
}

func TestIsMetro(t *testing.T) {
	assert.True(t, SalaryProfile{City: "mumbai"}.IsMetro())
	assert.True(t, SalaryProfile{City: " Delhi "}.IsMetro())
	assert.True(t, SalaryProfile{City: "CHENNAI"}.IsMetro())
	// Bangalore is not on the statutory metro list.
	assert.False(t, SalaryProfile{City: "bangalore"}.IsMetro())
	assert.False(t, SalaryProfile{City: "pune"}.IsMetro())
	assert.False(t, SalaryProfile{City: ""}.IsMetro())
}

func TestProfileTotals(t *testing.T) {
	p := SalaryProfile{
		HRAExemption:     240000,
		LTAExemption:     20000,
		OtherExemptions:  5000,
		Deduction80C:     72000,
		Deduction80CCD1B: 50000,
		Deduction80D:     25000,
		Deduction80G:     10000,
	}
	assert.Equal(t, 265000.0, p.TotalExemptions())
	assert.Equal(t, 157000.0, p.TotalChapterVIA())
}
