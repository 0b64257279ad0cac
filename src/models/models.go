package models

import (
	"strings"
	"time"

	"github.com/username/taxhawk/backend/src/utils"
)

// TaxRegime selects one of the two statutory computation schemes.
type TaxRegime string

const (
	RegimeOld TaxRegime = "old"
	RegimeNew TaxRegime = "new"
)

// SecurityType categorizes an investment holding for capital gains purposes.
type SecurityType string

const (
	SecurityEquityShare SecurityType = "equity_share"
	SecurityEquityMF    SecurityType = "equity_mf"
	SecurityDebtMF      SecurityType = "debt_mf"
	SecurityELSS        SecurityType = "elss"
	SecurityOther       SecurityType = "other"
)

// FindingStatus is the outcome classification of a single check.
type FindingStatus string

const (
	StatusOpportunity   FindingStatus = "opportunity"
	StatusOptimized     FindingStatus = "optimized"
	StatusNotApplicable FindingStatus = "not_applicable"
)

// Confidence expresses how certain a finding is.
type Confidence string

const (
	ConfidenceDefinite          Confidence = "definite"
	ConfidenceLikely            Confidence = "likely"
	ConfidenceNeedsVerification Confidence = "needs_verification"
)

// MetroCities is the fixed HRA metro allow-list. Bangalore is NOT metro.
var MetroCities = map[string]bool{
	"mumbai":  true,
	"delhi":   true,
	"kolkata": true,
	"chennai": true,
}

// Date is a calendar date serialized as ISO YYYY-MM-DD in JSON.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(utils.ISODateFormat) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(utils.ISODateFormat, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// SalaryProfile holds one tax year's salary facts for one taxpayer,
// as extracted from Form 16 Part B plus user-supplied context.
// It is immutable for the duration of a computation; what-if overrides
// are passed separately and never mutate the profile.
type SalaryProfile struct {
	// Identity
	FinancialYear string `json:"financial_year"` // e.g. "2024-25"
	EmployeeName  string `json:"employee_name"`
	PAN           string `json:"pan"`
	EmployerName  string `json:"employer_name"`

	// Salary components (annual)
	GrossSalary      float64 `json:"gross_salary"`
	BasicSalary      float64 `json:"basic_salary"`
	HRAReceived      float64 `json:"hra_received"`
	SpecialAllowance float64 `json:"special_allowance"`
	LTA              float64 `json:"lta"`
	Bonus            float64 `json:"bonus"`
	OtherSalary      float64 `json:"other_salary"`

	// Section 10 exemptions already claimed
	HRAExemption    float64 `json:"hra_exemption"`
	LTAExemption    float64 `json:"lta_exemption"`
	OtherExemptions float64 `json:"other_exemptions"`

	// Section 16 deductions
	StandardDeduction float64 `json:"standard_deduction"`
	ProfessionalTax   float64 `json:"professional_tax"`

	// Chapter VI-A deductions currently claimed
	Deduction80C    float64 `json:"deduction_80c"`
	Deduction80CCC  float64 `json:"deduction_80ccc"`
	Deduction80CCD1 float64 `json:"deduction_80ccd_1"`
	// Additional NPS with its own limit, above the 80C family.
	Deduction80CCD1B float64 `json:"deduction_80ccd_1b"`
	Deduction80CCD2  float64 `json:"deduction_80ccd_2"`
	Deduction80D     float64 `json:"deduction_80d"`
	Deduction80E     float64 `json:"deduction_80e"`
	Deduction80G     float64 `json:"deduction_80g"`
	Deduction80TTA   float64 `json:"deduction_80tta"`
	Deduction24B     float64 `json:"deduction_24b"`
	OtherDeductions  float64 `json:"other_deductions"`

	// Tax computation as filed by the employer
	TaxableIncome float64 `json:"taxable_income"`
	TaxPayable    float64 `json:"tax_payable"`
	Cess          float64 `json:"cess"`
	TotalTaxPaid  float64 `json:"total_tax_paid"`

	// Regime and user-supplied context
	Regime                  TaxRegime `json:"regime"`
	City                    string    `json:"city"`
	MonthlyRent             float64   `json:"monthly_rent"`
	EPFEmployeeContribution float64   `json:"epf_employee_contribution"`
}

// IsMetro reports whether the profile's city is on the fixed metro
// allow-list (case-insensitive). Not a general geography lookup.
func (p SalaryProfile) IsMetro() bool {
	return MetroCities[strings.ToLower(strings.TrimSpace(p.City))]
}

// TotalExemptions sums the Section 10 exemptions currently claimed.
func (p SalaryProfile) TotalExemptions() float64 {
	return p.HRAExemption + p.LTAExemption + p.OtherExemptions
}

// TotalChapterVIA sums all currently claimed Chapter VI-A deductions.
func (p SalaryProfile) TotalChapterVIA() float64 {
	return p.Deduction80C + p.Deduction80CCC + p.Deduction80CCD1 +
		p.Deduction80CCD1B + p.Deduction80CCD2 + p.Deduction80D +
		p.Deduction80E + p.Deduction80G + p.Deduction80TTA +
		p.Deduction24B + p.OtherDeductions
}

// Holding is a single investment position. Derived quantities are
// computed from the stored primitives on demand, never cached, so a
// changed reference date cannot leave them stale.
type Holding struct {
	SecurityName  string       `json:"security_name"`
	SecurityType  SecurityType `json:"security_type"`
	PurchaseDate  Date         `json:"purchase_date"`
	PurchasePrice float64      `json:"purchase_price"` // cost per unit/share
	Quantity      float64      `json:"quantity"`
	CurrentPrice  float64      `json:"current_price"` // market price per unit/share
}

func (h Holding) TotalCost() float64 {
	return utils.RoundFloat(h.PurchasePrice*h.Quantity, 2)
}

func (h Holding) CurrentValue() float64 {
	return utils.RoundFloat(h.CurrentPrice*h.Quantity, 2)
}

func (h Holding) UnrealizedGain() float64 {
	return utils.RoundFloat(h.CurrentValue()-h.TotalCost(), 2)
}

// HoldingMonths returns whole calendar months held from purchase to the
// reference date.
func (h Holding) HoldingMonths(asOf time.Time) int {
	return (asOf.Year()-h.PurchaseDate.Year())*12 + int(asOf.Month()) - int(h.PurchaseDate.Month())
}

// IsEquityLike reports whether the equity holding-period threshold applies.
func (h Holding) IsEquityLike() bool {
	switch h.SecurityType {
	case SecurityEquityShare, SecurityEquityMF, SecurityELSS:
		return true
	}
	return false
}

// IsLongTerm classifies the holding relative to the reference date.
// Equity-like instruments: >12 months. Everything else (debt): >24 months.
func (h Holding) IsLongTerm(asOf time.Time) bool {
	months := h.HoldingMonths(asOf)
	if h.IsEquityLike() {
		return months > 12
	}
	return months > 24
}

// Holdings is a portfolio plus gains already realized this fiscal year.
// Realized LTCG counts against the same annual exemption budget as
// unrealized long-term gains.
type Holdings struct {
	Holdings           []Holding `json:"holdings"`
	RealizedSTCGThisFY float64   `json:"realized_stcg_this_fy"`
	RealizedLTCGThisFY float64   `json:"realized_ltcg_this_fy"`
}

// Finding is the uniform output of one optimization check.
type Finding struct {
	CheckID     string         `json:"check_id"`
	CheckName   string         `json:"check_name"`
	Status      FindingStatus  `json:"status"`
	Finding     string         `json:"finding"` // one-line summary
	Savings     float64        `json:"savings"` // rupees; 0 if optimized or N/A
	Action      string         `json:"action"`
	Deadline    string         `json:"deadline"`
	Confidence  Confidence     `json:"confidence"`
	Explanation string         `json:"explanation"`
	Details     map[string]any `json:"details"`
}

// Disclaimer is attached verbatim to every report.
const Disclaimer = "This analysis is for informational purposes only and does not constitute " +
	"tax advice. Please consult a qualified Chartered Accountant before making " +
	"tax decisions. Tax laws are subject to change."

// TaxHawkResult is the final report combining all findings.
type TaxHawkResult struct {
	UserName          string    `json:"user_name"`
	FinancialYear     string    `json:"financial_year"`
	CurrentRegime     TaxRegime `json:"current_regime"`
	RecommendedRegime TaxRegime `json:"recommended_regime"`
	TotalSavings      float64   `json:"total_savings"`
	Checks            []Finding `json:"checks"`
	Summary           string    `json:"summary"`
	Disclaimer        string    `json:"disclaimer"`
}
