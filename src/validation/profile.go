// Package validation holds the advisory input checks that sit outside
// the tax engine. Warnings never alter computed results — the engine
// computes whatever numbers the input implies.
package validation

import (
	"fmt"

	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/taxengine"
	"github.com/username/taxhawk/backend/src/utils"
)

// ValidateProfile returns warning strings for common extraction and
// data-entry errors. An empty slice means the profile looks plausible.
func ValidateProfile(p models.SalaryProfile) []string {
	var warnings []string

	if p.GrossSalary <= 0 {
		warnings = append(warnings, "Gross salary is 0 — parsing may have failed")
	}

	if p.BasicSalary > p.GrossSalary {
		warnings = append(warnings, "Basic salary exceeds gross — check parsing")
	}

	if p.TotalTaxPaid <= 0 {
		warnings = append(warnings, "No tax paid recorded — verify Form 16 was complete")
	}

	if p.Deduction80C > taxengine.Limit80C {
		warnings = append(warnings, fmt.Sprintf(
			"80C deduction is ₹%s (exceeds ₹1.5L limit) — possible parsing error",
			utils.FormatINR(p.Deduction80C)))
	}

	if p.StandardDeduction > 75_000 {
		warnings = append(warnings, fmt.Sprintf(
			"Standard deduction is ₹%s (max is ₹75K) — check value",
			utils.FormatINR(p.StandardDeduction)))
	}

	// Component sanity: gross should cover basic + HRA, with a small
	// tolerance for rounding in the source document.
	componentSum := p.BasicSalary + p.HRAReceived
	if componentSum > p.GrossSalary*1.05 {
		warnings = append(warnings, fmt.Sprintf(
			"Basic + HRA (₹%s) exceeds gross (₹%s) — check parsing",
			utils.FormatINR(componentSum), utils.FormatINR(p.GrossSalary)))
	}

	if negs := negativeMoneyFields(p); len(negs) > 0 {
		for _, f := range negs {
			warnings = append(warnings, fmt.Sprintf("%s is negative — monetary fields must be non-negative", f))
		}
	}

	if p.MonthlyRent > 0 && p.HRAReceived <= 0 {
		warnings = append(warnings, "Rent is paid but no HRA component in salary — HRA exemption will not apply")
	}

	if !knownFinancialYears[p.FinancialYear] {
		warnings = append(warnings, fmt.Sprintf(
			"Financial year '%s' has no rate table — %s rates will be used",
			p.FinancialYear, taxengine.DefaultFY))
	}

	return warnings
}

var knownFinancialYears = map[string]bool{
	"2024-25": true,
	"2025-26": true,
}

func negativeMoneyFields(p models.SalaryProfile) []string {
	fields := []struct {
		name  string
		value float64
	}{
		{"gross_salary", p.GrossSalary},
		{"basic_salary", p.BasicSalary},
		{"hra_received", p.HRAReceived},
		{"standard_deduction", p.StandardDeduction},
		{"professional_tax", p.ProfessionalTax},
		{"deduction_80c", p.Deduction80C},
		{"deduction_80d", p.Deduction80D},
		{"deduction_80ccd_1b", p.Deduction80CCD1B},
		{"monthly_rent", p.MonthlyRent},
		{"epf_employee_contribution", p.EPFEmployeeContribution},
	}
	var out []string
	for _, f := range fields {
		if f.value < 0 {
			out = append(out, f.name)
		}
	}
	return out
}
