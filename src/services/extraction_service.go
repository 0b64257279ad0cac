package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/username/taxhawk/backend/src/logger"
	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/validation"
)

// extractionPrompt instructs the model to map messy Form 16 text to the
// SalaryProfile schema. The model never computes tax amounts.
const extractionPrompt = `You are a Form 16 (India income tax) parser. Extract the following fields from the Form 16 Part B text below. Return ONLY a valid JSON object with these fields. Use 0 for any field not found. All monetary values should be numbers (no commas, no ₹ symbol).

Fields to extract:
- financial_year: string (e.g. "2024-25")
- employee_name: string
- pan: string
- employer_name: string
- gross_salary: number (total gross salary under Section 17(1)+17(2)+17(3))
- basic_salary: number (look for "Basic" or "Basic Pay" or "Basic Salary")
- hra_received: number (look for "House Rent Allowance" or "HRA")
- special_allowance: number (any special / other allowances)
- lta: number (Leave Travel Allowance / Concession)
- bonus: number (Performance Bonus / Variable Pay)
- other_salary: number (any other components not captured above)
- hra_exemption: number (HRA exemption under Section 10(13A))
- lta_exemption: number (LTA exemption under Section 10(5))
- other_exemptions: number (other Section 10 exemptions)
- standard_deduction: number (under Section 16(ia))
- professional_tax: number (under Section 16(iii))
- deduction_80c: number (total under 80C including EPF, PPF, ELSS, LIC)
- deduction_80ccc: number (pension fund contribution)
- deduction_80ccd_1: number (employee NPS within 80C limit)
- deduction_80ccd_1b: number (additional NPS, separate ₹50K limit)
- deduction_80ccd_2: number (employer NPS contribution)
- deduction_80d: number (health insurance premium)
- deduction_80e: number (education loan interest)
- deduction_80g: number (donations)
- deduction_80tta: number (savings account interest up to ₹10K)
- deduction_24b: number (home loan interest under Section 24(b))
- other_deductions: number (any other Chapter VI-A deductions)
- taxable_income: number (total taxable income as computed)
- tax_payable: number (tax on total income)
- cess: number (health & education cess)
- total_tax_paid: number (total TDS deducted)
- regime: "old" or "new" (if "Section 115BAC" or "new tax regime" mentioned → "new", otherwise → "old")

IMPORTANT:
- gross_salary is the sum of all salary components (Section 17(1) + 17(2) + 17(3))
- If you see "Income chargeable under head salaries" it may be AFTER exemptions
- Return ONLY the JSON object. No explanation, no markdown fences.

Form 16 Text:
%s`

type extractionServiceImpl struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewExtractionService(apiKey, model, endpoint string) ExtractionService {
	return &extractionServiceImpl{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *extractionServiceImpl) ExtractSalaryProfile(ctx context.Context, form16Text string, uc UserContext) (*ExtractionResult, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	reqBody := anthropicRequest{
		Model:     s.model,
		MaxTokens: 2000,
		Messages: []anthropicMessage{
			{Role: "user", Content: fmt.Sprintf(extractionPrompt, form16Text)},
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", ErrExtractionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrExtractionFailed, err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrExtractionFailed, err)
	}
	if resp.StatusCode >= 300 {
		logger.L.Error("Anthropic API returned non-success status",
			"status", resp.StatusCode, "body", truncateForLog(string(respBytes)))
		return nil, fmt.Errorf("%w: http %d", ErrExtractionFailed, resp.StatusCode)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableResponse, err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrExtractionFailed, apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return nil, fmt.Errorf("%w: empty content", ErrUnparseableResponse)
	}

	rawJSON := stripMarkdownFences(apiResp.Content[0].Text)

	var profile models.SalaryProfile
	if err := json.Unmarshal([]byte(rawJSON), &profile); err != nil {
		logger.L.Warn("Model output was not valid profile JSON", "error", err, "output", truncateForLog(rawJSON))
		return nil, fmt.Errorf("%w: %v", ErrUnparseableResponse, err)
	}

	// Inject user-provided context fields (not present in Form 16).
	profile.City = uc.City
	profile.MonthlyRent = uc.MonthlyRent
	if uc.EPFEmployeeContribution != nil {
		profile.EPFEmployeeContribution = *uc.EPFEmployeeContribution
	}

	warnings := validation.ValidateProfile(profile)

	logger.L.Info("Form 16 extraction complete",
		"employee", profile.EmployeeName,
		"financialYear", profile.FinancialYear,
		"warnings", len(warnings),
		"durationMs", time.Since(startTime).Milliseconds())

	return &ExtractionResult{Profile: profile, Warnings: warnings}, nil
}

// stripMarkdownFences removes ``` fences if the model wraps its JSON.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func truncateForLog(s string) string {
	const maxLen = 500
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
