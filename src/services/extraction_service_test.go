package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/taxhawk/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

const sampleProfileJSON = `{
	"financial_year": "2024-25",
	"employee_name": "Priya Sharma",
	"pan": "ABCPS1234F",
	"gross_salary": 1500000,
	"basic_salary": 600000,
	"hra_received": 300000,
	"standard_deduction": 75000,
	"professional_tax": 2400,
	"deduction_80c": 72000,
	"total_tax_paid": 129501,
	"regime": "new"
}`

func modelServer(t *testing.T, responseText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Form 16")

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": responseText}},
		})
	}))
}

func TestExtractSalaryProfile(t *testing.T) {
	srv := modelServer(t, sampleProfileJSON)
	defer srv.Close()

	svc := NewExtractionService("test-key", "model-under-test", srv.URL)
	rent := 25_000.0
	epf := 72_000.0
	result, err := svc.ExtractSalaryProfile(context.Background(), "Form 16 Part B text", UserContext{
		City:                    "mumbai",
		MonthlyRent:             rent,
		EPFEmployeeContribution: &epf,
	})
	require.NoError(t, err)

	assert.Equal(t, "Priya Sharma", result.Profile.EmployeeName)
	assert.Equal(t, 1_500_000.0, result.Profile.GrossSalary)
	assert.Equal(t, "mumbai", result.Profile.City)
	assert.Equal(t, rent, result.Profile.MonthlyRent)
	assert.Equal(t, epf, result.Profile.EPFEmployeeContribution)
	assert.Empty(t, result.Warnings)
}

func TestExtractSalaryProfile_FencedJSON(t *testing.T) {
	srv := modelServer(t, "```json\n"+sampleProfileJSON+"\n```")
	defer srv.Close()

	svc := NewExtractionService("test-key", "model-under-test", srv.URL)
	result, err := svc.ExtractSalaryProfile(context.Background(), "text", UserContext{City: "pune"})
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", result.Profile.EmployeeName)
}

func TestExtractSalaryProfile_WarningsSurface(t *testing.T) {
	srv := modelServer(t, `{"financial_year":"2024-25","employee_name":"X","gross_salary":0,"regime":"new"}`)
	defer srv.Close()

	svc := NewExtractionService("test-key", "model-under-test", srv.URL)
	result, err := svc.ExtractSalaryProfile(context.Background(), "text", UserContext{City: "other"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warnings)
}

func TestExtractSalaryProfile_MissingAPIKey(t *testing.T) {
	svc := NewExtractionService("", "model-under-test", "http://unused.invalid")
	_, err := svc.ExtractSalaryProfile(context.Background(), "text", UserContext{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestExtractSalaryProfile_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"overloaded_error","message":"try later"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewExtractionService("test-key", "model-under-test", srv.URL)
	_, err := svc.ExtractSalaryProfile(context.Background(), "text", UserContext{})
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractSalaryProfile_UnparseableModelOutput(t *testing.T) {
	srv := modelServer(t, "Sorry, I could not find any salary data in this document.")
	defer srv.Close()

	svc := NewExtractionService("test-key", "model-under-test", srv.URL)
	_, err := svc.ExtractSalaryProfile(context.Background(), "text", UserContext{})
	assert.True(t, errors.Is(err, ErrUnparseableResponse))
}

func TestStripMarkdownFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripMarkdownFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripMarkdownFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripMarkdownFences(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, stripMarkdownFences("  {\"a\":1}  "))
}
