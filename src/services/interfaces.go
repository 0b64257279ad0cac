package services

import (
	"context"
	"errors"
	"time"

	"github.com/username/taxhawk/backend/src/models"
)

var (
	// Analysis service failures.
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrDemoDataMissing  = errors.New("demo data not found")

	// Extraction service failures, classified for the HTTP boundary:
	// missing configuration vs bad upstream response vs unusable content.
	ErrMissingAPIKey       = errors.New("anthropic API key not configured")
	ErrExtractionFailed    = errors.New("extraction request failed")
	ErrUnparseableResponse = errors.New("extraction response was not valid JSON")
)

// AnalysisRequest is one orchestrator run plus its persistence context.
type AnalysisRequest struct {
	Salary        models.SalaryProfile
	Holdings      *models.Holdings
	ParentsSenior bool
	CGAsOf        time.Time
}

// StoredAnalysis is a persisted orchestrator run.
type StoredAnalysis struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Result    models.TaxHawkResult `json:"result"`
}

// AnalysisService runs the tax engine and manages stored runs.
type AnalysisService interface {
	RunAnalysis(req AnalysisRequest) (*StoredAnalysis, error)
	GetAnalysis(id string) (*StoredAnalysis, error)
	DemoResult() (*models.TaxHawkResult, error)
}

// UserContext carries the fields a Form 16 does not contain; the user
// supplies them alongside the upload.
type UserContext struct {
	City                    string
	MonthlyRent             float64
	EPFEmployeeContribution *float64 // nil: infer nothing, keep extracted value
}

// ExtractionResult pairs the extracted profile with advisory warnings.
type ExtractionResult struct {
	Profile  models.SalaryProfile `json:"profile"`
	Warnings []string             `json:"warnings"`
}

// ExtractionService maps raw Form 16 text to a structured SalaryProfile.
// The model does the understanding; all tax math stays in taxengine.
type ExtractionService interface {
	ExtractSalaryProfile(ctx context.Context, form16Text string, uc UserContext) (*ExtractionResult, error)
}
