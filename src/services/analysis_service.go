package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/username/taxhawk/backend/src/database"
	"github.com/username/taxhawk/backend/src/logger"
	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/taxengine/checks"
)

const (
	ckDemoResult = "res_demo_result"
	ckAnalysis   = "res_analysis_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute

	demoSalaryFile   = "demo_form16.json"
	demoHoldingsFile = "demo_holdings.json"
)

// demoCGAsOf pins the demo capital-gains evaluation to the end of FY
// 2024-25 so the bundled figures stay stable.
var demoCGAsOf = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

type analysisServiceImpl struct {
	demoDataDir string
	reportCache *cache.Cache
}

func NewAnalysisService(demoDataDir string, reportCache *cache.Cache) AnalysisService {
	return &analysisServiceImpl{
		demoDataDir: demoDataDir,
		reportCache: reportCache,
	}
}

func (s *analysisServiceImpl) RunAnalysis(req AnalysisRequest) (*StoredAnalysis, error) {
	startTime := time.Now()

	result := checks.RunAllChecks(req.Salary, req.Holdings, checks.OrchestratorOptions{
		ParentsSenior: req.ParentsSenior,
		CGAsOf:        req.CGAsOf,
	})

	stored := &StoredAnalysis{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}

	if err := s.persist(stored); err != nil {
		// The computation itself succeeded; persistence failure should
		// not hide the report from the caller.
		logger.L.Error("Failed to persist analysis", "analysisID", stored.ID, "error", err)
	}

	s.reportCache.Set(fmt.Sprintf(ckAnalysis, stored.ID), stored, DefaultCacheExpiration)

	logger.L.Info("Analysis run complete",
		"analysisID", stored.ID,
		"user", result.UserName,
		"financialYear", result.FinancialYear,
		"recommendedRegime", result.RecommendedRegime,
		"totalSavings", result.TotalSavings,
		"durationMs", time.Since(startTime).Milliseconds())

	return stored, nil
}

func (s *analysisServiceImpl) persist(a *StoredAnalysis) error {
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("error marshaling analysis result: %w", err)
	}

	_, err = database.DB.Exec(
		`INSERT INTO analyses (id, user_name, financial_year, current_regime, recommended_regime, total_savings, result_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.Result.UserName,
		a.Result.FinancialYear,
		string(a.Result.CurrentRegime),
		string(a.Result.RecommendedRegime),
		a.Result.TotalSavings,
		string(resultJSON),
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting analysis: %w", err)
	}
	return nil
}

func (s *analysisServiceImpl) GetAnalysis(id string) (*StoredAnalysis, error) {
	if cached, found := s.reportCache.Get(fmt.Sprintf(ckAnalysis, id)); found {
		if stored, ok := cached.(*StoredAnalysis); ok {
			logger.L.Debug("Analysis cache hit", "analysisID", id)
			return stored, nil
		}
	}

	var (
		resultJSON string
		createdAt  time.Time
	)
	err := database.DB.QueryRow(
		`SELECT result_json, created_at FROM analyses WHERE id = ?`, id,
	).Scan(&resultJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying analysis %s: %w", id, err)
	}

	var result models.TaxHawkResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling stored analysis %s: %w", id, err)
	}

	stored := &StoredAnalysis{ID: id, CreatedAt: createdAt, Result: result}
	s.reportCache.Set(fmt.Sprintf(ckAnalysis, id), stored, DefaultCacheExpiration)
	return stored, nil
}

// DemoResult runs the orchestrator over the bundled demo profile and
// holdings. Pure deterministic computation — no extraction involved —
// so the result is cached.
func (s *analysisServiceImpl) DemoResult() (*models.TaxHawkResult, error) {
	if cached, found := s.reportCache.Get(ckDemoResult); found {
		if result, ok := cached.(*models.TaxHawkResult); ok {
			logger.L.Debug("Demo result cache hit")
			return result, nil
		}
	}

	var salary models.SalaryProfile
	if err := s.loadDemoJSON(demoSalaryFile, &salary); err != nil {
		return nil, err
	}
	var holdings models.Holdings
	if err := s.loadDemoJSON(demoHoldingsFile, &holdings); err != nil {
		return nil, err
	}

	result := checks.RunAllChecks(salary, &holdings, checks.OrchestratorOptions{
		CGAsOf: demoCGAsOf,
	})

	s.reportCache.Set(ckDemoResult, &result, DefaultCacheExpiration)
	return &result, nil
}

func (s *analysisServiceImpl) loadDemoJSON(name string, v any) error {
	path := filepath.Join(s.demoDataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDemoDataMissing, path)
		}
		return fmt.Errorf("error reading demo file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error parsing demo file %s: %w", path, err)
	}
	return nil
}
