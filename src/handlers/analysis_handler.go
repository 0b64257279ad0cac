package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/taxhawk/backend/src/logger"
	"github.com/username/taxhawk/backend/src/models"
	"github.com/username/taxhawk/backend/src/services"
	"github.com/username/taxhawk/backend/src/utils"
	"github.com/username/taxhawk/backend/src/validation"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
}

func NewAnalysisHandler(service services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: service}
}

// OptimizeRequest is the POST /api/optimize body.
type OptimizeRequest struct {
	Salary        models.SalaryProfile `json:"salary"`
	Holdings      *models.Holdings     `json:"holdings"`
	ParentsSenior bool                 `json:"parents_senior"`
}

// HandleDemo serves the pre-computed demo analysis. Pure deterministic
// computation over bundled data — no extraction involved. Supports ETag
// revalidation since the payload only changes with the binary.
func (h *AnalysisHandler) HandleDemo(w http.ResponseWriter, r *http.Request) {
	result, err := h.analysisService.DemoResult()
	if err != nil {
		if errors.Is(err, services.ErrDemoDataMissing) {
			utils.SendJSONError(w, fmt.Sprintf("Demo data not found: %v", err), http.StatusInternalServerError)
			return
		}
		logger.L.Error("Error computing demo result", "error", err)
		utils.SendJSONError(w, "An internal error occurred while computing the demo analysis.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, private")
	if etag, etagErr := utils.GenerateETag(result); etagErr == nil && etag != "" {
		quotedETag := fmt.Sprintf("%q", etag)
		w.Header().Set("ETag", quotedETag)
		for _, cETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for demo result", "error", err)
	}
}

// HandleOptimize runs all six checks on the provided salary + holdings.
// No model call happens here; this is pure tax math. Advisory warnings
// from the validation pass ride along without altering the computation.
func (h *AnalysisHandler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.L.Warn("Failed to decode optimize request body", "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	warnings := validation.ValidateProfile(req.Salary)

	stored, err := h.analysisService.RunAnalysis(services.AnalysisRequest{
		Salary:        req.Salary,
		Holdings:      req.Holdings,
		ParentsSenior: req.ParentsSenior,
	})
	if err != nil {
		logger.L.Error("Error running analysis", "error", err)
		utils.SendJSONError(w, "An internal error occurred while running the analysis.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-Analysis-ID", stored.ID)
	if len(warnings) > 0 {
		w.Header().Set("X-Input-Warnings", strings.Join(warnings, "; "))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stored.Result); err != nil {
		logger.L.Error("Error encoding JSON response for analysis result", "analysisID", stored.ID, "error", err)
	}
}

// HandleGetAnalysis returns a previously stored run by id.
func (h *AnalysisHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.SendJSONError(w, "Analysis id is required", http.StatusBadRequest)
		return
	}

	stored, err := h.analysisService.GetAnalysis(id)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisNotFound) {
			utils.SendJSONError(w, fmt.Sprintf("Analysis %s not found", id), http.StatusNotFound)
			return
		}
		logger.L.Error("Error retrieving analysis", "analysisID", id, "error", err)
		utils.SendJSONError(w, "An internal error occurred while retrieving the analysis.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stored); err != nil {
		logger.L.Error("Error encoding JSON response for stored analysis", "analysisID", id, "error", err)
	}
}
