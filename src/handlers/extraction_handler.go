package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/username/taxhawk/backend/src/config"
	"github.com/username/taxhawk/backend/src/logger"
	"github.com/username/taxhawk/backend/src/parsers"
	"github.com/username/taxhawk/backend/src/services"
	"github.com/username/taxhawk/backend/src/utils"
	"github.com/username/taxhawk/backend/src/validation"
)

type ExtractionHandler struct {
	extractionService services.ExtractionService
}

func NewExtractionHandler(service services.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: service}
}

// HandleParseForm16 accepts a multipart Form 16 PDF plus user context
// fields (city, monthly_rent, epf_employee_contribution) and returns the
// extracted SalaryProfile with advisory warnings.
//
// Pipeline: PDF -> text extraction -> model extraction -> profile.
func (h *ExtractionHandler) HandleParseForm16(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateClientContentType(fileHeader.Header.Get("Content-Type")); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePDFByMagicBytes(file); err != nil {
		logger.L.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	contents, err := io.ReadAll(file)
	if err != nil {
		logger.L.Error("Failed to read uploaded file", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, "Failed to read uploaded file.", http.StatusInternalServerError)
		return
	}

	text, err := parsers.ExtractText(contents)
	if err != nil {
		switch {
		case errors.Is(err, parsers.ErrEmptyDocument):
			utils.SendJSONError(w, "Uploaded file is empty", http.StatusBadRequest)
		case errors.Is(err, parsers.ErrNoExtractableText), errors.Is(err, parsers.ErrUnreadableDocument):
			utils.SendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			logger.L.Error("Unexpected PDF extraction error", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while reading the PDF.", http.StatusInternalServerError)
		}
		return
	}

	uc := services.UserContext{
		City:        formValueOrDefault(r, "city", "other"),
		MonthlyRent: parseFloatField(r.FormValue("monthly_rent")),
	}
	if epfStr := r.FormValue("epf_employee_contribution"); epfStr != "" {
		epf := parseFloatField(epfStr)
		uc.EPFEmployeeContribution = &epf
	}

	logger.L.Info("Processing Form 16 upload", "filename", fileHeader.Filename, "textLength", len(text), "city", uc.City)

	result, err := h.extractionService.ExtractSalaryProfile(r.Context(), text, uc)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingAPIKey):
			utils.SendJSONError(w, "ANTHROPIC_API_KEY not configured on server", http.StatusInternalServerError)
		case errors.Is(err, services.ErrUnparseableResponse):
			utils.SendJSONError(w, fmt.Sprintf("Could not extract structured data from the document: %v", err), http.StatusUnprocessableEntity)
		default:
			logger.L.Error("Extraction service failed", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "Field extraction failed. Please try again later.", http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for extraction result", "error", err)
	}
}

func formValueOrDefault(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

func parseFloatField(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logger.L.Warn("Invalid numeric form field, using 0", "value", s, "error", err)
		return 0
	}
	return v
}
