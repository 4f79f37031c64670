// Package handlers contains the Gin HTTP handlers for the API surface.
package handlers

import (
	"errors"
	"net/http"

	"nyayasetu-backend/models"
	"nyayasetu-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisHandler handles HTTP requests for query analysis and the legal
// knowledge catalogue
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	caseService     *service.CaseService
	log             *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, caseService *service.CaseService, log *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		caseService:     caseService,
		log:             log,
	}
}

// AnalyzeQueryRequest represents the request body for query analysis
type AnalyzeQueryRequest struct {
	Query    string   `json:"query" binding:"required"`
	Language string   `json:"language"`
	UserID   string   `json:"user_id"`
	Tags     []string `json:"tags"`
}

// AnalyzeQuery handles POST /api/ai/analyze
func (h *AnalysisHandler) AnalyzeQuery(c *gin.Context) {
	var req AnalyzeQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), service.AnalyzeRequest{
		Query:    req.Query,
		Language: models.Language(req.Language),
	})
	if err != nil {
		status := http.StatusInternalServerError
		code := "ANALYSIS_FAILED"
		if errors.Is(err, service.ErrEmptyQuery) {
			status = http.StatusBadRequest
			code = "EMPTY_QUERY"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	response := gin.H{
		"success":  true,
		"analysis": result.Analysis,
	}

	// A user reference turns the analysis into a draft case
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_USER_ID",
					"message": "Invalid user_id format",
				},
			})
			return
		}

		caseResult, err := h.caseService.CreateFromAnalysis(c.Request.Context(), service.CreateCaseRequest{
			UserID:   userID,
			Analysis: result.Analysis,
			Title:    result.Classification.SuggestedTitle,
			Tags:     req.Tags,
			Urgency:  result.Classification.UrgencyLevel,
		})
		if err != nil {
			h.log.Error("failed to create case from analysis", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CASE_CREATE_FAILED",
					"message": err.Error(),
				},
			})
			return
		}
		response["caseId"] = caseResult.Case.ID
		response["replicaKey"] = caseResult.ReplicaKey
	}

	c.JSON(http.StatusOK, response)
}

// TranslateRequest represents the request body for translation
type TranslateRequest struct {
	Text string `json:"text" binding:"required"`
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// Translate handles POST /api/ai/translate
func (h *AnalysisHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	translated, err := h.analysisService.Translate(c.Request.Context(), req.Text, req.From, req.To)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TRANSLATION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"translated": translated,
	})
}

// LegalCategories handles GET /api/ai/legal-categories
func (h *AnalysisHandler) LegalCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": h.analysisService.Knowledge().Categories(),
	})
}

// SearchLaws handles GET /api/ai/laws/search
func (h *AnalysisHandler) SearchLaws(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_QUERY",
				"message": "Query parameter 'q' is required",
			},
		})
		return
	}

	var category *models.Category
	if raw := c.Query("category"); raw != "" {
		cat := models.Category(raw)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CATEGORY",
					"message": "Unknown legal category",
				},
			})
			return
		}
		category = &cat
	}

	results := h.analysisService.Knowledge().SearchLaws(query, category)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
	})
}

// EmergencyContacts handles GET /api/ai/emergency-contacts
func (h *AnalysisHandler) EmergencyContacts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"contacts": h.analysisService.Knowledge().EmergencyContacts(),
	})
}

// LegalAid handles GET /api/ai/legal-aid
func (h *AnalysisHandler) LegalAid(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"legalAid": h.analysisService.Knowledge().LegalAidInfo(c.Query("state")),
	})
}
