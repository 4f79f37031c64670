package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"nyayasetu-backend/models"
	"nyayasetu-backend/repository"
	"nyayasetu-backend/service"
	"nyayasetu-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CaseHandler handles HTTP requests for case management
type CaseHandler struct {
	caseService *service.CaseService
	log         *zap.Logger
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService *service.CaseService, log *zap.Logger) *CaseHandler {
	return &CaseHandler{caseService: caseService, log: log}
}

// GetCase handles GET /api/cases/:id
func (h *CaseHandler) GetCase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	record, err := h.caseService.Get(c.Request.Context(), id)
	if err != nil {
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"case":    record,
	})
}

// ListCases handles GET /api/cases
func (h *CaseHandler) ListCases(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Query parameter 'user_id' must be a valid UUID",
			},
		})
		return
	}

	var status *models.CaseStatus
	if raw := c.Query("status"); raw != "" {
		s := models.CaseStatus(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Unknown case status",
				},
			})
			return
		}
		status = &s
	}

	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	cases, err := h.caseService.List(c.Request.Context(), userID, status, limit, offset)
	if err != nil {
		respondCaseError(c, err)
		return
	}

	if cases == nil {
		cases = []*models.Case{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cases":   cases,
		"count":   len(cases),
	})
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	Description string `json:"description"`
}

// UpdateStatus handles PUT /api/cases/:id/status
func (h *CaseHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
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

	record, err := h.caseService.ChangeStatus(c.Request.Context(), id, models.CaseStatus(req.Status), req.Description)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TRANSITION",
					"message": err.Error(),
				},
			})
			return
		}
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"case":    record,
	})
}

// AddNoteRequest represents the request body for adding a note
type AddNoteRequest struct {
	Content   string `json:"content" binding:"required"`
	AddedBy   string `json:"added_by" binding:"required"`
	IsPrivate bool   `json:"is_private"`
}

// AddNote handles POST /api/cases/:id/notes
func (h *CaseHandler) AddNote(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AddNoteRequest
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

	addedBy, err := uuid.Parse(req.AddedBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid added_by format",
			},
		})
		return
	}

	record, err := h.caseService.AddNote(c.Request.Context(), service.AddNoteRequest{
		CaseID:    id,
		Content:   req.Content,
		AddedBy:   addedBy,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"case":    record,
	})
}

// DeleteCase handles DELETE /api/cases/:id
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.caseService.Delete(c.Request.Context(), id); err != nil {
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Case deleted",
	})
}

// parseIDParam parses the :id path parameter, writing the error response
// itself when parsing fails
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CASE_ID",
				"message": "Invalid case ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads the limit and offset query parameters. Both must
// be non-negative integers; anything else is rejected with a 400.
func parsePagination(c *gin.Context) (int, int, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PAGINATION",
				"message": "Query parameter 'limit' must be a non-negative integer",
			},
		})
		return 0, 0, false
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PAGINATION",
				"message": "Query parameter 'offset' must be a non-negative integer",
			},
		})
		return 0, 0, false
	}
	return limit, offset, true
}

// respondCaseError maps store and repository errors to HTTP responses
func respondCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrCaseNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CASE_NOT_FOUND",
				"message": "Case not found",
			},
		})
	case errors.Is(err, store.ErrRecordUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORES_UNAVAILABLE",
				"message": err.Error(),
			},
		})
	case errors.Is(err, store.ErrPrimaryWriteFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRIMARY_WRITE_FAILED",
				"message": err.Error(),
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": err.Error(),
			},
		})
	}
}
