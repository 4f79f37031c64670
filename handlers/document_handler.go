package handlers

import (
	"errors"
	"net/http"

	"nyayasetu-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadSize bounds multipart uploads to 10 MB
const maxUploadSize = 10 << 20

// DocumentHandler handles HTTP requests for document generation and upload
type DocumentHandler struct {
	documentService *service.DocumentService
	log             *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService, log *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, log: log}
}

// GenerateDocumentRequest represents the request body for document generation
type GenerateDocumentRequest struct {
	Type   string               `json:"type" binding:"required"`
	CaseID string               `json:"case_id"`
	Data   service.DocumentData `json:"data"`
}

// GenerateDocument handles POST /api/documents/generate
func (h *DocumentHandler) GenerateDocument(c *gin.Context) {
	var req GenerateDocumentRequest
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

	docType := service.DocType(req.Type)
	if !docType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNKNOWN_DOCUMENT_TYPE",
				"message": "Supported types: fir, rti, notice, complaint",
			},
		})
		return
	}

	var caseID uuid.UUID
	if req.CaseID != "" {
		parsed, err := uuid.Parse(req.CaseID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CASE_ID",
					"message": "Invalid case_id format",
				},
			})
			return
		}
		caseID = parsed
	}

	result, err := h.documentService.Generate(c.Request.Context(), service.GenerateRequest{
		Type:   docType,
		CaseID: caseID,
		Data:   req.Data,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownDocumentType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNKNOWN_DOCUMENT_TYPE",
					"message": err.Error(),
				},
			})
			return
		}
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"document": result.Document,
		"content":  result.Content,
	})
}

// UploadDocument handles POST /api/cases/:id/documents
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	caseID, ok := parseIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "Form field 'file' is required",
			},
		})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": "File exceeds the 10MB limit",
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	doc, err := h.documentService.Upload(c.Request.Context(), caseID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.log.Error("document upload failed",
			zap.String("case_id", caseID.String()),
			zap.Error(err))
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"document": doc,
	})
}
