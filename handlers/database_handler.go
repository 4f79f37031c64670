package handlers

import (
	"errors"
	"net/http"

	"nyayasetu-backend/repository"
	"nyayasetu-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DatabaseHandler exposes health, stats, and manual replica sync for the
// dual-store layer
type DatabaseHandler struct {
	coordinator *store.Coordinator
	log         *zap.Logger
}

// NewDatabaseHandler creates a new database handler
func NewDatabaseHandler(coordinator *store.Coordinator, log *zap.Logger) *DatabaseHandler {
	return &DatabaseHandler{coordinator: coordinator, log: log}
}

// Health handles GET /api/database/health. Degraded stores report 200 with the
// per-store flags; callers decide what degraded means for them.
func (h *DatabaseHandler) Health(c *gin.Context) {
	health := h.coordinator.HealthCheck(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"health":  health,
	})
}

// Stats handles GET /api/database/stats
func (h *DatabaseHandler) Stats(c *gin.Context) {
	counts, err := h.coordinator.CountCasesByStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STATS_UNAVAILABLE",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"casesByStatus": counts,
	})
}

// Sync handles POST /api/database/sync/:collection/:id. Repeating a sync is
// harmless since replica writes are idempotent.
func (h *DatabaseHandler) Sync(c *gin.Context) {
	collection := c.Param("collection")
	if collection != "cases" && collection != "users" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_COLLECTION",
				"message": "Collection must be 'cases' or 'users'",
			},
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid record ID format",
			},
		})
		return
	}

	if err := h.coordinator.SyncToReplica(c.Request.Context(), collection, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCaseNotFound), errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RECORD_NOT_FOUND",
					"message": "Record not found in primary store",
				},
			})
		default:
			h.log.Error("manual replica sync failed",
				zap.String("collection", collection),
				zap.String("id", id.String()),
				zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SYNC_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"collection": collection,
		"id":         id,
	})
}
