package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

type AuditController struct {
	audit AuditReader
	log   logger.Logger
}

func NewAuditController(audit AuditReader, log logger.Logger) *AuditController {
	return &AuditController{audit: audit, log: log}
}

// GetAuditEvents returns the current user's audit events as JSON
// GET /api/self/audit?type=&page=&limit=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	username := currentUsername(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := (page - 1) * limit

	var events []entities.AuditEvent
	var total int64
	var err error

	if eventType := c.Query("type"); eventType != "" {
		events, err = ac.audit.GetEventsByType(entities.AuditEventType(eventType), username)
		total = int64(len(events))
		events = paginate(events, limit, offset)
	} else {
		events, total, err = ac.audit.GetEvents(username, limit, offset)
	}

	if err != nil {
		respondInternalError(c, ac.log, err, "list audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"events":       events,
		"page":         page,
		"limit":        limit,
		"total_pages":  totalPages,
		"total_events": total,
	})
}

func paginate(events []entities.AuditEvent, limit, offset int) []entities.AuditEvent {
	if offset >= len(events) {
		return []entities.AuditEvent{}
	}
	end := offset + limit
	if end > len(events) {
		end = len(events)
	}
	return events[offset:end]
}
