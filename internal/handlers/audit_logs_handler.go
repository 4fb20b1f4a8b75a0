package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs store.Repository[models.AuditLog]
}

func NewAuditLogsHandler(logs store.Repository[models.AuditLog]) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	q := pageQuery(c)

	// --------------------------------------------------
	// Sempre protegido por salão
	// --------------------------------------------------
	q.Filters = []store.Filter{salonScope(sess)}

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------
	if action := c.Query("action"); action != "" {
		q.Filters = append(q.Filters, store.Where("action", store.Eq, action))
	}
	if entity := c.Query("entity"); entity != "" {
		q.Filters = append(q.Filters, store.Where("entity", store.Eq, entity))
	}
	if entityID := c.Query("entity_id"); entityID != "" {
		q.Filters = append(q.Filters, store.Where("entity_id", store.Eq, entityID))
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			invalid(c, "from must be YYYY-MM-DD")
			return
		}
		q.Filters = append(q.Filters, store.Where("created_at", store.Gte, from))
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			invalid(c, "to must be YYYY-MM-DD")
			return
		}
		// "to" inclui o dia inteiro
		q.Filters = append(q.Filters, store.Where("created_at", store.Lt, to.AddDate(0, 0, 1)))
	}

	q.OrderBy = []store.Order{{Field: "created_at", Desc: true}, {Field: "id", Desc: true}}

	page, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		storeErr(c, "list audit logs", "audit log", err)
		return
	}

	httpresp.Paged(c, page)
}
