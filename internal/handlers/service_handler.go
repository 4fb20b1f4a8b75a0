package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domaincaixa "github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
)

func validPrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return httperr.ErrBusiness(httperr.CodeInvalidAmount)
	}
	return domaincaixa.ValidateScale("price", p)
}

// ServiceHandler cuida do catálogo de serviços do salão.
type ServiceHandler struct {
	services store.Repository[models.Service]
}

func NewServiceHandler(services store.Repository[models.Service]) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string           `json:"name" binding:"required,max=100"`
	Description string           `json:"description" binding:"max=255"`
	DurationMin int              `json:"duration_min" binding:"required,min=1"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Category    string           `json:"category" binding:"max=50"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	q := pageQuery(c)
	q.Filters = []store.Filter{salonScope(sess)}

	if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
		q.Filters = append(q.Filters, store.Where("category", store.Eq, category))
	}
	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q.Filters = append(q.Filters, store.Where("active", store.Eq, true))
	case "false":
		q.Filters = append(q.Filters, store.Where("active", store.Eq, false))
	}

	q.Search = &store.Search{Term: c.Query("query"), Fields: []string{"name", "description"}}
	q.OrderBy = []store.Order{{Field: "id"}}

	page, err := h.services.List(c.Request.Context(), q)
	if err != nil {
		storeErr(c, "list services", "service", err)
		return
	}

	httpresp.Paged(c, page)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}
	if err := validPrice(*req.Price); err != nil {
		httperr.Respond(c, err)
		return
	}

	svc := models.Service{
		SalonID:     sess.SalonID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       *req.Price,
		Active:      true,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
	}

	if err := h.services.Create(c.Request.Context(), &svc); err != nil {
		storeErr(c, "create service", "service", err)
		return
	}

	httpresp.Created(c, svc)
}

// Update altera o catálogo; agendamentos já feitos mantêm nome, duração e
// preço congelados nas suas linhas.
func (h *ServiceHandler) Update(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	svc, err := h.services.Get(c.Request.Context(), id, salonScope(sess))
	if err != nil {
		storeErr(c, "get service", "service", err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			invalid(c, "name is required")
			return
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			invalid(c, "duration_min must be positive")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if err := validPrice(*req.Price); err != nil {
			httperr.Respond(c, err)
			return
		}
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.Category != nil {
		svc.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}

	if err := h.services.Update(c.Request.Context(), svc); err != nil {
		storeErr(c, "update service", "service", err)
		return
	}

	httpresp.OK(c, svc)
}
