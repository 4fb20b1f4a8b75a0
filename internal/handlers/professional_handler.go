package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
	ucappointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type ProfessionalGetter interface {
	GetProfessional(ctx context.Context, salonID, professionalID uint) (*models.Professional, error)
}

type ProfessionalHandler struct {
	professionals store.Repository[models.Professional]
	getter        ProfessionalGetter
	setHours      *ucappointment.SetWorkingHours
}

func NewProfessionalHandler(
	professionals store.Repository[models.Professional],
	deps ucappointment.Deps,
) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionals: professionals,
		getter:        deps.Repo,
		setHours:      ucappointment.NewSetWorkingHours(deps),
	}
}

type CreateProfessionalRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Specialties []string `json:"specialties"`
	UserID      *uint    `json:"user_id"`
}

// ======================================================
// CADASTRO
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	q := pageQuery(c)
	q.Filters = []store.Filter{salonScope(sess)}
	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q.Filters = append(q.Filters, store.Where("active", store.Eq, true))
	case "false":
		q.Filters = append(q.Filters, store.Where("active", store.Eq, false))
	}
	q.OrderBy = []store.Order{{Field: "name"}}

	page, err := h.professionals.List(c.Request.Context(), q)
	if err != nil {
		storeErr(c, "list professionals", "professional", err)
		return
	}

	httpresp.Paged(c, page)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	pro := models.Professional{
		SalonID:     sess.SalonID,
		UserID:      req.UserID,
		Name:        strings.TrimSpace(req.Name),
		Specialties: req.Specialties,
		Active:      true,
	}
	if pro.Name == "" {
		invalid(c, "name is required")
		return
	}
	if pro.Specialties == nil {
		pro.Specialties = []string{}
	}

	if err := h.professionals.Create(c.Request.Context(), &pro); err != nil {
		storeErr(c, "create professional", "professional", err)
		return
	}

	httpresp.Created(c, pro)
}

// ======================================================
// EXPEDIENTE
// ======================================================

// WorkingDay é o formato da tela de expediente: um dia com pausa opcional.
// Vira uma ou duas faixas de atendimento.
type WorkingDay struct {
	Weekday    *int   `json:"weekday" binding:"required,min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursRequest struct {
	Days []WorkingDay `json:"days" binding:"required,dive"`
}

func intervalsFromDays(professionalID uint, days []WorkingDay) []models.WorkingInterval {
	rows := make([]models.WorkingInterval, 0, len(days)*2)
	for _, d := range days {
		if !d.Active {
			continue
		}
		add := func(start, end string) {
			rows = append(rows, models.WorkingInterval{
				ProfessionalID: professionalID,
				Weekday:        *d.Weekday,
				StartTime:      start,
				EndTime:        end,
			})
		}
		if d.LunchStart != "" && d.LunchEnd != "" {
			add(d.StartTime, d.LunchStart)
			add(d.LunchEnd, d.EndTime)
			continue
		}
		add(d.StartTime, d.EndTime)
	}
	return rows
}

func (h *ProfessionalHandler) GetWorkingHours(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	pro, err := h.getter.GetProfessional(c.Request.Context(), sess.SalonID, id)
	if err != nil {
		storeErr(c, "get professional", "professional", err)
		return
	}

	httpresp.List(c, pro.WorkingIntervals)
}

func (h *ProfessionalHandler) UpdateWorkingHours(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	rows, err := h.setHours.Execute(c.Request.Context(), sess, id, intervalsFromDays(id, req.Days))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}
