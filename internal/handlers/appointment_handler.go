package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucappointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucappointment.CreateAppointment
	reschedule   *ucappointment.RescheduleAppointment
	transition   *ucappointment.TransitionAppointment
	list         *ucappointment.ListForRange
	availability *ucappointment.GetAvailability
}

func NewAppointmentHandler(deps ucappointment.Deps, granularityMin int) *AppointmentHandler {
	return &AppointmentHandler{
		create:       ucappointment.NewCreateAppointment(deps),
		reschedule:   ucappointment.NewRescheduleAppointment(deps),
		transition:   ucappointment.NewTransitionAppointment(deps),
		list:         ucappointment.NewListForRange(deps.Repo),
		availability: ucappointment.NewGetAvailability(deps.Repo, granularityMin),
	}
}

// ListUseCase expõe a consulta por período para o calendário.
func (h *AppointmentHandler) ListUseCase() *ucappointment.ListForRange {
	return h.list
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID       uint      `json:"client_id" binding:"required"`
	ProfessionalID uint      `json:"professional_id" binding:"required"`
	ServiceIDs     []uint    `json:"service_ids" binding:"required,min=1"`
	Start          time.Time `json:"start" binding:"required"`
	Notes          string    `json:"notes" binding:"max=255"`
}

type RescheduleRequest struct {
	Start      time.Time `json:"start" binding:"required"`
	ServiceIDs []uint    `json:"service_ids"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), sess, ucappointment.CreateAppointmentInput{
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		Start:          req.Start,
		ServiceIDs:     req.ServiceIDs,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap))
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), sess, ucappointment.RescheduleInput{
		ID:         id,
		Start:      req.Start,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

// ======================================================
// STATUS (confirmar / cancelar / concluir)
// ======================================================

func (h *AppointmentHandler) Transition(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	ap, err := h.transition.Execute(c.Request.Context(), sess, ucappointment.TransitionInput{
		ID:     id,
		Target: req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

// ======================================================
// LIST (período)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		invalid(c, "start must be RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		invalid(c, "end must be RFC3339")
		return
	}
	pro, ok := optionalUint(c, "professional_id")
	if !ok {
		return
	}

	var statuses []domain.Status
	for _, raw := range splitList(c.QueryArray("status")) {
		statuses = append(statuses, domain.Status(raw))
	}

	apps, err := h.list.Execute(c.Request.Context(), sess, ucappointment.ListForRangeInput{
		ProfessionalID: pro,
		Statuses:       statuses,
		Start:          start,
		End:            end,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(apps))
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	pro, ok := optionalUint(c, "professional_id")
	if !ok {
		return
	}
	if pro == nil {
		invalid(c, "professional_id is required")
		return
	}
	serviceIDs, err := uintList(c.QueryArray("service_ids"))
	if err != nil {
		invalid(c, "%v", err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), sess, ucappointment.AvailabilityInput{
		ProfessionalID: *pro,
		ServiceIDs:     serviceIDs,
		Date:           c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}
