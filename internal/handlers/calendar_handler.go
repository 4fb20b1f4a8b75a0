package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/calendar"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

type CalendarHandler struct {
	svc *calendar.Service
}

func NewCalendarHandler(svc *calendar.Service) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// calendarKey lê year, month, professional_id e status da query.
// hasMonth indica se year/month vieram; sem eles o mês fica zerado.
func calendarKey(c *gin.Context) (key calendar.Key, hasMonth bool, ok bool) {
	if c.Query("year") != "" || c.Query("month") != "" {
		year, errY := strconv.Atoi(c.Query("year"))
		month, errM := strconv.Atoi(c.Query("month"))
		if errY != nil || errM != nil {
			invalid(c, "year and month must be numbers")
			return key, false, false
		}
		m, err := calendar.NewMonth(year, month)
		if err != nil {
			httperr.Respond(c, err)
			return key, false, false
		}
		key.Month = m
		hasMonth = true
	}

	pro, ok := optionalUint(c, "professional_id")
	if !ok {
		return key, false, false
	}
	key.ProfessionalID = pro
	key.Statuses = splitList(c.QueryArray("status"))

	return key, hasMonth, true
}

// Month: GET /api/calendar?year=2026&month=3&professional_id=&status=
// Sem year/month abre o mês corrente.
func (h *CalendarHandler) Month(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	key, _, ok := calendarKey(c)
	if !ok {
		return
	}

	view, err := h.svc.Month(c.Request.Context(), sess, key)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, view)
}

// Invalidate: POST /api/calendar/invalidate[?year=&month=&professional_id=&status=]
// Com year/month apaga só aquele mês (e filtros); sem eles limpa tudo.
func (h *CalendarHandler) Invalidate(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	key, hasMonth, ok := calendarKey(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if hasMonth {
		if err := h.svc.Invalidate(ctx, sess, key); err != nil {
			httperr.Respond(c, httperr.Store("invalidate calendar month", err))
			return
		}
		httpresp.OK(c, gin.H{"invalidated": true, "month": key.Month})
		return
	}

	if err := h.svc.InvalidateAll(ctx); err != nil {
		httperr.Respond(c, httperr.Store("invalidate calendar", err))
		return
	}

	httpresp.OK(c, gin.H{"invalidated": true})
}
