package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// SalonHandler expõe o salão da sessão e quem está logado.
type SalonHandler struct {
	salons store.Repository[models.Salon]
}

func NewSalonHandler(salons store.Repository[models.Salon]) *SalonHandler {
	return &SalonHandler{salons: salons}
}

type UpdateSalonRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

func (h *SalonHandler) Get(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	salon, err := h.salons.Get(c.Request.Context(), sess.SalonID)
	if err != nil {
		storeErr(c, "get salon", "salon", err)
		return
	}

	httpresp.OK(c, salon)
}

func (h *SalonHandler) Update(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	if sess.Role != auth.RoleOwner {
		httperr.Forbidden(c, "owner_only", "Apenas o dono altera o salão.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	salon, err := h.salons.Get(c.Request.Context(), sess.SalonID)
	if err != nil {
		storeErr(c, "get salon", "salon", err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			invalid(c, "name is required")
			return
		}
		salon.Name = name
	}
	if req.Phone != nil {
		salon.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Timezone != nil {
		// Mudar o fuso muda o expediente efetivo de todos os profissionais
		if !timezone.IsValid(*req.Timezone) {
			invalid(c, "unknown timezone %q", *req.Timezone)
			return
		}
		salon.Timezone = *req.Timezone
	}

	if err := h.salons.Update(c.Request.Context(), salon); err != nil {
		storeErr(c, "update salon", "salon", err)
		return
	}

	httpresp.OK(c, salon)
}

// Me devolve a identidade da sessão junto com o salão.
func (h *SalonHandler) Me(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	salon, err := h.salons.Get(c.Request.Context(), sess.SalonID)
	if err != nil {
		storeErr(c, "get salon", "salon", err)
		return
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":   sess.UserID,
			"role": sess.Role,
		},
		"salon": gin.H{
			"id":       salon.ID,
			"name":     salon.Name,
			"slug":     salon.Slug,
			"timezone": salon.Timezone,
		},
	})
}
