package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type ClientHandler struct {
	clients store.Repository[models.Client]
	// Checagem de domínio do e-mail (DNS); substituível em teste.
	emailDomainOK func(context.Context, string) bool
}

func NewClientHandler(clients store.Repository[models.Client]) *ClientHandler {
	return &ClientHandler{
		clients:       clients,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

type ClientRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Phone string `json:"phone" binding:"max=20"`
	Email string `json:"email" binding:"max=100"`
	Notes string `json:"notes" binding:"max=500"`
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	q := pageQuery(c)
	q.Filters = []store.Filter{salonScope(sess)}
	q.Search = &store.Search{Term: c.Query("query"), Fields: []string{"name", "phone", "email"}}
	q.OrderBy = []store.Order{{Field: "created_at", Desc: true}}

	page, err := h.clients.List(c.Request.Context(), q)
	if err != nil {
		storeErr(c, "list clients", "client", err)
		return
	}

	httpresp.Paged(c, page)
}

func (h *ClientHandler) Get(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	cl, err := h.clients.Get(c.Request.Context(), id, salonScope(sess))
	if err != nil {
		storeErr(c, "get client", "client", err)
		return
	}

	httpresp.OK(c, cl)
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && (!validators.IsEmailSyntaxValid(email) || !h.emailDomainOK(c.Request.Context(), email)) {
		invalid(c, "invalid email")
		return
	}

	cl := models.Client{
		SalonID: sess.SalonID,
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   email,
		Notes:   strings.TrimSpace(req.Notes),
	}
	if cl.Name == "" {
		httperr.Respond(c, httperr.ErrBusinessf(httperr.CodeInvalidInput, "name is required"))
		return
	}

	if err := h.clients.Create(c.Request.Context(), &cl); err != nil {
		storeErr(c, "create client", "client", err)
		return
	}

	httpresp.Created(c, cl)
}
