package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucaixa "github.com/BruksfildServices01/salon-scheduler/internal/usecase/caixa"
)

// ======================================================
// HANDLER
// ======================================================

type CaixaHandler struct {
	open    *ucaixa.OpenSession
	current *ucaixa.CurrentSession
	record  *ucaixa.RecordMovement
	close   *ucaixa.CloseSession
	balance *ucaixa.RunningBalance
}

func NewCaixaHandler(deps ucaixa.Deps) *CaixaHandler {
	return &CaixaHandler{
		open:    ucaixa.NewOpenSession(deps),
		current: ucaixa.NewCurrentSession(deps.Repo),
		record:  ucaixa.NewRecordMovement(deps),
		close:   ucaixa.NewCloseSession(deps),
		balance: ucaixa.NewRunningBalance(deps.Repo),
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Valores aceitam número ou string ("150.00").
type OpenCaixaRequest struct {
	OpeningBalance *decimal.Decimal `json:"opening_balance" binding:"required"`
}

type MovementRequest struct {
	Type        string           `json:"type" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description" binding:"max=255"`
	ComandaID   *uint            `json:"comanda_id"`
}

type CloseCaixaRequest struct {
	InformedBalance *decimal.Decimal `json:"informed_balance" binding:"required"`
	Notes           string           `json:"notes" binding:"max=500"`
}

// ======================================================
// OPEN / CURRENT
// ======================================================

func (h *CaixaHandler) Open(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	var req OpenCaixaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	s, err := h.open.Execute(c.Request.Context(), sess, ucaixa.OpenInput{
		OpeningBalance: *req.OpeningBalance,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *CaixaHandler) Current(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	s, err := h.current.Execute(c.Request.Context(), sess)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, s)
}

// ======================================================
// MOVEMENTS
// ======================================================

func (h *CaixaHandler) RecordMovement(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	res, err := h.record.Execute(c.Request.Context(), sess, ucaixa.RecordMovementInput{
		SessionID:   id,
		Type:        req.Type,
		Amount:      *req.Amount,
		Description: req.Description,
		ComandaID:   req.ComandaID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// CLOSE / BALANCE
// ======================================================

func (h *CaixaHandler) Close(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CloseCaixaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	res, err := h.close.Execute(c.Request.Context(), sess, ucaixa.CloseInput{
		SessionID:       id,
		InformedBalance: *req.InformedBalance,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *CaixaHandler) Balance(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	rep, err := h.balance.Execute(c.Request.Context(), sess, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, rep)
}
