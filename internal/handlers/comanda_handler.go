package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	uccomanda "github.com/BruksfildServices01/salon-scheduler/internal/usecase/comanda"
)

type ComandaHandler struct {
	create *uccomanda.CreateComanda
	pay    *uccomanda.PayComanda
}

func NewComandaHandler(deps uccomanda.Deps) *ComandaHandler {
	return &ComandaHandler{
		create: uccomanda.NewCreateComanda(deps),
		pay:    uccomanda.NewPayComanda(deps),
	}
}

type ComandaItemRequest struct {
	ServiceID   *uint            `json:"service_id"`
	Description string           `json:"description" binding:"max=255"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

type CreateComandaRequest struct {
	ClientID      uint                 `json:"client_id" binding:"required"`
	AppointmentID *uint                `json:"appointment_id"`
	Items         []ComandaItemRequest `json:"items" binding:"required,min=1"`
}

func (h *ComandaHandler) Create(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}

	var req CreateComandaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "%v", err)
		return
	}

	in := uccomanda.CreateInput{
		ClientID:      req.ClientID,
		AppointmentID: req.AppointmentID,
		Items:         make([]uccomanda.ItemInput, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		in.Items = append(in.Items, uccomanda.ItemInput{
			ServiceID:   it.ServiceID,
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   it.UnitPrice,
		})
	}

	cmd, err := h.create.Execute(c.Request.Context(), sess, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, cmd)
}

func (h *ComandaHandler) Pay(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	res, err := h.pay.Execute(c.Request.Context(), sess, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}
