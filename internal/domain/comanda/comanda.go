package comanda

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// ValidateItems exige ao menos um item, quantidade positiva e preço não negativo.
func ValidateItems(items []models.ComandaItem) error {
	if len(items) == 0 {
		return httperr.ErrBusinessf(httperr.CodeInvalidInput, "comanda without items")
	}
	for i, it := range items {
		if it.Quantity <= 0 {
			return httperr.ErrBusinessf(httperr.CodeInvalidInput, "item %d: quantity must be positive", i)
		}
		if it.UnitPrice.IsNegative() {
			return httperr.ErrBusinessf(httperr.CodeInvalidAmount, "item %d: negative unit price", i)
		}
		if err := caixa.ValidateScale("unit price", it.UnitPrice); err != nil {
			return err
		}
		if it.Description == "" {
			return httperr.ErrBusinessf(httperr.CodeInvalidInput, "item %d: missing description", i)
		}
	}
	return nil
}

func Total(items []models.ComandaItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// MarkPaid fecha a comanda contra o movimento de caixa que a quitou.
func MarkPaid(c *models.Comanda, movementID uuid.UUID, now time.Time) error {
	if Status(c.Status) != StatusOpen {
		return httperr.ErrBusinessf(httperr.CodeInvalidTransition, "comanda %d is %s", c.ID, c.Status)
	}
	if !c.Total.IsPositive() {
		return httperr.ErrBusinessf(httperr.CodeInvalidAmount, "comanda %d has no amount to pay", c.ID)
	}
	c.Status = string(StatusPaid)
	c.PaidAt = &now
	c.CashMovementID = &movementID
	return nil
}

type Repository interface {
	Atomic(ctx context.Context, fn func(tx Repository) error) error

	// Caixa compartilha a transação corrente.
	Caixa() caixa.Repository

	ClientExists(ctx context.Context, salonID, clientID uint) (bool, error)
	AppointmentExists(ctx context.Context, salonID, appointmentID uint) (bool, error)
	GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error)

	CreateComanda(ctx context.Context, c *models.Comanda) error
	GetComanda(ctx context.Context, salonID, id uint, lock bool) (*models.Comanda, error)
	UpdateComanda(ctx context.Context, c *models.Comanda) error
}
