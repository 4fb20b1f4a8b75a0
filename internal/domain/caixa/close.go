package caixa

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Thresholds classificam a diferença de fechamento; nunca bloqueiam.
type Thresholds struct {
	Warning  decimal.Decimal
	Critical decimal.Decimal
}

func (th Thresholds) Classify(diff decimal.Decimal) DiscrepancyLevel {
	abs := diff.Abs()
	switch {
	case abs.LessThanOrEqual(th.Warning):
		return DiscrepancyOK
	case abs.LessThanOrEqual(th.Critical):
		return DiscrepancyWarning
	default:
		return DiscrepancyCritical
	}
}

func EnsureOpen(s *models.CashSession) error {
	if Status(s.Status) != StatusOpen {
		return httperr.ErrBusinessf(httperr.CodeSessionNotOpen, "session %s is %s", s.ID, s.Status)
	}
	return nil
}

type CloseInput struct {
	Informed decimal.Decimal
	Notes    string
	ClosedBy uint
	Now      time.Time
}

// Close fecha s e devolve a diferença informado − calculado
// (positivo = sobra, negativo = falta).
func Close(s *models.CashSession, in CloseInput, th Thresholds) (decimal.Decimal, error) {
	if err := EnsureOpen(s); err != nil {
		return decimal.Zero, err
	}
	if in.Informed.IsNegative() {
		return decimal.Zero, httperr.ErrBusinessf(httperr.CodeInvalidAmount, "informed balance %s is negative", in.Informed)
	}
	if err := ValidateScale("informed balance", in.Informed); err != nil {
		return decimal.Zero, err
	}

	diff := in.Informed.Sub(s.ComputedBalance)
	level := string(th.Classify(diff))
	informed := in.Informed
	closedBy := in.ClosedBy
	now := in.Now

	s.InformedBalance = &informed
	s.Difference = &diff
	s.DiscrepancyLevel = &level
	s.Notes = in.Notes
	s.ClosedAt = &now
	s.ClosedBy = &closedBy
	s.Status = string(StatusClosed)

	return diff, nil
}
