package caixa

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

// Archiver recebe o caixa fechado; o envio é assíncrono.
type Archiver interface {
	SessionClosed(s models.CashSession, movements []models.CashMovement)
}

type Deps struct {
	Repo       domain.Repository
	Audit      Auditor
	Archive    Archiver
	Metrics    *metrics.Metrics
	Log        *zap.Logger
	Thresholds domain.Thresholds
	Now        func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) dispatch(ev audit.Event) {
	if d.Audit != nil {
		d.Audit.Dispatch(ev)
	}
}

func lookup(op, what string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrBusinessf(httperr.CodeNotFound, "%s not found", what)
	}
	return httperr.Store(op, err)
}

func userID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

// AppendMovement trava o caixa, aplica o movimento e grava o novo saldo.
// Roda dentro de uma transação aberta por quem chama (caixa ou comanda).
func AppendMovement(
	ctx context.Context,
	tx domain.Repository,
	salonID uint,
	sessionID uuid.UUID,
	mv *models.CashMovement,
) (*models.CashSession, error) {

	s, err := tx.GetSession(ctx, salonID, sessionID, true)
	if err != nil {
		return nil, lookup("get cash session", "cash session", err)
	}
	if err := domain.EnsureOpen(s); err != nil {
		return nil, err
	}

	balance, err := domain.Apply(s.ComputedBalance, domain.MovementType(mv.Type), mv.Amount)
	if err != nil {
		return nil, err
	}

	mv.SessionID = s.ID
	if err := tx.AppendMovement(ctx, mv); err != nil {
		return nil, httperr.Store("append movement", err)
	}

	s.ComputedBalance = balance
	if err := tx.UpdateSession(ctx, s); err != nil {
		return nil, httperr.Store("update cash session", err)
	}
	return s, nil
}
