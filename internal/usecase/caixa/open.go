package caixa

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
)

type OpenInput struct {
	OpeningBalance decimal.Decimal
}

type OpenSession struct {
	Deps
}

func NewOpenSession(deps Deps) *OpenSession {
	return &OpenSession{Deps: deps}
}

func (uc *OpenSession) Execute(
	ctx context.Context,
	sess auth.Session,
	in OpenInput,
) (*models.CashSession, error) {

	if err := domain.ValidateOpeningBalance(in.OpeningBalance); err != nil {
		return nil, err
	}

	var s *models.CashSession

	err := uc.Repo.Atomic(ctx, func(tx domain.Repository) error {
		current, err := tx.FindOpen(ctx, sess.SalonID)
		switch {
		case err == nil:
			return httperr.ErrBusinessf(httperr.CodeSessionAlreadyOpen, "session %s is open", current.ID)
		case !errors.Is(err, store.ErrNotFound):
			return httperr.Store("find open session", err)
		}

		s = &models.CashSession{
			SalonID:         sess.SalonID,
			OpenedAt:        uc.now(),
			OpenedBy:        sess.UserID,
			OpeningBalance:  in.OpeningBalance,
			ComputedBalance: in.OpeningBalance,
			Status:          string(domain.StatusOpen),
		}

		if err := tx.CreateSession(ctx, s); err != nil {
			// corrida perdida para outro open: o índice parcial decide
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeSessionAlreadyOpen)
			}
			return httperr.Store("create cash session", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(audit.Event{
		SalonID:  sess.SalonID,
		UserID:   userID(sess.UserID),
		Action:   audit.ActionCashOpened,
		Entity:   "cash_session",
		EntityID: s.ID.String(),
		Metadata: map[string]string{"opening_balance": s.OpeningBalance.StringFixed(2)},
	})

	return s, nil
}
