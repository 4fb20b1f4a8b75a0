package caixa

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type RecordMovementInput struct {
	SessionID   uuid.UUID
	Type        string
	Amount      decimal.Decimal
	Description string
	ComandaID   *uint
}

type MovementResult struct {
	Movement models.CashMovement `json:"movement"`
	Balance  decimal.Decimal     `json:"computed_balance"`
}

type RecordMovement struct {
	Deps
}

func NewRecordMovement(deps Deps) *RecordMovement {
	return &RecordMovement{Deps: deps}
}

func (uc *RecordMovement) Execute(
	ctx context.Context,
	sess auth.Session,
	in RecordMovementInput,
) (*MovementResult, error) {

	mt, err := domain.ParseMovementType(in.Type)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateMovementAmount(in.Amount); err != nil {
		return nil, err
	}

	mv := &models.CashMovement{
		ComandaID:   in.ComandaID,
		Type:        string(mt),
		Amount:      in.Amount,
		Description: in.Description,
		CreatedBy:   sess.UserID,
		CreatedAt:   uc.now(),
	}

	var s *models.CashSession
	err = uc.Repo.Atomic(ctx, func(tx domain.Repository) error {
		if in.ComandaID != nil {
			ok, err := tx.ComandaExists(ctx, sess.SalonID, *in.ComandaID)
			if err != nil {
				return httperr.Store("check comanda", err)
			}
			if !ok {
				return httperr.ErrBusinessf(httperr.CodeNotFound, "comanda %d not found", *in.ComandaID)
			}
		}

		var err error
		s, err = AppendMovement(ctx, tx, sess.SalonID, in.SessionID, mv)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.Metrics.CashMovement(mv.Type)
	uc.dispatch(audit.Event{
		SalonID:  sess.SalonID,
		UserID:   userID(sess.UserID),
		Action:   audit.ActionCashMovement,
		Entity:   "cash_session",
		EntityID: s.ID.String(),
		Metadata: map[string]string{
			"movement_id": mv.ID.String(),
			"type":        mv.Type,
			"amount":      mv.Amount.StringFixed(2),
		},
	})

	return &MovementResult{Movement: *mv, Balance: s.ComputedBalance}, nil
}
