package caixa

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CloseInput struct {
	SessionID       uuid.UUID
	InformedBalance decimal.Decimal
	Notes           string
}

type CloseResult struct {
	Session    models.CashSession      `json:"session"`
	Difference decimal.Decimal         `json:"difference"`
	Level      domain.DiscrepancyLevel `json:"discrepancy_level"`
}

// CloseSession fecha o caixa sempre; a diferença só é classificada.
type CloseSession struct {
	Deps
}

func NewCloseSession(deps Deps) *CloseSession {
	return &CloseSession{Deps: deps}
}

func (uc *CloseSession) Execute(
	ctx context.Context,
	sess auth.Session,
	in CloseInput,
) (*CloseResult, error) {

	var (
		s         *models.CashSession
		diff      decimal.Decimal
		movements []models.CashMovement
	)

	err := uc.Repo.Atomic(ctx, func(tx domain.Repository) error {
		var err error

		s, err = tx.GetSession(ctx, sess.SalonID, in.SessionID, true)
		if err != nil {
			return lookup("get cash session", "cash session", err)
		}

		diff, err = domain.Close(s, domain.CloseInput{
			Informed: in.InformedBalance,
			Notes:    in.Notes,
			ClosedBy: sess.UserID,
			Now:      uc.now(),
		}, uc.Thresholds)
		if err != nil {
			return err
		}

		if err := tx.UpdateSession(ctx, s); err != nil {
			return httperr.Store("update cash session", err)
		}

		movements, err = tx.ListMovements(ctx, s.ID)
		if err != nil {
			return httperr.Store("list movements", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	level := uc.Thresholds.Classify(diff)

	uc.Metrics.CashClosed(string(level))
	if level != domain.DiscrepancyOK && uc.Log != nil {
		uc.Log.Warn("cash session closed with discrepancy",
			zap.String("session_id", s.ID.String()),
			zap.Uint("salon_id", s.SalonID),
			zap.String("difference", diff.StringFixed(2)),
			zap.String("level", string(level)),
		)
	}

	uc.dispatch(audit.Event{
		SalonID:  sess.SalonID,
		UserID:   userID(sess.UserID),
		Action:   audit.ActionCashClosed,
		Entity:   "cash_session",
		EntityID: s.ID.String(),
		Metadata: map[string]string{
			"computed":   s.ComputedBalance.StringFixed(2),
			"informed":   in.InformedBalance.StringFixed(2),
			"difference": diff.StringFixed(2),
			"level":      string(level),
		},
	})

	if uc.Archive != nil {
		uc.Archive.SessionClosed(*s, movements)
	}

	return &CloseResult{Session: *s, Difference: diff, Level: level}, nil
}
