package caixa

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BalanceReport struct {
	SessionID uuid.UUID       `json:"session_id"`
	Status    string          `json:"status"`
	Summary   domain.Summary  `json:"summary"`
	Stored    decimal.Decimal `json:"computed_balance"`
	// Consistent compara o recálculo do livro-caixa com o saldo incremental.
	Consistent bool `json:"consistent"`
}

type RunningBalance struct {
	repo domain.Repository
}

func NewRunningBalance(repo domain.Repository) *RunningBalance {
	return &RunningBalance{repo: repo}
}

func (uc *RunningBalance) Execute(
	ctx context.Context,
	sess auth.Session,
	sessionID uuid.UUID,
) (*BalanceReport, error) {

	s, err := uc.repo.GetSession(ctx, sess.SalonID, sessionID, false)
	if err != nil {
		return nil, lookup("get cash session", "cash session", err)
	}

	movements, err := uc.repo.ListMovements(ctx, s.ID)
	if err != nil {
		return nil, httperr.Store("list movements", err)
	}

	sum := domain.Recompute(s.OpeningBalance, movements)

	return &BalanceReport{
		SessionID:  s.ID,
		Status:     s.Status,
		Summary:    sum,
		Stored:     s.ComputedBalance,
		Consistent: sum.Balance.Equal(s.ComputedBalance),
	}, nil
}

type CurrentSession struct {
	repo domain.Repository
}

func NewCurrentSession(repo domain.Repository) *CurrentSession {
	return &CurrentSession{repo: repo}
}

// Execute devolve o caixa aberto do salão, ou not_found.
func (uc *CurrentSession) Execute(
	ctx context.Context,
	sess auth.Session,
) (*models.CashSession, error) {

	s, err := uc.repo.FindOpen(ctx, sess.SalonID)
	if err != nil {
		return nil, lookup("find open session", "open cash session", err)
	}
	return s, nil
}
