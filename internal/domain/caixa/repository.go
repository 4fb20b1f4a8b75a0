package caixa

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Repository é a porta de persistência do caixa. Faltas de registro voltam
// como store.ErrNotFound; a violação do índice "um caixa aberto por salão"
// volta como está, para o use case traduzir.
type Repository interface {
	Atomic(ctx context.Context, fn func(tx Repository) error) error

	FindOpen(ctx context.Context, salonID uint) (*models.CashSession, error)

	// GetSession com lock=true trava a linha até o fim da transação.
	GetSession(ctx context.Context, salonID uint, id uuid.UUID, lock bool) (*models.CashSession, error)

	CreateSession(ctx context.Context, s *models.CashSession) error
	UpdateSession(ctx context.Context, s *models.CashSession) error

	AppendMovement(ctx context.Context, m *models.CashMovement) error
	ListMovements(ctx context.Context, sessionID uuid.UUID) ([]models.CashMovement, error)

	// ComandaExists confere a comanda referenciada por um movimento.
	ComandaExists(ctx context.Context, salonID uint, comandaID uint) (bool, error)
}
