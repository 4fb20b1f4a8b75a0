package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CaixaGormRepository struct {
	db *gorm.DB
}

func NewCaixaGormRepository(db *gorm.DB) *CaixaGormRepository {
	return &CaixaGormRepository{db: db}
}

func (r *CaixaGormRepository) Atomic(
	ctx context.Context,
	fn func(tx caixa.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CaixaGormRepository{db: tx})
	})
}

func (r *CaixaGormRepository) FindOpen(
	ctx context.Context,
	salonID uint,
) (*models.CashSession, error) {

	var s models.CashSession
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND status = ?", salonID, string(caixa.StatusOpen)).
		First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *CaixaGormRepository) GetSession(
	ctx context.Context,
	salonID uint,
	id uuid.UUID,
	lock bool,
) (*models.CashSession, error) {

	q := r.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var s models.CashSession
	if err := q.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *CaixaGormRepository) CreateSession(
	ctx context.Context,
	s *models.CashSession,
) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit("Movements").Create(s).Error
}

func (r *CaixaGormRepository) UpdateSession(
	ctx context.Context,
	s *models.CashSession,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *CaixaGormRepository) AppendMovement(
	ctx context.Context,
	m *models.CashMovement,
) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *CaixaGormRepository) ListMovements(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]models.CashMovement, error) {

	var rows []models.CashMovement
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CaixaGormRepository) ComandaExists(
	ctx context.Context,
	salonID uint,
	comandaID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comanda{}).
		Where("id = ? AND salon_id = ?", comandaID, salonID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ caixa.Repository = (*CaixaGormRepository)(nil)
