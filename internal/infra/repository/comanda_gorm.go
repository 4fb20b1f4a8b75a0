package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ComandaGormRepository struct {
	db *gorm.DB
}

func NewComandaGormRepository(db *gorm.DB) *ComandaGormRepository {
	return &ComandaGormRepository{db: db}
}

func (r *ComandaGormRepository) Atomic(
	ctx context.Context,
	fn func(tx comanda.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ComandaGormRepository{db: tx})
	})
}

// Caixa devolve o repositório do caixa na mesma conexão (e transação).
func (r *ComandaGormRepository) Caixa() caixa.Repository {
	return &CaixaGormRepository{db: r.db}
}

func (r *ComandaGormRepository) ClientExists(
	ctx context.Context,
	salonID uint,
	clientID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ? AND salon_id = ?", clientID, salonID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ComandaGormRepository) AppointmentExists(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ComandaGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *ComandaGormRepository) CreateComanda(
	ctx context.Context,
	c *models.Comanda,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ComandaGormRepository) GetComanda(
	ctx context.Context,
	salonID uint,
	id uint,
	lock bool,
) (*models.Comanda, error) {

	q := r.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var c models.Comanda
	if err := q.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&c).Error; err != nil {
		return nil, notFound(err)
	}

	if err := r.db.WithContext(ctx).
		Where("comanda_id = ?", c.ID).
		Order("id ASC").
		Find(&c.Items).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComandaGormRepository) UpdateComanda(
	ctx context.Context,
	c *models.Comanda,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

var _ comanda.Repository = (*ComandaGormRepository)(nil)
