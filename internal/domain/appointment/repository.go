package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type RangeFilter struct {
	SalonID        uint
	ProfessionalID *uint
	Statuses       []Status
	Start          time.Time
	End            time.Time
}

// Repository é a porta de persistência do agendador. Faltas de registro
// voltam como store.ErrNotFound.
type Repository interface {
	// Atomic roda fn numa única transação; fn recebe o repositório ligado a ela.
	Atomic(ctx context.Context, fn func(tx Repository) error) error

	// -------- Cadastros --------
	GetSalon(ctx context.Context, salonID uint) (*models.Salon, error)
	GetClient(ctx context.Context, salonID, clientID uint) (*models.Client, error)
	GetProfessional(ctx context.Context, salonID, professionalID uint) (*models.Professional, error)
	GetServices(ctx context.Context, salonID uint, ids []uint) ([]models.Service, error)

	// -------- Agendamento --------
	GetAppointment(ctx context.Context, salonID, id uint) (*models.Appointment, error)

	// FindOverlapping lista (com lock de escrita) os agendamentos não
	// cancelados do profissional que sobrepõem [start,end).
	FindOverlapping(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment, replaceServices bool) error

	ListAppointments(ctx context.Context, f RangeFilter) ([]models.Appointment, error)

	// -------- Expediente --------
	ReplaceWorkingIntervals(ctx context.Context, professionalID uint, rows []models.WorkingInterval) error
}
