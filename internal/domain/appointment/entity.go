package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica target em ap, registrando o instante da mudança
// terminal. ap só é alterado quando a aresta é válida.
func Transition(ap *models.Appointment, target Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), target); err != nil {
		return err
	}

	ap.Status = string(target)
	switch target {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusConcluded:
		ap.ConcludedAt = &now
	}
	return nil
}

// Reschedulable: só agendamentos não terminais podem mudar de horário.
func Reschedulable(ap *models.Appointment) bool {
	return !Status(ap.Status).IsTerminal()
}

// TotalDuration soma as durações das linhas de serviço.
func TotalDuration(services []models.Service) time.Duration {
	var total int
	for _, s := range services {
		total += s.DurationMin
	}
	return time.Duration(total) * time.Minute
}

// LineItems congela nome, duração e preço de cada serviço no agendamento.
func LineItems(services []models.Service) []models.AppointmentService {
	out := make([]models.AppointmentService, 0, len(services))
	for _, s := range services {
		out = append(out, models.AppointmentService{
			ServiceID:   s.ID,
			Name:        s.Name,
			DurationMin: s.DurationMin,
			Price:       s.Price,
		})
	}
	return out
}
