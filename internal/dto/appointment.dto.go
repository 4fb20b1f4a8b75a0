package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceLineDTO struct {
	ServiceID   uint            `json:"service_id"`
	Name        string          `json:"name"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `json:"price"`
}

type AppointmentDTO struct {
	ID               uint             `json:"id"`
	StartTime        time.Time        `json:"start_time"`
	EndTime          time.Time        `json:"end_time"`
	Status           string           `json:"status"`
	StatusLabel      string           `json:"status_label"`
	StatusColor      string           `json:"status_color"`
	ClientID         uint             `json:"client_id"`
	ClientName       string           `json:"client_name"`
	ProfessionalID   uint             `json:"professional_id"`
	ProfessionalName string           `json:"professional_name"`
	Services         []ServiceLineDTO `json:"services"`
	Total            decimal.Decimal  `json:"total"`
	Notes            string           `json:"notes"`
}

func FromAppointment(ap models.Appointment) AppointmentDTO {
	st := domain.Status(ap.Status)

	out := AppointmentDTO{
		ID:               ap.ID,
		StartTime:        ap.StartTime,
		EndTime:          ap.EndTime,
		Status:           ap.Status,
		StatusLabel:      st.Label(),
		StatusColor:      st.Color(),
		ClientID:         ap.ClientID,
		ClientName:       ap.Client.Name,
		ProfessionalID:   ap.ProfessionalID,
		ProfessionalName: ap.Professional.Name,
		Services:         make([]ServiceLineDTO, 0, len(ap.Services)),
		Total:            decimal.Zero,
		Notes:            ap.Notes,
	}
	for _, s := range ap.Services {
		out.Services = append(out.Services, ServiceLineDTO{
			ServiceID:   s.ServiceID,
			Name:        s.Name,
			DurationMin: s.DurationMin,
			Price:       s.Price,
		})
		out.Total = out.Total.Add(s.Price)
	}
	return out
}

func FromAppointments(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
