package models

import "time"

type Professional struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index;not null" json:"salon_id"`

	// Conta no backend de autenticação (opcional: nem todo profissional acessa o sistema)
	UserID *uint `gorm:"index" json:"user_id"`

	Name        string   `gorm:"size:100;not null" json:"name"`
	Specialties []string `gorm:"serializer:json" json:"specialties"`
	Active      bool     `gorm:"default:true" json:"active"`

	WorkingIntervals []WorkingInterval `gorm:"constraint:OnDelete:CASCADE;" json:"working_intervals"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkingInterval é uma faixa de atendimento num dia da semana.
// Pausas (almoço) são representadas como duas faixas no mesmo dia.
type WorkingInterval struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index;not null" json:"professional_id"`

	Weekday   int    `gorm:"not null" json:"weekday"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
