package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Comanda é a conta corrente do cliente até o pagamento.
// Status: "open" | "paid" | "cancelled"
type Comanda struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	SalonID       uint  `gorm:"index;not null" json:"salon_id"`
	ClientID      uint  `gorm:"index;not null" json:"client_id"`
	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	Status string          `gorm:"size:20;not null;default:'open'" json:"status"`
	Total  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	PaidAt         *time.Time `json:"paid_at"`
	CashMovementID *uuid.UUID `gorm:"type:uuid" json:"cash_movement_id"`

	Items []ComandaItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ComandaItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	ComandaID uint  `gorm:"index;not null" json:"comanda_id"`
	ServiceID *uint `json:"service_id"`

	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}
