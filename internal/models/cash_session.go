package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashSession é o caixa diário do salão.
// Status: "open" | "closed"
type CashSession struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SalonID uint      `gorm:"index;not null" json:"salon_id"`

	OpenedAt time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`
	OpenedBy uint       `json:"opened_by"`
	ClosedBy *uint      `json:"closed_by"`

	OpeningBalance  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"opening_balance"`
	ComputedBalance decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"computed_balance"`

	InformedBalance *decimal.Decimal `gorm:"type:decimal(12,2)" json:"informed_balance"`
	Difference      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"difference"`
	// DiscrepancyLevel: "ok" | "warning" | "critical"
	DiscrepancyLevel *string `gorm:"size:20" json:"discrepancy_level"`
	Notes            string  `gorm:"size:500" json:"notes"`

	Status string `gorm:"size:20;not null;default:'open'" json:"status"`

	Movements []CashMovement `gorm:"foreignKey:SessionID" json:"movements,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CashMovement é uma entrada imutável do livro-caixa.
// Tipo: "entrada" | "saida" | "sangria" | "reforco"
type CashMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;index;not null" json:"session_id"`
	ComandaID *uint     `gorm:"index" json:"comanda_id"`

	Type        string          `gorm:"size:20;not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	CreatedBy   uint            `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
}
