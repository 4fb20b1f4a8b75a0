package models

import "time"

// AuditLog é gravado pelo audit.Dispatcher, fora da transação da operação.
// EntityID é texto porque caixas e movimentos usam uuid.
type AuditLog struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	SalonID uint  `gorm:"not null;index:idx_audit_salon_created,priority:1" json:"salon_id"`
	UserID  *uint `json:"user_id"`

	Action   string `gorm:"size:50;not null;index" json:"action"`
	Entity   string `gorm:"size:50" json:"entity"`
	EntityID string `gorm:"size:64" json:"entity_id"`

	// JSON livre com o contexto da ação
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index:idx_audit_salon_created,priority:2" json:"created_at"`
}
