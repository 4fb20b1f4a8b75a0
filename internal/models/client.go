package models

import "time"

// Client é o cliente do salão, sem login. O telefone é a chave prática de
// busca no balcão, por isso o índice composto.
type Client struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	SalonID uint   `gorm:"not null;index:idx_clients_salon_phone,priority:1" json:"salon_id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20;index:idx_clients_salon_phone,priority:2" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`

	// Preferências e observações (alergias, produto preferido...)
	Notes string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
