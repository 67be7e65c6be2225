package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PetshopID uint    `json:"petshop_id"`
	Petshop   Petshop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"petshop"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	PetID uint `json:"pet_id"`
	Pet   Pet  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"pet"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Referência pública usada nos endpoints sem autenticação
	PublicRef string `gorm:"size:36;uniqueIndex" json:"public_ref"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Duração herdada do serviço no momento do agendamento
	DurationMin int `json:"duration_min"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
