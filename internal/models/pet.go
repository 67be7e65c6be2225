package models

import "time"

type Pet struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PetshopID uint `json:"petshop_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Species string `gorm:"size:50" json:"species"`
	Breed   string `gorm:"size:100" json:"breed"`
	Notes   string `gorm:"size:255" json:"notes"`

	// Data de nascimento aproximada (opcional)
	BirthDate *time.Time `json:"birth_date"`

	PhotoURL string `gorm:"size:512" json:"photo_url"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
