package models

import "time"

// Tutor do pet, sem login, vinculado ao petshop
type Client struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PetshopID uint `json:"petshop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`
	Notes string `gorm:"size:255" json:"notes"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
