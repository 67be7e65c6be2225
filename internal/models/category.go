package models

import "time"

type Category struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PetshopID uint `json:"petshop_id"`

	Name string `gorm:"size:100;not null" json:"name"`

	// income ou expense
	Kind string `gorm:"size:10;default:'expense'" json:"kind"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
