package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PetshopID uint `json:"petshop_id"`

	Name string `gorm:"size:100;not null" json:"name"`

	// checking, savings, cash, card...
	Type string `gorm:"size:30;default:'checking'" json:"type"`

	// Saldo de abertura; o saldo corrente é derivado:
	// initial_balance + SUM(transactions.amount)
	InitialBalance decimal.Decimal `gorm:"type:decimal(15,2)" json:"initial_balance"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
