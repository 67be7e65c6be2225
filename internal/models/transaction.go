package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PetshopID uint `json:"petshop_id"`

	AccountID uint    `json:"account_id"`
	Account   Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"account"`

	// Nulo para lançamentos gerados por transferência
	CategoryID *uint     `json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	// Valor com sinal: positivo = receita, negativo = despesa
	Amount decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`

	// income ou expense, derivado do sinal de Amount
	Type string `gorm:"size:10" json:"type"`

	Description string    `gorm:"size:255" json:"description"`
	Date        time.Time `json:"date"`

	// Presentes apenas em lançamentos gerados pelo sistema
	TransferID    *uint `gorm:"index" json:"transfer_id"`
	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SystemGenerated indica que o lançamento pertence a uma transferência ou a
// um agendamento e não pode ser apagado/editado diretamente.
func (t *Transaction) SystemGenerated() bool {
	return t.TransferID != nil || t.AppointmentID != nil
}
