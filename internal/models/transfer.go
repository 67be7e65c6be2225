package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transfer struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PetshopID uint `json:"petshop_id"`

	PublicRef string `gorm:"size:36;uniqueIndex" json:"public_ref"`

	FromAccountID uint    `json:"from_account_id"`
	FromAccount   Account `gorm:"foreignKey:FromAccountID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"from_account"`

	ToAccountID uint    `json:"to_account_id"`
	ToAccount   Account `gorm:"foreignKey:ToAccountID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"to_account"`

	// Sempre positivo; os dois lançamentos vinculados carregam o sinal
	Amount decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`

	Description string    `gorm:"size:255" json:"description"`
	Date        time.Time `json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
