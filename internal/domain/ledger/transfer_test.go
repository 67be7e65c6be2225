package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

func TestTypeFor(t *testing.T) {
	assert.Equal(t, TypeIncome, TypeFor(decimal.NewFromInt(100)))
	assert.Equal(t, TypeIncome, TypeFor(decimal.Zero))
	assert.Equal(t, TypeExpense, TypeFor(decimal.NewFromInt(-100)))
}

func TestBuildTransferLegs(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	transfer := &models.Transfer{
		PetshopID:     7,
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromFloat(150.50),
		Date:          date,
	}
	from := &models.Account{ID: 1, Name: "Caixa"}
	to := &models.Account{ID: 2, Name: "Banco"}

	out, in := BuildTransferLegs(transfer, from, to)

	// Perna de saída: despesa na origem, valor negativo
	assert.Equal(t, uint(7), out.PetshopID)
	assert.Equal(t, uint(1), out.AccountID)
	assert.True(t, out.Amount.Equal(decimal.NewFromFloat(-150.50)))
	assert.Equal(t, TypeExpense, out.Type)
	assert.Equal(t, "Transfer to Banco", out.Description)
	assert.Equal(t, date, out.Date)

	// Perna de entrada: receita no destino, valor positivo
	assert.Equal(t, uint(7), in.PetshopID)
	assert.Equal(t, uint(2), in.AccountID)
	assert.True(t, in.Amount.Equal(decimal.NewFromFloat(150.50)))
	assert.Equal(t, TypeIncome, in.Type)
	assert.Equal(t, "Transfer from Caixa", in.Description)

	// As pernas se anulam
	assert.True(t, out.Amount.Add(in.Amount).IsZero())
}
