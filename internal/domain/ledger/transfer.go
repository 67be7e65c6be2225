package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// TypeFor deriva o tipo do lançamento a partir do sinal do valor.
func TypeFor(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return TypeExpense
	}
	return TypeIncome
}

// BuildTransferLegs monta o par de lançamentos de uma transferência:
// despesa na conta de origem e receita na de destino, ambos apontando
// para a transferência.
func BuildTransferLegs(
	t *models.Transfer,
	from *models.Account,
	to *models.Account,
) (out models.Transaction, in models.Transaction) {

	out = models.Transaction{
		PetshopID:   t.PetshopID,
		AccountID:   from.ID,
		Amount:      t.Amount.Neg(),
		Type:        TypeExpense,
		Description: fmt.Sprintf("Transfer to %s", to.Name),
		Date:        t.Date,
	}

	in = models.Transaction{
		PetshopID:   t.PetshopID,
		AccountID:   to.ID,
		Amount:      t.Amount,
		Type:        TypeIncome,
		Description: fmt.Sprintf("Transfer from %s", from.Name),
		Date:        t.Date,
	}

	return out, in
}
