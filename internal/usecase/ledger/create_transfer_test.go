package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func assertBusinessCode(t *testing.T, err error, want string) {
	t.Helper()

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok, "esperava erro de negócio, veio: %v", err)
	assert.Equal(t, want, code)
}

func TestCreateTransfer_MovesBalanceBetweenAccounts(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(500))
	repo.addAccount(2, "Banco", dec(100))

	uc := NewCreateTransfer(repo, nil, zap.NewNop())

	transfer, err := uc.Execute(context.Background(), CreateTransferInput{
		PetshopID:     1,
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        dec(200),
	})
	require.NoError(t, err)
	require.NotNil(t, transfer)
	assert.NotEmpty(t, transfer.PublicRef)

	from, _ := repo.ComputeBalance(context.Background(), 1, 1)
	to, _ := repo.ComputeBalance(context.Background(), 1, 2)
	assert.True(t, from.Equal(dec(300)), "origem: %s", from)
	assert.True(t, to.Equal(dec(300)), "destino: %s", to)

	// Exatamente duas pernas, espelhadas
	out, in, err := repo.GetTransferLegs(context.Background(), transfer.ID)
	require.NoError(t, err)
	assert.True(t, out.Amount.Equal(dec(-200)))
	assert.True(t, in.Amount.Equal(dec(200)))
	assert.Equal(t, transfer.ID, *out.TransferID)
	assert.Equal(t, transfer.ID, *in.TransferID)
}

func TestCreateTransfer_RejectsInvalidInput(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(500))
	repo.addAccount(2, "Banco", dec(0))

	uc := NewCreateTransfer(repo, nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), CreateTransferInput{
		PetshopID: 1, FromAccountID: 1, ToAccountID: 2, Amount: dec(0),
	})
	assertBusinessCode(t, err, httperr.CodeInvalidAmount)

	_, err = uc.Execute(context.Background(), CreateTransferInput{
		PetshopID: 1, FromAccountID: 1, ToAccountID: 2, Amount: dec(-50),
	})
	assertBusinessCode(t, err, httperr.CodeInvalidAmount)

	_, err = uc.Execute(context.Background(), CreateTransferInput{
		PetshopID: 1, FromAccountID: 1, ToAccountID: 1, Amount: dec(50),
	})
	assertBusinessCode(t, err, httperr.CodeSameAccount)

	_, err = uc.Execute(context.Background(), CreateTransferInput{
		PetshopID: 1, FromAccountID: 99, ToAccountID: 2, Amount: dec(50),
	})
	assertBusinessCode(t, err, httperr.CodeAccountNotFound)

	// Conta de outro petshop é invisível
	_, err = uc.Execute(context.Background(), CreateTransferInput{
		PetshopID: 2, FromAccountID: 1, ToAccountID: 2, Amount: dec(50),
	})
	assertBusinessCode(t, err, httperr.CodeAccountNotFound)

	assert.Zero(t, repo.countTransferRows())
	assert.Zero(t, repo.countTransactionRows())
}

func TestCreateTransfer_InsufficientFunds(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(100))
	repo.addAccount(2, "Banco", dec(0))

	uc := NewCreateTransfer(repo, nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), CreateTransferInput{
		PetshopID: 1, FromAccountID: 1, ToAccountID: 2, Amount: dec(100.01),
	})
	assertBusinessCode(t, err, httperr.CodeInsufficientFunds)

	// Nada gravado
	assert.Zero(t, repo.countTransferRows())
	assert.Zero(t, repo.countTransactionRows())

	// Saldo exato passa
	_, err = uc.Execute(context.Background(), CreateTransferInput{
		PetshopID: 1, FromAccountID: 1, ToAccountID: 2, Amount: dec(100),
	})
	assert.NoError(t, err)
}

func TestCreateTransfer_PersistenceFailureLeavesNothing(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(500))
	repo.addAccount(2, "Banco", dec(0))
	repo.failCreateTransfer = errors.New("connection reset")

	uc := NewCreateTransfer(repo, nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), CreateTransferInput{
		PetshopID: 1, FromAccountID: 1, ToAccountID: 2, Amount: dec(50),
	})
	require.Error(t, err)

	assert.Zero(t, repo.countTransferRows())
	assert.Zero(t, repo.countTransactionRows())

	balance, _ := repo.ComputeBalance(context.Background(), 1, 1)
	assert.True(t, balance.Equal(dec(500)))
}
