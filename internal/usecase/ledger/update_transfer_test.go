package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

func seedTransfer(t *testing.T, repo *fakeRepo) *models.Transfer {
	t.Helper()

	uc := NewCreateTransfer(repo, nil, zap.NewNop())

	transfer, err := uc.Execute(context.Background(), CreateTransferInput{
		PetshopID: 1, FromAccountID: 1, ToAccountID: 2, Amount: dec(200),
	})
	require.NoError(t, err)
	return transfer
}

func TestUpdateTransfer_ChangesAmountAndLegs(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(500))
	repo.addAccount(2, "Banco", dec(0))
	transfer := seedTransfer(t, repo)

	uc := NewUpdateTransfer(repo, nil, zap.NewNop())

	newAmount := dec(350)
	updated, err := uc.Execute(context.Background(), UpdateTransferInput{
		PetshopID:  1,
		TransferID: transfer.ID,
		Amount:     &newAmount,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec(350)))

	from, _ := repo.ComputeBalance(context.Background(), 1, 1)
	to, _ := repo.ComputeBalance(context.Background(), 1, 2)
	assert.True(t, from.Equal(dec(150)), "origem: %s", from)
	assert.True(t, to.Equal(dec(350)), "destino: %s", to)

	out, in, err := repo.GetTransferLegs(context.Background(), transfer.ID)
	require.NoError(t, err)
	assert.True(t, out.Amount.Equal(dec(-350)))
	assert.True(t, in.Amount.Equal(dec(350)))
}

func TestUpdateTransfer_OldAmountCountsAsAvailable(t *testing.T) {
	// Saldo inicial 500, transferidos 200. Os 200 voltam para o
	// disponível durante a edição: dá para subir até 500, não além.
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(500))
	repo.addAccount(2, "Banco", dec(0))
	transfer := seedTransfer(t, repo)

	uc := NewUpdateTransfer(repo, nil, zap.NewNop())

	over := dec(500.01)
	_, err := uc.Execute(context.Background(), UpdateTransferInput{
		PetshopID:  1,
		TransferID: transfer.ID,
		Amount:     &over,
	})
	assertBusinessCode(t, err, httperr.CodeInsufficientFunds)

	exact := dec(500)
	_, err = uc.Execute(context.Background(), UpdateTransferInput{
		PetshopID:  1,
		TransferID: transfer.ID,
		Amount:     &exact,
	})
	assert.NoError(t, err)
}

func TestUpdateTransfer_SwitchingSourceChecksNewAccount(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(500))
	repo.addAccount(2, "Banco", dec(0))
	repo.addAccount(3, "Poupança", dec(50))
	transfer := seedTransfer(t, repo)

	uc := NewUpdateTransfer(repo, nil, zap.NewNop())

	// Nova origem só tem 50; o valor antigo pertence à origem antiga
	// e não entra no disponível
	newFrom := uint(3)
	_, err := uc.Execute(context.Background(), UpdateTransferInput{
		PetshopID:     1,
		TransferID:    transfer.ID,
		FromAccountID: &newFrom,
	})
	assertBusinessCode(t, err, httperr.CodeInsufficientFunds)
}

func TestUpdateTransfer_Validation(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(500))
	repo.addAccount(2, "Banco", dec(0))
	transfer := seedTransfer(t, repo)

	uc := NewUpdateTransfer(repo, nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), UpdateTransferInput{
		PetshopID:  1,
		TransferID: 9999,
	})
	assertBusinessCode(t, err, "transfer_not_found")

	sameAsFrom := uint(1)
	_, err = uc.Execute(context.Background(), UpdateTransferInput{
		PetshopID:   1,
		TransferID:  transfer.ID,
		ToAccountID: &sameAsFrom,
	})
	assertBusinessCode(t, err, httperr.CodeSameAccount)

	negative := dec(-10)
	_, err = uc.Execute(context.Background(), UpdateTransferInput{
		PetshopID:  1,
		TransferID: transfer.ID,
		Amount:     &negative,
	})
	assertBusinessCode(t, err, httperr.CodeInvalidAmount)
}

func TestDeleteTransfer_RemovesBothLegs(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(500))
	repo.addAccount(2, "Banco", dec(0))
	transfer := seedTransfer(t, repo)

	require.Equal(t, 1, repo.countTransferRows())
	require.Equal(t, 2, repo.countTransactionRows())

	uc := NewDeleteTransfer(repo, nil, zap.NewNop())

	require.NoError(t, uc.Execute(context.Background(), 1, nil, transfer.ID))

	// Nenhum lançamento órfão
	assert.Zero(t, repo.countTransferRows())
	assert.Zero(t, repo.countTransactionRows())

	// Saldos de volta ao estado original
	from, _ := repo.ComputeBalance(context.Background(), 1, 1)
	to, _ := repo.ComputeBalance(context.Background(), 1, 2)
	assert.True(t, from.Equal(dec(500)))
	assert.True(t, to.Equal(dec(0)))
}

func TestDeleteTransfer_NotFound(t *testing.T) {
	repo := newFakeRepo()

	uc := NewDeleteTransfer(repo, nil, zap.NewNop())

	err := uc.Execute(context.Background(), 1, nil, 42)
	assertBusinessCode(t, err, "transfer_not_found")
}
