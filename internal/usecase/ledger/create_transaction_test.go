package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

func TestCreateTransaction_IncomeAndExpenseSigns(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(100))

	uc := NewCreateTransaction(repo, nil, zap.NewNop())

	income, err := uc.Execute(context.Background(), CreateTransactionInput{
		PetshopID: 1,
		AccountID: 1,
		Type:      domain.TypeIncome,
		Amount:    dec(80),
	})
	require.NoError(t, err)
	assert.True(t, income.Amount.Equal(dec(80)))

	expense, err := uc.Execute(context.Background(), CreateTransactionInput{
		PetshopID: 1,
		AccountID: 1,
		Type:      domain.TypeExpense,
		Amount:    dec(30),
	})
	require.NoError(t, err)
	assert.True(t, expense.Amount.Equal(dec(-30)), "despesa guardada com sinal negativo")

	balance, _ := repo.ComputeBalance(context.Background(), 1, 1)
	assert.True(t, balance.Equal(dec(150)), "saldo: %s", balance)
}

func TestCreateTransaction_ExpenseCannotOverdraw(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(50))

	uc := NewCreateTransaction(repo, nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), CreateTransactionInput{
		PetshopID: 1,
		AccountID: 1,
		Type:      domain.TypeExpense,
		Amount:    dec(50.01),
	})
	assertBusinessCode(t, err, httperr.CodeInsufficientFunds)
	assert.Zero(t, repo.countTransactionRows())

	// Zerar a conta é permitido
	_, err = uc.Execute(context.Background(), CreateTransactionInput{
		PetshopID: 1,
		AccountID: 1,
		Type:      domain.TypeExpense,
		Amount:    dec(50),
	})
	assert.NoError(t, err)

	balance, _ := repo.ComputeBalance(context.Background(), 1, 1)
	assert.True(t, balance.IsZero())
}

func TestCreateTransaction_Validation(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(100))

	uc := NewCreateTransaction(repo, nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), CreateTransactionInput{
		PetshopID: 1, AccountID: 1, Type: domain.TypeIncome, Amount: dec(0),
	})
	assertBusinessCode(t, err, httperr.CodeInvalidAmount)

	_, err = uc.Execute(context.Background(), CreateTransactionInput{
		PetshopID: 1, AccountID: 1, Type: "loan", Amount: dec(10),
	})
	assertBusinessCode(t, err, "invalid_type")

	_, err = uc.Execute(context.Background(), CreateTransactionInput{
		PetshopID: 1, AccountID: 99, Type: domain.TypeIncome, Amount: dec(10),
	})
	assertBusinessCode(t, err, httperr.CodeAccountNotFound)
}

func TestDeleteTransaction_ManualEntry(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(100))

	createUC := NewCreateTransaction(repo, nil, zap.NewNop())
	deleteUC := NewDeleteTransaction(repo, nil, zap.NewNop())

	txn, err := createUC.Execute(context.Background(), CreateTransactionInput{
		PetshopID: 1, AccountID: 1, Type: domain.TypeIncome, Amount: dec(40),
	})
	require.NoError(t, err)

	require.NoError(t, deleteUC.Execute(context.Background(), 1, nil, txn.ID))
	assert.Zero(t, repo.countTransactionRows())

	balance, _ := repo.ComputeBalance(context.Background(), 1, 1)
	assert.True(t, balance.Equal(dec(100)))
}

func TestDeleteTransaction_TransferLegIsProtected(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(500))
	repo.addAccount(2, "Banco", dec(0))

	transfer := seedTransfer(t, repo)
	out, in, err := repo.GetTransferLegs(context.Background(), transfer.ID)
	require.NoError(t, err)

	deleteUC := NewDeleteTransaction(repo, nil, zap.NewNop())

	for _, leg := range []uint{out.ID, in.ID} {
		err := deleteUC.Execute(context.Background(), 1, nil, leg)
		assertBusinessCode(t, err, httperr.CodeProtectedTransaction)
	}

	// Nada foi tocado
	assert.Equal(t, 2, repo.countTransactionRows())
}

func TestDeleteTransaction_AppointmentIncomeIsProtected(t *testing.T) {
	repo := newFakeRepo()
	repo.addAccount(1, "Caixa", dec(0))

	appointmentID := uint(55)
	txn := &models.Transaction{
		ID:            900,
		PetshopID:     1,
		AccountID:     1,
		Amount:        dec(120),
		Type:          domain.TypeIncome,
		AppointmentID: &appointmentID,
	}
	repo.transactions[txn.ID] = txn

	deleteUC := NewDeleteTransaction(repo, nil, zap.NewNop())

	err := deleteUC.Execute(context.Background(), 1, nil, txn.ID)
	assertBusinessCode(t, err, httperr.CodeProtectedTransaction)
}
