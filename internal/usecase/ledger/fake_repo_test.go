package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

var errNotFound = errors.New("not found")

var _ domain.Repository = (*fakeRepo)(nil)

// fakeRepo guarda tudo em memória e imita a atomicidade do repositório
// real: operações com erro injetado não deixam rastro.
type fakeRepo struct {
	accounts     map[uint]*models.Account
	transactions map[uint]*models.Transaction
	transfers    map[uint]*models.Transfer

	nextID uint

	failCreateTransfer error
	failUpdateTransfer error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts:     map[uint]*models.Account{},
		transactions: map[uint]*models.Transaction{},
		transfers:    map[uint]*models.Transfer{},
	}
}

func (r *fakeRepo) addAccount(id uint, name string, initial decimal.Decimal) *models.Account {
	acc := &models.Account{
		ID:             id,
		PetshopID:      1,
		Name:           name,
		InitialBalance: initial,
		Active:         true,
	}
	r.accounts[id] = acc
	return acc
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID + 1000
}

func (r *fakeRepo) GetAccount(_ context.Context, petshopID, accountID uint) (*models.Account, error) {
	acc, ok := r.accounts[accountID]
	if !ok || acc.PetshopID != petshopID {
		return nil, errNotFound
	}
	return acc, nil
}

func (r *fakeRepo) ComputeBalance(_ context.Context, petshopID, accountID uint) (decimal.Decimal, error) {
	acc, ok := r.accounts[accountID]
	if !ok || acc.PetshopID != petshopID {
		return decimal.Zero, errNotFound
	}

	balance := acc.InitialBalance
	for _, txn := range r.transactions {
		if txn.AccountID == accountID {
			balance = balance.Add(txn.Amount)
		}
	}
	return balance, nil
}

func (r *fakeRepo) CreateTransfer(_ context.Context, t *models.Transfer, out, in *models.Transaction) error {
	if r.failCreateTransfer != nil {
		return r.failCreateTransfer
	}

	t.ID = r.id()
	r.transfers[t.ID] = t

	for _, leg := range []*models.Transaction{out, in} {
		leg.ID = r.id()
		leg.TransferID = &t.ID
		r.transactions[leg.ID] = leg
	}
	return nil
}

func (r *fakeRepo) GetTransfer(_ context.Context, petshopID, transferID uint) (*models.Transfer, error) {
	t, ok := r.transfers[transferID]
	if !ok || t.PetshopID != petshopID {
		return nil, errNotFound
	}
	return t, nil
}

func (r *fakeRepo) ListTransfers(_ context.Context, petshopID uint) ([]models.Transfer, error) {
	var out []models.Transfer
	for _, t := range r.transfers {
		if t.PetshopID == petshopID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateTransfer(_ context.Context, t *models.Transfer, out, in *models.Transaction) error {
	if r.failUpdateTransfer != nil {
		return r.failUpdateTransfer
	}

	oldOut, oldIn, err := r.GetTransferLegs(context.Background(), t.ID)
	if err != nil {
		return err
	}
	delete(r.transactions, oldOut.ID)
	delete(r.transactions, oldIn.ID)

	r.transfers[t.ID] = t

	for _, leg := range []*models.Transaction{out, in} {
		leg.ID = r.id()
		leg.TransferID = &t.ID
		r.transactions[leg.ID] = leg
	}
	return nil
}

func (r *fakeRepo) DeleteTransfer(_ context.Context, t *models.Transfer) error {
	for id, txn := range r.transactions {
		if txn.TransferID != nil && *txn.TransferID == t.ID {
			delete(r.transactions, id)
		}
	}
	delete(r.transfers, t.ID)
	return nil
}

func (r *fakeRepo) GetTransferLegs(_ context.Context, transferID uint) (*models.Transaction, *models.Transaction, error) {
	var out, in *models.Transaction
	for _, txn := range r.transactions {
		if txn.TransferID == nil || *txn.TransferID != transferID {
			continue
		}
		if txn.Amount.IsNegative() {
			out = txn
		} else {
			in = txn
		}
	}
	if out == nil || in == nil {
		return nil, nil, errNotFound
	}
	return out, in, nil
}

func (r *fakeRepo) CreateTransaction(_ context.Context, txn *models.Transaction) error {
	txn.ID = r.id()
	r.transactions[txn.ID] = txn
	return nil
}

func (r *fakeRepo) GetTransaction(_ context.Context, petshopID, transactionID uint) (*models.Transaction, error) {
	txn, ok := r.transactions[transactionID]
	if !ok || txn.PetshopID != petshopID {
		return nil, errNotFound
	}
	return txn, nil
}

func (r *fakeRepo) DeleteTransaction(_ context.Context, txn *models.Transaction) error {
	delete(r.transactions, txn.ID)
	return nil
}

func (r *fakeRepo) countTransferRows() int    { return len(r.transfers) }
func (r *fakeRepo) countTransactionRows() int { return len(r.transactions) }
