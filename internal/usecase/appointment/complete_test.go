package appointment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	ledgerdomain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

var _ ledgerdomain.Repository = (*fakeLedger)(nil)

// fakeLedger cobre só o que a conclusão de atendimento usa.
type fakeLedger struct {
	accounts     map[uint]*models.Account
	transactions []*models.Transaction
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{accounts: map[uint]*models.Account{}}
}

func (l *fakeLedger) GetAccount(_ context.Context, petshopID, accountID uint) (*models.Account, error) {
	acc, ok := l.accounts[accountID]
	if !ok || acc.PetshopID != petshopID {
		return nil, errNotFound
	}
	return acc, nil
}

func (l *fakeLedger) ComputeBalance(context.Context, uint, uint) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (l *fakeLedger) CreateTransfer(context.Context, *models.Transfer, *models.Transaction, *models.Transaction) error {
	return nil
}

func (l *fakeLedger) GetTransfer(context.Context, uint, uint) (*models.Transfer, error) {
	return nil, errNotFound
}

func (l *fakeLedger) ListTransfers(context.Context, uint) ([]models.Transfer, error) {
	return nil, nil
}

func (l *fakeLedger) UpdateTransfer(context.Context, *models.Transfer, *models.Transaction, *models.Transaction) error {
	return nil
}

func (l *fakeLedger) DeleteTransfer(context.Context, *models.Transfer) error {
	return nil
}

func (l *fakeLedger) GetTransferLegs(context.Context, uint) (*models.Transaction, *models.Transaction, error) {
	return nil, nil, errNotFound
}

func (l *fakeLedger) CreateTransaction(_ context.Context, txn *models.Transaction) error {
	txn.ID = uint(len(l.transactions) + 1)
	l.transactions = append(l.transactions, txn)
	return nil
}

func (l *fakeLedger) GetTransaction(context.Context, uint, uint) (*models.Transaction, error) {
	return nil, errNotFound
}

func (l *fakeLedger) DeleteTransaction(context.Context, *models.Transaction) error {
	return nil
}

// --------------------------------------------------

func seedInProgress(repo *fakeRepo) *models.Appointment {
	ap := &models.Appointment{
		ID:        1,
		PetshopID: 1,
		ClientID:  5,
		PetID:     7,
		ServiceID: 10,
		Status:    string(domain.StatusInProgress),
	}
	repo.appointments = append(repo.appointments, ap)
	return ap
}

func TestCompleteAppointment_PostsProtectedIncome(t *testing.T) {
	repo := newFakeRepo()
	svc := grooming()
	svc.Price = decimal.NewFromFloat(90.00)
	repo.services[10] = svc
	seedClientAndPet(repo)
	seedInProgress(repo)

	ledger := newFakeLedger()
	ledger.accounts[3] = &models.Account{ID: 3, PetshopID: 1, Name: "Caixa"}

	uc := NewCompleteAppointment(repo, ledger, nil)

	ap, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		PetshopID:     1,
		AppointmentID: 1,
		AccountID:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)

	require.Len(t, ledger.transactions, 1)
	txn := ledger.transactions[0]
	assert.True(t, txn.Amount.Equal(decimal.NewFromFloat(90.00)))
	assert.Equal(t, ledgerdomain.TypeIncome, txn.Type)
	assert.Equal(t, uint(3), txn.AccountID)
	require.NotNil(t, txn.AppointmentID)
	assert.Equal(t, ap.ID, *txn.AppointmentID)
	assert.True(t, txn.SystemGenerated())
	assert.Equal(t, "Banho e Tosa - Rex", txn.Description)
}

func TestCompleteAppointment_WithoutAccountSkipsLedger(t *testing.T) {
	repo := newFakeRepo()
	repo.services[10] = grooming()
	seedClientAndPet(repo)
	seedInProgress(repo)

	ledger := newFakeLedger()

	uc := NewCompleteAppointment(repo, ledger, nil)

	ap, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		PetshopID:     1,
		AppointmentID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	assert.Empty(t, ledger.transactions)
}

func TestCompleteAppointment_OnlyFromInProgress(t *testing.T) {
	repo := newFakeRepo()
	repo.services[10] = grooming()
	seedClientAndPet(repo)

	ap := seedInProgress(repo)
	ap.Status = string(domain.StatusScheduled)

	uc := NewCompleteAppointment(repo, newFakeLedger(), nil)

	_, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		PetshopID:     1,
		AppointmentID: 1,
	})
	assertCode(t, err, "invalid_state")
}

func TestCompleteAppointment_UnknownAccount(t *testing.T) {
	repo := newFakeRepo()
	repo.services[10] = grooming()
	seedClientAndPet(repo)
	seedInProgress(repo)

	uc := NewCompleteAppointment(repo, newFakeLedger(), nil)

	_, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		PetshopID:     1,
		AppointmentID: 1,
		AccountID:     99,
	})
	assertCode(t, err, httperr.CodeAccountNotFound)
}
