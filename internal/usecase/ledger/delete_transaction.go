package ledger

import (
	"context"

	"go.uber.org/zap"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
)

type DeleteTransaction struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewDeleteTransaction(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeleteTransaction {
	return &DeleteTransaction{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *DeleteTransaction) Execute(
	ctx context.Context,
	petshopID uint,
	userID *uint,
	transactionID uint,
) error {

	txn, err := uc.repo.GetTransaction(ctx, petshopID, transactionID)
	if err != nil {
		return httperr.ErrBusiness("transaction_not_found")
	}

	// Lançamentos de transferência ou de agendamento só caem pelo
	// ciclo de vida do dono (DeleteTransfer / agendamento)
	if txn.SystemGenerated() {
		return httperr.ErrBusiness(httperr.CodeProtectedTransaction)
	}

	if err := uc.repo.DeleteTransaction(ctx, txn); err != nil {
		uc.log.Error("transaction delete failed", zap.Error(err))
		return err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: petshopID,
		UserID:    userID,
		Action:    "transaction_deleted",
		Entity:    "transaction",
		EntityID:  &txn.ID,
	})

	return nil
}
