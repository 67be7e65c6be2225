package ledger

import (
	"context"

	"go.uber.org/zap"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
)

type DeleteTransfer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewDeleteTransfer(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeleteTransfer {
	return &DeleteTransfer{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *DeleteTransfer) Execute(
	ctx context.Context,
	petshopID uint,
	userID *uint,
	transferID uint,
) error {

	t, err := uc.repo.GetTransfer(ctx, petshopID, transferID)
	if err != nil {
		return httperr.ErrBusiness("transfer_not_found")
	}

	// Lançamentos e transferência caem juntos, na mesma unidade atômica
	if err := uc.repo.DeleteTransfer(ctx, t); err != nil {
		uc.log.Error("transfer delete failed", zap.Error(err))
		return err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: petshopID,
		UserID:    userID,
		Action:    "transfer_deleted",
		Entity:    "transfer",
		EntityID:  &t.ID,
	})

	return nil
}
