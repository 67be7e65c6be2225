package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type UpdateTransferInput struct {
	PetshopID  uint
	UserID     *uint
	TransferID uint

	FromAccountID *uint
	ToAccountID   *uint

	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
}

type UpdateTransfer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewUpdateTransfer(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *UpdateTransfer {
	return &UpdateTransfer{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *UpdateTransfer) Execute(
	ctx context.Context,
	in UpdateTransferInput,
) (*models.Transfer, error) {

	t, err := uc.repo.GetTransfer(ctx, in.PetshopID, in.TransferID)
	if err != nil {
		return nil, httperr.ErrBusiness("transfer_not_found")
	}

	oldAmount := t.Amount
	oldFromID := t.FromAccountID

	if in.FromAccountID != nil {
		t.FromAccountID = *in.FromAccountID
	}
	if in.ToAccountID != nil {
		t.ToAccountID = *in.ToAccountID
	}
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	if in.Description != nil {
		t.Description = *in.Description
	}

	if !t.Amount.IsPositive() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidAmount)
	}

	if t.FromAccountID == t.ToAccountID {
		return nil, httperr.ErrBusiness(httperr.CodeSameAccount)
	}

	from, err := uc.repo.GetAccount(ctx, in.PetshopID, t.FromAccountID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
	}

	to, err := uc.repo.GetAccount(ctx, in.PetshopID, t.ToAccountID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
	}

	// O valor antigo está sendo substituído: volta para o saldo
	// disponível antes da checagem, se a origem é a mesma
	balance, err := uc.repo.ComputeBalance(ctx, in.PetshopID, from.ID)
	if err != nil {
		uc.log.Error("balance computation failed", zap.Error(err))
		return nil, err
	}

	available := balance
	if from.ID == oldFromID {
		available = available.Add(oldAmount)
	}

	if available.LessThan(t.Amount) {
		return nil, httperr.ErrBusiness(httperr.CodeInsufficientFunds)
	}

	out, inLeg := domain.BuildTransferLegs(t, from, to)

	if err := uc.repo.UpdateTransfer(ctx, t, &out, &inLeg); err != nil {
		if _, business := httperr.BusinessCode(err); !business {
			uc.log.Error("transfer persistence failed", zap.Error(err))
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: in.PetshopID,
		UserID:    in.UserID,
		Action:    "transfer_updated",
		Entity:    "transfer",
		EntityID:  &t.ID,
	})

	return t, nil
}
