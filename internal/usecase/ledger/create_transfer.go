package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateTransferInput struct {
	PetshopID uint
	UserID    *uint

	FromAccountID uint
	ToAccountID   uint

	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// ======================================================
// USE CASE
// ======================================================

type CreateTransfer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateTransfer(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateTransfer {
	return &CreateTransfer{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateTransfer) Execute(
	ctx context.Context,
	in CreateTransferInput,
) (*models.Transfer, error) {

	if !in.Amount.IsPositive() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidAmount)
	}

	if in.FromAccountID == in.ToAccountID {
		return nil, httperr.ErrBusiness(httperr.CodeSameAccount)
	}

	from, err := uc.repo.GetAccount(ctx, in.PetshopID, in.FromAccountID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
	}

	to, err := uc.repo.GetAccount(ctx, in.PetshopID, in.ToAccountID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
	}

	// Checagem rápida de saldo; o repositório reconfere sob a trava
	// da conta antes de gravar
	balance, err := uc.repo.ComputeBalance(ctx, in.PetshopID, from.ID)
	if err != nil {
		uc.log.Error("balance computation failed", zap.Error(err))
		return nil, err
	}
	if balance.LessThan(in.Amount) {
		return nil, httperr.ErrBusiness(httperr.CodeInsufficientFunds)
	}

	t := &models.Transfer{
		PetshopID:     in.PetshopID,
		PublicRef:     uuid.NewString(),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        in.Amount,
		Description:   in.Description,
		Date:          in.Date,
	}

	out, inLeg := domain.BuildTransferLegs(t, from, to)

	// Transferência + dois lançamentos em uma única unidade atômica
	if err := uc.repo.CreateTransfer(ctx, t, &out, &inLeg); err != nil {
		if _, business := httperr.BusinessCode(err); !business {
			uc.log.Error("transfer persistence failed", zap.Error(err))
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: in.PetshopID,
		UserID:    in.UserID,
		Action:    "transfer_created",
		Entity:    "transfer",
		EntityID:  &t.ID,
	})

	return t, nil
}
