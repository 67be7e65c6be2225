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

type CreateTransactionInput struct {
	PetshopID uint
	UserID    *uint

	AccountID  uint
	CategoryID *uint

	// income ou expense; Amount sempre positivo no request,
	// o sinal vem do tipo
	Type   string
	Amount decimal.Decimal

	Description string
	Date        time.Time
}

type CreateTransaction struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateTransaction(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateTransaction {
	return &CreateTransaction{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *CreateTransaction) Execute(
	ctx context.Context,
	in CreateTransactionInput,
) (*models.Transaction, error) {

	if !in.Amount.IsPositive() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidAmount)
	}

	if in.Type != domain.TypeIncome && in.Type != domain.TypeExpense {
		return nil, httperr.ErrBusiness("invalid_type")
	}

	account, err := uc.repo.GetAccount(ctx, in.PetshopID, in.AccountID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAccountNotFound)
	}

	amount := in.Amount
	if in.Type == domain.TypeExpense {
		amount = amount.Neg()

		// Despesa não pode deixar a conta negativa; o repositório
		// reconfere sob a trava da conta
		balance, err := uc.repo.ComputeBalance(ctx, in.PetshopID, account.ID)
		if err != nil {
			uc.log.Error("balance computation failed", zap.Error(err))
			return nil, err
		}
		if balance.LessThan(in.Amount) {
			return nil, httperr.ErrBusiness(httperr.CodeInsufficientFunds)
		}
	}

	txn := &models.Transaction{
		PetshopID:   in.PetshopID,
		AccountID:   account.ID,
		CategoryID:  in.CategoryID,
		Amount:      amount,
		Type:        in.Type,
		Description: in.Description,
		Date:        in.Date,
	}

	if err := uc.repo.CreateTransaction(ctx, txn); err != nil {
		if _, business := httperr.BusinessCode(err); !business {
			uc.log.Error("transaction persistence failed", zap.Error(err))
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: in.PetshopID,
		UserID:    in.UserID,
		Action:    "transaction_created",
		Entity:    "transaction",
		EntityID:  &txn.ID,
	})

	return txn, nil
}
