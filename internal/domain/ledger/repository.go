package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type Repository interface {
	// -------- Account --------
	GetAccount(
		ctx context.Context,
		petshopID uint,
		accountID uint,
	) (*models.Account, error)

	// ComputeBalance deriva o saldo corrente:
	// saldo inicial + soma dos lançamentos vinculados.
	ComputeBalance(
		ctx context.Context,
		petshopID uint,
		accountID uint,
	) (decimal.Decimal, error)

	// -------- Transfer --------
	//
	// CreateTransfer grava a transferência e os dois lançamentos em uma
	// única unidade atômica, com as contas travadas FOR UPDATE e o saldo
	// da origem reconferido sob a trava. Saldo insuficiente retorna
	// httperr "insufficient_funds"; nada é gravado.
	CreateTransfer(
		ctx context.Context,
		t *models.Transfer,
		out *models.Transaction,
		in *models.Transaction,
	) error

	GetTransfer(
		ctx context.Context,
		petshopID uint,
		transferID uint,
	) (*models.Transfer, error)

	ListTransfers(
		ctx context.Context,
		petshopID uint,
	) ([]models.Transfer, error)

	// UpdateTransfer propaga os novos dados para a transferência e para
	// os dois lançamentos vinculados, atomicamente, reconferindo o saldo
	// da (nova) origem com o valor antigo devolvido.
	UpdateTransfer(
		ctx context.Context,
		t *models.Transfer,
		out *models.Transaction,
		in *models.Transaction,
	) error

	// DeleteTransfer remove os dois lançamentos e a transferência em uma
	// única unidade atômica; nunca sobra lançamento órfão.
	DeleteTransfer(
		ctx context.Context,
		t *models.Transfer,
	) error

	// Lançamentos vinculados: saída (despesa na origem) e
	// entrada (receita no destino).
	GetTransferLegs(
		ctx context.Context,
		transferID uint,
	) (out *models.Transaction, in *models.Transaction, err error)

	// -------- Transaction --------
	//
	// CreateTransaction trava a conta e, para despesa, reconfere fundos
	// sob a trava.
	CreateTransaction(
		ctx context.Context,
		txn *models.Transaction,
	) error

	GetTransaction(
		ctx context.Context,
		petshopID uint,
		transactionID uint,
	) (*models.Transaction, error)

	DeleteTransaction(
		ctx context.Context,
		txn *models.Transaction,
	) error
}
