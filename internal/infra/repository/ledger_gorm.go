package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type LedgerGormRepository struct {
	db *gorm.DB
}

func NewLedgerGormRepository(db *gorm.DB) *LedgerGormRepository {
	return &LedgerGormRepository{db: db}
}

// --------------------------------------------------
// Account
// --------------------------------------------------

func (r *LedgerGormRepository) GetAccount(
	ctx context.Context,
	petshopID uint,
	accountID uint,
) (*models.Account, error) {

	var account models.Account
	if err := r.db.WithContext(ctx).
		Where("id = ? AND petshop_id = ?", accountID, petshopID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *LedgerGormRepository) ComputeBalance(
	ctx context.Context,
	petshopID uint,
	accountID uint,
) (decimal.Decimal, error) {

	account, err := r.GetAccount(ctx, petshopID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return r.sumTransactions(r.db.WithContext(ctx), account)
}

func (r *LedgerGormRepository) sumTransactions(
	tx *gorm.DB,
	account *models.Account,
) (decimal.Decimal, error) {

	var sum decimal.Decimal
	row := tx.
		Model(&models.Transaction{}).
		Where("petshop_id = ? AND account_id = ?", account.PetshopID, account.ID).
		Select("COALESCE(SUM(amount), 0)").
		Row()

	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return account.InitialBalance.Add(sum), nil
}

// lockAccount carrega a conta FOR UPDATE dentro da transação corrente.
func (r *LedgerGormRepository) lockAccount(
	tx *gorm.DB,
	petshopID uint,
	accountID uint,
) (*models.Account, error) {

	var account models.Account
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND petshop_id = ?", accountID, petshopID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// lockTransferAccounts trava origem e destino em ordem de id,
// sempre a mesma nos dois sentidos, para não dar deadlock.
func (r *LedgerGormRepository) lockTransferAccounts(
	tx *gorm.DB,
	petshopID uint,
	fromID uint,
	toID uint,
) (from *models.Account, to *models.Account, err error) {

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}

	a, err := r.lockAccount(tx, petshopID, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := r.lockAccount(tx, petshopID, second)
	if err != nil {
		return nil, nil, err
	}

	if a.ID == fromID {
		return a, b, nil
	}
	return b, a, nil
}

// --------------------------------------------------
// Transfer
// --------------------------------------------------

func (r *LedgerGormRepository) CreateTransfer(
	ctx context.Context,
	t *models.Transfer,
	out *models.Transaction,
	in *models.Transaction,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		from, _, err := r.lockTransferAccounts(tx, t.PetshopID, t.FromAccountID, t.ToAccountID)
		if err != nil {
			return err
		}

		// Reconfere o saldo sob a trava: outra transferência pode ter
		// passado entre a validação do usecase e aqui
		balance, err := r.sumTransactions(tx, from)
		if err != nil {
			return err
		}
		if balance.LessThan(t.Amount) {
			return httperr.ErrBusiness(httperr.CodeInsufficientFunds)
		}

		if err := tx.Create(t).Error; err != nil {
			return err
		}

		out.TransferID = &t.ID
		in.TransferID = &t.ID

		if err := tx.Create(out).Error; err != nil {
			return err
		}
		if err := tx.Create(in).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *LedgerGormRepository) GetTransfer(
	ctx context.Context,
	petshopID uint,
	transferID uint,
) (*models.Transfer, error) {

	var t models.Transfer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND petshop_id = ?", transferID, petshopID).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *LedgerGormRepository) ListTransfers(
	ctx context.Context,
	petshopID uint,
) ([]models.Transfer, error) {

	var transfers []models.Transfer
	if err := r.db.WithContext(ctx).
		Preload("FromAccount").
		Preload("ToAccount").
		Where("petshop_id = ?", petshopID).
		Order("date DESC, id DESC").
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

func (r *LedgerGormRepository) UpdateTransfer(
	ctx context.Context,
	t *models.Transfer,
	out *models.Transaction,
	in *models.Transaction,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		from, _, err := r.lockTransferAccounts(tx, t.PetshopID, t.FromAccountID, t.ToAccountID)
		if err != nil {
			return err
		}

		oldOut, oldIn, err := r.transferLegs(tx, t.ID)
		if err != nil {
			return err
		}

		// Saldo disponível = saldo atual + valor antigo devolvido,
		// quando a despesa antiga estava nesta mesma conta
		balance, err := r.sumTransactions(tx, from)
		if err != nil {
			return err
		}
		available := balance
		if oldOut.AccountID == from.ID {
			available = available.Add(oldOut.Amount.Neg())
		}
		if available.LessThan(t.Amount) {
			return httperr.ErrBusiness(httperr.CodeInsufficientFunds)
		}

		if err := tx.Save(t).Error; err != nil {
			return err
		}

		applyLeg(oldOut, out)
		applyLeg(oldIn, in)

		if err := tx.Save(oldOut).Error; err != nil {
			return err
		}
		if err := tx.Save(oldIn).Error; err != nil {
			return err
		}

		return nil
	})
}

// applyLeg propaga os campos recalculados para o lançamento existente.
func applyLeg(existing *models.Transaction, next *models.Transaction) {
	existing.AccountID = next.AccountID
	existing.Amount = next.Amount
	existing.Type = next.Type
	existing.Description = next.Description
	existing.Date = next.Date
}

func (r *LedgerGormRepository) DeleteTransfer(
	ctx context.Context,
	t *models.Transfer,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Where("transfer_id = ?", t.ID).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}

		return tx.Delete(t).Error
	})
}

func (r *LedgerGormRepository) GetTransferLegs(
	ctx context.Context,
	transferID uint,
) (*models.Transaction, *models.Transaction, error) {
	return r.transferLegs(r.db.WithContext(ctx), transferID)
}

// transferLegs separa os dois lançamentos pelo sinal: a saída é o negativo.
func (r *LedgerGormRepository) transferLegs(
	tx *gorm.DB,
	transferID uint,
) (out *models.Transaction, in *models.Transaction, err error) {

	var legs []models.Transaction
	if err := tx.
		Where("transfer_id = ?", transferID).
		Find(&legs).Error; err != nil {
		return nil, nil, err
	}

	if len(legs) != 2 {
		return nil, nil, gorm.ErrRecordNotFound
	}

	for i := range legs {
		if legs[i].Amount.IsNegative() {
			out = &legs[i]
		} else {
			in = &legs[i]
		}
	}

	if out == nil || in == nil {
		return nil, nil, gorm.ErrRecordNotFound
	}

	return out, in, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *LedgerGormRepository) CreateTransaction(
	ctx context.Context,
	txn *models.Transaction,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		account, err := r.lockAccount(tx, txn.PetshopID, txn.AccountID)
		if err != nil {
			return err
		}

		if txn.Amount.IsNegative() {
			balance, err := r.sumTransactions(tx, account)
			if err != nil {
				return err
			}
			if balance.LessThan(txn.Amount.Neg()) {
				return httperr.ErrBusiness(httperr.CodeInsufficientFunds)
			}
		}

		return tx.Create(txn).Error
	})
}

func (r *LedgerGormRepository) GetTransaction(
	ctx context.Context,
	petshopID uint,
	transactionID uint,
) (*models.Transaction, error) {

	var txn models.Transaction
	if err := r.db.WithContext(ctx).
		Where("id = ? AND petshop_id = ?", transactionID, petshopID).
		First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *LedgerGormRepository) DeleteTransaction(
	ctx context.Context,
	txn *models.Transaction,
) error {
	return r.db.WithContext(ctx).Delete(txn).Error
}

// Compile-time check
var _ domain.Repository = (*LedgerGormRepository)(nil)
