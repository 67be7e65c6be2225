package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httpresp"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	ucLedger "github.com/lmiguelviana/pet-connect-sub000/internal/usecase/ledger"
)

type TransactionHandler struct {
	db *gorm.DB

	createUC *ucLedger.CreateTransaction
	deleteUC *ucLedger.DeleteTransaction
}

func NewTransactionHandler(
	db *gorm.DB,
	createUC *ucLedger.CreateTransaction,
	deleteUC *ucLedger.DeleteTransaction,
) *TransactionHandler {
	return &TransactionHandler{
		db:       db,
		createUC: createUC,
		deleteUC: deleteUC,
	}
}

type CreateTransactionRequest struct {
	AccountID  uint  `json:"account_id" binding:"required"`
	CategoryID *uint `json:"category_id"`

	Type   string          `json:"type" binding:"required,oneof=income expense"`
	Amount decimal.Decimal `json:"amount" binding:"required"`

	Description string `json:"description"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
}

// List devolve o extrato do período, mais recente primeiro.
// Filtros: ?account_id, ?category_id, ?type, ?from, ?to (YYYY-MM-DD).
func (h *TransactionHandler) List(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		httperr.Internal(c, "petshop_not_found", "Petshop não encontrado.")
		return
	}

	query := h.db.
		Where("petshop_id = ?", petshopID).
		Preload("Account").
		Preload("Category")

	if accountID := c.Query("account_id"); accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}

	if from := c.Query("from"); from != "" {
		date, err := parseDateInShop(&shop, from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return
		}
		query = query.Where("date >= ?", date)
	}
	if to := c.Query("to"); to != "" {
		date, err := parseDateInShop(&shop, to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		query = query.Where("date < ?", date.AddDate(0, 0, 1))
	}

	var transactions []models.Transaction
	if err := query.
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "Erro ao listar lançamentos.")
		return
	}

	httpresp.List(c, transactions)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		httperr.Internal(c, "petshop_not_found", "Petshop não encontrado.")
		return
	}

	date, err := parseDateInShop(&shop, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	txn, err := h.createUC.Execute(
		c.Request.Context(),
		ucLedger.CreateTransactionInput{
			PetshopID:   petshopID,
			UserID:      &userID,
			AccountID:   req.AccountID,
			CategoryID:  req.CategoryID,
			Type:        req.Type,
			Amount:      req.Amount,
			Description: req.Description,
			Date:        date,
		},
	)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.Created(c, txn)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), petshopID, &userID, uint(id)); err != nil {
		mapBusinessError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
