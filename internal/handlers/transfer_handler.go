package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httpresp"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	ucLedger "github.com/lmiguelviana/pet-connect-sub000/internal/usecase/ledger"
)

type TransferHandler struct {
	db *gorm.DB

	createUC *ucLedger.CreateTransfer
	updateUC *ucLedger.UpdateTransfer
	deleteUC *ucLedger.DeleteTransfer
}

func NewTransferHandler(
	db *gorm.DB,
	createUC *ucLedger.CreateTransfer,
	updateUC *ucLedger.UpdateTransfer,
	deleteUC *ucLedger.DeleteTransfer,
) *TransferHandler {
	return &TransferHandler{
		db:       db,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

type CreateTransferRequest struct {
	FromAccountID uint `json:"from_account_id" binding:"required"`
	ToAccountID   uint `json:"to_account_id" binding:"required"`

	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"required"` // YYYY-MM-DD
	Description string          `json:"description"`
}

type UpdateTransferRequest struct {
	FromAccountID *uint `json:"from_account_id"`
	ToAccountID   *uint `json:"to_account_id"`

	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
}

func (h *TransferHandler) List(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var transfers []models.Transfer
	if err := h.db.
		Where("petshop_id = ?", petshopID).
		Preload("FromAccount").
		Preload("ToAccount").
		Order("date DESC, id DESC").
		Find(&transfers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transfers", "Erro ao listar transferências.")
		return
	}

	httpresp.List(c, transfers)
}

func (h *TransferHandler) Create(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := h.parseDate(c, petshopID, req.Date)
	if err != nil {
		return
	}

	t, err := h.createUC.Execute(
		c.Request.Context(),
		ucLedger.CreateTransferInput{
			PetshopID:     petshopID,
			UserID:        &userID,
			FromAccountID: req.FromAccountID,
			ToAccountID:   req.ToAccountID,
			Amount:        req.Amount,
			Date:          date,
			Description:   req.Description,
		},
	)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.Created(c, t)
}

func (h *TransferHandler) Update(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	input := ucLedger.UpdateTransferInput{
		PetshopID:     petshopID,
		UserID:        &userID,
		TransferID:    uint(id),
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Description:   req.Description,
	}

	if req.Date != nil {
		date, err := h.parseDate(c, petshopID, *req.Date)
		if err != nil {
			return
		}
		input.Date = &date
	}

	t, err := h.updateUC.Execute(c.Request.Context(), input)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, t)
}

func (h *TransferHandler) Delete(c *gin.Context) {
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

// parseDate resolve a data no fuso do petshop; em caso de erro já
// escreve a resposta e devolve err apenas como sinal de curto-circuito.
func (h *TransferHandler) parseDate(c *gin.Context, petshopID uint, dateStr string) (time.Time, error) {
	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		httperr.Internal(c, "petshop_not_found", "Petshop não encontrado.")
		return time.Time{}, err
	}

	date, err := parseDateInShop(&shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return time.Time{}, err
	}

	return date, nil
}
