package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ledger "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httpresp"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type AccountHandler struct {
	db   *gorm.DB
	repo ledger.Repository
}

func NewAccountHandler(db *gorm.DB, repo ledger.Repository) *AccountHandler {
	return &AccountHandler{db: db, repo: repo}
}

type AccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type AccountResponse struct {
	models.Account
	Balance decimal.Decimal `json:"balance"`
}

// List devolve as contas ativas já com o saldo corrente calculado.
func (h *AccountHandler) List(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var accounts []models.Account
	if err := h.db.
		Where("petshop_id = ? AND active = ?", petshopID, true).
		Order("name ASC").
		Find(&accounts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_accounts", "Erro ao listar contas.")
		return
	}

	out := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		balance, err := h.repo.ComputeBalance(c.Request.Context(), petshopID, acc.ID)
		if err != nil {
			httperr.Internal(c, "failed_to_compute_balance", "Erro ao calcular saldo.")
			return
		}

		out = append(out, AccountResponse{Account: acc, Balance: balance})
	}

	httpresp.List(c, out)
}

func (h *AccountHandler) Create(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	acc := models.Account{
		PetshopID:      petshopID,
		Name:           req.Name,
		Type:           req.Type,
		InitialBalance: req.InitialBalance,
		Active:         true,
	}
	if acc.Type == "" {
		acc.Type = "checking"
	}

	if err := h.db.Create(&acc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_account", "Erro ao criar conta.")
		return
	}

	httpresp.Created(c, acc)
}

func (h *AccountHandler) Update(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var acc models.Account
	if err := h.db.
		Where("id = ? AND petshop_id = ?", id, petshopID).
		First(&acc).Error; err != nil {
		httperr.NotFound(c, "account_not_found", "Conta não encontrada.")
		return
	}

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	acc.Name = req.Name
	if req.Type != "" {
		acc.Type = req.Type
	}
	acc.InitialBalance = req.InitialBalance

	if err := h.db.Save(&acc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_account", "Erro ao atualizar conta.")
		return
	}

	httpresp.OK(c, acc)
}

// Archive desativa a conta; o histórico de lançamentos permanece.
func (h *AccountHandler) Archive(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	result := h.db.Model(&models.Account{}).
		Where("id = ? AND petshop_id = ?", id, petshopID).
		Update("active", false)

	if result.Error != nil {
		httperr.Internal(c, "failed_to_archive_account", "Erro ao arquivar conta.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "account_not_found", "Conta não encontrada.")
		return
	}

	c.Status(http.StatusNoContent)
}

// Balance expõe o saldo derivado de uma conta específica.
func (h *AccountHandler) Balance(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if _, err := h.repo.GetAccount(c.Request.Context(), petshopID, uint(id)); err != nil {
		httperr.NotFound(c, "account_not_found", "Conta não encontrada.")
		return
	}

	balance, err := h.repo.ComputeBalance(c.Request.Context(), petshopID, uint(id))
	if err != nil {
		httperr.Internal(c, "failed_to_compute_balance", "Erro ao calcular saldo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account_id": uint(id),
		"balance":    balance,
	})
}
