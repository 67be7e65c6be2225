package handlers

import (
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type ExportHandler struct {
	db *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{db: db}
}

// Transactions exporta o extrato em CSV, streaming direto na resposta.
// Filtros: ?from, ?to (YYYY-MM-DD), ?account_id.
func (h *ExportHandler) Transactions(c *gin.Context) {
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
	if err := query.Order("date ASC, id ASC").Find(&transactions).Error; err != nil {
		httperr.Internal(c, "failed_to_export", "Erro ao exportar lançamentos.")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	// BOM para o Excel reconhecer UTF-8
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"date", "type", "account", "category", "description", "amount"})

	loc := locationFromShop(&shop)
	for _, txn := range transactions {
		category := ""
		if txn.Category != nil {
			category = txn.Category.Name
		}

		writer.Write([]string{
			txn.Date.In(loc).Format("2006-01-02"),
			txn.Type,
			txn.Account.Name,
			category,
			txn.Description,
			txn.Amount.StringFixed(2),
		})
	}
}
