package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type DashboardSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`

	AppointmentsToday int64 `json:"appointments_today"`
	AppointmentsMonth int64 `json:"appointments_month"`
	CompletedMonth    int64 `json:"completed_month"`

	ActiveClients int64 `json:"active_clients"`
}

// Summary consolida o mês corrente (ou ?year&?month) no fuso do petshop.
func (h *DashboardHandler) Summary(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		httperr.Internal(c, "petshop_not_found", "Petshop não encontrado.")
		return
	}

	loc := locationFromShop(&shop)
	now := time.Now().In(loc)

	year, month := now.Year(), int(now.Month())
	if y, m, ok := optionalPeriod(c); ok {
		year, month = y, m
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var summary DashboardSummary

	// Receitas e despesas do período; amount carrega o sinal
	row := h.db.Model(&models.Transaction{}).
		Select(`
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0)
		`).
		Where("petshop_id = ? AND date >= ? AND date < ?", petshopID, monthStart, monthEnd).
		Row()

	if err := row.Scan(&summary.Income, &summary.Expense); err != nil {
		httperr.Internal(c, "failed_to_load_summary", "Erro ao consolidar o período.")
		return
	}
	summary.Net = summary.Income.Sub(summary.Expense)

	blocking := []string{"scheduled", "confirmed", "in_progress", "completed"}

	if err := h.db.Model(&models.Appointment{}).
		Where("petshop_id = ? AND start_time >= ? AND start_time < ? AND status IN ?",
			petshopID, dayStart, dayEnd, blocking).
		Count(&summary.AppointmentsToday).Error; err != nil {
		httperr.Internal(c, "failed_to_load_summary", "Erro ao consolidar o período.")
		return
	}

	if err := h.db.Model(&models.Appointment{}).
		Where("petshop_id = ? AND start_time >= ? AND start_time < ? AND status IN ?",
			petshopID, monthStart, monthEnd, blocking).
		Count(&summary.AppointmentsMonth).Error; err != nil {
		httperr.Internal(c, "failed_to_load_summary", "Erro ao consolidar o período.")
		return
	}

	if err := h.db.Model(&models.Appointment{}).
		Where("petshop_id = ? AND start_time >= ? AND start_time < ? AND status = ?",
			petshopID, monthStart, monthEnd, "completed").
		Count(&summary.CompletedMonth).Error; err != nil {
		httperr.Internal(c, "failed_to_load_summary", "Erro ao consolidar o período.")
		return
	}

	if err := h.db.Model(&models.Client{}).
		Where("petshop_id = ? AND active = ?", petshopID, true).
		Count(&summary.ActiveClients).Error; err != nil {
		httperr.Internal(c, "failed_to_load_summary", "Erro ao consolidar o período.")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func optionalPeriod(c *gin.Context) (year, month int, ok bool) {
	y, err1 := strconv.Atoi(c.Query("year"))
	m, err2 := strconv.Atoi(c.Query("month"))

	if err1 != nil || err2 != nil || m < 1 || m > 12 {
		return 0, 0, false
	}

	return y, m, true
}
