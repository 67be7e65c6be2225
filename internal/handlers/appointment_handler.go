package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	ucAppointment "github.com/lmiguelviana/pet-connect-sub000/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.GetAvailability
	confirmUC      *ucAppointment.ConfirmAppointment
	startUC        *ucAppointment.StartAppointment
	completeUC     *ucAppointment.CompleteAppointment
	cancelUC       *ucAppointment.CancelAppointment
	noShowUC       *ucAppointment.MarkNoShow
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
	confirmUC *ucAppointment.ConfirmAppointment,
	startUC *ucAppointment.StartAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	noShowUC *ucAppointment.MarkNoShow,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
		confirmUC:      confirmUC,
		startUC:        startUC,
		completeUC:     completeUC,
		cancelUC:       cancelUC,
		noShowUC:       noShowUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	PetID     uint   `json:"pet_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

type CompleteAppointmentRequest struct {
	// Conta onde registrar a receita do serviço (opcional)
	AccountID uint `json:"account_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			PetshopID: petshopID,
			ClientID:  req.ClientID,
			PetID:     req.PetID,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			Time:      req.Time,
			Notes:     req.Notes,

			// Balcão pode encaixar de última hora
			SkipMinAdvance: true,

			UserID: &userID,
		},
	)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		httperr.Internal(c, "petshop_not_found", "Petshop não encontrado.")
		return
	}

	date, err := parseDateInShop(&shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			PetshopID: petshopID,
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	dateStr := c.DefaultQuery("date", "")

	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		httperr.Internal(c, "petshop_not_found", "Petshop não encontrado.")
		return
	}

	date := timezoneToday(&shop)
	if dateStr != "" {
		parsed, err := parseDateInShop(&shop, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		date = parsed
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), petshopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))

	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "Ano ou mês inválido.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), petshopID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), petshopID, userID, uint(id))
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Start(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.startUC.Execute(c.Request.Context(), petshopID, userID, uint(id))
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req CompleteAppointmentRequest
	// Corpo opcional
	_ = c.ShouldBindJSON(&req)

	ap, err := h.completeUC.Execute(
		c.Request.Context(),
		ucAppointment.CompleteAppointmentInput{
			PetshopID:     petshopID,
			UserID:        userID,
			AppointmentID: uint(id),
			AccountID:     req.AccountID,
		},
	)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), petshopID, userID, uint(id))
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.noShowUC.Execute(c.Request.Context(), petshopID, userID, uint(id))
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
