package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	ucAppointment "github.com/lmiguelviana/pet-connect-sub000/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db *gorm.DB

	bookUC         *ucAppointment.BookPublicAppointment
	availabilityUC *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	bookUC *ucAppointment.BookPublicAppointment,
	availabilityUC *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		bookUC:         bookUC,
		availabilityUC: availabilityUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	PetName    string `json:"pet_name" binding:"required"`
	PetSpecies string `json:"pet_species"`

	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Petshop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "petshop_not_found", "Petshop não encontrado.")
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("petshop_id = ? AND active = true", shop.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"petshop":  shop,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
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
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "petshop_not_found", "Petshop não encontrado.")
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
			PetshopID: shop.ID,
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

////////////////////////////////////////////////////////
// BOOKING (PUBLIC → REUSA PRIVATE)
////////////////////////////////////////////////////////

func (h *PublicHandler) Book(c *gin.Context) {
	slug := c.Param("slug")

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.bookUC.Execute(
		c.Request.Context(),
		ucAppointment.BookPublicAppointmentInput{
			Slug:        slug,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			PetName:     req.PetName,
			PetSpecies:  req.PetSpecies,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	// Página pública só precisa do essencial
	c.JSON(http.StatusCreated, gin.H{
		"public_ref": ap.PublicRef,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}
