package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	"github.com/lmiguelviana/pet-connect-sub000/internal/timezone"
)

type PetshopHandler struct {
	db *gorm.DB
}

func NewPetshopHandler(db *gorm.DB) *PetshopHandler {
	return &PetshopHandler{db: db}
}

type UpdatePetshopConfigRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *PetshopHandler) GetMePetshop(c *gin.Context) {
	petshopIDVal, _ := c.Get(middleware.ContextPetshopID)
	petshopID := petshopIDVal.(uint)

	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "petshop_not_found", "Petshop não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_petshop", "Erro ao buscar dados do petshop.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *PetshopHandler) UpdateMePetshop(c *gin.Context) {
	petshopIDVal, _ := c.Get(middleware.ContextPetshopID)
	petshopID := petshopIDVal.(uint)

	var shop models.Petshop
	if err := h.db.First(&shop, petshopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "petshop_not_found", "Petshop não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_petshop", "Erro ao buscar dados do petshop.")
		return
	}

	var req UpdatePetshopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_petshop", "Erro ao salvar as configurações do petshop.")
		return
	}

	c.JSON(http.StatusOK, shop)
}
