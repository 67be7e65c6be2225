package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httpresp"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required,oneof=income expense"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	query := h.db.Where("petshop_id = ? AND active = ?", petshopID, true)

	// ?kind=income|expense filtra por natureza
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Erro ao listar categorias.")
		return
	}

	httpresp.List(c, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	category := models.Category{
		PetshopID: petshopID,
		Name:      req.Name,
		Kind:      req.Kind,
		Active:    true,
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "Erro ao criar categoria.")
		return
	}

	httpresp.Created(c, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var category models.Category
	if err := h.db.
		Where("id = ? AND petshop_id = ?", id, petshopID).
		First(&category).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Categoria não encontrada.")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	category.Name = req.Name
	category.Kind = req.Kind

	if err := h.db.Save(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_update_category", "Erro ao atualizar categoria.")
		return
	}

	httpresp.OK(c, category)
}

func (h *CategoryHandler) Archive(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	result := h.db.Model(&models.Category{}).
		Where("id = ? AND petshop_id = ?", id, petshopID).
		Update("active", false)

	if result.Error != nil {
		httperr.Internal(c, "failed_to_archive_category", "Erro ao arquivar categoria.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "category_not_found", "Categoria não encontrada.")
		return
	}

	c.Status(http.StatusNoContent)
}
