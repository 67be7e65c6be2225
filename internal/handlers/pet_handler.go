package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	"github.com/lmiguelviana/pet-connect-sub000/internal/storage"
)

type PetHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStore
}

func NewPetHandler(db *gorm.DB, photos *storage.PhotoStore) *PetHandler {
	return &PetHandler{db: db, photos: photos}
}

// --------- Requests ---------

type CreatePetRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	Notes     string `json:"notes"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
}

type UpdatePetRequest struct {
	Name      *string `json:"name,omitempty"`
	Species   *string `json:"species,omitempty"`
	Breed     *string `json:"breed,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *PetHandler) List(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	clientID := strings.TrimSpace(c.Query("client_id"))

	q := h.db.Preload("Client").Where("petshop_id = ?", petshopID)

	if clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(breed) LIKE ?", like, like)
	}

	var pets []models.Pet
	if err := q.
		Order("created_at DESC").
		Find(&pets).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_pets"})
		return
	}

	c.JSON(http.StatusOK, pets)
}

func (h *PetHandler) Create(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)

	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND petshop_id = ?", req.ClientID, petshopID).
		First(&client).Error; err != nil {

		c.JSON(http.StatusBadRequest, gin.H{"error": "client_not_found"})
		return
	}

	pet := models.Pet{
		PetshopID: petshopID,
		ClientID:  client.ID,
		Name:      req.Name,
		Species:   strings.ToLower(req.Species),
		Breed:     req.Breed,
		Notes:     req.Notes,
		Active:    true,
	}

	if req.BirthDate != "" {
		if birth, err := time.Parse("2006-01-02", req.BirthDate); err == nil {
			pet.BirthDate = &birth
		}
	}

	if err := h.db.Create(&pet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_pet"})
		return
	}

	c.JSON(http.StatusCreated, pet)
}

func (h *PetHandler) Update(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	id := c.Param("id")

	var pet models.Pet
	if err := h.db.
		Where("id = ? AND petshop_id = ?", id, petshopID).
		First(&pet).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "pet_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_pet"})
		return
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Species != nil {
		pet.Species = strings.ToLower(*req.Species)
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
	}
	if req.Notes != nil {
		pet.Notes = *req.Notes
	}
	if req.BirthDate != nil {
		if birth, err := time.Parse("2006-01-02", *req.BirthDate); err == nil {
			pet.BirthDate = &birth
		}
	}
	if req.Active != nil {
		pet.Active = *req.Active
	}

	if err := h.db.Save(&pet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_pet"})
		return
	}

	c.JSON(http.StatusOK, pet)
}

// ======================================================
// PHOTO UPLOAD (multipart → WebP → S3)
// ======================================================
func (h *PetHandler) UploadPhoto(c *gin.Context) {
	petshopID := c.MustGet(middleware.ContextPetshopID).(uint)
	id := c.Param("id")

	if !h.photos.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo_storage_disabled"})
		return
	}

	var pet models.Pet
	if err := h.db.
		Where("id = ? AND petshop_id = ?", id, petshopID).
		First(&pet).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "pet_not_found"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_photo"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_photo"})
		return
	}
	defer src.Close()

	url, err := h.photos.UploadPetPhoto(c.Request.Context(), petshopID, pet.ID, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_upload_photo"})
		return
	}

	pet.PhotoURL = url
	if err := h.db.Save(&pet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_pet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
