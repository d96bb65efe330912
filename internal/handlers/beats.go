// internal/handlers/beats.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fullsound/fullsound/internal/catalog"
	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/utils"
)

type BeatHandler struct {
	catalog *catalog.FallbackCatalog
}

func NewBeatHandler(cat *catalog.FallbackCatalog) *BeatHandler {
	return &BeatHandler{catalog: cat}
}

// GET /beats
func (h *BeatHandler) List(c *gin.Context) {
	var filter models.BeatFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	beats, source, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, beats, source)
}

// GET /beats/:id
func (h *BeatHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "El id debe ser numérico", nil)
		return
	}

	beat, source, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.NotFoundResponse(c, "Beat no encontrado")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, beat, source)
}

// POST /beats
func (h *BeatHandler) Create(c *gin.Context) {
	var req catalog.CreateBeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	beat, source, err := h.catalog.Create(c.Request.Context(), &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"beat": beat, "source": source})
}

// PUT /beats/:id
func (h *BeatHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "El id debe ser numérico", nil)
		return
	}

	var req catalog.UpdateBeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	beat, source, err := h.catalog.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.NotFoundResponse(c, "Beat no encontrado")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, beat, source)
}

// DELETE /beats/:id
func (h *BeatHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "El id debe ser numérico", nil)
		return
	}

	source, err := h.catalog.Delete(c.Request.Context(), id)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, gin.H{"deleted": id}, source)
}

// GET /generos
func (h *BeatHandler) Genres(c *gin.Context) {
	genres, source, err := h.catalog.Genres(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, genres, source)
}
