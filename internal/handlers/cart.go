// internal/handlers/cart.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fullsound/fullsound/internal/cart"
	"github.com/fullsound/fullsound/internal/catalog"
	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/utils"
)

type CartHandler struct {
	carts   *cart.Service
	catalog *catalog.FallbackCatalog
}

func NewCartHandler(carts *cart.Service, cat *catalog.FallbackCatalog) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat}
}

// GET /carrito
func (h *CartHandler) Get(c *gin.Context) {
	view := h.carts.Get(c.Request.Context())
	utils.SourcedResponse(c, view, view.Source)
}

// POST /carrito/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		BeatID   int `json:"beatId" validate:"required"`
		Quantity int `json:"cantidad"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	beat, _, err := h.catalog.Get(c.Request.Context(), req.BeatID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.NotFoundResponse(c, "Beat no encontrado")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	view := h.carts.Add(c.Request.Context(), beat)
	utils.SourcedResponse(c, view, view.Source)
}

// PUT /carrito/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "El id debe ser numérico", nil)
		return
	}

	var req struct {
		Quantity int `json:"cantidad" validate:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	view := h.carts.SetQuantity(c.Request.Context(), id, req.Quantity)
	utils.SourcedResponse(c, view, view.Source)
}

// DELETE /carrito/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "El id debe ser numérico", nil)
		return
	}

	view := h.carts.Remove(c.Request.Context(), id)
	utils.SourcedResponse(c, view, view.Source)
}

// DELETE /carrito
func (h *CartHandler) Clear(c *gin.Context) {
	h.carts.Clear(c.Request.Context())
	utils.SuccessResponse(c, gin.H{"message": "Carrito vaciado"})
}

// POST /carrito/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	var details models.JSONB
	if err := c.ShouldBindJSON(&details); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	order, source, err := h.carts.Checkout(c.Request.Context(), details)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"order": order, "source": source})
}
