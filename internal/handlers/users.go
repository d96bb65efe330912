// internal/handlers/users.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fullsound/fullsound/internal/orders"
	"github.com/fullsound/fullsound/internal/users"
	"github.com/fullsound/fullsound/internal/utils"
)

type UserHandler struct {
	users  *users.Service
	orders *orders.Service
}

func NewUserHandler(users *users.Service, orders *orders.Service) *UserHandler {
	return &UserHandler{users: users, orders: orders}
}

// GET /usuarios/perfil
func (h *UserHandler) Profile(c *gin.Context) {
	user, source, err := h.users.Profile(c.Request.Context())
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, user, source)
}

// PUT /usuarios/perfil
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	user, source, err := h.users.UpdateProfile(c.Request.Context(), patch)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, user, source)
}

// PUT /usuarios/cambiar-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req struct {
		Current string `json:"passwordActual" validate:"required"`
		Next    string `json:"passwordNueva" validate:"required,min=4,max=10"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	source := h.users.ChangePassword(c.Request.Context(), req.Current, req.Next)
	utils.SourcedResponse(c, gin.H{"message": "Contraseña actualizada"}, source)
}

// GET /usuarios
func (h *UserHandler) List(c *gin.Context) {
	list, source := h.users.List(c.Request.Context())
	utils.SourcedResponse(c, list, source)
}

// GET /usuarios/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "El id debe ser numérico", nil)
		return
	}

	user, source, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			utils.NotFoundResponse(c, "Usuario no encontrado")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, user, source)
}

// PUT /usuarios/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "El id debe ser numérico", nil)
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	user, source, err := h.users.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			utils.NotFoundResponse(c, "Usuario no encontrado")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, user, source)
}

// DELETE /usuarios/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "El id debe ser numérico", nil)
		return
	}

	source, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, gin.H{"deleted": id}, source)
}

// GET /ordenes
func (h *UserHandler) Orders(c *gin.Context) {
	utils.SuccessResponse(c, h.orders.List())
}
