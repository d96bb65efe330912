// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fullsound/fullsound/internal/session"
	"github.com/fullsound/fullsound/internal/utils"
)

type AuthHandler struct {
	sessions *session.Store
}

func NewAuthHandler(sessions *session.Store) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req session.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.sessions.Login(c.Request.Context(), &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SourcedResponse(c, gin.H{
		"user":  result.User,
		"token": result.Token,
	}, result.Source)
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req session.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, source, err := h.sessions.Register(c.Request.Context(), &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Usuario registrado exitosamente",
		"user":    user,
		"source":  source,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	utils.SuccessResponse(c, gin.H{"message": "Sesión cerrada"})
}

// GET /auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	user, source, err := h.sessions.Verify(c.Request.Context())
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	utils.SourcedResponse(c, gin.H{"user": user, "valid": true}, source)
}

// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"correo" validate:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	resetToken, source := h.sessions.ForgotPassword(c.Request.Context(), req.Email)
	data := gin.H{
		"message": "Se ha enviado un correo de recuperación",
		"email":   req.Email,
	}
	// The simulated flow has no mail delivery, so it hands the token back
	// directly.
	if resetToken != "" {
		data["resetToken"] = resetToken
	}
	utils.SourcedResponse(c, data, source)
}

// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=4,max=10"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	source := h.sessions.ResetPassword(c.Request.Context(), req.Token, req.Password)
	utils.SourcedResponse(c, gin.H{"message": "Contraseña restablecida exitosamente"}, source)
}
