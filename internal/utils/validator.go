// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("correo_dominio", validateCorreoDominio)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Registration only admits mail domains the storefront recognizes. The
// admin.cl suffix doubles as the simulated admin role marker.
var allowedDomains = []string{"@gmail.com", "@duocuc.cl", "@admin.cl"}

func validateCorreoDominio(fl validator.FieldLevel) bool {
	correo := fl.Field().String()
	for _, domain := range allowedDomains {
		if strings.HasSuffix(correo, domain) {
			return true
		}
	}
	return false
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "El campo " + strings.ToLower(e.Field()) + " es requerido."
	case "email":
		return "El formato del correo es inválido."
	case "min":
		return "El campo " + strings.ToLower(e.Field()) + " debe tener al menos " + e.Param() + " caracteres."
	case "max":
		return "El campo " + strings.ToLower(e.Field()) + " debe tener como máximo " + e.Param() + " caracteres."
	case "eqfield":
		return "Las contraseñas no coinciden."
	case "correo_dominio":
		return "El correo debe terminar con @gmail.com, @duocuc.cl o @admin.cl."
	default:
		return "El campo " + strings.ToLower(e.Field()) + " es inválido."
	}
}
