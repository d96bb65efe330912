// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registroFixture struct {
	Email    string `validate:"required,email,correo_dominio"`
	Password string `validate:"required,min=4,max=10"`
}

func TestCorreoDominio(t *testing.T) {
	valid := []string{"a@gmail.com", "b@duocuc.cl", "c@admin.cl"}
	for _, email := range valid {
		err := ValidateStruct(&registroFixture{Email: email, Password: "1234"})
		assert.NoError(t, err, email)
	}

	invalid := []string{"a@hotmail.com", "b@gmail.es", "c@admincl"}
	for _, email := range invalid {
		err := ValidateStruct(&registroFixture{Email: email, Password: "1234"})
		assert.Error(t, err, email)
	}
}

func TestGetValidationErrorsMessages(t *testing.T) {
	err := ValidateStruct(&registroFixture{Email: "a@hotmail.com", Password: ""})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 2)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}

	assert.Equal(t, "correo_dominio", byField["email"].Tag)
	assert.Contains(t, byField["email"].Message, "@gmail.com")
	assert.Equal(t, "required", byField["password"].Tag)
	assert.Contains(t, byField["password"].Message, "requerido")
}

func TestGetValidationErrorsNonValidationError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(assert.AnError))
	assert.Empty(t, GetValidationErrors(nil))
}
