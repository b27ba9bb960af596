package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/chakrasapp/chakras-server/internal/errors"
)

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(registerPayload{
		Username: "listener",
		Email:    "listener@example.com",
		Password: "correct horse",
	})
	assert.NoError(t, err)
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(registerPayload{Username: "ab", Email: "nope", Password: ""})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 3 characters", details["username"])
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "is required", details["password"])
}
