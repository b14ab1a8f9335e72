package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coachpad/coachpad/internal/api/validation"
)

func TestValidDate(t *testing.T) {
	assert.True(t, validation.ValidDate("2026-01-05"))
	assert.False(t, validation.ValidDate("05.01.2026"))
	assert.False(t, validation.ValidDate("2026-13-01"))
	assert.False(t, validation.ValidDate(""))
}

func TestValidateLoginRequest(t *testing.T) {
	errs := validation.ValidateLoginRequest(validation.LoginRequest{})
	assert.Len(t, errs, 2)

	errs = validation.ValidateLoginRequest(validation.LoginRequest{Username: "coach", Password: "pw"})
	assert.Empty(t, errs)
}

func TestValidateRegisterRequest(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username: "coach",
		Email:    "coach@example.com",
		Password: "longenough",
	})
	assert.Empty(t, errs)

	errs = validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username: strings.Repeat("x", 51),
		Email:    "not-an-email",
		Password: "short",
	})
	assert.Len(t, errs, 3)
}

func TestJoin(t *testing.T) {
	msg := validation.Join([]validation.FieldError{
		{Field: "username", Message: "username is required"},
		{Field: "password", Message: "password is required"},
	})
	assert.Equal(t, "username: username is required; password: password is required", msg)
}
