package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=5"`
	Quantity int    `json:"quantity" validate:"min=1"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN USER"`
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(sample{Email: "a@b.co", Name: "bob", Quantity: 1, Role: "USER"}))
}

func TestStructReportsEveryField(t *testing.T) {
	err := Struct(sample{Email: "nope", Name: "too-long", Quantity: 0, Role: "ROOT"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
	assert.Equal(t,
		"email must be a valid email address, name must be at most 5 characters, quantity must be at least 1, role must be one of [ADMIN USER]",
		err.Error())
}

func TestProblemsUsesJSONNames(t *testing.T) {
	problems := Problems(sample{Quantity: 1})
	assert.Equal(t, []string{"email is required", "name is required"}, problems)
}
