package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := InsufficientStock("Insufficient stock. Current: %d, Requested: %d", 150, 200)

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Insufficient stock. Current: 150, Requested: 200", err.Error())
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(err))
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	err := fmt.Errorf("apply action: %w", NotFound("item %s not found", "abc"))

	assert.Equal(t, ErrNotFound, KindOf(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.Equal(t, "item abc not found", PublicMessage(err))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause, "failed to load items")

	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
}

func TestPrefixKeepsKind(t *testing.T) {
	err := Prefix(InsufficientStock("Insufficient stock. Current: %d, Requested: %d", 1, 2), "Item 3: ")

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Equal(t, "Item 3: Insufficient stock. Current: 1, Requested: 2", err.Error())

	raw := errors.New("raw")
	assert.Equal(t, raw, Prefix(raw, "Item 1: "))
}
