package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func TestMalformedUserIDIsNotFound(t *testing.T) {
	repo := NewGormUserRepository(nil)

	_, err := repo.FindByID(context.Background(), "abc")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = repo.Delete(context.Background(), "42")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
