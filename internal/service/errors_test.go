package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestValidationError(t *testing.T) {
	err := fieldErrors(map[string]string{"price": "must not be negative", "discount_percentage": "bad"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation error: discount_percentage: bad; price: must not be negative", err.Error())

	var ve *ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &ve))
	assert.Len(t, ve.Fields, 2)

	assert.NoError(t, fieldErrors(nil))
}

func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound, "product"), ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("x: %w", gorm.ErrDuplicatedKey), "slug"), ErrConflict)
	other := errors.New("db down")
	assert.Equal(t, other, translate(other, "product"))
	assert.NoError(t, translate(nil, "product"))
}
