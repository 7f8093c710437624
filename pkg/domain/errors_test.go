package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalid(t *testing.T) {
	err := Invalid("quantity %d out of range", -3)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.EqualError(t, err, "validation error: quantity -3 out of range")
}
