package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapGormError(t *testing.T) {
	errMissing := errors.New("missing")
	errTaken := errors.New("taken")
	errOther := errors.New("other")

	assert.NoError(t, MapGormError(nil, errMissing, errTaken))
	assert.Equal(t, errMissing, MapGormError(gorm.ErrRecordNotFound, errMissing, errTaken))
	assert.Equal(t, errMissing, MapGormError(fmt.Errorf("wrapped: %w", gorm.ErrRecordNotFound), errMissing, errTaken))
	assert.Equal(t, errTaken, MapGormError(gorm.ErrDuplicatedKey, errMissing, errTaken))
	assert.Equal(t, errOther, MapGormError(errOther, errMissing, errTaken))
	assert.ErrorIs(t, MapGormError(gorm.ErrDuplicatedKey, errMissing, nil), gorm.ErrDuplicatedKey)
}

func TestRequireAffected(t *testing.T) {
	errMissing := errors.New("missing")

	assert.NoError(t, RequireAffected(&gorm.DB{RowsAffected: 1}, errMissing))
	assert.Equal(t, errMissing, RequireAffected(&gorm.DB{}, errMissing))
	assert.Equal(t, errMissing, RequireAffected(&gorm.DB{Error: gorm.ErrRecordNotFound}, errMissing))
}
