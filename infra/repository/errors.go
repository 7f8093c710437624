package repository

import (
	"errors"

	"gorm.io/gorm"
)

// MapGormError converts GORM errors to the given domain errors.
// Either target may be nil to leave that class of error untouched.
func MapGormError(err, notFound, exists error) error {
	if err == nil {
		return nil
	}
	switch {
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case exists != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return exists
	}
	return err
}

// RequireAffected turns a write that touched no rows into notFound.
func RequireAffected(tx *gorm.DB, notFound error) error {
	if tx.Error != nil {
		return MapGormError(tx.Error, notFound, nil)
	}
	if tx.RowsAffected == 0 {
		return notFound
	}
	return nil
}
