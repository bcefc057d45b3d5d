package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by all backends when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateKey is returned when a unique constraint is violated
// (e.g. user email, group cell).
var ErrDuplicateKey = errors.New("duplicate key")

// IsNotFoundError reports whether err means "no such record" regardless of
// backend.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err is a unique-constraint violation.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey)
}
