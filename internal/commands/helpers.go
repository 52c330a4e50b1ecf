package commands

import (
	"errors"

	"gorm.io/gorm"
)

// entityNotFound reports whether err is GORM's record-not-found error.
func entityNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
