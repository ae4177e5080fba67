package repository

import (
	"errors"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

var ErrNotFound = eris.New("record not found")

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
