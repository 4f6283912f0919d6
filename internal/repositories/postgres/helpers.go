package postgres

import (
	"errors"

	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"gorm.io/gorm"
)

type base struct {
	db *gorm.DB
}

func (b base) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return b.db
}

// translate maps gorm's not-found error to repositories.ErrNotFound
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}
