package pkg

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNilDB is returned by WithTx when no database handle is given.
var ErrNilDB = errors.New("transaction: database is nil")

// WithTx runs fn in a transaction bound to ctx. fn's error or panic rolls
// the transaction back; a panic is re-raised after the rollback.
func WithTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return ErrNilDB
	}
	return db.WithContext(ctx).Transaction(fn)
}
