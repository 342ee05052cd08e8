package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrTransaction marks a multi-step write that was rolled back.
var ErrTransaction = errors.New("transaction failed")

// WithTransaction runs fn inside a transaction scoped to ctx.
// It commits when fn returns nil and rolls back otherwise; the returned error wraps both
// ErrTransaction and the error produced by fn. Nested calls use savepoints.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransaction, err)
	}
	return nil
}
