package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Transaction executes the given function within a database transaction.
// If the function returns an error, the transaction is rolled back; otherwise
// it is committed. The callback receives a transaction-scoped *gorm.DB.
//
// Example usage:
//
//	err := pg.Transaction(ctx, func(tx *gorm.DB) error {
//		if err := tx.Create(&play).Error; err != nil {
//			return err
//		}
//		return tx.Save(&pref).Error
//	})
func (p *Postgres) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return p.client.WithContext(ctx).Transaction(fn)
}
