package repository

import (
	"context"

	domainRepo "github.com/nischayn/vyapari-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txKey struct{}

// gormTransactor implements the unit-of-work boundary over gorm transactions.
// The open *gorm.DB transaction handle travels in the context so that every
// repository in this package picks it up transparently via dbFrom.
type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a transactor backed by the given database handle
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested call: a transaction is already open, reuse it.
	if txFrom(ctx) != nil {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFrom(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// dbFrom returns the open transaction carried in the context, or the plain
// database handle when no transaction is in flight. Every query in this
// package goes through it so repositories never care whether they run inside
// a WithinTx block.
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFrom(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
