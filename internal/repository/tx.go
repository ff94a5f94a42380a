package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type txContextKey struct{}

// TxManager runs validate-then-write sequences inside one serializable
// transaction. The transaction travels in the context so that repository
// methods called from the closure automatically execute against it.
type TxManager struct {
	db *sqlx.DB
}

// NewTxManager constructs a transaction manager.
func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// RunSerializable executes fn within a serializable transaction. Any error
// from fn rolls the transaction back, so a failed validation never leaves a
// partial write behind.
func (m *TxManager) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ext resolves the querier for the context: the enclosing transaction when
// present, the pool otherwise.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txContextKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}
