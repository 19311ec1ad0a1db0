package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/lubricentro-api/internal/application/servicing"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

var (
	_ servicing.TxRunner      = (*TxRunner)(nil)
	_ usecase.SettingTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunServices ejecuta fn con el repositorio de servicios atado a una transacción.
// Commit solo si fn devuelve nil; en cualquier otro caso rollback y el error de fn sin envolver.
func (r *TxRunner) RunServices(ctx context.Context, fn func(repo repository.ServiceRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewServiceRepository(tx))
	})
}

// RunSettings ejecuta fn con el repositorio de configuración atado a una transacción.
func (r *TxRunner) RunSettings(ctx context.Context, fn func(repo repository.SettingRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSettingRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return dbErr("begin transaction", err)
	}
	// Rollback después de Commit no hace nada; cubre errores y panics.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
