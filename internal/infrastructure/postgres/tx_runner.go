package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stratera/pos-api/internal/application/reports"
	"github.com/stratera/pos-api/internal/application/sales"
	"github.com/stratera/pos-api/internal/application/usecase"
	"github.com/stratera/pos-api/internal/domain/repository"
)

// Ensure TxRunner implements the application ports.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ usecase.StockTxRunner = (*TxRunner)(nil)
var _ reports.SnapshotRunner = (*TxRunner)(nil)

// Row locks wait at most this long before the engine gives up with a
// conflict instead of queueing checkouts indefinitely.
const lockTimeout = "3s"

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run starts a read-write transaction, binds repos to it, runs fn, and
// commits or rolls back. A lock_timeout is set so FOR UPDATE waits are
// bounded; hitting it surfaces as domain.ErrConflict via the repos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	activityRepo repository.ActivityLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout)); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	if err := fn(NewProductRepository(tx), NewSaleRepository(tx), NewActivityLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSnapshot starts a repeatable-read, read-only transaction and runs fn
// with a report repo bound to it. All queries inside fn observe the same
// database snapshot.
func (r *TxRunner) RunSnapshot(ctx context.Context, fn func(reportRepo repository.ReportRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewReportRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
