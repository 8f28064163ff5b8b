package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/fresco-api/internal/application/pricing"
	"github.com/jhoicas/fresco-api/internal/application/usecase"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

// Ensure TxRunner implements pricing.TxRunner and usecase.WasteTxRunner.
var _ pricing.TxRunner = (*TxRunner)(nil)
var _ usecase.WasteTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Lo usa la aprobación/rechazo de sugerencias (sugerencia + lote + auditoría atómicos).
func (r *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	suggestionRepo repository.SuggestionRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batchRepo := NewBatchRepository(tx)
	suggestionRepo := NewSuggestionRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(batchRepo, suggestionRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunWaste inicia una transacción con repos de lotes, mermas y auditoría
// (para RecordWaste: descontar del lote e insertar la merma juntos).
func (r *TxRunner) RunWaste(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	wasteRepo repository.WasteRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batchRepo := NewBatchRepository(tx)
	wasteRepo := NewWasteRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(batchRepo, wasteRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
