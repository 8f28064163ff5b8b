package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

var _ repository.WasteRepository = (*WasteRepo)(nil)

// WasteRepo implementación del puerto WasteRepository sobre PostgreSQL (usable con pool o tx).
type WasteRepo struct {
	q Querier
}

// NewWasteRepository construye el adaptador de persistencia para mermas. Pasar pool o tx (Querier).
func NewWasteRepository(q Querier) *WasteRepo {
	return &WasteRepo{q: q}
}

// Create persiste un registro de merma. El registro es inmutable.
func (r *WasteRepo) Create(w *entity.WasteRecord) error {
	query := `
		INSERT INTO waste_records (id, batch_id, quantity, reason, notes, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.BatchID, w.Quantity, w.Reason, w.Notes, w.RecordedBy, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert waste record: %w", err)
	}
	return nil
}

// List lista mermas registradas entre from y to, más recientes primero.
func (r *WasteRepo) List(from, to time.Time, limit, offset int) ([]*entity.WasteRecord, error) {
	query := `
		SELECT id, batch_id, quantity, reason, notes, recorded_by, created_at
		FROM waste_records
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list waste records: %w", err)
	}
	defer rows.Close()
	var list []*entity.WasteRecord
	for rows.Next() {
		var w entity.WasteRecord
		if err := rows.Scan(&w.ID, &w.BatchID, &w.Quantity, &w.Reason, &w.Notes,
			&w.RecordedBy, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan waste record: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Summary agrega las mermas por motivo con pérdida estimada a precio base del artículo.
func (r *WasteRepo) Summary(ctx context.Context, from, to time.Time) ([]repository.WasteSummaryRow, error) {
	query := `
		SELECT w.reason, COALESCE(SUM(w.quantity), 0), COALESCE(SUM(w.quantity * i.base_price), 0)
		FROM waste_records w
		JOIN batches b ON b.id = w.batch_id
		JOIN items i ON i.id = b.item_id
		WHERE w.created_at >= $1 AND w.created_at < $2
		GROUP BY w.reason
		ORDER BY w.reason`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("waste summary: %w", err)
	}
	defer rows.Close()
	var list []repository.WasteSummaryRow
	for rows.Next() {
		var row repository.WasteSummaryRow
		if err := rows.Scan(&row.Reason, &row.TotalQuantity, &row.EstimatedLoss); err != nil {
			return nil, fmt.Errorf("scan waste summary: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
