package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, item_id, quantity, delivery_date, expiry_date, status, discount_pct, supplier_batch_no, created_at, updated_at`

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.ItemID, &b.Quantity, &b.DeliveryDate, &b.ExpiryDate, &b.Status,
		&b.DiscountPct, &b.SupplierBatchNo, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un nuevo lote.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ItemID, batch.Quantity, batch.DeliveryDate, batch.ExpiryDate,
		batch.Status, batch.DiscountPct, batch.SupplierBatchNo, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene un lote bloqueando la fila (usar dentro de transacciones).
func (r *BatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return b, nil
}

// List lista lotes con paginación, opcionalmente filtrados por estado.
// Los más próximos a vencer primero.
func (r *BatchRepo) List(status string, limit, offset int) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY expiry_date LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY expiry_date LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListEligible devuelve lotes con stock y estado ACTIVE o EXPIRING_SOON, junto
// con el precio base del artículo (un solo query para las corridas de precios y monitor).
func (r *BatchRepo) ListEligible() ([]repository.EligibleBatch, error) {
	query := `
		SELECT b.id, b.item_id, i.sku, i.name, b.quantity, b.expiry_date, b.status, b.discount_pct, i.base_price, i.unit
		FROM batches b
		JOIN items i ON i.id = b.item_id
		WHERE b.quantity > 0 AND b.status IN ($1, $2)
		ORDER BY b.expiry_date`
	rows, err := r.q.Query(context.Background(), query,
		entity.BatchStatusActive, entity.BatchStatusExpiringSoon,
	)
	if err != nil {
		return nil, fmt.Errorf("list eligible batches: %w", err)
	}
	defer rows.Close()
	var list []repository.EligibleBatch
	for rows.Next() {
		var e repository.EligibleBatch
		if err := rows.Scan(&e.BatchID, &e.ItemID, &e.SKU, &e.ItemName, &e.Quantity,
			&e.ExpiryDate, &e.Status, &e.DiscountPct, &e.BasePrice, &e.Unit); err != nil {
			return nil, fmt.Errorf("scan eligible batch: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update actualiza cantidad y número de lote del proveedor.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	query := `
		UPDATE batches SET quantity = $2, supplier_batch_no = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Quantity, batch.SupplierBatchNo, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado del lote (lo usa el monitor de vencimientos).
func (r *BatchRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE batches SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	return nil
}

// UpdateDiscount escribe el porcentaje de descuento (aprobación de sugerencia).
func (r *BatchRepo) UpdateDiscount(id string, discountPct int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE batches SET discount_pct = $2, updated_at = now() WHERE id = $1`,
		id, discountPct,
	)
	if err != nil {
		return fmt.Errorf("update batch discount: %w", err)
	}
	return nil
}

// CountByItem cuenta los lotes de un artículo (para impedir borrar artículos con lotes).
func (r *BatchRepo) CountByItem(itemID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM batches WHERE item_id = $1`, itemID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count batches by item: %w", err)
	}
	return count, nil
}

// Delete elimina un lote por ID.
func (r *BatchRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}
