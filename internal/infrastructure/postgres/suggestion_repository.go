package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/fresco-api/internal/domain"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

var _ repository.SuggestionRepository = (*SuggestionRepo)(nil)

// SuggestionRepo implementación del puerto SuggestionRepository sobre PostgreSQL (usable con pool o tx).
type SuggestionRepo struct {
	q Querier
}

// NewSuggestionRepository construye el adaptador de persistencia para sugerencias. Pasar pool o tx (Querier).
func NewSuggestionRepository(q Querier) *SuggestionRepo {
	return &SuggestionRepo{q: q}
}

const suggestionColumns = `id, batch_id, discount_pct, estimated_revenue, status, approved_by, rejection_reason, resolved_at, created_at, updated_at`

func scanSuggestion(row pgx.Row) (*entity.DiscountSuggestion, error) {
	var s entity.DiscountSuggestion
	err := row.Scan(
		&s.ID, &s.BatchID, &s.DiscountPct, &s.EstimatedRevenue, &s.Status,
		&s.ApprovedBy, &s.RejectionReason, &s.ResolvedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una nueva sugerencia. El índice único parcial sobre
// (batch_id) WHERE status = 'PENDING' respalda la regla de una PENDING por lote.
func (r *SuggestionRepo) Create(s *entity.DiscountSuggestion) error {
	query := `
		INSERT INTO discount_suggestions (` + suggestionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.BatchID, s.DiscountPct, s.EstimatedRevenue, s.Status,
		s.ApprovedBy, s.RejectionReason, s.ResolvedAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert suggestion: %w", err)
	}
	return nil
}

// GetByID obtiene una sugerencia por ID.
func (r *SuggestionRepo) GetByID(id string) (*entity.DiscountSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM discount_suggestions WHERE id = $1`
	s, err := scanSuggestion(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene una sugerencia bloqueando la fila (usar dentro de transacciones).
func (r *SuggestionRepo) GetForUpdate(id string) (*entity.DiscountSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM discount_suggestions WHERE id = $1 FOR UPDATE`
	s, err := scanSuggestion(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get suggestion for update: %w", err)
	}
	return s, nil
}

// GetPendingByBatch devuelve la sugerencia PENDING del lote, o nil si no hay.
func (r *SuggestionRepo) GetPendingByBatch(batchID string) (*entity.DiscountSuggestion, error) {
	query := `
		SELECT ` + suggestionColumns + ` FROM discount_suggestions
		WHERE batch_id = $1 AND status = $2`
	s, err := scanSuggestion(r.q.QueryRow(context.Background(), query, batchID, entity.SuggestionStatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending suggestion: %w", err)
	}
	return s, nil
}

// List lista sugerencias con paginación, opcionalmente filtradas por estado.
// Las pendientes van primero, ordenadas por ingreso estimado descendente.
func (r *SuggestionRepo) List(status string, limit, offset int) ([]*entity.DiscountSuggestion, error) {
	const ordering = ` ORDER BY (status = '` + entity.SuggestionStatusPending + `') DESC, estimated_revenue DESC, created_at DESC`
	query := `SELECT ` + suggestionColumns + ` FROM discount_suggestions`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1` + ordering + ` LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ordering + ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()
	var list []*entity.DiscountSuggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update persiste el cambio de estado de una sugerencia (aprobación/rechazo).
func (r *SuggestionRepo) Update(s *entity.DiscountSuggestion) error {
	query := `
		UPDATE discount_suggestions
		SET status = $2, approved_by = $3, rejection_reason = $4, resolved_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Status, s.ApprovedBy, s.RejectionReason, s.ResolvedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update suggestion: %w", err)
	}
	return nil
}

// ExpirePendingByBatch marca como EXPIRED la sugerencia PENDING del lote.
func (r *SuggestionRepo) ExpirePendingByBatch(batchID string) error {
	query := `
		UPDATE discount_suggestions
		SET status = $3, resolved_at = now(), updated_at = now()
		WHERE batch_id = $1 AND status = $2`
	_, err := r.q.Exec(context.Background(), query,
		batchID, entity.SuggestionStatusPending, entity.SuggestionStatusExpired,
	)
	if err != nil {
		return fmt.Errorf("expire pending suggestion: %w", err)
	}
	return nil
}
