package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: el log de auditoría nunca se modifica.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de persistencia para auditoría. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta una entrada de auditoría.
func (r *AuditRepo) Create(e *entity.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (id, user_id, action, entity_type, entity_id, old_values, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.UserID, e.Action, e.EntityType, e.EntityID, e.OldValues, e.NewValues, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByEntity lista las entradas de auditoría de una entidad, más recientes primero.
func (r *AuditRepo) ListByEntity(entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, old_values, new_values, created_at
		FROM audit_log
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID,
			&e.OldValues, &e.NewValues, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
