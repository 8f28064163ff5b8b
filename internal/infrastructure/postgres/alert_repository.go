package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de persistencia para alertas. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una nueva alerta.
func (r *AlertRepo) Create(alert *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, batch_id, type, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.BatchID, alert.Type, alert.Message, alert.Read, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// ExistsForDay indica si ya existe una alerta del mismo lote y tipo creada el
// mismo día calendario que `day` (deduplicación diaria del monitor).
func (r *AlertRepo) ExistsForDay(batchID, alertType string, day time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(), `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE batch_id = $1 AND type = $2 AND created_at::date = $3::date
		)`,
		batchID, alertType, day,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check alert exists: %w", err)
	}
	return exists, nil
}

// List lista alertas, más recientes primero. onlyUnread filtra las no leídas.
func (r *AlertRepo) List(onlyUnread bool, limit, offset int) ([]*entity.Alert, error) {
	query := `SELECT id, batch_id, type, message, read, created_at FROM alerts`
	if onlyUnread {
		query += ` WHERE read = false`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.BatchID, &a.Type, &a.Message, &a.Read, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkRead marca una alerta como leída.
func (r *AlertRepo) MarkRead(id string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE alerts SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	return nil
}

// MarkAllRead marca todas las alertas como leídas.
func (r *AlertRepo) MarkAllRead() error {
	_, err := r.q.Exec(context.Background(), `UPDATE alerts SET read = true WHERE read = false`)
	if err != nil {
		return fmt.Errorf("mark all alerts read: %w", err)
	}
	return nil
}

// CountUnread cuenta las alertas no leídas (para el tablero).
func (r *AlertRepo) CountUnread() (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM alerts WHERE read = false`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread alerts: %w", err)
	}
	return count, nil
}
