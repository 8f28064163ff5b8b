package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para el tablero.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetDashboardSummary arma el resumen del tablero en un solo round-trip.
func (r *ReportRepo) GetDashboardSummary(ctx context.Context) (*repository.DashboardSummary, error) {
	s := &repository.DashboardSummary{
		BatchesByStatus: map[string]int{
			entity.BatchStatusActive:       0,
			entity.BatchStatusExpiringSoon: 0,
			entity.BatchStatusExpired:      0,
		},
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM items),
			(SELECT COUNT(*) FROM batches),
			(SELECT COUNT(*) FROM batches WHERE status = $1),
			(SELECT COUNT(*) FROM batches WHERE status = $2),
			(SELECT COUNT(*) FROM batches WHERE status = $3),
			(SELECT COUNT(*) FROM discount_suggestions WHERE status = $4),
			(SELECT COUNT(*) FROM alerts WHERE read = false),
			(SELECT COALESCE(SUM(w.quantity), 0)
				FROM waste_records w
				WHERE w.created_at >= now() - interval '30 days'),
			(SELECT COALESCE(SUM(w.quantity * i.base_price), 0)
				FROM waste_records w
				JOIN batches b ON b.id = w.batch_id
				JOIN items i ON i.id = b.item_id
				WHERE w.created_at >= now() - interval '30 days')`

	var active, expiring, expired int
	err := r.q.QueryRow(ctx, query,
		entity.BatchStatusActive, entity.BatchStatusExpiringSoon, entity.BatchStatusExpired,
		entity.SuggestionStatusPending,
	).Scan(
		&s.TotalItems, &s.TotalBatches, &active, &expiring, &expired,
		&s.PendingSuggestions, &s.UnreadAlerts, &s.WasteLast30Days, &s.WasteLossLast30,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	s.BatchesByStatus[entity.BatchStatusActive] = active
	s.BatchesByStatus[entity.BatchStatusExpiringSoon] = expiring
	s.BatchesByStatus[entity.BatchStatusExpired] = expired
	return s, nil
}
