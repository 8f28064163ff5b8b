package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardSummary conteos agregados para el tablero principal.
type DashboardSummary struct {
	TotalItems         int
	TotalBatches       int
	BatchesByStatus    map[string]int
	PendingSuggestions int
	UnreadAlerts       int
	WasteLast30Days    int             // unidades dadas de baja
	WasteLossLast30    decimal.Decimal // pérdida estimada a precio base
}

// ReportRepository consultas agregadas de solo lectura para dashboards.
type ReportRepository interface {
	GetDashboardSummary(ctx context.Context) (*DashboardSummary, error)
}
