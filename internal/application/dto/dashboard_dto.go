package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen para el tablero principal de la SPA.
type DashboardResponse struct {
	TotalItems         int             `json:"total_items"`
	TotalBatches       int             `json:"total_batches"`
	BatchesByStatus    map[string]int  `json:"batches_by_status"`
	PendingSuggestions int             `json:"pending_suggestions"`
	UnreadAlerts       int             `json:"unread_alerts"`
	WasteLast30Days    int             `json:"waste_last_30_days"`
	WasteLossLast30    decimal.Decimal `json:"waste_loss_last_30_days"`
}
