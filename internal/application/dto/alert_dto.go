package dto

import "time"

// AlertResponse salida de una alerta de vencimiento.
type AlertResponse struct {
	ID        string    `json:"id"`
	BatchID   string    `json:"batch_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertListResponse lista paginada de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// MonitorRunStats contadores de una corrida del monitor de vencimientos.
type MonitorRunStats struct {
	Checked       int            `json:"checked"`
	StatusUpdates int            `json:"status_updates"`
	AlertsCreated int            `json:"alerts_created"`
	AlertsByType  map[string]int `json:"alerts_by_type"`
	Errors        int            `json:"errors"`
}

// MonitorRunResponse resultado de una corrida del monitor de vencimientos.
type MonitorRunResponse struct {
	Success bool            `json:"success"`
	Stats   MonitorRunStats `json:"stats"`
	Error   string          `json:"error,omitempty"`
}
