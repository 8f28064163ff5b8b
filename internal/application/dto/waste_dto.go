package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordWasteRequest entrada para registrar una merma sobre un lote.
type RecordWasteRequest struct {
	BatchID  string `json:"batch_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason" validate:"required"`
	Notes    string `json:"notes"`
}

// WasteResponse salida de un registro de merma.
type WasteResponse struct {
	ID         string    `json:"id"`
	BatchID    string    `json:"batch_id"`
	Quantity   int       `json:"quantity"`
	Reason     string    `json:"reason"`
	Notes      string    `json:"notes,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// WasteSummaryEntry total de merma por motivo dentro del rango consultado.
type WasteSummaryEntry struct {
	Reason        string          `json:"reason"`
	TotalQuantity int             `json:"total_quantity"`
	EstimatedLoss decimal.Decimal `json:"estimated_loss"`
}

// WasteReportResponse reporte de mermas en un rango de fechas.
type WasteReportResponse struct {
	From    time.Time           `json:"from"`
	To      time.Time           `json:"to"`
	Summary []WasteSummaryEntry `json:"summary"`
	Records []WasteResponse     `json:"records,omitempty"`
}
