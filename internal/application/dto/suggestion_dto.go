package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SuggestionResponse salida de una sugerencia de descuento.
type SuggestionResponse struct {
	ID               string          `json:"id"`
	BatchID          string          `json:"batch_id"`
	DiscountPct      int             `json:"discount_pct"`
	EstimatedRevenue decimal.Decimal `json:"estimated_revenue"`
	Status           string          `json:"status"`
	ApprovedBy       string          `json:"approved_by,omitempty"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	ResolvedAt       *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// SuggestionListResponse lista paginada de sugerencias.
type SuggestionListResponse struct {
	Items []SuggestionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// RejectSuggestionRequest entrada para rechazar una sugerencia.
type RejectSuggestionRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// PricingRunStats contadores de una corrida del servicio de precios.
type PricingRunStats struct {
	Analyzed              int             `json:"analyzed"`
	Created               int             `json:"created"`
	Skipped               int             `json:"skipped"`
	Errors                int             `json:"errors"`
	TotalEstimatedRevenue decimal.Decimal `json:"total_estimated_revenue"`
}

// PricingRunResponse resultado de una corrida del servicio de precios.
// Las sugerencias creadas vienen ordenadas por ingreso estimado descendente.
type PricingRunResponse struct {
	Success     bool                 `json:"success"`
	Stats       PricingRunStats      `json:"stats"`
	Suggestions []SuggestionResponse `json:"suggestions,omitempty"`
	Error       string               `json:"error,omitempty"`
}
