package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sugerencia de descuento. Máquina de estados por lote:
// {sin sugerencia} → PENDING → {APPROVED | REJECTED}. APPROVED también
// escribe el porcentaje de descuento en el lote. EXPIRED marca sugerencias
// que quedaron obsoletas porque el lote venció antes de resolverse.
const (
	SuggestionStatusPending  = "PENDING"
	SuggestionStatusApproved = "APPROVED"
	SuggestionStatusRejected = "REJECTED"
	SuggestionStatusExpired  = "EXPIRED"
)

// DiscountSuggestion representa un descuento propuesto para un lote, a la
// espera de aprobación o rechazo por un encargado. Solo puede existir una
// sugerencia PENDING por lote a la vez (lo garantiza el servicio de precios).
type DiscountSuggestion struct {
	ID               string
	BatchID          string
	DiscountPct      int             // 10, 25 o 40 según días restantes
	EstimatedRevenue decimal.Decimal // cantidad × precio base × (1 − descuento/100)
	Status           string          // ver constantes SuggestionStatus*
	ApprovedBy       string          // UserID del aprobador/rechazador; vacío si PENDING
	RejectionReason  string
	ResolvedAt       *time.Time // nil mientras esté PENDING
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
