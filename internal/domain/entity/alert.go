package entity

import "time"

// Tipos de alerta de vencimiento (mapeo fino usado solo por la ruta de alertas;
// el estado del lote usa la regla de 3 niveles de Batch).
const (
	AlertTypeExpired       = "EXPIRED"
	AlertTypeExpiringToday = "EXPIRING_TODAY"
	AlertTypeExpiring1Day  = "EXPIRING_1_DAY"
	AlertTypeExpiring2Days = "EXPIRING_2_DAYS"
)

// Alert representa un aviso de que un lote venció o está por vencer.
// Se deduplica por lote + tipo + día calendario.
type Alert struct {
	ID        string
	BatchID   string
	Type      string // ver constantes AlertType*
	Message   string
	Read      bool
	CreatedAt time.Time
}
