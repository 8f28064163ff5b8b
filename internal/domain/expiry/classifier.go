package expiry

import (
	"time"

	"github.com/jhoicas/fresco-api/internal/domain/entity"
)

// Clasificador de vencimientos (servicio de dominio, funciones puras).
// Convierte fechas en días restantes y los días en estado del lote, tipo de
// alerta y nivel de descuento. Toda la lógica de negocio de perecederos que se
// repite en precios, monitor y notificaciones vive aquí para que las reglas de
// frontera (exactamente 3 días, exactamente 0 días) se decidan una sola vez.

// DaysUntil devuelve los días calendario entre hoy y la fecha de vencimiento.
// Ambas fechas se truncan a su día calendario (en la zona de `today`) y se
// reanclan en UTC antes de restar: la diferencia queda siempre en múltiplos
// exactos de 24h, incluso con cambios de horario que dejan días de 23h o 25h.
// Resultado negativo = ya vencido; 0 = vence hoy.
func DaysUntil(today, expiryDate time.Time) int {
	t := civilDay(today)
	e := civilDay(expiryDate.In(today.Location()))
	return int(e.Sub(t) / (24 * time.Hour))
}

// civilDay reancla el día calendario de t a medianoche UTC.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Status aplica la regla de 3 niveles para el estado del lote:
// negativo → EXPIRED, 0..3 → EXPIRING_SOON, >3 → ACTIVE.
func Status(daysUntilExpiry int) string {
	switch {
	case daysUntilExpiry < 0:
		return entity.BatchStatusExpired
	case daysUntilExpiry <= 3:
		return entity.BatchStatusExpiringSoon
	default:
		return entity.BatchStatusActive
	}
}

// AlertType aplica el mapeo fino usado SOLO por la generación de alertas
// (no por el estado del lote). ok=false para más de 2 días: sin alerta.
func AlertType(daysUntilExpiry int) (string, bool) {
	switch {
	case daysUntilExpiry < 0:
		return entity.AlertTypeExpired, true
	case daysUntilExpiry == 0:
		return entity.AlertTypeExpiringToday, true
	case daysUntilExpiry == 1:
		return entity.AlertTypeExpiring1Day, true
	case daysUntilExpiry == 2:
		return entity.AlertTypeExpiring2Days, true
	default:
		return "", false
	}
}

// DiscountTier devuelve el porcentaje de descuento sugerido según los días
// restantes. Stock ya vencido no recibe descuento (no tiene sentido rematarlo).
//
//	< 0 → 0%    (vencido)
//	  0 → 40%   (vence hoy)
//	  1 → 25%
//	  2 → 10%
//	>=3 → 0%    (aún no urge)
func DiscountTier(daysUntilExpiry int) int {
	switch {
	case daysUntilExpiry < 0:
		return 0
	case daysUntilExpiry == 0:
		return 40
	case daysUntilExpiry == 1:
		return 25
	case daysUntilExpiry == 2:
		return 10
	default:
		return 0
	}
}
