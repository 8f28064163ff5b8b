package entity

import "time"

// Estados de un lote según días restantes hasta el vencimiento (regla de 3 niveles).
const (
	BatchStatusActive       = "ACTIVE"        // más de 3 días para vencer
	BatchStatusExpiringSoon = "EXPIRING_SOON" // entre 0 y 3 días
	BatchStatusExpired      = "EXPIRED"       // fecha de vencimiento pasada
)

// Batch representa un lote: una cantidad de un artículo recibida en una entrega,
// con su propia fecha de vencimiento. Invariante: ExpiryDate > DeliveryDate.
// El estado se recalcula periódicamente por el monitor de vencimientos; el
// descuento lo fija la aprobación de una sugerencia de precio.
type Batch struct {
	ID              string
	ItemID          string
	Quantity        int // entero no negativo; se decrementa por ventas y mermas
	DeliveryDate    time.Time
	ExpiryDate      time.Time
	Status          string // ver constantes BatchStatus*
	DiscountPct     int    // 0-100; 0 = sin descuento
	SupplierBatchNo string // número de lote del proveedor (opcional)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
