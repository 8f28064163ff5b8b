package entity

import "time"

// Motivos de merma reconocidos en reportes.
const (
	WasteReasonExpired = "EXPIRED" // vencido
	WasteReasonDamaged = "DAMAGED" // dañado/roto
	WasteReasonSpoiled = "SPOILED" // descompuesto antes de la fecha
	WasteReasonOther   = "OTHER"
)

// WasteRecord representa una merma: cantidad de un lote dada de baja por
// vencimiento, daño o descomposición. Descuenta del lote al registrarse.
type WasteRecord struct {
	ID         string
	BatchID    string
	Quantity   int
	Reason     string // ver constantes WasteReason*
	Notes      string
	RecordedBy string // UserID
	CreatedAt  time.Time
}
