package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo de perecederos (SKU único).
// El stock real vive en los lotes (Batch); el Item solo define precio base y unidad.
type Item struct {
	ID        string
	SKU       string          // código único
	Name      string
	Category  string          // lacteos, carnes, frutas, verduras, panaderia, otros
	BasePrice decimal.Decimal // precio de venta sin descuento
	Unit      string          // unidad de venta: kg, unidad, litro, paquete
	CreatedAt time.Time
	UpdatedAt time.Time
}
