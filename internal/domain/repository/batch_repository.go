package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fresco-api/internal/domain/entity"
)

// EligibleBatch fila combinada lote + artículo que consumen los servicios de
// corrida (precios y monitor): evita un segundo query por lote.
type EligibleBatch struct {
	BatchID     string
	ItemID      string
	SKU         string
	ItemName    string
	Quantity    int
	ExpiryDate  time.Time
	Status      string
	DiscountPct int
	BasePrice   decimal.Decimal
	Unit        string
}

// BatchRepository define el puerto de persistencia para Batch (DIP).
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de transacciones.
	GetForUpdate(id string) (*entity.Batch, error)
	List(status string, limit, offset int) ([]*entity.Batch, error) // status vacío = todos
	// ListEligible devuelve lotes con cantidad > 0 y estado ACTIVE o
	// EXPIRING_SOON, junto con el precio base del artículo.
	ListEligible() ([]EligibleBatch, error)
	Update(batch *entity.Batch) error
	UpdateStatus(id, status string) error
	UpdateDiscount(id string, discountPct int) error
	CountByItem(itemID string) (int, error)
	Delete(id string) error
}
