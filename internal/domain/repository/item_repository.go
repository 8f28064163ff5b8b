package repository

import "github.com/jhoicas/fresco-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	// Upsert inserta por SKU o actualiza nombre/categoría/precio/unidad si ya existe.
	Upsert(item *entity.Item) error
	Update(item *entity.Item) error
	List(limit, offset int) ([]*entity.Item, error)
	Delete(id string) error
}
