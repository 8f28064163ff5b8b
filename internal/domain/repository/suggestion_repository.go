package repository

import "github.com/jhoicas/fresco-api/internal/domain/entity"

// SuggestionRepository define el puerto de persistencia para DiscountSuggestion (DIP).
type SuggestionRepository interface {
	Create(s *entity.DiscountSuggestion) error
	GetByID(id string) (*entity.DiscountSuggestion, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de transacciones
	// para que aprobar y rechazar no corran en paralelo sobre la misma sugerencia.
	GetForUpdate(id string) (*entity.DiscountSuggestion, error)
	// GetPendingByBatch devuelve la sugerencia PENDING del lote, o nil si no hay.
	GetPendingByBatch(batchID string) (*entity.DiscountSuggestion, error)
	List(status string, limit, offset int) ([]*entity.DiscountSuggestion, error) // status vacío = todas
	Update(s *entity.DiscountSuggestion) error
	// ExpirePendingByBatch marca como EXPIRED la sugerencia PENDING del lote
	// (el lote venció antes de que alguien la resolviera).
	ExpirePendingByBatch(batchID string) error
}
