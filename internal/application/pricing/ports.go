package pricing

import (
	"context"

	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que aprobar una sugerencia y
// escribir el descuento en el lote sea atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		suggestionRepo repository.SuggestionRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
