package usecase

import (
	"context"

	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

// WasteTxRunner ejecuta el registro de una merma dentro de una transacción:
// descontar del lote, insertar el registro de merma y auditar son atómicos.
type WasteTxRunner interface {
	RunWaste(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		wasteRepo repository.WasteRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
