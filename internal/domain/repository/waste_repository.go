package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fresco-api/internal/domain/entity"
)

// WasteSummaryRow total de merma agrupado por motivo en un rango de fechas.
type WasteSummaryRow struct {
	Reason        string
	TotalQuantity int
	EstimatedLoss decimal.Decimal // cantidad × precio base del artículo
}

// WasteRepository define el puerto de persistencia para WasteRecord (DIP).
type WasteRepository interface {
	Create(w *entity.WasteRecord) error
	List(from, to time.Time, limit, offset int) ([]*entity.WasteRecord, error)
	// Summary agrega las mermas por motivo con pérdida estimada a precio base.
	Summary(ctx context.Context, from, to time.Time) ([]WasteSummaryRow, error)
}
