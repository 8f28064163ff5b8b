package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/domain"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

// WasteUseCase registro y reporte de mermas. Registrar una merma descuenta la
// cantidad del lote y deja rastro de auditoría, todo en una transacción con
// bloqueo de fila (SELECT FOR UPDATE) para no perder decrementos concurrentes.
type WasteUseCase struct {
	txRunner  WasteTxRunner
	wasteRepo repository.WasteRepository
}

// NewWasteUseCase construye el caso de uso.
func NewWasteUseCase(txRunner WasteTxRunner, wasteRepo repository.WasteRepository) *WasteUseCase {
	return &WasteUseCase{txRunner: txRunner, wasteRepo: wasteRepo}
}

// Record registra una merma sobre un lote: valida el motivo, bloquea la fila
// del lote, verifica cantidad suficiente, descuenta e inserta el registro.
func (uc *WasteUseCase) Record(ctx context.Context, userID string, in dto.RecordWasteRequest) (*dto.WasteResponse, error) {
	switch in.Reason {
	case entity.WasteReasonExpired, entity.WasteReasonDamaged, entity.WasteReasonSpoiled, entity.WasteReasonOther:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.BatchID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	record := &entity.WasteRecord{
		ID:         uuid.New().String(),
		BatchID:    in.BatchID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		Notes:      in.Notes,
		RecordedBy: userID,
		CreatedAt:  now,
	}

	err := uc.txRunner.RunWaste(ctx, func(
		batchRepo repository.BatchRepository,
		wasteRepo repository.WasteRepository,
		auditRepo repository.AuditRepository,
	) error {
		batch, err := batchRepo.GetForUpdate(in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		oldQty := batch.Quantity
		batch.Quantity -= in.Quantity
		batch.UpdatedAt = now
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		if err := wasteRepo.Create(record); err != nil {
			return err
		}

		oldJSON, _ := json.Marshal(map[string]int{"quantity": oldQty})
		newJSON, _ := json.Marshal(map[string]interface{}{"quantity": batch.Quantity, "waste_reason": in.Reason})
		return auditRepo.Create(&entity.AuditLogEntry{
			ID:         uuid.New().String(),
			UserID:     userID,
			Action:     "waste",
			EntityType: "batch",
			EntityID:   in.BatchID,
			OldValues:  oldJSON,
			NewValues:  newJSON,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toWasteResponse(record), nil
}

// Report arma el reporte de mermas de un rango de fechas: totales por motivo
// con pérdida estimada a precio base, más los registros individuales.
func (uc *WasteUseCase) Report(ctx context.Context, from, to time.Time, limit, offset int) (*dto.WasteReportResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	summary, err := uc.wasteRepo.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	records, err := uc.wasteRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}

	out := &dto.WasteReportResponse{From: from, To: to}
	for _, row := range summary {
		out.Summary = append(out.Summary, dto.WasteSummaryEntry{
			Reason:        row.Reason,
			TotalQuantity: row.TotalQuantity,
			EstimatedLoss: row.EstimatedLoss,
		})
	}
	for _, r := range records {
		out.Records = append(out.Records, *toWasteResponse(r))
	}
	return out, nil
}

func toWasteResponse(w *entity.WasteRecord) *dto.WasteResponse {
	if w == nil {
		return nil
	}
	return &dto.WasteResponse{
		ID:         w.ID,
		BatchID:    w.BatchID,
		Quantity:   w.Quantity,
		Reason:     w.Reason,
		Notes:      w.Notes,
		RecordedBy: w.RecordedBy,
		CreatedAt:  w.CreatedAt,
	}
}
