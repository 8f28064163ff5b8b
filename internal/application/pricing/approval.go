package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/domain"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

// Máquina de estados de la sugerencia por lote:
//
//	{sin sugerencia} → PENDING → {APPROVED | REJECTED}
//
// APPROVED además escribe el porcentaje de descuento en el lote, en la misma
// transacción. Cualquier transición desde un estado distinto de PENDING
// devuelve ErrConflict.

// Approve aprueba una sugerencia PENDING: marca APPROVED, registra el
// aprobador y aplica el descuento al lote. Todo o nada (transacción).
func (s *SuggestionService) Approve(ctx context.Context, suggestionID, approverID string) (*dto.SuggestionResponse, error) {
	var out dto.SuggestionResponse
	err := s.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		suggestionRepo repository.SuggestionRepository,
		auditRepo repository.AuditRepository,
	) error {
		sug, err := suggestionRepo.GetForUpdate(suggestionID)
		if err != nil {
			return err
		}
		if sug == nil {
			return domain.ErrNotFound
		}
		if sug.Status != entity.SuggestionStatusPending {
			return domain.ErrConflict
		}

		now := s.nowFn()
		oldStatus := sug.Status
		sug.Status = entity.SuggestionStatusApproved
		sug.ApprovedBy = approverID
		sug.ResolvedAt = &now
		sug.UpdatedAt = now
		if err := suggestionRepo.Update(sug); err != nil {
			return err
		}
		if err := batchRepo.UpdateDiscount(sug.BatchID, sug.DiscountPct); err != nil {
			return fmt.Errorf("aplicar descuento al lote: %w", err)
		}
		if err := auditRepo.Create(suggestionAudit(approverID, "approve", sug, oldStatus, now)); err != nil {
			return err
		}
		out = toSuggestionResponse(sug)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Reject rechaza una sugerencia PENDING con un motivo obligatorio.
// El lote queda sin descuento; una corrida futura puede volver a sugerirlo.
func (s *SuggestionService) Reject(ctx context.Context, suggestionID, approverID, reason string) (*dto.SuggestionResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var out dto.SuggestionResponse
	err := s.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		suggestionRepo repository.SuggestionRepository,
		auditRepo repository.AuditRepository,
	) error {
		sug, err := suggestionRepo.GetForUpdate(suggestionID)
		if err != nil {
			return err
		}
		if sug == nil {
			return domain.ErrNotFound
		}
		if sug.Status != entity.SuggestionStatusPending {
			return domain.ErrConflict
		}

		now := s.nowFn()
		oldStatus := sug.Status
		sug.Status = entity.SuggestionStatusRejected
		sug.ApprovedBy = approverID
		sug.RejectionReason = reason
		sug.ResolvedAt = &now
		sug.UpdatedAt = now
		if err := suggestionRepo.Update(sug); err != nil {
			return err
		}
		if err := auditRepo.Create(suggestionAudit(approverID, "reject", sug, oldStatus, now)); err != nil {
			return err
		}
		out = toSuggestionResponse(sug)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List lista sugerencias por estado ("" = todas), más recientes primero.
func (s *SuggestionService) List(status string, limit, offset int) (*dto.SuggestionListResponse, error) {
	list, err := s.suggestionRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SuggestionResponse, 0, len(list))
	for _, sug := range list {
		items = append(items, toSuggestionResponse(sug))
	}
	return &dto.SuggestionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func suggestionAudit(userID, action string, sug *entity.DiscountSuggestion, oldStatus string, now time.Time) *entity.AuditLogEntry {
	oldJSON, _ := json.Marshal(map[string]string{"status": oldStatus})
	newJSON, _ := json.Marshal(map[string]interface{}{
		"status":       sug.Status,
		"discount_pct": sug.DiscountPct,
	})
	return &entity.AuditLogEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Action:     action,
		EntityType: "suggestion",
		EntityID:   sug.ID,
		OldValues:  oldJSON,
		NewValues:  newJSON,
		CreatedAt:  now,
	}
}
