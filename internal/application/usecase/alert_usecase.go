package usecase

import (
	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

// AlertUseCase lectura y marcado de alertas de vencimiento.
// Las alertas las crea el monitor; aquí solo se consultan y se marcan leídas.
type AlertUseCase struct {
	alertRepo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(alertRepo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo}
}

// List lista alertas, más recientes primero. onlyUnread filtra las no leídas.
func (uc *AlertUseCase) List(onlyUnread bool, limit, offset int) (*dto.AlertListResponse, error) {
	list, err := uc.alertRepo.List(onlyUnread, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// MarkRead marca una alerta como leída.
func (uc *AlertUseCase) MarkRead(id string) error {
	return uc.alertRepo.MarkRead(id)
}

// MarkAllRead marca todas las alertas como leídas.
func (uc *AlertUseCase) MarkAllRead() error {
	return uc.alertRepo.MarkAllRead()
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:        a.ID,
		BatchID:   a.BatchID,
		Type:      a.Type,
		Message:   a.Message,
		Read:      a.Read,
		CreatedAt: a.CreatedAt,
	}
}
