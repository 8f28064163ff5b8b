package usecase

import (
	"context"

	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

// DashboardUseCase resumen agregado para el tablero de la SPA.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// GetSummary devuelve los conteos del tablero en un solo round-trip a la DB.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	s, err := uc.reportRepo.GetDashboardSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalItems:         s.TotalItems,
		TotalBatches:       s.TotalBatches,
		BatchesByStatus:    s.BatchesByStatus,
		PendingSuggestions: s.PendingSuggestions,
		UnreadAlerts:       s.UnreadAlerts,
		WasteLast30Days:    s.WasteLast30Days,
		WasteLossLast30:    s.WasteLossLast30,
	}, nil
}
