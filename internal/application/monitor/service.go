package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/domain"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/expiry"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
	"github.com/jhoicas/fresco-api/pkg/logger"
)

// ExpiringItem lote clasificado que se entrega al notificador por correo.
type ExpiringItem struct {
	SKU             string
	ItemName        string
	Quantity        int
	Unit            string
	ExpiryDate      time.Time
	DaysUntilExpiry int
	AlertType       string
}

// Notifier recibe la lista clasificada de lotes por vencer tras una corrida.
// La implementación envía el digest por correo; los fallos de envío se
// registran pero nunca hacen fallar la corrida.
type Notifier interface {
	NotifyExpiring(ctx context.Context, items []ExpiringItem) error
}

// Service monitor de vencimientos: recalcula el estado de cada lote elegible
// y genera alertas deduplicadas por lote + tipo + día calendario.
//
// Misma política que el servicio de precios: errores por lote se aíslan y se
// cuentan; corridas concurrentes se excluyen con un mutex por proceso.
type Service struct {
	batchRepo      repository.BatchRepository
	alertRepo      repository.AlertRepository
	suggestionRepo repository.SuggestionRepository
	notifier       Notifier // opcional, nil = sin correos
	log            *logger.Logger

	running sync.Mutex
	nowFn   func() time.Time
}

// NewService construye el monitor. notifier puede ser nil; nowFn nil usa time.Now.
func NewService(
	batchRepo repository.BatchRepository,
	alertRepo repository.AlertRepository,
	suggestionRepo repository.SuggestionRepository,
	notifier Notifier,
	log *logger.Logger,
	nowFn func() time.Time,
) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Service{
		batchRepo:      batchRepo,
		alertRepo:      alertRepo,
		suggestionRepo: suggestionRepo,
		notifier:       notifier,
		log:            log,
		nowFn:          nowFn,
	}
}

// Run ejecuta una corrida del monitor:
//
//  1. recalcula el estado de 3 niveles de cada lote y lo persiste si cambió;
//  2. un lote que pasa a EXPIRED arrastra su sugerencia PENDING a EXPIRED;
//  3. para días restantes <= 2 genera la alerta fina, salvo que ya exista una
//     del mismo lote + tipo creada hoy (deduplicación idempotente);
//  4. si se crearon alertas y hay notificador, envía el digest (mejor esfuerzo).
func (s *Service) Run(ctx context.Context) (*dto.MonitorRunResponse, error) {
	if !s.running.TryLock() {
		return nil, domain.ErrRunInProgress
	}
	defer s.running.Unlock()

	today := s.nowFn()

	batches, err := s.batchRepo.ListEligible()
	if err != nil {
		s.log.Error().Err(err).Msg("monitor: fallo el query de lotes elegibles")
		return &dto.MonitorRunResponse{Success: false, Error: err.Error()}, nil
	}

	stats := dto.MonitorRunStats{AlertsByType: map[string]int{}}
	var expiring []ExpiringItem

	for _, b := range batches {
		stats.Checked++

		days := expiry.DaysUntil(today, b.ExpiryDate)

		changed, err := s.refreshStatus(b, days)
		if err != nil {
			s.log.Warn().Err(err).Str("batch_id", b.BatchID).Msg("monitor: fallo actualizar estado, lote omitido")
			stats.Errors++
			continue
		}
		if changed {
			stats.StatusUpdates++
		}

		alertType, ok := expiry.AlertType(days)
		if !ok {
			continue
		}

		created, err := s.createAlertOnce(b, alertType, days, today)
		if err != nil {
			s.log.Warn().Err(err).Str("batch_id", b.BatchID).Str("type", alertType).Msg("monitor: fallo crear alerta")
			stats.Errors++
			continue
		}
		if created {
			stats.AlertsCreated++
			stats.AlertsByType[alertType]++
			expiring = append(expiring, ExpiringItem{
				SKU:             b.SKU,
				ItemName:        b.ItemName,
				Quantity:        b.Quantity,
				Unit:            b.Unit,
				ExpiryDate:      b.ExpiryDate,
				DaysUntilExpiry: days,
				AlertType:       alertType,
			})
		}
	}

	if len(expiring) > 0 && s.notifier != nil {
		if err := s.notifier.NotifyExpiring(ctx, expiring); err != nil {
			s.log.Warn().Err(err).Int("items", len(expiring)).Msg("monitor: fallo el envío del correo de alertas")
		}
	}

	s.log.Info().
		Int("checked", stats.Checked).
		Int("status_updates", stats.StatusUpdates).
		Int("alerts_created", stats.AlertsCreated).
		Int("errors", stats.Errors).
		Msg("monitor: corrida finalizada")

	return &dto.MonitorRunResponse{Success: true, Stats: stats}, nil
}

// refreshStatus persiste el estado de 3 niveles si cambió; al pasar a EXPIRED
// también marca como EXPIRED la sugerencia PENDING del lote.
func (s *Service) refreshStatus(b repository.EligibleBatch, days int) (bool, error) {
	newStatus := expiry.Status(days)
	if newStatus == b.Status {
		return false, nil
	}
	if err := s.batchRepo.UpdateStatus(b.BatchID, newStatus); err != nil {
		return false, err
	}
	if newStatus == entity.BatchStatusExpired {
		if err := s.suggestionRepo.ExpirePendingByBatch(b.BatchID); err != nil {
			return true, fmt.Errorf("expirar sugerencia pendiente: %w", err)
		}
	}
	return true, nil
}

// createAlertOnce crea la alerta salvo que ya exista una igual hoy.
// Devuelve true solo si se insertó una alerta nueva.
func (s *Service) createAlertOnce(b repository.EligibleBatch, alertType string, days int, today time.Time) (bool, error) {
	exists, err := s.alertRepo.ExistsForDay(b.BatchID, alertType, today)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	alert := &entity.Alert{
		ID:        uuid.New().String(),
		BatchID:   b.BatchID,
		Type:      alertType,
		Message:   alertMessage(b, days),
		CreatedAt: today,
	}
	if err := s.alertRepo.Create(alert); err != nil {
		return false, err
	}
	return true, nil
}

// alertMessage arma el texto visible en el panel de alertas.
func alertMessage(b repository.EligibleBatch, days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%s (%s): lote vencido el %s, %d %s en stock",
			b.ItemName, b.SKU, b.ExpiryDate.Format("2006-01-02"), b.Quantity, b.Unit)
	case days == 0:
		return fmt.Sprintf("%s (%s): vence HOY, %d %s en stock", b.ItemName, b.SKU, b.Quantity, b.Unit)
	case days == 1:
		return fmt.Sprintf("%s (%s): vence mañana, %d %s en stock", b.ItemName, b.SKU, b.Quantity, b.Unit)
	default:
		return fmt.Sprintf("%s (%s): vence en %d días, %d %s en stock", b.ItemName, b.SKU, days, b.Quantity, b.Unit)
	}
}
