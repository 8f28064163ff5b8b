package jobs

import (
	"context"

	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/pkg/logger"
)

// Scheduler puerto del planificador de trabajos. Desacopla "cuándo correr"
// (expresiones cron, inyectadas por configuración) de "qué correr" (los
// servicios de corrida). La implementación real usa robfig/cron.
type Scheduler interface {
	// Schedule programa task con la expresión cron dada. name solo para logs.
	Schedule(cronExpr, name string, task func()) error
	// Stop detiene el planificador y espera los trabajos en curso.
	Stop()
}

// PricingRunner y MonitorRunner son lo único que los jobs necesitan de los
// servicios (evita acoplar este paquete a sus tipos concretos).
type PricingRunner interface {
	Run(ctx context.Context) (*dto.PricingRunResponse, error)
}

type MonitorRunner interface {
	Run(ctx context.Context) (*dto.MonitorRunResponse, error)
}

// Runner registra los dos trabajos recurrentes del sistema en un Scheduler y
// expone el disparo manual (RunNow) para los endpoints de administración.
type Runner struct {
	pricing PricingRunner
	monitor MonitorRunner
	log     *logger.Logger
}

// NewRunner construye el registrador de trabajos.
func NewRunner(pricing PricingRunner, monitor MonitorRunner, log *logger.Logger) *Runner {
	return &Runner{pricing: pricing, monitor: monitor, log: log}
}

// Register programa ambos trabajos. Una expresión vacía deja ese trabajo solo
// con disparo manual.
func (r *Runner) Register(s Scheduler, expiryCron, pricingCron string) error {
	if expiryCron != "" {
		if err := s.Schedule(expiryCron, "expiry-monitor", func() {
			if _, err := r.monitor.Run(context.Background()); err != nil {
				r.log.Error().Err(err).Msg("jobs: corrida programada del monitor falló")
			}
		}); err != nil {
			return err
		}
	}
	if pricingCron != "" {
		if err := s.Schedule(pricingCron, "pricing-suggestions", func() {
			if _, err := r.pricing.Run(context.Background()); err != nil {
				r.log.Error().Err(err).Msg("jobs: corrida programada de precios falló")
			}
		}); err != nil {
			return err
		}
	}
	return nil
}

// RunPricingNow dispara manualmente la corrida de precios (endpoint admin).
func (r *Runner) RunPricingNow(ctx context.Context) (*dto.PricingRunResponse, error) {
	return r.pricing.Run(ctx)
}

// RunExpiryNow dispara manualmente la corrida del monitor (endpoint admin).
func (r *Runner) RunExpiryNow(ctx context.Context) (*dto.MonitorRunResponse, error) {
	return r.monitor.Run(ctx)
}
