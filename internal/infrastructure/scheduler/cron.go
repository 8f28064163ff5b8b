package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/fresco-api/internal/application/jobs"
	"github.com/jhoicas/fresco-api/pkg/logger"
)

var _ jobs.Scheduler = (*CronScheduler)(nil)

// CronScheduler implementa jobs.Scheduler sobre robfig/cron.
// Expresiones cron estándar de 5 campos (minuto hora día mes díasemana).
type CronScheduler struct {
	c   *cron.Cron
	log *logger.Logger
}

// NewCronScheduler construye el planificador. Start() arranca la goroutine interna.
func NewCronScheduler(log *logger.Logger) *CronScheduler {
	return &CronScheduler{
		c:   cron.New(),
		log: log,
	}
}

// Schedule programa task con la expresión dada. Valida la expresión al registrar.
func (s *CronScheduler) Schedule(cronExpr, name string, task func()) error {
	entryID, err := s.c.AddFunc(cronExpr, func() {
		s.log.Info().Str("job", name).Msg("scheduler: ejecutando trabajo programado")
		task()
	})
	if err != nil {
		return fmt.Errorf("programar %q con %q: %w", name, cronExpr, err)
	}
	s.log.Info().Str("job", name).Str("cron", cronExpr).Int("entry", int(entryID)).
		Msg("scheduler: trabajo registrado")
	return nil
}

// Start arranca el planificador (no bloquea).
func (s *CronScheduler) Start() {
	s.c.Start()
}

// Stop detiene el planificador y espera a que terminen los trabajos en curso.
func (s *CronScheduler) Stop() {
	ctx := s.c.Stop()
	<-ctx.Done()
}
