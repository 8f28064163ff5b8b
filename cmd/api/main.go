package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/fresco-api/internal/application/auth"
	"github.com/jhoicas/fresco-api/internal/application/jobs"
	"github.com/jhoicas/fresco-api/internal/application/monitor"
	"github.com/jhoicas/fresco-api/internal/application/notifier"
	"github.com/jhoicas/fresco-api/internal/application/pricing"
	"github.com/jhoicas/fresco-api/internal/application/usecase"
	"github.com/jhoicas/fresco-api/internal/infrastructure/mail"
	"github.com/jhoicas/fresco-api/internal/infrastructure/memory"
	"github.com/jhoicas/fresco-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fresco-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/fresco-api/internal/interfaces/http"
	"github.com/jhoicas/fresco-api/pkg/config"
	"github.com/jhoicas/fresco-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	suggestionRepo := postgres.NewSuggestionRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	wasteRepo := postgres.NewWasteRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificación por correo: opcional, solo si hay SMTP configurado.
	var mailNotifier monitor.Notifier
	if cfg.SMTP.Enabled() {
		sender := mail.NewGomailSender(cfg.SMTP)
		recipients := strings.Split(cfg.SMTP.To, ",")
		for i := range recipients {
			recipients[i] = strings.TrimSpace(recipients[i])
		}
		mailNotifier = notifier.NewEmailNotifier(sender, recipients, log)
		log.Info().Strs("to", recipients).Msg("correo de alertas habilitado")
	} else {
		log.Info().Msg("SMTP sin configurar: alertas solo en panel")
	}

	suggestionSvc := pricing.NewSuggestionService(batchRepo, suggestionRepo, txRunner, log, nil)
	monitorSvc := monitor.NewService(batchRepo, alertRepo, suggestionRepo, mailNotifier, log, nil)

	attempts := memory.NewLoginAttemptStore(
		cfg.Auth.MaxLoginAttempts,
		time.Duration(cfg.Auth.LockoutMinutes)*time.Minute,
	)
	authUC := auth.NewAuthUseCase(userRepo, attempts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	itemUC := usecase.NewItemUseCase(itemRepo, batchRepo)
	batchUC := usecase.NewBatchUseCase(batchRepo, itemRepo, nil)
	wasteUC := usecase.NewWasteUseCase(txRunner, wasteRepo)
	alertUC := usecase.NewAlertUseCase(alertRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := usecase.NewDashboardUseCase(reportRepo)

	// Trabajos programados: monitor de vencimientos y sugerencias de precio.
	jobRunner := jobs.NewRunner(suggestionSvc, monitorSvc, log)
	cronSched := scheduler.NewCronScheduler(log)
	if err := jobRunner.Register(cronSched, cfg.Jobs.ExpiryMonitorCron, cfg.Jobs.PricingSuggestionsCron); err != nil {
		log.Fatal().Err(err).Msg("registrar trabajos programados")
	}
	cronSched.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fresco PMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ItemUC:        itemUC,
		BatchUC:       batchUC,
		WasteUC:       wasteUC,
		AlertUC:       alertUC,
		UserUC:        userUC,
		DashboardUC:   dashboardUC,
		SuggestionSvc: suggestionSvc,
		JobRunner:     jobRunner,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	cronSched.Stop()

	log.Info().Msg("aplicación detenida")
}
