package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fresco-api/internal/application/auth"
	"github.com/jhoicas/fresco-api/internal/application/jobs"
	"github.com/jhoicas/fresco-api/internal/application/pricing"
	"github.com/jhoicas/fresco-api/internal/application/usecase"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ItemUC        *usecase.ItemUseCase
	BatchUC       *usecase.BatchUseCase
	WasteUC       *usecase.WasteUseCase
	AlertUC       *usecase.AlertUseCase
	UserUC        *usecase.UserUseCase
	DashboardUC   *usecase.DashboardUseCase
	SuggestionSvc *pricing.SuggestionService
	JobRunner     *jobs.Runner
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	admins := RequireRole(entity.RoleAdmin)

	// Items (protegido; escritura para manager/admin)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", managers, itemHandler.Upsert)
	items.Put("/:id", managers, itemHandler.Update)
	items.Delete("/:id", admins, itemHandler.Delete)

	// Batches (protegido; cualquier rol registra recepciones y correcciones)
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", managers, batchHandler.Delete)

	// Suggestions (protegido; aprobar/rechazar solo manager/admin)
	suggestions := protected.Group("/suggestions")
	suggestionHandler := NewSuggestionHandler(deps.SuggestionSvc)
	suggestions.Get("/", suggestionHandler.List)
	suggestions.Post("/:id/approve", managers, suggestionHandler.Approve)
	suggestions.Post("/:id/reject", managers, suggestionHandler.Reject)

	// Alerts (protegido)
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Post("/read-all", alertHandler.MarkAllRead)
	alerts.Post("/:id/read", alertHandler.MarkRead)

	// Waste (protegido; cualquier rol registra, el reporte es para manager/admin)
	waste := protected.Group("/waste")
	wasteHandler := NewWasteHandler(deps.WasteUC)
	waste.Post("/", wasteHandler.Record)
	waste.Get("/report", managers, wasteHandler.Report)

	// Jobs (protegido; disparo manual solo manager/admin)
	jobsGroup := protected.Group("/jobs", managers)
	jobHandler := NewJobHandler(deps.JobRunner)
	jobsGroup.Post("/pricing/run", jobHandler.RunPricing)
	jobsGroup.Post("/expiry/run", jobHandler.RunExpiry)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Users (protegido; administración solo admin)
	users := protected.Group("/users", admins)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
}
