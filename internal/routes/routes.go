package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tallergestion/workshop-api/internal/audit"
	"github.com/tallergestion/workshop-api/internal/authz"
	"github.com/tallergestion/workshop-api/internal/config"
	"github.com/tallergestion/workshop-api/internal/handlers"
	infraRepo "github.com/tallergestion/workshop-api/internal/infra/repository"
	"github.com/tallergestion/workshop-api/internal/middleware"
	ucAppointment "github.com/tallergestion/workshop-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	loginLimiter := middleware.NewRateLimiter(rdb, 10, time.Minute, "login", log)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	scheduleUC := ucAppointment.NewSchedule(
		appointmentRepo,
		auditDispatcher,
	)

	cancelUC := ucAppointment.NewCancel(
		appointmentRepo,
		auditDispatcher,
	)

	completeUC := ucAppointment.NewComplete(
		appointmentRepo,
		auditDispatcher,
	)

	listByDateUC := ucAppointment.NewListByDate(
		appointmentRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	clientHandler := handlers.NewClientHandler(db, auditDispatcher)
	employeeHandler := handlers.NewEmployeeHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	vehicleHandler := handlers.NewVehicleHandler(db, auditDispatcher)
	repairHandler := handlers.NewRepairHandler(db, auditDispatcher)
	taskHandler := handlers.NewTaskHandler(db, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		scheduleUC,
		cancelUC,
		completeUC,
		listByDateUC,
		appointmentRepo,
		auditDispatcher,
	)

	dashboardHandler := handlers.NewDashboardHandler(db)
	reportHandler := handlers.NewReportHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// RUTAS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CLIENTES
			// ------------------------------
			secured.GET("/clients",
				middleware.Authorize(authz.ActionRead, authz.EntityClient),
				clientHandler.List)
			secured.GET("/clients/search",
				middleware.Authorize(authz.ActionRead, authz.EntityClient),
				clientHandler.Search)
			secured.GET("/clients/:id",
				middleware.Authorize(authz.ActionRead, authz.EntityClient),
				clientHandler.Get)
			secured.POST("/clients",
				middleware.Authorize(authz.ActionCreate, authz.EntityClient),
				clientHandler.Create)
			secured.PATCH("/clients/:id",
				middleware.Authorize(authz.ActionUpdate, authz.EntityClient),
				clientHandler.Update)
			secured.DELETE("/clients/:id",
				middleware.Authorize(authz.ActionDelete, authz.EntityClient),
				clientHandler.Delete)

			// ------------------------------
			// EMPLEADOS
			// ------------------------------
			secured.GET("/employees",
				middleware.Authorize(authz.ActionRead, authz.EntityEmployee),
				employeeHandler.List)
			secured.GET("/employees/:id",
				middleware.Authorize(authz.ActionRead, authz.EntityEmployee),
				employeeHandler.Get)
			secured.POST("/employees",
				middleware.Authorize(authz.ActionCreate, authz.EntityEmployee),
				employeeHandler.Create)
			secured.PATCH("/employees/:id",
				middleware.Authorize(authz.ActionUpdate, authz.EntityEmployee),
				employeeHandler.Update)
			secured.DELETE("/employees/:id",
				middleware.Authorize(authz.ActionDelete, authz.EntityEmployee),
				employeeHandler.Delete)

			// ------------------------------
			// SERVICIOS
			// ------------------------------
			secured.GET("/services",
				middleware.Authorize(authz.ActionRead, authz.EntityService),
				serviceHandler.List)
			secured.GET("/services/:id",
				middleware.Authorize(authz.ActionRead, authz.EntityService),
				serviceHandler.Get)
			secured.POST("/services",
				middleware.Authorize(authz.ActionCreate, authz.EntityService),
				serviceHandler.Create)
			secured.PATCH("/services/:id",
				middleware.Authorize(authz.ActionUpdate, authz.EntityService),
				serviceHandler.Update)
			secured.DELETE("/services/:id",
				middleware.Authorize(authz.ActionDelete, authz.EntityService),
				serviceHandler.Delete)

			// ------------------------------
			// VEHÍCULOS
			// ------------------------------
			secured.GET("/vehicles",
				middleware.Authorize(authz.ActionRead, authz.EntityVehicle),
				vehicleHandler.List)
			secured.GET("/vehicles/:id",
				middleware.Authorize(authz.ActionRead, authz.EntityVehicle),
				vehicleHandler.Get)
			secured.POST("/vehicles",
				middleware.Authorize(authz.ActionCreate, authz.EntityVehicle),
				vehicleHandler.Create)
			secured.PATCH("/vehicles/:id",
				middleware.Authorize(authz.ActionUpdate, authz.EntityVehicle),
				vehicleHandler.Update)
			secured.DELETE("/vehicles/:id",
				middleware.Authorize(authz.ActionDelete, authz.EntityVehicle),
				vehicleHandler.Delete)

			// ------------------------------
			// REPARACIONES
			// ------------------------------
			secured.GET("/repairs",
				middleware.Authorize(authz.ActionRead, authz.EntityRepair),
				repairHandler.List)
			secured.GET("/repairs/available",
				middleware.Authorize(authz.ActionRead, authz.EntityRepair),
				repairHandler.ListAvailable)
			secured.GET("/repairs/:id",
				middleware.Authorize(authz.ActionRead, authz.EntityRepair),
				repairHandler.Get)
			secured.POST("/repairs",
				middleware.Authorize(authz.ActionCreate, authz.EntityRepair),
				repairHandler.Create)
			secured.PATCH("/repairs/:id/take",
				middleware.Authorize(authz.ActionUpdate, authz.EntityRepair),
				repairHandler.Take)
			secured.PATCH("/repairs/:id",
				middleware.Authorize(authz.ActionUpdate, authz.EntityRepair),
				repairHandler.Update)
			secured.DELETE("/repairs/:id",
				middleware.Authorize(authz.ActionDelete, authz.EntityRepair),
				repairHandler.Delete)

			// ------------------------------
			// TAREAS
			// ------------------------------
			secured.GET("/tasks",
				middleware.Authorize(authz.ActionRead, authz.EntityTask),
				taskHandler.List)
			secured.GET("/tasks/:id",
				middleware.Authorize(authz.ActionRead, authz.EntityTask),
				taskHandler.Get)
			secured.POST("/tasks",
				middleware.Authorize(authz.ActionCreate, authz.EntityTask),
				taskHandler.Create)
			secured.PATCH("/tasks/:id",
				middleware.Authorize(authz.ActionUpdate, authz.EntityTask),
				taskHandler.Update)
			secured.DELETE("/tasks/:id",
				middleware.Authorize(authz.ActionDelete, authz.EntityTask),
				taskHandler.Delete)

			// ------------------------------
			// CITAS
			// ------------------------------
			secured.GET("/appointments",
				middleware.Authorize(authz.ActionRead, authz.EntityAppointment),
				appointmentHandler.List)
			secured.GET("/appointments/:id",
				middleware.Authorize(authz.ActionRead, authz.EntityAppointment),
				appointmentHandler.Get)
			secured.POST("/appointments",
				middleware.Authorize(authz.ActionCreate, authz.EntityAppointment),
				appointmentHandler.Create)
			secured.PATCH("/appointments/:id/cancel",
				middleware.Authorize(authz.ActionUpdate, authz.EntityAppointment),
				appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete",
				middleware.Authorize(authz.ActionUpdate, authz.EntityAppointment),
				appointmentHandler.Complete)
			secured.DELETE("/appointments/:id",
				middleware.Authorize(authz.ActionDelete, authz.EntityAppointment),
				appointmentHandler.Delete)

			// ------------------------------
			// PANEL E INFORMES
			// ------------------------------
			secured.GET("/dashboard",
				middleware.Authorize(authz.ActionRead, authz.EntityReport),
				dashboardHandler.Summary)
			secured.GET("/reports/income",
				middleware.Authorize(authz.ActionRead, authz.EntityReport),
				reportHandler.Income)

			// ------------------------------
			// AUDITORÍA
			// ------------------------------
			secured.GET("/audit-logs",
				middleware.Authorize(authz.ActionRead, authz.EntityAudit),
				auditLogsHandler.List)
		}
	}
}
