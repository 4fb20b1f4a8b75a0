package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/calendar"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domaincaixa "github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucCaixa "github.com/BruksfildServices01/salon-scheduler/internal/usecase/caixa"
	ucComanda "github.com/BruksfildServices01/salon-scheduler/internal/usecase/comanda"
)

// Deps são os singletons montados no main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics // nil: métricas desligadas
	Audit   *audit.Dispatcher
	Archive ucCaixa.Archiver // nil: sem arquivamento
	Cache   calendar.Cache
}

func RegisterRoutes(r *gin.Engine, d Deps) error {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	r.Use(middleware.CORSMiddleware(d.Config.AllowedOrigins()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	caixaRepo := infraRepo.NewCaixaGormRepository(d.DB)
	comandaRepo := infraRepo.NewComandaGormRepository(d.DB)

	warn, crit, err := d.Config.CashThresholds()
	if err != nil {
		return err
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	appointmentDeps := ucAppointment.Deps{
		Repo:     appointmentRepo,
		Audit:    d.Audit,
		Calendar: d.Cache,
		Metrics:  d.Metrics,
		Log:      d.Log,
	}

	caixaDeps := ucCaixa.Deps{
		Repo:       caixaRepo,
		Audit:      d.Audit,
		Archive:    d.Archive,
		Metrics:    d.Metrics,
		Log:        d.Log,
		Thresholds: domaincaixa.Thresholds{Warning: warn, Critical: crit},
	}

	comandaDeps := ucComanda.Deps{
		Repo:    comandaRepo,
		Audit:   d.Audit,
		Metrics: d.Metrics,
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(appointmentDeps, d.Config.SlotGranularityMin)

	calendarSvc := calendar.NewService(
		appointmentHandler.ListUseCase(),
		appointmentRepo,
		d.Cache,
		d.Metrics,
		d.Log,
	)
	calendarHandler := handlers.NewCalendarHandler(calendarSvc)

	caixaHandler := handlers.NewCaixaHandler(caixaDeps)
	comandaHandler := handlers.NewComandaHandler(comandaDeps)

	salonHandler := handlers.NewSalonHandler(store.NewGorm[models.Salon](d.DB))
	clientHandler := handlers.NewClientHandler(store.NewGorm[models.Client](d.DB))
	serviceHandler := handlers.NewServiceHandler(store.NewGorm[models.Service](d.DB))
	professionalHandler := handlers.NewProfessionalHandler(
		store.NewGorm[models.Professional](d.DB),
		appointmentDeps,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(store.NewGorm[models.AuditLog](d.DB))

	// ======================================================
	// 🔐 API PRIVADA
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
	{
		api.GET("/me", salonHandler.Me)
		api.GET("/salon", salonHandler.Get)
		api.PATCH("/salon", salonHandler.Update)

		api.GET("/clients", clientHandler.List)
		api.GET("/clients/:id", clientHandler.Get)
		api.POST("/clients", clientHandler.Create)

		api.GET("/services", serviceHandler.List)
		api.POST("/services", serviceHandler.Create)
		api.PATCH("/services/:id", serviceHandler.Update)

		api.GET("/professionals", professionalHandler.List)
		api.POST("/professionals", professionalHandler.Create)
		api.GET("/professionals/:id/working-hours", professionalHandler.GetWorkingHours)
		api.PUT("/professionals/:id/working-hours", professionalHandler.UpdateWorkingHours)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/availability", appointmentHandler.Availability)
		api.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		api.PATCH("/appointments/:id/status", appointmentHandler.Transition)

		api.GET("/calendar", calendarHandler.Month)
		api.POST("/calendar/invalidate", calendarHandler.Invalidate)

		// ------------------------------
		// CAIXA
		// ------------------------------
		api.POST("/caixa/open", caixaHandler.Open)
		api.GET("/caixa/current", caixaHandler.Current)
		api.POST("/caixa/:id/movements", caixaHandler.RecordMovement)
		api.POST("/caixa/:id/close", caixaHandler.Close)
		api.GET("/caixa/:id/balance", caixaHandler.Balance)

		api.POST("/comandas", comandaHandler.Create)
		api.POST("/comandas/:id/pay", comandaHandler.Pay)

		api.GET("/audit-logs", auditLogsHandler.List)
	}

	return nil
}
