package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	"github.com/lmiguelviana/pet-connect-sub000/internal/config"
	"github.com/lmiguelviana/pet-connect-sub000/internal/handlers"
	infraRepo "github.com/lmiguelviana/pet-connect-sub000/internal/infra/repository"
	"github.com/lmiguelviana/pet-connect-sub000/internal/middleware"
	"github.com/lmiguelviana/pet-connect-sub000/internal/storage"
	ucAppointment "github.com/lmiguelviana/pet-connect-sub000/internal/usecase/appointment"
	ucLedger "github.com/lmiguelviana/pet-connect-sub000/internal/usecase/ledger"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	ledgerRepo := infraRepo.NewLedgerGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	photoStore := storage.NewPhotoStore(cfg)

	// Página pública: 30 requisições por minuto por IP
	publicLimiter := middleware.NewRateLimiter(rdb, 30, time.Minute, log)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	bookPublicUC := ucAppointment.NewBookPublicAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	startAppointmentUC := ucAppointment.NewStartAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		ledgerRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	noShowUC := ucAppointment.NewMarkNoShow(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// 🧠 USE CASES — LEDGER
	// ======================================================
	createTransferUC := ucLedger.NewCreateTransfer(ledgerRepo, auditDispatcher, log)
	updateTransferUC := ucLedger.NewUpdateTransfer(ledgerRepo, auditDispatcher, log)
	deleteTransferUC := ucLedger.NewDeleteTransfer(ledgerRepo, auditDispatcher, log)

	createTransactionUC := ucLedger.NewCreateTransaction(ledgerRepo, auditDispatcher, log)
	deleteTransactionUC := ucLedger.NewDeleteTransaction(ledgerRepo, auditDispatcher, log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	petshopHandler := handlers.NewPetshopHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	petHandler := handlers.NewPetHandler(db, photoStore)
	serviceHandler := handlers.NewServiceHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		availabilityUC,
		confirmAppointmentUC,
		startAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		noShowUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	accountHandler := handlers.NewAccountHandler(db, ledgerRepo)
	categoryHandler := handlers.NewCategoryHandler(db)
	transactionHandler := handlers.NewTransactionHandler(db, createTransactionUC, deleteTransactionUC)
	transferHandler := handlers.NewTransferHandler(db, createTransferUC, updateTransferUC, deleteTransferUC)

	dashboardHandler := handlers.NewDashboardHandler(db)
	exportHandler := handlers.NewExportHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, bookPublicUC, availabilityUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(publicLimiter.Middleware())
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.Book)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/petshop", petshopHandler.GetMePetshop)
			secured.PATCH("/me/petshop", petshopHandler.UpdateMePetshop)

			// ------------------------------
			// CLIENTS & PETS
			// ------------------------------
			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.DELETE("/me/clients/:id", clientHandler.Archive)

			secured.GET("/me/pets", petHandler.List)
			secured.POST("/me/pets", petHandler.Create)
			secured.PATCH("/me/pets/:id", petHandler.Update)
			secured.POST("/me/pets/:id/photo", petHandler.UploadPhoto)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/availability", appointmentHandler.Availability)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/start", appointmentHandler.Start)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			// ------------------------------
			// FINANCES
			// ------------------------------
			secured.GET("/me/accounts", accountHandler.List)
			secured.POST("/me/accounts", accountHandler.Create)
			secured.PATCH("/me/accounts/:id", accountHandler.Update)
			secured.DELETE("/me/accounts/:id", accountHandler.Archive)
			secured.GET("/me/accounts/:id/balance", accountHandler.Balance)

			secured.GET("/me/categories", categoryHandler.List)
			secured.POST("/me/categories", categoryHandler.Create)
			secured.PATCH("/me/categories/:id", categoryHandler.Update)
			secured.DELETE("/me/categories/:id", categoryHandler.Archive)

			secured.GET("/me/transactions", transactionHandler.List)
			secured.POST("/me/transactions", transactionHandler.Create)
			secured.DELETE("/me/transactions/:id", transactionHandler.Delete)

			secured.GET("/me/transfers", transferHandler.List)
			secured.POST("/me/transfers", transferHandler.Create)
			secured.PATCH("/me/transfers/:id", transferHandler.Update)
			secured.DELETE("/me/transfers/:id", transferHandler.Delete)

			// ------------------------------
			// DASHBOARD & EXPORTS
			// ------------------------------
			secured.GET("/me/dashboard", dashboardHandler.Summary)
			secured.GET("/me/exports/transactions", exportHandler.Transactions)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
