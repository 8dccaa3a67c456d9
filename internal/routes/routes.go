package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/auth"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/cache"
	"github.com/BruksfildServices01/skin-clinic/internal/config"
	"github.com/BruksfildServices01/skin-clinic/internal/handlers"
	infraRepo "github.com/BruksfildServices01/skin-clinic/internal/infra/repository"
	"github.com/BruksfildServices01/skin-clinic/internal/middleware"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/skin-clinic/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/skin-clinic/internal/usecase/catalog"
	ucPOS "github.com/BruksfildServices01/skin-clinic/internal/usecase/pos"
	ucTracking "github.com/BruksfildServices01/skin-clinic/internal/usecase/tracking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	store cache.Cache,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// INFRA
	// ======================================================
	loc := timezone.Location(cfg.Timezone)
	jwt := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLMin)*time.Minute)

	tx := infraRepo.NewGormTransactor(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	trackingRepo := infraRepo.NewTrackingGormRepository(db)
	posRepo := infraRepo.NewPOSGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	activeCatalog := ucCatalog.NewActiveCatalog(catalogRepo, store, time.Duration(cfg.CacheTTLSec)*time.Second)
	packagesUC := ucCatalog.NewPackages(catalogRepo, tx, activeCatalog, auditDispatcher)

	tracker := ucTracking.NewTracker(trackingRepo, auditDispatcher)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, tx, auditDispatcher)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(appointmentRepo, tx, tracker, auditDispatcher, loc)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(appointmentRepo, tx, auditDispatcher)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	slotsUC := ucAppointment.NewGetAvailability(appointmentRepo)

	assignPackageUC := ucTracking.NewAssignPackage(trackingRepo, auditDispatcher, loc)
	startSessionUC := ucTracking.NewStartServiceSession(trackingRepo, auditDispatcher, loc)
	countersUC := ucTracking.NewCounters(trackingRepo, tx, auditDispatcher, loc)
	profileUC := ucTracking.NewClientProfile(trackingRepo, activeCatalog)

	listOrdersUC := ucPOS.NewListOrders(posRepo)
	createOrderUC := ucPOS.NewCreateOrder(posRepo, tx, auditDispatcher)
	paymentUC := ucPOS.NewUpdatePayment(posRepo, tx, auditDispatcher)
	itemsUC := ucPOS.NewOrderItems(posRepo, tx, auditDispatcher)
	exportUC := ucPOS.NewExportSales(listOrdersUC)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, jwt, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)

	serviceHandler := handlers.NewServiceHandler(db, activeCatalog, auditDispatcher)
	staffHandler := handlers.NewStaffHandler(db, slotsUC, auditDispatcher)
	productHandler := handlers.NewProductHandler(db, auditDispatcher, cfg.LowStockThreshold)
	packageHandler := handlers.NewPackageHandler(packagesUC)
	clientHandler := handlers.NewClientHandler(db, profileUC, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		rescheduleUC,
		listByDateUC,
		listByMonthUC,
		getAppointmentUC,
	)
	trackingHandler := handlers.NewTrackingHandler(assignPackageUC, startSessionUC, countersUC)
	orderHandler := handlers.NewOrderHandler(createOrderUC, paymentUC, listOrdersUC, itemsUC, exportUC, loc)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, loc)

	perm := middleware.RequirePermission

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(jwt))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// USERS
			// ------------------------------
			secured.GET("/users", perm(authz.PermUsersManage), authHandler.ListUsers)
			secured.POST("/users", perm(authz.PermUsersManage), authHandler.CreateUser)

			// ------------------------------
			// CATALOG
			// ------------------------------
			read := perm(authz.PermCatalogRead)
			write := perm(authz.PermCatalogWrite)
			staff := perm(authz.PermStaffManage)

			secured.GET("/services", read, serviceHandler.List)
			secured.GET("/services/:id", read, serviceHandler.Get)
			secured.POST("/services", write, serviceHandler.Create)
			secured.PATCH("/services/:id", write, serviceHandler.Update)
			secured.DELETE("/services/:id", write, serviceHandler.Delete)

			secured.GET("/staff", read, staffHandler.List)
			secured.GET("/staff/:id", read, staffHandler.Get)
			secured.POST("/staff", staff, staffHandler.Create)
			secured.PUT("/staff/:id", staff, staffHandler.Update)
			secured.DELETE("/staff/:id", staff, staffHandler.Delete)
			secured.GET("/staff/:id/availability", read, staffHandler.GetAvailability)
			secured.PUT("/staff/:id/availability", staff, staffHandler.UpdateAvailability)
			secured.GET("/staff/:id/availability/slots", perm(authz.PermSchedule), staffHandler.Slots)

			secured.GET("/products", read, productHandler.List)
			secured.GET("/products/low-stock", read, productHandler.LowStock)
			secured.GET("/products/:id", read, productHandler.Get)
			secured.POST("/products", write, productHandler.Create)
			secured.PATCH("/products/:id", write, productHandler.Update)
			secured.DELETE("/products/:id", write, productHandler.Delete)

			secured.GET("/packages", read, packageHandler.List)
			secured.GET("/packages/:id", read, packageHandler.Get)
			secured.POST("/packages", write, packageHandler.Create)
			secured.PUT("/packages/:id", write, packageHandler.Update)
			secured.DELETE("/packages/:id", write, packageHandler.Delete)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			clients := perm(authz.PermClientsManage)

			secured.GET("/clients", clients, clientHandler.List)
			secured.GET("/clients/:id", clients, clientHandler.Get)
			secured.POST("/clients", clients, clientHandler.Create)
			secured.PUT("/clients/:id", clients, clientHandler.Update)
			secured.DELETE("/clients/:id", clients, clientHandler.Delete)
			secured.GET("/clients/:id/profile", clients, clientHandler.Profile)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			schedule := perm(authz.PermSchedule)

			secured.POST("/appointments", schedule, appointmentHandler.Create)
			secured.GET("/appointments", schedule, appointmentHandler.ListByDate)
			secured.GET("/appointments/month", schedule, appointmentHandler.ListByMonth)
			secured.GET("/appointments/:id", schedule, appointmentHandler.Get)
			secured.PATCH("/appointments/:id/status", schedule, appointmentHandler.UpdateStatus)
			secured.PATCH("/appointments/:id/reschedule", schedule, appointmentHandler.Reschedule)

			// ------------------------------
			// TREATMENT TRACKING
			// ------------------------------
			tracking := perm(authz.PermTracking)

			secured.POST("/clients/:id/packages", tracking, trackingHandler.AssignPackage)
			secured.POST("/clients/:id/service-sessions", tracking, trackingHandler.StartServiceSession)

			secured.POST("/client-packages/:id/sessions", tracking, trackingHandler.AddSession(ucTracking.KindPackage))
			secured.PATCH("/client-packages/:id/sessions", tracking, trackingHandler.Adjust(ucTracking.KindPackage))
			secured.DELETE("/client-packages/:id", tracking, trackingHandler.Delete(ucTracking.KindPackage))

			secured.POST("/service-sessions/:id/sessions", tracking, trackingHandler.AddSession(ucTracking.KindServiceSession))
			secured.PATCH("/service-sessions/:id/sessions", tracking, trackingHandler.Adjust(ucTracking.KindServiceSession))
			secured.DELETE("/service-sessions/:id", tracking, trackingHandler.Delete(ucTracking.KindServiceSession))

			// ------------------------------
			// POS
			// ------------------------------
			pos := perm(authz.PermPOS)

			secured.POST("/orders", pos, orderHandler.Create)
			secured.GET("/orders", pos, orderHandler.List)
			secured.GET("/orders/export", pos, orderHandler.Export)
			secured.GET("/orders/:id", pos, orderHandler.Get)
			secured.PATCH("/orders/:id/payment", pos, orderHandler.UpdatePayment)
			secured.POST("/orders/:id/items", pos, orderHandler.AddItem)
			secured.PATCH("/orders/:id/items/:itemId", pos, orderHandler.UpdateItem)
			secured.DELETE("/orders/:id/items/:itemId", pos, orderHandler.RemoveItem)

			// ------------------------------
			// AUDIT
			// ------------------------------
			secured.GET("/audit-logs", perm(authz.PermAuditRead), auditLogsHandler.List)
		}
	}
}
