package routes

import (
	"time"

	"assurgest/internal/adapters/http/handlers"
	"assurgest/internal/adapters/http/middleware"
	"assurgest/internal/config"
	"assurgest/internal/core/access"
	"assurgest/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// referenceCacheAge bounds how long clients cache reference data
const referenceCacheAge = 10 * time.Minute

// Options carries what the routes need besides the services
type Options struct {
	Gate     *access.Gate
	Gatherer prometheus.Gatherer
	Checks   map[string]handlers.Pinger
}

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *services.Services, cfg *config.Config, opts Options) {
	gate := opts.Gate

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, opts.Checks)
	authHandler := handlers.NewAuthHandler(svc.Auth, gate, cfg)
	userHandler := handlers.NewUserHandler(svc.Users)
	referenceHandler := handlers.NewReferenceHandler(svc.References)
	clientHandler := handlers.NewClientHandler(svc.Clients)
	contractHandler := handlers.NewContractHandler(svc.Contracts, svc.Premiums)
	claimHandler := handlers.NewClaimHandler(svc.Claims, svc.Indemnifications)
	folderHandler := handlers.NewFolderHandler(svc.Folders)
	indemnificationHandler := handlers.NewIndemnificationHandler(svc.Indemnifications)
	premiumHandler := handlers.NewPremiumHandler(svc.Premiums)
	vehicleHandler := handlers.NewVehicleHandler(svc.Vehicles)
	documentHandler := handlers.NewDocumentHandler(svc.Documents)
	bankHandler := handlers.NewBankHandler(svc.Reconciliation)
	historyHandler := handlers.NewHistoryHandler(svc.History)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	// Auth routes
	setupAuthRoutes(api.Group("/auth"), authHandler, svc.Auth)

	// Everything below requires a valid access token
	protected := api.Group("", middleware.AuthMiddleware(svc.Auth), middleware.NoCacheHeaders())

	setupProfileRoutes(protected.Group("/profile"), userHandler)
	setupUserRoutes(protected.Group("/users"), userHandler, gate)
	setupRoleRoutes(protected.Group("/roles"), userHandler, gate)
	setupReferenceRoutes(protected, referenceHandler, gate)
	setupClientRoutes(protected.Group("/clients"), clientHandler, gate)
	setupContractRoutes(protected.Group("/contrats"), contractHandler, gate)
	setupClaimRoutes(protected.Group("/sinistres"), claimHandler, gate)
	setupFolderRoutes(protected, folderHandler, gate)
	setupIndemnificationRoutes(protected.Group("/indemnisations"), indemnificationHandler, gate)
	setupPremiumRoutes(protected.Group("/primes"), premiumHandler, gate)
	setupVehicleRoutes(protected.Group("/vehicules"), vehicleHandler, gate)
	setupDocumentRoutes(protected.Group("/documents"), documentHandler, gate)
	setupBankRoutes(protected.Group("/transactions-bancaires"), bankHandler, gate)

	protected.Get("/historique", middleware.Require(gate, access.HistoryRead), historyHandler.List)
	protected.Get("/historique/:entity/:id", middleware.Require(gate, access.HistoryRead), historyHandler.Timeline)
	protected.Get("/dashboard", middleware.Require(gate, access.DashboardRead), dashboardHandler.GetOverview)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, validator middleware.TokenValidator) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/ask", middleware.AuthRateLimiter(), handler.RequestAccess)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", middleware.OptionalAuth(validator), handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(validator), handler.Me)
	router.Get("/sessions", middleware.AuthMiddleware(validator), handler.Sessions)
	router.Post("/logout-all", middleware.AuthMiddleware(validator), handler.LogoutAll)
	router.Put("/password", middleware.AuthMiddleware(validator), handler.ChangePassword)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, gate *access.Gate) {
	router.Use(middleware.Require(gate, access.UserManage))
	router.Get("/", handler.ListUsers)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
}

func setupRoleRoutes(router fiber.Router, handler *handlers.UserHandler, gate *access.Gate) {
	router.Use(middleware.Require(gate, access.RoleManage))
	router.Get("/", handler.ListRoles)
	router.Post("/", handler.CreateRole)
	router.Put("/:id", handler.UpdateRole)
	router.Delete("/:id", handler.DeleteRole)
}

// setupReferenceRoutes configures insurance types, companies and folder states
func setupReferenceRoutes(router fiber.Router, handler *handlers.ReferenceHandler, gate *access.Gate) {
	read := []fiber.Handler{middleware.Require(gate, access.ReferenceRead), middleware.CacheControl(referenceCacheAge)}
	write := middleware.Require(gate, access.ReferenceWrite)

	router.Get("/types-assurance", append(read, handler.ListInsuranceTypes)...)
	router.Post("/types-assurance", write, handler.CreateInsuranceType)
	router.Put("/types-assurance/:id", write, handler.UpdateInsuranceType)
	router.Delete("/types-assurance/:id", write, handler.DeleteInsuranceType)

	router.Get("/compagnies", append(read, handler.ListCompanies)...)
	router.Post("/compagnies", write, handler.CreateCompany)
	router.Put("/compagnies/:id", write, handler.UpdateCompany)
	router.Delete("/compagnies/:id", write, handler.DeleteCompany)

	router.Get("/etats-dossier", append(read, handler.ListFolderStates)...)
	router.Post("/etats-dossier", write, handler.CreateFolderState)
	router.Delete("/etats-dossier/:id", write, handler.DeleteFolderState)
}

func setupClientRoutes(router fiber.Router, handler *handlers.ClientHandler, gate *access.Gate) {
	router.Get("/", middleware.Require(gate, access.ClientRead), handler.List)
	router.Get("/:id", middleware.Require(gate, access.ClientRead), handler.Get)
	router.Post("/", middleware.Require(gate, access.ClientWrite), handler.Create)
	router.Put("/:id", middleware.Require(gate, access.ClientWrite), handler.Update)
	router.Delete("/:id", middleware.Require(gate, access.ClientDelete), handler.Delete)
}

func setupContractRoutes(router fiber.Router, handler *handlers.ContractHandler, gate *access.Gate) {
	router.Get("/", middleware.Require(gate, access.ContractRead), handler.List)
	router.Get("/:id", middleware.Require(gate, access.ContractRead), handler.Get)
	router.Get("/:id/primes", middleware.Require(gate, access.PremiumRead), handler.ListPremiums)
	router.Post("/", middleware.Require(gate, access.ContractCreate), handler.Create)
	router.Put("/:id", middleware.Require(gate, access.ContractUpdate), handler.Update)
	router.Post("/:id/renouveler", middleware.Require(gate, access.ContractRenew), handler.Renew)
	router.Post("/:id/annuler", middleware.Require(gate, access.ContractCancel), handler.Cancel)
	router.Delete("/:id", middleware.Require(gate, access.ContractDelete), handler.Delete)
}

func setupClaimRoutes(router fiber.Router, handler *handlers.ClaimHandler, gate *access.Gate) {
	router.Get("/", middleware.Require(gate, access.ClaimRead), handler.List)
	router.Get("/:id", middleware.Require(gate, access.ClaimRead), handler.Get)
	router.Get("/:id/indemnisations", middleware.Require(gate, access.IndemnificationRead), handler.ListIndemnifications)
	router.Post("/", middleware.Require(gate, access.ClaimCreate), handler.Create)
	router.Put("/:id", middleware.Require(gate, access.ClaimUpdate), handler.Update)
	router.Delete("/:id", middleware.Require(gate, access.ClaimDelete), handler.Delete)
}

func setupFolderRoutes(router fiber.Router, handler *handlers.FolderHandler, gate *access.Gate) {
	folders := router.Group("/dossiers")
	folders.Get("/", middleware.Require(gate, access.FolderRead), handler.List)
	folders.Get("/:id", middleware.Require(gate, access.FolderRead), handler.Get)
	folders.Post("/", middleware.Require(gate, access.FolderWrite), handler.Create)
	folders.Put("/:id", middleware.Require(gate, access.FolderWrite), handler.Update)
	folders.Post("/:id/archiver", middleware.Require(gate, access.FolderArchive), handler.Archive)

	archives := router.Group("/archives", middleware.Require(gate, access.ArchiveRead))
	archives.Get("/", handler.ListArchives)
	archives.Get("/:id", handler.GetArchive)
}

func setupIndemnificationRoutes(router fiber.Router, handler *handlers.IndemnificationHandler, gate *access.Gate) {
	router.Get("/", middleware.Require(gate, access.IndemnificationRead), handler.List)
	router.Get("/:id", middleware.Require(gate, access.IndemnificationRead), handler.Get)
	router.Post("/", middleware.Require(gate, access.IndemnificationPropose), handler.Propose)
	router.Post("/:id/valider", middleware.Require(gate, access.IndemnificationValidate), handler.Validate)
	router.Post("/:id/payer", middleware.Require(gate, access.IndemnificationPay), handler.Pay)
}

func setupPremiumRoutes(router fiber.Router, handler *handlers.PremiumHandler, gate *access.Gate) {
	router.Get("/", middleware.Require(gate, access.PremiumRead), handler.List)
	router.Get("/:id", middleware.Require(gate, access.PremiumRead), handler.Get)
	router.Post("/", middleware.Require(gate, access.PremiumCreate), handler.GenerateDueNotice)
	router.Post("/:id/payer", middleware.Require(gate, access.PremiumPay), handler.Pay)
}

func setupVehicleRoutes(router fiber.Router, handler *handlers.VehicleHandler, gate *access.Gate) {
	router.Get("/", middleware.Require(gate, access.VehicleRead), handler.List)
	router.Get("/:plate", middleware.Require(gate, access.VehicleRead), handler.Get)
	router.Post("/", middleware.Require(gate, access.VehicleWrite), handler.Create)
	router.Put("/:plate", middleware.Require(gate, access.VehicleWrite), handler.Update)
	router.Delete("/:plate", middleware.Require(gate, access.VehicleWrite), handler.Delete)
}

func setupDocumentRoutes(router fiber.Router, handler *handlers.DocumentHandler, gate *access.Gate) {
	router.Get("/", middleware.Require(gate, access.DocumentRead), handler.ListByOwner)
	router.Get("/:id", middleware.Require(gate, access.DocumentRead), handler.Get)
	router.Get("/:id/telechargement", middleware.Require(gate, access.DocumentRead), handler.Download)
	router.Post("/", middleware.Require(gate, access.DocumentUpload), handler.Upload)
	router.Delete("/:id", middleware.Require(gate, access.DocumentDelete), handler.Delete)
}

func setupBankRoutes(router fiber.Router, handler *handlers.BankHandler, gate *access.Gate) {
	router.Get("/", middleware.Require(gate, access.BankRead), handler.List)
	router.Get("/:id", middleware.Require(gate, access.BankRead), handler.Get)
	router.Post("/", middleware.Require(gate, access.BankImport), handler.Import)
	router.Post("/:id/rapprocher", middleware.Require(gate, access.BankReconcile), handler.Reconcile)
}
