package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/lubricentro-api/internal/application/auth"
	"github.com/jhoicas/lubricentro-api/internal/application/servicing"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// RateLimits límites por IP dentro de Window. LoginMax aplica solo a /auth/login.
type RateLimits struct {
	Max      int
	LoginMax int
	Window   time.Duration
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ClientUC      *usecase.ClientUseCase
	VehicleUC     *usecase.VehicleUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	BranchUC      *usecase.BranchUseCase
	ServiceTypeUC *usecase.ServiceTypeUseCase
	SettingUC     *usecase.SettingUseCase
	ServiceUC     *servicing.ServiceUseCase
	WorkOrderUC   *servicing.WorkOrderUseCase

	DB             Pinger
	Env            string
	StartedAt      time.Time
	AllowedOrigins []string
	RateLimit      RateLimits
	// Metrics opcional; si es nil no se expone /metrics.
	Metrics *Metrics
}

// Router registra middlewares y rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger())
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Use(helmet.New())
	app.Use(corsMiddleware(deps.AllowedOrigins))

	api := app.Group("/api")
	if deps.RateLimit.Max > 0 {
		api.Use(rateLimiter(deps.RateLimit.Max, deps.RateLimit.Window))
	}

	health := NewHealthHandler(deps.DB, deps.Env, deps.StartedAt)
	api.Get("/health", health.Check)

	requireAuth := AuthMiddleware(deps.AuthUC)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	if deps.RateLimit.LoginMax > 0 {
		authGroup.Post("/login", rateLimiter(deps.RateLimit.LoginMax, deps.RateLimit.Window), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Get("/verify", requireAuth, authHandler.Verify)
	authGroup.Post("/change-password", requireAuth, authHandler.ChangePassword)
	authGroup.Post("/register", requireAuth, adminOnly, authHandler.Register)

	// Usuarios (solo ADMIN)
	users := api.Group("/users", requireAuth, adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	clients := api.Group("/clientes", requireAuth)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Post("/", clientHandler.Create)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	vehicles := api.Group("/vehiculos", requireAuth)
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/cliente/:clienteId", vehicleHandler.ByClient)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Patch("/:id/kilometraje", vehicleHandler.UpdateMileage)
	vehicles.Delete("/:id", vehicleHandler.Delete)

	// Servicios: las rutas fijas van antes de /:id.
	services := api.Group("/servicios", requireAuth)
	serviceHandler := NewServiceHandler(deps.ServiceUC, deps.WorkOrderUC)
	services.Get("/", serviceHandler.List)
	services.Get("/estadisticas", serviceHandler.Stats)
	services.Get("/cliente/:clienteId", serviceHandler.ByClient)
	services.Get("/vehiculo/:patente", serviceHandler.ByPatente)
	services.Get("/:id/pdf", serviceHandler.WorkOrder)
	services.Get("/:id", serviceHandler.GetByID)
	services.Post("/", serviceHandler.Create)
	services.Put("/:id", serviceHandler.Update)
	services.Delete("/:id", serviceHandler.Delete)

	employees := api.Group("/empleados", requireAuth)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Get("/activos", employeeHandler.ListActive)
	employees.Get("/sucursal/:sucursalId", employeeHandler.ByBranch)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Post("/", employeeHandler.Create)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	branches := api.Group("/sucursales", requireAuth)
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/activas", branchHandler.ListActive)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", branchHandler.Create)
	branches.Put("/:id", branchHandler.Update)
	branches.Delete("/:id", branchHandler.Delete)

	serviceTypes := api.Group("/tipos-servicios", requireAuth)
	serviceTypeHandler := NewServiceTypeHandler(deps.ServiceTypeUC)
	serviceTypes.Get("/", serviceTypeHandler.List)
	serviceTypes.Get("/search", serviceTypeHandler.Search)
	serviceTypes.Get("/:id", serviceTypeHandler.GetByID)
	serviceTypes.Post("/", serviceTypeHandler.Create)
	serviceTypes.Put("/:id", serviceTypeHandler.Update)
	serviceTypes.Delete("/:id", serviceTypeHandler.Delete)

	// Configuración (solo ADMIN)
	settings := api.Group("/configuracion", requireAuth, adminOnly)
	settingHandler := NewSettingHandler(deps.SettingUC)
	settings.Get("/", settingHandler.List)
	settings.Get("/categoria/:categoria", settingHandler.ByCategory)
	settings.Post("/", settingHandler.Create)
	settings.Put("/", settingHandler.BulkUpsert)
	settings.Delete("/:id", settingHandler.Delete)
}

// rateLimiter límite por IP; al superarlo el ErrorHandler responde 429 RATE_LIMIT_EXCEEDED.
func rateLimiter(limit int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.ErrTooManyRequests
		},
	})
}

// corsMiddleware permite credenciales solo con una lista explícita de orígenes.
func corsMiddleware(origins []string) fiber.Handler {
	allow := strings.Join(origins, ",")
	wildcard := allow == ""
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	if wildcard {
		allow = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: !wildcard,
	})
}
