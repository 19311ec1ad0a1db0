package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/jhoicas/lubricentro-api/docs"
	"github.com/jhoicas/lubricentro-api/internal/application/auth"
	"github.com/jhoicas/lubricentro-api/internal/application/servicing"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/lubricentro-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/lubricentro-api/internal/interfaces/http"
	"github.com/jhoicas/lubricentro-api/pkg/config"
	"github.com/jhoicas/lubricentro-api/pkg/logger"
)

// @title           Lubricentro API
// @version         1.0
// @description     Gestión de clientes, vehículos, empleados, sucursales y servicios de un lubricentro.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	hasher := auth.NewHasher(cfg.Security.BcryptCost)
	authUC, err := auth.NewAuthUseCase(store.users, store.sessions, hasher, auth.Config{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar auth")
	}

	serviceUC := servicing.NewServiceUseCase(store.tx, store.services, servicing.References{
		Clients:      store.clients,
		Vehicles:     store.vehicles,
		Branches:     store.branches,
		ServiceTypes: store.serviceTypes,
		Employees:    store.employees,
	})
	// PDF: orden de trabajo imprimible de cada servicio
	workOrderUC := servicing.NewWorkOrderUseCase(store.services, infrapdf.NewWorkOrderRenderer(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler(cfg.App.IsDevelopment()),
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
		Title:    "Lubricentro API",
	}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(store.users, store.sessions, hasher),
		ClientUC:       usecase.NewClientUseCase(store.clients, store.vehicles),
		VehicleUC:      usecase.NewVehicleUseCase(store.vehicles, store.clients),
		EmployeeUC:     usecase.NewEmployeeUseCase(store.employees, store.branches),
		BranchUC:       usecase.NewBranchUseCase(store.branches),
		ServiceTypeUC:  usecase.NewServiceTypeUseCase(store.serviceTypes),
		SettingUC:      usecase.NewSettingUseCase(store.settings, store.tx),
		ServiceUC:      serviceUC,
		WorkOrderUC:    workOrderUC,
		DB:             store.db,
		Env:            cfg.App.Env,
		StartedAt:      time.Now(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:      httpRouter.RateLimits{
			Max:      cfg.RateLimit.Max,
			LoginMax: cfg.RateLimit.LoginMax,
			Window:   cfg.RateLimit.Window,
		},
		Metrics: httpRouter.NewMetrics(reg),
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

	log.Info().Msg("aplicación detenida")
}
