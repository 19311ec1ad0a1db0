package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/application/servicing"
	"github.com/jhoicas/lubricentro-api/internal/application/usecase"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
	"github.com/jhoicas/lubricentro-api/internal/infrastructure/memory"
	"github.com/jhoicas/lubricentro-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/lubricentro-api/internal/interfaces/http"
	"github.com/jhoicas/lubricentro-api/pkg/config"
	"github.com/jhoicas/lubricentro-api/pkg/logger"
)

// txRunner transacciones del agregado Service y de la configuración en lote.
type txRunner interface {
	servicing.TxRunner
	usecase.SettingTxRunner
}

// storage repositorios del driver elegido por DB_DRIVER.
type storage struct {
	users        repository.UserRepository
	sessions     repository.SessionRepository
	clients      repository.ClientRepository
	vehicles     repository.VehicleRepository
	employees    repository.EmployeeRepository
	branches     repository.BranchRepository
	serviceTypes repository.ServiceTypeRepository
	settings     repository.SettingRepository
	services     repository.ServiceQueryRepository
	tx           txRunner
	db           httpRouter.Pinger
	close        func()
}

func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			users:        store.Users(),
			sessions:     store.Sessions(),
			clients:      store.Clients(),
			vehicles:     store.Vehicles(),
			employees:    store.Employees(),
			branches:     store.Branches(),
			serviceTypes: store.ServiceTypes(),
			settings:     store.Settings(),
			services:     store.Services(),
			tx:           store,
			db:           store,
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}

	sessions := postgres.NewSessionRepository(pool)
	if n, err := sessions.DeleteExpired(ctx, time.Now()); err != nil {
		log.Warn().Err(err).Msg("purga de sesiones vencidas")
	} else if n > 0 {
		log.Info().Int64("sesiones", n).Msg("sesiones vencidas eliminadas")
	}

	return &storage{
		users:        postgres.NewUserRepository(pool),
		sessions:     sessions,
		clients:      postgres.NewClientRepository(pool),
		vehicles:     postgres.NewVehicleRepository(pool),
		employees:    postgres.NewEmployeeRepository(pool),
		branches:     postgres.NewBranchRepository(pool),
		serviceTypes: postgres.NewServiceTypeRepository(pool),
		settings:     postgres.NewSettingRepository(pool),
		services:     postgres.NewServiceQueryRepository(pool),
		tx:           postgres.NewTxRunner(pool),
		db:           pool,
		close:        pool.Close,
	}, nil
}
