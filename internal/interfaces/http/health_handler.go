package http

import (
	"context"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
)

// Pinger verifica la conexión al almacenamiento. Lo implementan *pgxpool.Pool y el store en memoria.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler estado del proceso y de la base de datos.
type HealthHandler struct {
	db      Pinger
	env     string
	started time.Time
}

// NewHealthHandler construye el handler; started marca el inicio del uptime.
func NewHealthHandler(db Pinger, env string, started time.Time) *HealthHandler {
	return &HealthHandler{db: db, env: env, started: started}
}

// Check godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	out := dto.HealthResponse{
		Status:        "ok",
		Environment:   h.env,
		UptimeSeconds: time.Since(h.started).Seconds(),
		Database:      "connected",
		Memory:        memoryStatus(),
	}
	status := fiber.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		out.Status = "degraded"
		out.Database = "disconnected"
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(out)
}

func memoryStatus() dto.MemoryStatus {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	const mb = 1024 * 1024
	return dto.MemoryStatus{
		AllocMB:     float64(m.Alloc) / mb,
		HeapInUseMB: float64(m.HeapInuse) / mb,
		SysMB:       float64(m.Sys) / mb,
		Goroutines:  runtime.NumGoroutine(),
	}
}
