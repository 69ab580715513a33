package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/config"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

const healthProbeTimeout = 2 * time.Second

// Probe checks one backing service.
type Probe func(ctx context.Context) error

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Service     string            `json:"service"`
	Environment string            `json:"environment"`
	Document    string            `json:"document"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// HealthCheck reports application health. A failing probe marks the service
// degraded but still answers 200, since reads fall back to empty tables.
func HealthCheck(cfg config.Config, probes map[string]Probe) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Document:    cfg.SheetsDocument,
		}

		if len(probes) > 0 {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthProbeTimeout)
			defer cancel()

			payload.Checks = make(map[string]string, len(probes))
			for name, probe := range probes {
				if err := probe(ctx); err != nil {
					payload.Checks[name] = err.Error()
					payload.Status = "degraded"
					continue
				}
				payload.Checks[name] = "ok"
			}
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
