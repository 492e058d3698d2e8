package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/reference-data-service/pkg/util"
)

const readinessTimeout = 2 * time.Second

// Dependency is a backing service probed by the readiness check.
type Dependency interface {
	Configured() bool
	Ping(ctx context.Context) error
}

type probe struct {
	name         string
	dep          Dependency
	unconfigured string
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	probes      []probe
}

// NewHealthHandler returns a handler with no dependencies to probe.
func NewHealthHandler(serviceName, version string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version}
}

// WithDependency registers a probe. A dependency that is switched off reports
// unconfigured (e.g. "memory" for the store) and does not affect readiness.
func (h *HealthHandler) WithDependency(name string, dep Dependency, unconfigured string) *HealthHandler {
	h.probes = append(h.probes, probe{name: name, dep: dep, unconfigured: unconfigured})
	return h
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready GET /health/ready. Answers 503 when any configured dependency fails its ping.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	statuses := make(map[string]any, len(h.probes))
	healthy := true
	for _, p := range h.probes {
		if p.dep == nil || !p.dep.Configured() {
			statuses[p.name] = p.unconfigured
			continue
		}
		if err := p.dep.Ping(ctx); err != nil {
			statuses[p.name] = err.Error()
			healthy = false
			continue
		}
		statuses[p.name] = "ok"
	}

	if !healthy {
		return apperrors.NewDomainError("DEPENDENCY_UNAVAILABLE", "one or more dependencies unavailable",
			fiber.StatusServiceUnavailable, statuses)
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": statuses,
	})
}
