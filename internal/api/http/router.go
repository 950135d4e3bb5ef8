package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gripe-service/internal/api/http/handlers"
	"github.com/spec-kit/gripe-service/internal/auth"
	apperrors "github.com/spec-kit/gripe-service/pkg/util/errorutil"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Stresses          *handlers.StressHandler
	Rewards           *handlers.RewardHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Only signup and login are reachable
// without a session; everything else sits behind the gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	stresses := app.Group("/stresses", cfg.SessionMiddleware.Handle)
	stresses.Get("/", cfg.Stresses.List)
	stresses.Post("/", cfg.Stresses.Add)
	stresses.Delete("/:name", cfg.Stresses.Delete)
	stresses.Post("/:name/gripes", cfg.Stresses.AddGripe)
	stresses.Get("/:name/gripes/random", cfg.Stresses.RandomGripe)

	app.Get("/happy", cfg.SessionMiddleware.Handle, cfg.Rewards.Happy)

	// fallback: the original rendered a "lost" page behind the login gate
	app.Use(cfg.SessionMiddleware.Handle, func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("page", nil)
	})
}
