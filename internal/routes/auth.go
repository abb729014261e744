package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shopizen/wallet-service/internal/auth"
)

// RegisterAuthRoutes wires public registration and login endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, loginRateLimit fiber.Handler) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", loginRateLimit, h.Login)
	r.Post("/auth/refresh", h.Refresh)
}
