package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shopizen/wallet-service/internal/topup"
)

// RegisterTopUpRoutes wires card funding endpoints.
func RegisterTopUpRoutes(r fiber.Router, h *topup.Handler) {
	r.Post("/wallet/topup", h.TopUp)
	r.Post("/wallet/withdraw", h.Withdraw)
}
