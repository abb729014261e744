package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shopizen/wallet-service/internal/payments"
)

// RegisterPaymentRoutes wires order settlement endpoints.
func RegisterPaymentRoutes(r fiber.Router, h *payments.Handler) {
	r.Post("/orders/pay", h.PayOrder)
	r.Post("/orders/refund", h.RefundOrder)
}
