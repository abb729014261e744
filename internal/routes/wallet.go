package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shopizen/wallet-service/internal/wallet"
)

// RegisterWalletRoutes wires wallet endpoints for the authenticated owner.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallet", h.Overview)
	r.Get("/wallet/transactions", h.Transactions)
	r.Post("/wallet/credit", h.Credit)
	r.Post("/wallet/debit", h.Debit)
}
