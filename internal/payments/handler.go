package payments

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/shopizen/wallet-service/internal/ledger"
)

// Handler exposes order settlement endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type settlementRequest struct {
	OrderRef string `json:"order_ref"`
	Amount   string `json:"amount"`
}

// PayOrder settles an order from the caller's wallet balance.
func (h *Handler) PayOrder(c *fiber.Ctx) error {
	return h.settle(c, h.service.PayOrder)
}

// RefundOrder credits an order refund back to the caller's wallet.
func (h *Handler) RefundOrder(c *fiber.Ctx) error {
	return h.settle(c, h.service.RefundOrder)
}

func (h *Handler) settle(c *fiber.Ctx, op func(ctx context.Context, input SettlementInput) (SettlementResult, error)) error {
	ownerID, _ := c.Locals("owner_id").(string)
	if ownerID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req settlementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}

	res, err := op(c.UserContext(), SettlementInput{OwnerID: ownerID, OrderRef: req.OrderRef, Amount: amount})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount):
			return fiber.NewError(http.StatusBadRequest, "amount must be positive")
		case errors.Is(err, ledger.ErrInsufficientBalance):
			return fiber.NewError(http.StatusBadRequest, "insufficient balance")
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction_id": res.Transaction.ID,
		"kind":           string(res.Transaction.Kind),
		"amount":         res.Transaction.Amount.String(),
		"new_balance":    res.NewBalance.String(),
		"completed_at":   res.CompletedAt,
	})
}
