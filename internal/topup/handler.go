package topup

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/shopizen/wallet-service/internal/ledger"
)

// Handler exposes HTTP endpoints for card top-up flows.
type Handler struct {
	service *Service
}

// NewHandler constructs a top-up handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ChargeRequest captures user-provided data to fund a wallet from a card.
type ChargeRequest struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	Amount     string `json:"amount"`
}

// PayoutRequest captures withdrawal details to push funds to a card.
type PayoutRequest struct {
	CardNumber string `json:"card_number"`
	Amount     string `json:"amount"`
}

// Response represents the API response for card top-up actions.
type Response struct {
	TransactionID      string `json:"transaction_id"`
	Kind               string `json:"kind"`
	Amount             string `json:"amount"`
	ProcessorReference string `json:"processor_reference"`
}

// TopUp processes wallet top-ups funded by cards.
func (h *Handler) TopUp(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("owner_id").(string)
	if ownerID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req ChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}

	result, err := h.service.TopUp(c.UserContext(), ChargeInput{
		OwnerID:    ownerID,
		Amount:     amount,
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			return fiber.NewError(http.StatusBadRequest, "amount must be positive")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(toResponse(result))
}

// Withdraw processes wallet withdrawals to cards.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	ownerID, _ := c.Locals("owner_id").(string)
	if ownerID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req PayoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}

	result, err := h.service.Withdraw(c.UserContext(), PayoutInput{
		OwnerID:    ownerID,
		Amount:     amount,
		CardNumber: req.CardNumber,
	})
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

	return c.Status(http.StatusCreated).JSON(toResponse(result))
}

func toResponse(result Result) Response {
	return Response{
		TransactionID:      result.Transaction.ID,
		Kind:               string(result.Transaction.Kind),
		Amount:             result.Transaction.Amount.String(),
		ProcessorReference: result.ProcessorReference,
	}
}
