package wallet

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/shopizen/wallet-service/internal/ledger"
)

// Handler exposes wallet HTTP endpoints. All routes resolve the owner from
// the authenticated request, never from the payload.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type amountRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type transactionResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionResponse(txn ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          txn.ID,
		Kind:        string(txn.Kind),
		Amount:      txn.Amount.String(),
		Description: txn.Description,
		CreatedAt:   txn.CreatedAt,
	}
}

func toTransactionResponses(txns []ledger.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, toTransactionResponse(txn))
	}
	return out
}

// Overview returns the wallet balance along with recent transactions.
func (h *Handler) Overview(c *fiber.Ctx) error {
	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}
	overview, err := h.service.Overview(c.UserContext(), ownerID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"balance":             overview.Balance.String(),
		"recent_transactions": toTransactionResponses(overview.Recent),
	})
}

// Transactions lists wallet history, newest first, with limit/offset paging.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}
	limit := c.QueryInt("limit")
	offset := c.QueryInt("offset")

	txns, err := h.service.Transactions(c.UserContext(), ownerID, limit, offset)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"transactions": toTransactionResponses(txns),
	})
}

// Credit adds funds to the caller's wallet.
func (h *Handler) Credit(c *fiber.Ctx) error {
	return h.post(c, h.service.Credit)
}

// Debit removes funds from the caller's wallet.
func (h *Handler) Debit(c *fiber.Ctx) error {
	return h.post(c, h.service.Debit)
}

func (h *Handler) post(c *fiber.Ctx, op func(ctx context.Context, ownerID string, amount decimal.Decimal, description string) (ledger.Transaction, error)) error {
	ownerID, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}

	txn, err := op(c.UserContext(), ownerID, amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount):
			return fiber.NewError(http.StatusBadRequest, "amount must be positive")
		case errors.Is(err, ledger.ErrInsufficientBalance):
			return fiber.NewError(http.StatusBadRequest, "insufficient balance")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	balance, err := h.service.Balance(c.UserContext(), ownerID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction": toTransactionResponse(txn),
		"new_balance": balance.String(),
	})
}

func ownerFromContext(c *fiber.Ctx) (string, error) {
	ownerID, _ := c.Locals("owner_id").(string)
	if ownerID == "" {
		return "", fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	return ownerID, nil
}
