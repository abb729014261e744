package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopizen/wallet-service/internal/ledger"
	"github.com/shopizen/wallet-service/internal/notification"
	"github.com/shopizen/wallet-service/internal/wallet"
)

// Service settles orders against wallet balance. Each settlement is a single
// atomic ledger debit; the checkout flow that calls PayOrder has already
// reserved nothing, so a failed debit simply bubbles up as insufficient
// balance and the order stays unpaid.
type Service struct {
	wallets  *wallet.Service
	notifier notification.Notifier
}

// NewService constructs a payment settlement service.
func NewService(wallets *wallet.Service, notifier notification.Notifier) *Service {
	return &Service{wallets: wallets, notifier: notifier}
}

// SettlementInput captures the data needed to pay for an order from a wallet.
type SettlementInput struct {
	OwnerID  string
	OrderRef string
	Amount   decimal.Decimal
}

// SettlementResult describes the ledger outcome of a settlement.
type SettlementResult struct {
	Transaction ledger.Transaction
	NewBalance  decimal.Decimal
	CompletedAt time.Time
}

// PayOrder debits the owner's wallet for the order amount.
func (s *Service) PayOrder(ctx context.Context, input SettlementInput) (SettlementResult, error) {
	if input.OrderRef == "" {
		return SettlementResult{}, fmt.Errorf("order reference is required")
	}

	description := fmt.Sprintf("Payment for order %s", input.OrderRef)
	txn, err := s.wallets.Debit(ctx, input.OwnerID, input.Amount, description)
	if err != nil {
		return SettlementResult{}, err
	}

	balance, err := s.wallets.Balance(ctx, input.OwnerID)
	if err != nil {
		return SettlementResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindOrderPaid,
			Destination: input.OwnerID,
			Body:        fmt.Sprintf("Order %s paid from wallet (%s)", input.OrderRef, input.Amount),
		})
	}

	return SettlementResult{Transaction: txn, NewBalance: balance, CompletedAt: time.Now().UTC()}, nil
}

// RefundOrder credits the owner's wallet with the refunded amount.
func (s *Service) RefundOrder(ctx context.Context, input SettlementInput) (SettlementResult, error) {
	if input.OrderRef == "" {
		return SettlementResult{}, fmt.Errorf("order reference is required")
	}

	description := fmt.Sprintf("Refund for order %s", input.OrderRef)
	txn, err := s.wallets.Credit(ctx, input.OwnerID, input.Amount, description)
	if err != nil {
		return SettlementResult{}, err
	}

	balance, err := s.wallets.Balance(ctx, input.OwnerID)
	if err != nil {
		return SettlementResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindOrderRefunded,
			Destination: input.OwnerID,
			Body:        fmt.Sprintf("Order %s refunded to wallet (%s)", input.OrderRef, input.Amount),
		})
	}

	return SettlementResult{Transaction: txn, NewBalance: balance, CompletedAt: time.Now().UTC()}, nil
}
