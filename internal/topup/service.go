package topup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopizen/wallet-service/internal/ledger"
	"github.com/shopizen/wallet-service/internal/notification"
	"github.com/shopizen/wallet-service/internal/wallet"
)

// Service coordinates card top-ups and withdrawals between the external
// processor and the wallet ledger. The processor authorizes before any
// ledger mutation happens, so a declined charge leaves no wallet state to
// unwind.
type Service struct {
	wallets   *wallet.Service
	processor Processor
	notifier  notification.Notifier
}

// NewService prepares a top-up service.
func NewService(wallets *wallet.Service, processor Processor, notifier notification.Notifier) (*Service, error) {
	if wallets == nil {
		return nil, fmt.Errorf("wallet service is required")
	}
	if processor == nil {
		processor = StaticProcessor{}
	}
	return &Service{wallets: wallets, processor: processor, notifier: notifier}, nil
}

// ChargeInput captures the required data for a card top-up.
type ChargeInput struct {
	OwnerID    string
	Amount     decimal.Decimal
	CardNumber string
	Expiry     string
	CVV        string
}

// PayoutInput captures the required data for a card withdrawal.
type PayoutInput struct {
	OwnerID    string
	Amount     decimal.Decimal
	CardNumber string
}

// Result represents the domain outcome of a card operation.
type Result struct {
	Transaction        ledger.Transaction
	ProcessorReference string
	CompletedAt        time.Time
}

// TopUp authorizes a card charge and credits the wallet.
func (s *Service) TopUp(ctx context.Context, input ChargeInput) (Result, error) {
	if err := validateCardNumber(input.CardNumber); err != nil {
		return Result{}, err
	}
	if input.Amount.Sign() <= 0 {
		return Result{}, ledger.ErrInvalidAmount
	}

	decision, err := s.processor.AuthorizeCharge(ctx, ChargeAuthorization{
		CardNumber: input.CardNumber,
		Expiry:     input.Expiry,
		CVV:        input.CVV,
		Amount:     input.Amount,
	})
	if err != nil {
		return Result{}, err
	}

	txn, err := s.wallets.Credit(ctx, input.OwnerID, input.Amount, "Funds added to wallet")
	if err != nil {
		return Result{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindWalletCredit,
			Destination: input.OwnerID,
			Body:        fmt.Sprintf("%s added to your wallet", input.Amount),
		})
	}

	return Result{Transaction: txn, ProcessorReference: decision.Reference, CompletedAt: time.Now().UTC()}, nil
}

// Withdraw authorizes a payout and debits the wallet.
func (s *Service) Withdraw(ctx context.Context, input PayoutInput) (Result, error) {
	if err := validateCardNumber(input.CardNumber); err != nil {
		return Result{}, err
	}
	if input.Amount.Sign() <= 0 {
		return Result{}, ledger.ErrInvalidAmount
	}

	decision, err := s.processor.AuthorizePayout(ctx, PayoutAuthorization{
		CardNumber: input.CardNumber,
		Amount:     input.Amount,
	})
	if err != nil {
		return Result{}, err
	}

	txn, err := s.wallets.Debit(ctx, input.OwnerID, input.Amount, "Withdrawal to card")
	if err != nil {
		return Result{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindWalletDebit,
			Destination: input.OwnerID,
			Body:        fmt.Sprintf("%s withdrawn from your wallet", input.Amount),
		})
	}

	return Result{Transaction: txn, ProcessorReference: decision.Reference, CompletedAt: time.Now().UTC()}, nil
}

func validateCardNumber(card string) error {
	digits := strings.ReplaceAll(card, " ", "")
	if len(digits) < 12 || len(digits) > 19 {
		return fmt.Errorf("card number must be between 12 and 19 digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("card number must be numeric")
		}
	}
	return nil
}
