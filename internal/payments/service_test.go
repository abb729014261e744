package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shopizen/wallet-service/internal/ledger"
	"github.com/shopizen/wallet-service/internal/notification"
	"github.com/shopizen/wallet-service/internal/wallet"
)

type testNotifier struct {
	last notification.Message
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.last = msg
	return nil
}

func TestPayOrderDebitsWallet(t *testing.T) {
	led := ledger.NewInMemory()
	wallets := wallet.NewService(led)
	notifier := &testNotifier{}
	svc := NewService(wallets, notifier)

	ctx := context.Background()
	owner := uuid.NewString()
	ledger.SeedBalance(led, owner, decimal.RequireFromString("500.00"))

	res, err := svc.PayOrder(ctx, SettlementInput{OwnerID: owner, OrderRef: "ORD-1042", Amount: decimal.RequireFromString("199.99")})
	require.NoError(t, err)
	require.Equal(t, ledger.KindDebit, res.Transaction.Kind)
	require.Equal(t, "Payment for order ORD-1042", res.Transaction.Description)
	require.True(t, res.NewBalance.Equal(decimal.RequireFromString("300.01")), "balance = %s", res.NewBalance)
	require.Equal(t, notification.KindOrderPaid, notifier.last.Kind)
}

func TestPayOrderInsufficientBalance(t *testing.T) {
	led := ledger.NewInMemory()
	svc := NewService(wallet.NewService(led), nil)

	ctx := context.Background()
	owner := uuid.NewString()

	_, err := svc.PayOrder(ctx, SettlementInput{OwnerID: owner, OrderRef: "ORD-1", Amount: decimal.RequireFromString("10.00")})
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	require.Equal(t, 0, ledger.TransactionCount(led, owner))
}

func TestPayOrderRequiresOrderRef(t *testing.T) {
	svc := NewService(wallet.NewService(ledger.NewInMemory()), nil)

	_, err := svc.PayOrder(context.Background(), SettlementInput{OwnerID: uuid.NewString(), Amount: decimal.RequireFromString("10.00")})
	require.Error(t, err)
}

func TestRefundOrderCreditsWallet(t *testing.T) {
	led := ledger.NewInMemory()
	wallets := wallet.NewService(led)
	notifier := &testNotifier{}
	svc := NewService(wallets, notifier)

	ctx := context.Background()
	owner := uuid.NewString()

	res, err := svc.RefundOrder(ctx, SettlementInput{OwnerID: owner, OrderRef: "ORD-7", Amount: decimal.RequireFromString("45.50")})
	require.NoError(t, err)
	require.Equal(t, ledger.KindCredit, res.Transaction.Kind)
	require.Equal(t, "Refund for order ORD-7", res.Transaction.Description)
	require.True(t, res.NewBalance.Equal(decimal.RequireFromString("45.50")))
	require.Equal(t, notification.KindOrderRefunded, notifier.last.Kind)
}
