package topup

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shopizen/wallet-service/internal/ledger"
	"github.com/shopizen/wallet-service/internal/wallet"
)

type decliningProcessor struct{}

func (decliningProcessor) AuthorizeCharge(_ context.Context, _ ChargeAuthorization) (AuthorizationDecision, error) {
	return AuthorizationDecision{}, errors.New("card declined")
}

func (decliningProcessor) AuthorizePayout(_ context.Context, _ PayoutAuthorization) (AuthorizationDecision, error) {
	return AuthorizationDecision{}, errors.New("card declined")
}

func TestTopUpCreditsWallet(t *testing.T) {
	led := ledger.NewInMemory()
	wallets := wallet.NewService(led)
	svc, err := NewService(wallets, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	owner := uuid.NewString()

	result, err := svc.TopUp(ctx, ChargeInput{
		OwnerID:    owner,
		Amount:     decimal.RequireFromString("250.00"),
		CardNumber: "4111 1111 1111 1111",
		Expiry:     "12/27",
		CVV:        "123",
	})
	require.NoError(t, err)
	require.Equal(t, ledger.KindCredit, result.Transaction.Kind)
	require.NotEmpty(t, result.ProcessorReference)

	balance, err := wallets.Balance(ctx, owner)
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("250.00")), "balance = %s", balance)
}

func TestTopUpDeclinedLeavesWalletUntouched(t *testing.T) {
	led := ledger.NewInMemory()
	wallets := wallet.NewService(led)
	svc, err := NewService(wallets, decliningProcessor{}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	owner := uuid.NewString()

	_, err = svc.TopUp(ctx, ChargeInput{
		OwnerID:    owner,
		Amount:     decimal.RequireFromString("250.00"),
		CardNumber: "4111111111111111",
	})
	require.Error(t, err)
	require.Equal(t, 0, ledger.TransactionCount(led, owner))
}

func TestWithdrawRequiresBalance(t *testing.T) {
	led := ledger.NewInMemory()
	wallets := wallet.NewService(led)
	svc, err := NewService(wallets, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	owner := uuid.NewString()
	ledger.SeedBalance(led, owner, decimal.RequireFromString("100.00"))

	_, err = svc.Withdraw(ctx, PayoutInput{
		OwnerID:    owner,
		Amount:     decimal.RequireFromString("500.00"),
		CardNumber: "4111111111111111",
	})
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	result, err := svc.Withdraw(ctx, PayoutInput{
		OwnerID:    owner,
		Amount:     decimal.RequireFromString("40.00"),
		CardNumber: "4111111111111111",
	})
	require.NoError(t, err)
	require.Equal(t, ledger.KindDebit, result.Transaction.Kind)

	balance, err := wallets.Balance(ctx, owner)
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("60.00")), "balance = %s", balance)
}

func TestCardNumberValidation(t *testing.T) {
	led := ledger.NewInMemory()
	wallets := wallet.NewService(led)
	svc, err := NewService(wallets, nil, nil)
	require.NoError(t, err)

	_, err = svc.TopUp(context.Background(), ChargeInput{
		OwnerID:    uuid.NewString(),
		Amount:     decimal.RequireFromString("10.00"),
		CardNumber: "41x1",
	})
	require.Error(t, err)
}
