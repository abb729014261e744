package topup

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Processor represents a connector to an external card processor.
type Processor interface {
	AuthorizeCharge(ctx context.Context, input ChargeAuthorization) (AuthorizationDecision, error)
	AuthorizePayout(ctx context.Context, input PayoutAuthorization) (AuthorizationDecision, error)
}

// AuthorizationDecision captures the response from the processor.
type AuthorizationDecision struct {
	Reference string
	Status    string
}

// ChargeAuthorization encapsulates details needed to charge a card for a top-up.
type ChargeAuthorization struct {
	CardNumber string
	Expiry     string
	CVV        string
	Amount     decimal.Decimal
}

// PayoutAuthorization captures data for a push-to-card withdrawal authorization.
type PayoutAuthorization struct {
	CardNumber string
	Amount     decimal.Decimal
}

// StaticProcessor simulates a processor that approves every authorization.
type StaticProcessor struct{}

// AuthorizeCharge approves the top-up with a synthetic reference.
func (StaticProcessor) AuthorizeCharge(_ context.Context, _ ChargeAuthorization) (AuthorizationDecision, error) {
	return AuthorizationDecision{Reference: uuid.NewString(), Status: "approved"}, nil
}

// AuthorizePayout approves the withdrawal with a synthetic reference.
func (StaticProcessor) AuthorizePayout(_ context.Context, _ PayoutAuthorization) (AuthorizationDecision, error) {
	return AuthorizationDecision{Reference: uuid.NewString(), Status: "approved"}, nil
}
