package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/transfer"
)

// IntentResult is the slice of a PaymentIntent the booking flow needs.
type IntentResult struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Status       string `json:"status"`
}

// Gateway abstracts the payment provider. Stripe is the shipped
// implementation; tests use a mock.
type Gateway interface {
	// CreateIntent opens an on-session PaymentIntent the guest confirms
	// in the checkout widget.
	CreateIntent(ctx context.Context, amountCents int64, currency, transferGroup string, metadata map[string]string) (*IntentResult, error)
	// ChargeOffSession charges a stored customer/payment-method pair and
	// returns the resulting PaymentIntent ID.
	ChargeOffSession(ctx context.Context, customerID, paymentMethodID string, amountCents int64, currency string, metadata map[string]string) (string, error)
	// Transfer moves funds to a connected account within a transfer group.
	Transfer(ctx context.Context, amountCents int64, currency, destinationAccount, transferGroup string, metadata map[string]string) (string, error)
}

// StripeGateway implements Gateway on stripe-go. The API key is set
// globally at startup (stripe.Key).
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency, transferGroup string, metadata map[string]string) (*IntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(currency),
		TransferGroup: stripe.String(transferGroup),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, asChargeError(err)
	}

	return &IntentResult{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Status:       string(intent.Status),
	}, nil
}

func (g *StripeGateway) ChargeOffSession(ctx context.Context, customerID, paymentMethodID string, amountCents int64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(currency),
		Customer:      stripe.String(customerID),
		PaymentMethod: stripe.String(paymentMethodID),
		OffSession:    stripe.Bool(true),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", asChargeError(err)
	}
	return intent.ID, nil
}

func (g *StripeGateway) Transfer(ctx context.Context, amountCents int64, currency, destinationAccount, transferGroup string, metadata map[string]string) (string, error) {
	params := &stripe.TransferParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(currency),
		Destination:   stripe.String(destinationAccount),
		TransferGroup: stripe.String(transferGroup),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	tr, err := transfer.New(params)
	if err != nil {
		return "", asChargeError(err)
	}
	return tr.ID, nil
}

// asChargeError converts a stripe-go error into the typed ChargeError so
// callers never depend on the SDK's error shape.
func asChargeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &ChargeError{Code: string(stripeErr.Code), Message: stripeErr.Msg}
	}
	return &ChargeError{Message: err.Error()}
}
