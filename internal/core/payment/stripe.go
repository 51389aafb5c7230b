package payment

import (
	"context"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeGateway creates real payment intents through the Stripe API.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway constructs a gateway bound to the given secret key.
func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

// CreateIntent registers a card payment intent and returns its client secret.
func (gateway *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := gateway.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}

	return intent.ClientSecret, nil
}
