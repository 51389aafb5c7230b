package payment

import "context"

// MockClientSecret is the fixed secret returned when no payment provider
// credential is configured.
const MockClientSecret = "mock_client_secret"

// DefaultCurrency applies when a checkout request omits the currency.
const DefaultCurrency = "usd"

// diagnosticLimit caps how much of a provider error message reaches clients.
const diagnosticLimit = 100

// Gateway creates payment intents with an external provider.
type Gateway interface {
	// CreateIntent registers a payment of amount minor units in the given
	// currency and returns the provider's client secret.
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// MockGateway answers every request with [MockClientSecret]. It is wired in
// at startup whenever the Stripe credential is absent, keeping local and
// demo environments functional without a provider account.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (MockGateway) CreateIntent(context.Context, int64, string) (string, error) {
	return MockClientSecret, nil
}
