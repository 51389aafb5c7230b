package payment

import (
	"context"
	"log/slog"

	"github.com/mercatolabs/mercato/internal/platform/apperr"
)

// Service bridges checkout requests to the configured payment [Gateway].
type Service struct {
	gateway Gateway
	logger  *slog.Logger
}

func NewService(gateway Gateway, logger *slog.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

// CreateIntent asks the gateway for a client secret. Amount and currency are
// passed through as submitted; the provider surfaces its own rejections.
// Provider failures come back as upstream errors whose client message is the
// provider diagnostic truncated to a safe length.
func (service *Service) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if currency == "" {
		currency = DefaultCurrency
	}

	secret, err := service.gateway.CreateIntent(ctx, amount, currency)
	if err != nil {
		service.logger.ErrorContext(ctx, "payment_intent_failed",
			slog.Int64("amount", amount),
			slog.String("currency", currency),
			slog.String("error", err.Error()),
		)
		return "", apperr.Upstream("Stripe error: "+truncate(err.Error(), diagnosticLimit), err)
	}

	return secret, nil
}

// truncate shortens a diagnostic to at most limit characters, counting
// runes so multi-byte text is never split mid-character.
func truncate(message string, limit int) string {
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}
	return string(runes[:limit])
}
