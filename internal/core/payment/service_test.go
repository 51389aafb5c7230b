package payment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercatolabs/mercato/internal/core/payment"
	"github.com/mercatolabs/mercato/internal/platform/apperr"
)

// recordingGateway captures the arguments of the last intent request.
type recordingGateway struct {
	lastAmount   int64
	lastCurrency string
	secret       string
	err          error
}

func (g *recordingGateway) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	g.lastAmount = amount
	g.lastCurrency = currency
	return g.secret, g.err
}

func newPaymentService(gateway payment.Gateway) *payment.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return payment.NewService(gateway, logger)
}

func TestService_CreateIntent_Delegates(t *testing.T) {
	gateway := &recordingGateway{secret: "pi_123_secret_456"}
	service := newPaymentService(gateway)

	secret, err := service.CreateIntent(context.Background(), 2490, "eur")
	require.NoError(t, err)

	assert.Equal(t, "pi_123_secret_456", secret)
	assert.Equal(t, int64(2490), gateway.lastAmount)
	assert.Equal(t, "eur", gateway.lastCurrency)
}

func TestService_CreateIntent_DefaultsCurrency(t *testing.T) {
	gateway := &recordingGateway{secret: "pi_123_secret_456"}
	service := newPaymentService(gateway)

	_, err := service.CreateIntent(context.Background(), 100, "")
	require.NoError(t, err)

	assert.Equal(t, payment.DefaultCurrency, gateway.lastCurrency)
}

func TestService_CreateIntent_MockGateway(t *testing.T) {
	service := newPaymentService(payment.NewMockGateway())

	secret, err := service.CreateIntent(context.Background(), 9999, "usd")
	require.NoError(t, err)

	assert.Equal(t, payment.MockClientSecret, secret)
}

func TestService_CreateIntent_UpstreamFailure(t *testing.T) {
	cause := errors.New("No such payment_intent: 'pi_missing'")
	service := newPaymentService(&recordingGateway{err: cause})

	secret, err := service.CreateIntent(context.Background(), 100, "usd")
	assert.Empty(t, secret)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UPSTREAM_ERROR", appError.Code)
	assert.Equal(t, http.StatusInternalServerError, appError.HTTPStatus)
	assert.Equal(t, "Stripe error: No such payment_intent: 'pi_missing'", appError.Message)
	assert.ErrorIs(t, err, cause)
}

func TestService_CreateIntent_TruncatesLongDiagnostics(t *testing.T) {
	cause := errors.New(strings.Repeat("é", 150))
	service := newPaymentService(&recordingGateway{err: cause})

	_, err := service.CreateIntent(context.Background(), 100, "usd")

	appError := apperr.As(err)
	require.NotNil(t, appError)

	diagnostic := strings.TrimPrefix(appError.Message, "Stripe error: ")
	assert.Equal(t, 100, utf8.RuneCountInString(diagnostic))
	assert.True(t, utf8.ValidString(appError.Message))
}
