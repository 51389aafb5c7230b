package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mercatolabs/mercato/internal/platform/request"
	"github.com/mercatolabs/mercato/internal/platform/respond"
	"github.com/mercatolabs/mercato/internal/platform/validate"
)

// Handler implements the checkout HTTP endpoint.
type Handler struct {
	paymentService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{paymentService: service}
}

// Routes returns a [chi.Router] with the checkout endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/create-payment-intent", handler.createIntent)

	return router
}

type createIntentRequest struct {
	Amount   int64  `json:"amount"` // Provider minor units (cents)
	Currency string `json:"currency"`
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// createIntent handles POST /api/checkout/create-payment-intent.
//
// Responds 200 with {"clientSecret": ...} from the configured gateway, or
// 500 with a truncated "Stripe error: ..." message on provider failure.
func (handler *Handler) createIntent(writer http.ResponseWriter, request *http.Request) {
	var input createIntentRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	secret, err := handler.paymentService.CreateIntent(request.Context(), input.Amount, input.Currency)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, createIntentResponse{ClientSecret: secret})
}
