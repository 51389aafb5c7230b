/*
Package order provides the HTTP interface for checkout and purchase history.

# Routing Strategy

  - POST /       : Optional authentication; guests may place orders.
  - GET  /mine   : Required authentication; lists only the caller's orders.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mercatolabs/mercato/internal/platform/request"
	"github.com/mercatolabs/mercato/internal/platform/respond"
	"github.com/mercatolabs/mercato/internal/platform/validate"
)

// # Handler Implementation

// Handler implements order-related HTTP endpoints.
type Handler struct {
	orderService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{orderService: service}
}

// Routes returns a [chi.Router] configured with the checkout endpoints.
//
// # Endpoints
//   - POST /     : Places an order (token optional, guests welcome).
//   - GET  /mine : Lists the caller's own orders (token required).
func (handler *Handler) Routes(requireAuth, optionalAuth func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.With(optionalAuth).Post("/", handler.create)
	router.With(requireAuth).Get("/mine", handler.mine)

	return router
}

// # Request Payloads

// createOrderRequest mirrors the stored order document minus id and status.
// A client-supplied status is deliberately not decoded: lifecycle state is
// server-assigned.
type createOrderRequest struct {
	UserID       string       `json:"user_id"`
	Items        []Item       `json:"items"`
	Subtotal     float64      `json:"subtotal"`
	Shipping     float64      `json:"shipping"`
	Total        float64      `json:"total"`
	PaymentID    *string      `json:"payment_id"`
	ShippingInfo ShippingInfo `json:"shipping_info"`
}

/*
create places a new order.

POST /api/orders

Description: Authenticated callers own the order regardless of the payload;
anonymous carts fall back to the client user_id or "guest". The stored
order always starts as "pending".

Request:
  - Body: createOrderRequest

Response:
  - 200: {"id": "<hex>", "status": "created"}
  - 400: ErrInvalidJSON or "Invalid order" with field details
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createOrderRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.orderService.Create(request.Context(), requestutil.Identity(request), CreateInput{
		UserID:       input.UserID,
		Items:        input.Items,
		Subtotal:     input.Subtotal,
		Shipping:     input.Shipping,
		Total:        input.Total,
		PaymentID:    input.PaymentID,
		ShippingInfo: input.ShippingInfo,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
mine lists the caller's purchase history as a bare JSON array.

GET /api/orders/mine

Response:
  - 200: []Order (capped at 50)
  - 401: Missing/invalid token (middleware)
*/
func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	orders, err := handler.orderService.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, orders)
}
