// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

package order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mercatolabs/mercato/internal/platform/sec"
	"github.com/mercatolabs/mercato/internal/platform/validate"
)

// MyOrdersLimit caps the purchase-history listing. Customers with more
// orders than this see only the first page the store returns.
const MyOrdersLimit = 50

// # Service Layer

// Service orchestrates the business logic for order placement and history.
type Service struct {
	orderRepo OrderRepository
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(orderRepo OrderRepository, logger *slog.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// # Order Placement

// CreateInput holds the client-submitted cart snapshot. There is no status
// field: the lifecycle state of a new order is never client-controlled.
type CreateInput struct {
	UserID       string
	Items        []Item
	Subtotal     float64
	Shipping     float64
	Total        float64
	PaymentID    *string
	ShippingInfo ShippingInfo
}

// CreateResult acknowledges a placed order. Status here is the literal
// acknowledgment "created", not the stored lifecycle status (which always
// starts at "pending").
type CreateResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

/*
Create validates a cart snapshot and persists it as a pending order.

Description: Ownership is resolved before validation: a verified identity
always overwrites any client-supplied user_id, while anonymous checkouts
fall back to the client value or the "guest" literal. All shape failures
collapse into a single "Invalid order" response.

Parameters:
  - context: context.Context
  - requester: *sec.Identity (Verified caller, nil for anonymous)
  - input: CreateInput

Returns:
  - *CreateResult: New order id plus the "created" acknowledgment
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, requester *sec.Identity, input CreateInput) (*CreateResult, error) {

	// Resolve ownership. The token wins over the payload.
	userID := input.UserID
	if requester != nil {
		userID = requester.UserID
	} else if userID == "" {
		userID = GuestUserID
	}

	if err := validateDraft(input); err != nil {
		return nil, err
	}

	order := &Order{
		UserID:       userID,
		Items:        input.Items,
		Subtotal:     input.Subtotal,
		Shipping:     input.Shipping,
		Total:        input.Total,
		Status:       StatusPending,
		PaymentID:    input.PaymentID,
		ShippingInfo: input.ShippingInfo,
	}

	if err := service.orderRepo.Create(context, order); err != nil {
		return nil, fmt.Errorf("order_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "order_placed",
		slog.String("order_id", order.ID.Hex()),
		slog.String("user_id", order.UserID),
		slog.Int("items", len(order.Items)),
		slog.Float64("total", order.Total),
	)

	return &CreateResult{ID: order.ID.Hex(), Status: "created"}, nil
}

// validateDraft applies the full order shape rules. Every failure surfaces
// under the single pinned "Invalid order" message.
func validateDraft(input CreateInput) error {
	validator := &validate.Validator{}

	validator.Custom(FieldItems, len(input.Items) == 0, "Order must contain at least one item").
		FloatMin(FieldSubtotal, input.Subtotal, 0).
		FloatMin(FieldShipping, input.Shipping, 0).
		FloatMin(FieldTotal, input.Total, 0)

	for index, item := range input.Items {
		validator.Required(fmt.Sprintf("%s[%d].%s", FieldItems, index, FieldItemProductID), item.ProductID)
		validator.Required(fmt.Sprintf("%s[%d].%s", FieldItems, index, FieldItemTitle), item.Title)
		validator.FloatMin(fmt.Sprintf("%s[%d].%s", FieldItems, index, FieldItemPrice), item.Price, 0)
		validator.Min(fmt.Sprintf("%s[%d].%s", FieldItems, index, FieldItemQuantity), item.Quantity, 1)
	}

	shipping := input.ShippingInfo
	validator.Required(FieldFullName, shipping.FullName).
		Required(FieldAddress, shipping.Address).
		Required(FieldCity, shipping.City).
		Required(FieldPostalCode, shipping.PostalCode).
		Required(FieldCountry, shipping.Country)

	return validator.ErrMsg("Invalid order")
}

// # Purchase History

/*
ListForUser retrieves the caller's own orders, capped at [MyOrdersLimit].

Parameters:
  - context: context.Context
  - userID: string (Owner id taken from the verified identity, never the client)

Returns:
  - []*Order: Slice of owned orders, never nil
  - error: Repository failures
*/
func (service *Service) ListForUser(context context.Context, userID string) ([]*Order, error) {
	return service.orderRepo.ListByUserID(context, userID, MyOrdersLimit)
}
