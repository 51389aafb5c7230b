// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

/*
Package order defines the checkout domain for the Mercato storefront.

It manages placed orders: validating a cart snapshot into a persistent
order document and listing a customer's own purchase history.

Core Responsibility:

  - Placement: Accepts carts from both authenticated customers and guests.
  - Ownership: A verified identity always overrides any client-supplied owner.
  - History: Lists the caller's own orders, never anyone else's.

Orders denormalize the purchased items (title, price, image) so history
remains stable even when the catalogue changes later.
*/
package order

import "go.mongodb.org/mongo-driver/bson/primitive"

// # Domain Enums

// Status represents the lifecycle state of a placed order.
type Status string

const (
	// StatusPending is the initial state of every new order.
	StatusPending Status = "pending"

	// StatusPaid indicates payment has been captured.
	StatusPaid Status = "paid"

	// StatusShipped indicates the parcel has left the warehouse.
	StatusShipped Status = "shipped"

	// StatusDelivered indicates the parcel reached the customer.
	StatusDelivered Status = "delivered"

	// StatusCancelled indicates the order was withdrawn before fulfilment.
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case
		StatusPending,
		StatusPaid,
		StatusShipped,
		StatusDelivered,
		StatusCancelled:
		return true
	}
	return false
}

// GuestUserID is the literal owner recorded for anonymous checkouts.
const GuestUserID = "guest"

// # Core Entities

// Order is the central aggregate of the checkout domain.
// It represents a single placed order in the store.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"user_id" json:"user_id"` // ObjectID hex, or the "guest" literal
	Items        []Item             `bson:"items" json:"items"`
	Subtotal     float64            `bson:"subtotal" json:"subtotal"`
	Shipping     float64            `bson:"shipping" json:"shipping"`
	Total        float64            `bson:"total" json:"total"`
	Status       Status             `bson:"status" json:"status"`
	PaymentID    *string            `bson:"payment_id" json:"payment_id"` // External payment reference
	ShippingInfo ShippingInfo       `bson:"shipping_info" json:"shipping_info"`
}

// Item is one denormalized cart line inside an [Order].
type Item struct {
	ProductID string  `bson:"product_id" json:"product_id"` // Product ObjectID hex at purchase time
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     *string `bson:"image,omitempty" json:"image"`
}

// ShippingInfo is the destination block attached to every order.
type ShippingInfo struct {
	FullName   string `bson:"full_name" json:"full_name"`
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Country    string `bson:"country" json:"country"`
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldUserID       = "user_id"
	FieldItems        = "items"
	FieldSubtotal     = "subtotal"
	FieldShipping     = "shipping"
	FieldTotal        = "total"
	FieldStatus       = "status"
	FieldPaymentID    = "payment_id"
	FieldShippingInfo = "shipping_info"
)

// Field identifiers for nested [Item] and [ShippingInfo] validation.
const (
	FieldItemProductID = "product_id"
	FieldItemTitle     = "title"
	FieldItemPrice     = "price"
	FieldItemQuantity  = "quantity"
	FieldFullName      = "full_name"
	FieldAddress       = "address"
	FieldCity          = "city"
	FieldPostalCode    = "postal_code"
	FieldCountry       = "country"
)
