// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

package order

import "context"

// # Order Data Access

// OrderRepository defines the data access contract for the checkout domain.
type OrderRepository interface {

	/*
		Create persists a new order and fills in its generated id.

		Parameters:
		  - context: context.Context
		  - order: *Order

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, order *Order) error

	/*
		ListByUserID returns orders owned by the given user, in natural
		store order, capped at limit.

		Parameters:
		  - context: context.Context
		  - userID: string (ObjectID hex or the "guest" literal)
		  - limit: int (Maximum documents returned; must be positive)

		Returns:
		  - []*Order: Slice of matching orders, never nil
		  - error: Database retrieval failures
	*/
	ListByUserID(context context.Context, userID string, limit int) ([]*Order, error)
}
