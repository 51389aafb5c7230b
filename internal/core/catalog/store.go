// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

package catalog

import "context"

// # Product Data Access

// ProductRepository defines the data access contract for the catalog domain.
type ProductRepository interface {

	/*
		List returns a filtered slice of products, newest-insertion order as
		stored, capped at limit.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Substring query and category criteria)
		  - limit: int (Maximum documents returned; must be positive)

		Returns:
		  - []*Product: Slice of matching products, never nil
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit int) ([]*Product, error)

	/*
		FindByID returns the product with the given ObjectID hex string.

		Parameters:
		  - context: context.Context
		  - id: string (ObjectID hex)

		Returns:
		  - *Product: The hydrated domain entity
		  - error: apperr.ValidationError for malformed ids, apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Product, error)

	/*
		Create persists a new product and fills in its generated id.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, product *Product) error

	/*
		CreateMany bulk-inserts products, used for demo catalogue seeding.

		Parameters:
		  - context: context.Context
		  - products: []*Product

		Returns:
		  - error: Batch persistence failures
	*/
	CreateMany(context context.Context, products []*Product) error

	/*
		CountAll returns the total number of products in the store,
		ignoring any filter.

		Parameters:
		  - context: context.Context

		Returns:
		  - int64: Document count
		  - error: Database retrieval failures
	*/
	CountAll(context context.Context) (int64, error)
}
