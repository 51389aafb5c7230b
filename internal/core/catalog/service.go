// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mercatolabs/mercato/internal/platform/apperr"
	"github.com/mercatolabs/mercato/internal/platform/sec"
	"github.com/mercatolabs/mercato/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for the product catalogue.
// It acts as the primary entry point for browsing and managing inventory.
type Service struct {
	productRepo ProductRepository
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(productRepo ProductRepository, logger *slog.Logger) *Service {
	return &Service{
		productRepo: productRepo,
		logger:      logger,
	}
}

// # Product Lookups

/*
List retrieves a filtered collection of products, seeding the demo
catalogue first if the store is completely empty.

Description: Seeding checks the unfiltered document count, so a filtered
query that matches nothing does not retrigger the bootstrap. The count
and the bulk insert are separate operations; two concurrent first
listings can both observe an empty store and both seed, duplicating the
demo rows.

Parameters:
  - context: context.Context
  - filter: Filter (Substring query and category criteria)
  - limit: int (Non-positive values fall back to DefaultListLimit)

Returns:
  - []*Product: Slice of matching products, never nil
  - error: Repository failures
*/
func (service *Service) List(context context.Context, filter Filter, limit int) ([]*Product, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	total, err := service.productRepo.CountAll(context)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_count_failed: %w", err)
	}

	if total == 0 {
		seeds := DemoCatalog()
		if err := service.productRepo.CreateMany(context, seeds); err != nil {
			return nil, fmt.Errorf("catalog_service_seed_failed: %w", err)
		}
		service.logger.InfoContext(context, "catalog_seeded", slog.Int("products", len(seeds)))
	}

	return service.productRepo.List(context, filter, limit)
}

/*
Get fetches a single product record by its ObjectID hex string.

Parameters:
  - context: context.Context
  - id: string (ObjectID hex)

Returns:
  - *Product: The hydrated domain entity
  - error: apperr.ValidationError for malformed ids, apperr.NotFound if missing
*/
func (service *Service) Get(context context.Context, id string) (*Product, error) {
	return service.productRepo.FindByID(context, id)
}

// # Product Management

// CreateInput holds the attributes for a new catalogue entry.
type CreateInput struct {
	Title       string
	Description *string
	Price       float64
	Category    string
	Images      []string
	Stock       int
	Rating      float64
}

/*
Create validates and persists a new product on behalf of an administrator.

Description: The route carrying this operation is already gated by the
role middleware; the service re-checks the requester so the rule holds
even for callers that bypass the HTTP layer.

Parameters:
  - context: context.Context
  - requester: *sec.Identity (Verified caller, nil for anonymous)
  - input: CreateInput

Returns:
  - string: Hex id of the created product
  - error: apperr.Forbidden, validation, or persistence errors
*/
func (service *Service) Create(context context.Context, requester *sec.Identity, input CreateInput) (string, error) {
	if requester == nil || !requester.Role.AtLeast(sec.RoleAdmin) {
		return "", apperr.Forbidden("Admin only")
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		Required(FieldCategory, input.Category).
		FloatMin(FieldPrice, input.Price, 0).
		Min(FieldStock, input.Stock, 0).
		FloatRange(FieldRating, input.Rating, 0, 5)

	if err := validator.Err(); err != nil {
		return "", err
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}

	product := &Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Images:      images,
		Stock:       input.Stock,
		Rating:      input.Rating,
	}

	if err := service.productRepo.Create(context, product); err != nil {
		return "", fmt.Errorf("catalog_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "product_created",
		slog.String("product_id", product.ID.Hex()),
		slog.String("category", product.Category),
		slog.String("created_by", requester.UserID),
	)

	return product.ID.Hex(), nil
}
