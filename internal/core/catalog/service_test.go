// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mercatolabs/mercato/internal/core/catalog"
	"github.com/mercatolabs/mercato/internal/platform/apperr"
	"github.com/mercatolabs/mercato/internal/platform/sec"
	"github.com/mercatolabs/mercato/pkg/pointer"
)

// fakeProductRepository keeps products in an ordered slice and mirrors the
// real store's filter semantics: case-insensitive substring match on
// title/description, exact category match.
type fakeProductRepository struct {
	products  []*catalog.Product
	lastLimit int
}

func (f *fakeProductRepository) List(_ context.Context, filter catalog.Filter, limit int) ([]*catalog.Product, error) {
	f.lastLimit = limit

	matches := []*catalog.Product{}
	for _, product := range f.products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.Query != "" && !matchesQuery(product, filter.Query) {
			continue
		}
		clone := *product
		matches = append(matches, &clone)
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func matchesQuery(product *catalog.Product, query string) bool {
	needle := strings.ToLower(query)
	if strings.Contains(strings.ToLower(product.Title), needle) {
		return true
	}
	return product.Description != nil && strings.Contains(strings.ToLower(*product.Description), needle)
}

func (f *fakeProductRepository) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperr.ValidationError("Invalid product id")
	}
	for _, product := range f.products {
		if product.ID.Hex() == id {
			clone := *product
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Product")
}

func (f *fakeProductRepository) Create(_ context.Context, product *catalog.Product) error {
	product.ID = primitive.NewObjectID()
	clone := *product
	f.products = append(f.products, &clone)
	return nil
}

func (f *fakeProductRepository) CreateMany(_ context.Context, products []*catalog.Product) error {
	for _, product := range products {
		if err := f.Create(context.Background(), product); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeProductRepository) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func newCatalogService(repository *fakeProductRepository) *catalog.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewService(repository, logger)
}

func adminIdentity() *sec.Identity {
	return &sec.Identity{UserID: primitive.NewObjectID().Hex(), Role: sec.RoleAdmin}
}

/*
TestService_List_SeedsEmptyStore verifies the bootstrap: the first listing
against an empty store inserts the demo catalogue and returns it.
*/
func TestService_List_SeedsEmptyStore(t *testing.T) {
	repository := &fakeProductRepository{}
	service := newCatalogService(repository)

	products, err := service.List(context.Background(), catalog.Filter{}, 0)
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, "T-shirt Bio Confort", products[0].Title)
	assert.Equal(t, "Casque Sans Fil Pro", products[1].Title)
	assert.Equal(t, "Gourde Isotherme 1L", products[2].Title)

	// Seeded documents received store-assigned ids
	for _, product := range products {
		assert.False(t, product.ID.IsZero())
	}
}

/*
TestService_List_SeedsOnlyOnce verifies that a populated store is never
reseeded, even when a filter matches nothing.
*/
func TestService_List_SeedsOnlyOnce(t *testing.T) {
	repository := &fakeProductRepository{}
	service := newCatalogService(repository)

	first, err := service.List(context.Background(), catalog.Filter{}, 0)
	require.NoError(t, err)
	require.Len(t, first, 3)

	// A filtered miss must not retrigger the bootstrap
	none, err := service.List(context.Background(), catalog.Filter{Category: "Meubles"}, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	second, err := service.List(context.Background(), catalog.Filter{}, 0)
	require.NoError(t, err)
	assert.Len(t, second, 3)
}

/*
TestService_List_FilterSemantics verifies substring and category matching
against the seeded demo catalogue.
*/
func TestService_List_FilterSemantics(t *testing.T) {
	repository := &fakeProductRepository{}
	service := newCatalogService(repository)

	// Case-insensitive substring on title
	byTitle, err := service.List(context.Background(), catalog.Filter{Query: "casque"}, 0)
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Casque Sans Fil Pro", byTitle[0].Title)

	// Substring on description
	byDescription, err := service.List(context.Background(), catalog.Filter{Query: "double paroi"}, 0)
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Gourde Isotherme 1L", byDescription[0].Title)

	// Exact category
	byCategory, err := service.List(context.Background(), catalog.Filter{Category: "Sport"}, 0)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Gourde Isotherme 1L", byCategory[0].Title)
}

/*
TestService_List_DefaultLimit verifies that non-positive limits fall back to
the default page size before reaching the repository.
*/
func TestService_List_DefaultLimit(t *testing.T) {
	repository := &fakeProductRepository{}
	service := newCatalogService(repository)

	_, err := service.List(context.Background(), catalog.Filter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultListLimit, repository.lastLimit)

	_, err = service.List(context.Background(), catalog.Filter{}, -5)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultListLimit, repository.lastLimit)

	_, err = service.List(context.Background(), catalog.Filter{}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, repository.lastLimit)
}

/*
TestService_Create_AdminGate verifies the service-level role check for
anonymous and customer callers.
*/
func TestService_Create_AdminGate(t *testing.T) {
	repository := &fakeProductRepository{}
	service := newCatalogService(repository)

	input := catalog.CreateInput{Title: "Chaise Scandinave", Price: 89.0, Category: "Meubles"}

	_, anonymousErr := service.Create(context.Background(), nil, input)
	_, customerErr := service.Create(context.Background(), &sec.Identity{UserID: "u1", Role: sec.RoleCustomer}, input)

	for _, err := range []error{anonymousErr, customerErr} {
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)
		assert.Equal(t, "Admin only", appError.Message)
	}
	assert.Empty(t, repository.products)

	id, err := service.Create(context.Background(), adminIdentity(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, repository.products, 1)
	assert.Equal(t, id, repository.products[0].ID.Hex())
}

/*
TestService_Create_Validation verifies field-level rules: required title
and category, non-negative price and stock, rating within 0-5.
*/
func TestService_Create_Validation(t *testing.T) {
	repository := &fakeProductRepository{}
	service := newCatalogService(repository)

	_, err := service.Create(context.Background(), adminIdentity(), catalog.CreateInput{
		Title:    "",
		Category: "",
		Price:    -1,
		Stock:    -3,
		Rating:   5.5,
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)

	failedFields := make(map[string]bool)
	for _, detail := range appError.Details {
		failedFields[detail.Field] = true
	}
	assert.True(t, failedFields[catalog.FieldTitle])
	assert.True(t, failedFields[catalog.FieldCategory])
	assert.True(t, failedFields[catalog.FieldPrice])
	assert.True(t, failedFields[catalog.FieldStock])
	assert.True(t, failedFields[catalog.FieldRating])

	assert.Empty(t, repository.products)
}

/*
TestService_Create_NormalizesImages verifies that an absent images field is
stored as an empty array, never null.
*/
func TestService_Create_NormalizesImages(t *testing.T) {
	repository := &fakeProductRepository{}
	service := newCatalogService(repository)

	_, err := service.Create(context.Background(), adminIdentity(), catalog.CreateInput{
		Title:       "Lampe de Bureau",
		Description: pointer.To("LED, trois intensités"),
		Price:       35.5,
		Category:    "Maison",
	})
	require.NoError(t, err)

	require.Len(t, repository.products, 1)
	stored := repository.products[0]
	require.NotNil(t, stored.Images)
	assert.Empty(t, stored.Images)
}

/*
TestService_Get verifies lookup behavior for known, unknown, and malformed ids.
*/
func TestService_Get(t *testing.T) {
	repository := &fakeProductRepository{}
	service := newCatalogService(repository)

	id, err := service.Create(context.Background(), adminIdentity(), catalog.CreateInput{
		Title: "Tapis de Yoga", Price: 25.0, Category: "Sport",
	})
	require.NoError(t, err)

	product, err := service.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Tapis de Yoga", product.Title)

	_, err = service.Get(context.Background(), primitive.NewObjectID().Hex())
	notFound := apperr.As(err)
	require.NotNil(t, notFound)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)

	_, err = service.Get(context.Background(), "not-a-hex-id")
	malformed := apperr.As(err)
	require.NotNil(t, malformed)
	assert.Equal(t, http.StatusBadRequest, malformed.HTTPStatus)
}
