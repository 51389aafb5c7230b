/*
Package catalog provides the MongoDB implementation for the product data access.

It leans on the document model for a compact storefront query surface:
  - Substring Search: Anchors a case-insensitive $regex $or across title and
    description, with the user input quoted so regex metacharacters match
    literally.
  - Exact Filters: Category narrows results with a plain equality match.
  - Bulk Seeding: InsertMany writes the demo catalogue in one round-trip.

Driver errors are mapped to domain-friendly [apperr.AppError] types via dberr
to avoid leaking storage details.
*/
package catalog

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mercatolabs/mercato/internal/platform/apperr"
	"github.com/mercatolabs/mercato/internal/platform/database/schema"
	"github.com/mercatolabs/mercato/internal/platform/dberr"
	"github.com/mercatolabs/mercato/pkg/slice"
)

// # MongoDB Repository

// productRepository implements the [ProductRepository] interface using the
// official MongoDB driver.
type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository constructs a MongoDB backed product store.
func NewProductRepository(database *mongo.Database) ProductRepository {
	return &productRepository{collection: database.Collection(schema.Product.Collection)}
}

/*
List returns a filtered slice of products capped at limit.

Description: The substring query is regex-quoted before being handed to the
server, so "1L" or "C++" match literally instead of as patterns. Matching is
case-insensitive across both title and description.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int

Returns:
  - []*Product: Matching products, never nil
  - error: Driver failures
*/
func (repository *productRepository) List(context context.Context, filter Filter, limit int) ([]*Product, error) {
	query := bson.M{}

	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{schema.Product.Title: pattern},
			bson.M{schema.Product.Description: pattern},
		}
	}
	if filter.Category != "" {
		query[schema.Product.Category] = filter.Category
	}

	cursor, err := repository.collection.Find(context, query, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("mongo_product_repo_list_failed: %w", err), "Product")
	}
	defer cursor.Close(context)

	// Pre-initialized so an empty result marshals as [] rather than null.
	products := []*Product{}
	if err := cursor.All(context, &products); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("mongo_product_repo_decode_failed: %w", err), "Product")
	}

	return products, nil
}

/*
FindByID returns the product with the given ObjectID hex string.

Parameters:
  - context: context.Context
  - id: string (ObjectID hex)

Returns:
  - *Product: Hydrated entity
  - error: apperr.ValidationError for malformed ids, apperr.NotFound, or driver failures
*/
func (repository *productRepository) FindByID(context context.Context, id string) (*Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ValidationError("Invalid product id")
	}

	product := &Product{}
	err = repository.collection.FindOne(context, bson.M{schema.Product.ID: objectID}).Decode(product)
	if err != nil {
		return nil, dberr.Wrap(err, "Product")
	}

	return product, nil
}

/*
Create persists a new product document and fills in the generated ObjectID.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: Driver failures
*/
func (repository *productRepository) Create(context context.Context, product *Product) error {
	result, err := repository.collection.InsertOne(context, product)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("mongo_product_repo_create_failed: %w", err), "Product")
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return apperr.Internal(fmt.Errorf("mongo_product_repo_create_failed: unexpected inserted id type %T", result.InsertedID))
	}
	product.ID = insertedID

	return nil
}

/*
CreateMany bulk-inserts product documents and fills in their generated ObjectIDs.

Parameters:
  - context: context.Context
  - products: []*Product

Returns:
  - error: Driver failures
*/
func (repository *productRepository) CreateMany(context context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	documents := slice.Map(products, func(product *Product) interface{} { return product })
	result, err := repository.collection.InsertMany(context, documents)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("mongo_product_repo_create_many_failed: %w", err), "Product")
	}

	for index, rawID := range result.InsertedIDs {
		if insertedID, ok := rawID.(primitive.ObjectID); ok && index < len(products) {
			products[index].ID = insertedID
		}
	}

	return nil
}

/*
CountAll returns the total number of product documents.

Parameters:
  - context: context.Context

Returns:
  - int64: Document count
  - error: Driver failures
*/
func (repository *productRepository) CountAll(context context.Context) (int64, error) {
	count, err := repository.collection.CountDocuments(context, bson.M{})
	if err != nil {
		return 0, dberr.Wrap(fmt.Errorf("mongo_product_repo_count_failed: %w", err), "Product")
	}

	return count, nil
}
