/*
Package order provides the MongoDB implementation for the checkout data access.

Orders are written once at placement and read back by owner; there is no
update path here. History reads return documents in natural collection
order, matching how the storefront has always displayed them.

Driver errors are mapped to domain-friendly [apperr.AppError] types via dberr
to avoid leaking storage details.
*/
package order

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mercatolabs/mercato/internal/platform/apperr"
	"github.com/mercatolabs/mercato/internal/platform/database/schema"
	"github.com/mercatolabs/mercato/internal/platform/dberr"
)

// # MongoDB Repository

// orderRepository implements the [OrderRepository] interface using the
// official MongoDB driver.
type orderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository constructs a MongoDB backed order store.
func NewOrderRepository(database *mongo.Database) OrderRepository {
	return &orderRepository{collection: database.Collection(schema.Order.Collection)}
}

/*
Create persists a new order document and fills in the generated ObjectID.

Parameters:
  - context: context.Context
  - order: *Order

Returns:
  - error: Driver failures
*/
func (repository *orderRepository) Create(context context.Context, order *Order) error {
	result, err := repository.collection.InsertOne(context, order)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("mongo_order_repo_create_failed: %w", err), "Order")
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return apperr.Internal(fmt.Errorf("mongo_order_repo_create_failed: unexpected inserted id type %T", result.InsertedID))
	}
	order.ID = insertedID

	return nil
}

/*
ListByUserID returns orders owned by the given user, capped at limit.

Parameters:
  - context: context.Context
  - userID: string
  - limit: int

Returns:
  - []*Order: Matching orders, never nil
  - error: Driver failures
*/
func (repository *orderRepository) ListByUserID(context context.Context, userID string, limit int) ([]*Order, error) {
	query := bson.M{schema.Order.UserID: userID}

	cursor, err := repository.collection.Find(context, query, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("mongo_order_repo_list_failed: %w", err), "Order")
	}
	defer cursor.Close(context)

	// Pre-initialized so an empty history marshals as [] rather than null.
	orders := []*Order{}
	if err := cursor.All(context, &orders); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("mongo_order_repo_decode_failed: %w", err), "Order")
	}

	return orders, nil
}
