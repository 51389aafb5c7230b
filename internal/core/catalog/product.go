// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

/*
Package catalog defines the product domain for the Mercato storefront.

It manages the sellable inventory: listing and filtering products, fetching
individual records, and admin-side product creation.

Core Responsibility:

  - Browsing: Substring search on title/description plus exact category filtering.
  - Bootstrap: Seeds a small demo catalogue the first time an empty store is listed.
  - Curation: Admin-only product creation with strict field validation.

This package acts as the source of truth for all product-related data models.
*/
package catalog

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mercatolabs/mercato/pkg/pointer"
)

// # Core Entities

// Product is the central aggregate of the catalog domain.
// It represents a single sellable item in the storefront.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description *string            `bson:"description,omitempty" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Images      []string           `bson:"images" json:"images"`
	Stock       int                `bson:"stock" json:"stock"`
	Rating      float64            `bson:"rating" json:"rating"` // Average review score, 0 to 5
}

// # Search & Filtering

// Filter holds the parameters for a filtered product list query.
type Filter struct {
	Query    string `json:"q,omitempty"`        // Case-insensitive substring match on title/description
	Category string `json:"category,omitempty"` // Exact category match
}

// DefaultListLimit caps product listings when the client does not ask
// for a specific page size.
const DefaultListLimit = 20

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldImages      = "images"
	FieldStock       = "stock"
	FieldRating      = "rating"
)

// # Demo Catalogue

// DemoCatalog returns the starter products inserted into an empty store.
// Each call returns fresh copies so callers may mutate them freely.
func DemoCatalog() []*Product {
	return []*Product{
		{
			Title:       "T-shirt Bio Confort",
			Description: pointer.To("Coton bio ultra doux, coupe moderne"),
			Price:       24.9,
			Category:    "Vêtements",
			Images:      []string{"https://images.unsplash.com/photo-1520975682031-a6c2b9d8b5f4?w=1200&q=80"},
			Stock:       120,
			Rating:      4.6,
		},
		{
			Title:       "Casque Sans Fil Pro",
			Description: pointer.To("Réduction de bruit active, 30h d'autonomie"),
			Price:       129.0,
			Category:    "Electronique",
			Images:      []string{"https://images.unsplash.com/photo-1518443206315-4e1dff4a1f0f?w=1200&q=80"},
			Stock:       42,
			Rating:      4.7,
		},
		{
			Title:       "Gourde Isotherme 1L",
			Description: pointer.To("Inox double paroi, garde au frais 24h"),
			Price:       19.9,
			Category:    "Sport",
			Images:      []string{"https://images.unsplash.com/photo-1563371351-e53ebb744a1f?w=1200&q=80"},
			Stock:       300,
			Rating:      4.5,
		},
	}
}
