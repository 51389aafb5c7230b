package schema

// ProductCollection describes the 'product' collection document layout.
type ProductCollection struct {
	Collection  string
	ID          string
	Title       string
	Description string
	Price       string
	Category    string
	Images      string
	Stock       string
	Rating      string
}

// Product is the schema definition for the product collection.
var Product = ProductCollection{
	Collection:  "product",
	ID:          "_id",
	Title:       "title",
	Description: "description",
	Price:       "price",
	Category:    "category",
	Images:      "images",
	Stock:       "stock",
	Rating:      "rating",
}

// Fields returns all document field names, excluding the store-assigned id.
func (c ProductCollection) Fields() []string {
	return []string{c.Title, c.Description, c.Price, c.Category, c.Images, c.Stock, c.Rating}
}

// JSONSchema returns the JSON Schema document for product records, as served
// by the GET /schema contract-introspection endpoint.
func (c ProductCollection) JSONSchema() map[string]any {
	return map[string]any{
		"title":       "Product",
		"description": "Catalog document. Collection name: \"product\".",
		"type":        "object",
		"properties": map[string]any{
			c.Title:       map[string]any{"title": "Title", "type": "string", "description": "Product title"},
			c.Description: map[string]any{"title": "Description", "type": []string{"string", "null"}, "description": "Product description"},
			c.Price:       map[string]any{"title": "Price", "type": "number", "minimum": 0, "description": "Price in dollars"},
			c.Category:    map[string]any{"title": "Category", "type": "string", "description": "Product category"},
			c.Images:      map[string]any{"title": "Images", "type": "array", "items": map[string]any{"type": "string"}, "description": "Image URLs"},
			c.Stock:       map[string]any{"title": "Stock", "type": "integer", "minimum": 0, "default": 0, "description": "Units in stock"},
			c.Rating:      map[string]any{"title": "Rating", "type": "number", "minimum": 0, "maximum": 5, "default": 0, "description": "Average rating 0-5"},
		},
		"required": []string{c.Title, c.Price, c.Category},
	}
}
