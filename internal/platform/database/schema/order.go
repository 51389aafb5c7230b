package schema

// OrderCollection describes the 'order' collection document layout.
type OrderCollection struct {
	Collection   string
	ID           string
	UserID       string
	Items        string
	Subtotal     string
	Shipping     string
	Total        string
	Status       string
	PaymentID    string
	ShippingInfo string
}

// Order is the schema definition for the order collection.
var Order = OrderCollection{
	Collection:   "order",
	ID:           "_id",
	UserID:       "user_id",
	Items:        "items",
	Subtotal:     "subtotal",
	Shipping:     "shipping",
	Total:        "total",
	Status:       "status",
	PaymentID:    "payment_id",
	ShippingInfo: "shipping_info",
}

// Fields returns all document field names, excluding the store-assigned id.
func (c OrderCollection) Fields() []string {
	return []string{c.UserID, c.Items, c.Subtotal, c.Shipping, c.Total, c.Status, c.PaymentID, c.ShippingInfo}
}

// JSONSchema returns the JSON Schema document for order records, as served
// by the GET /schema contract-introspection endpoint.
func (c OrderCollection) JSONSchema() map[string]any {
	return map[string]any{
		"title":       "Order",
		"description": "Placed order document. Collection name: \"order\".",
		"type":        "object",
		"$defs": map[string]any{
			"OrderItem": map[string]any{
				"title": "OrderItem",
				"type":  "object",
				"properties": map[string]any{
					"product_id": map[string]any{"title": "Product Id", "type": "string", "description": "Product ObjectId as string"},
					"title":      map[string]any{"title": "Title", "type": "string"},
					"price":      map[string]any{"title": "Price", "type": "number"},
					"quantity":   map[string]any{"title": "Quantity", "type": "integer", "minimum": 1},
					"image":      map[string]any{"title": "Image", "type": []string{"string", "null"}},
				},
				"required": []string{"product_id", "title", "price", "quantity"},
			},
			"ShippingInfo": map[string]any{
				"title": "ShippingInfo",
				"type":  "object",
				"properties": map[string]any{
					"full_name":   map[string]any{"title": "Full Name", "type": "string"},
					"address":     map[string]any{"title": "Address", "type": "string"},
					"city":        map[string]any{"title": "City", "type": "string"},
					"postal_code": map[string]any{"title": "Postal Code", "type": "string"},
					"country":     map[string]any{"title": "Country", "type": "string"},
				},
				"required": []string{"full_name", "address", "city", "postal_code", "country"},
			},
		},
		"properties": map[string]any{
			c.UserID:       map[string]any{"title": "User Id", "type": "string", "description": "User ObjectId as string, or the literal \"guest\""},
			c.Items:        map[string]any{"title": "Items", "type": "array", "items": map[string]any{"$ref": "#/$defs/OrderItem"}},
			c.Subtotal:     map[string]any{"title": "Subtotal", "type": "number", "minimum": 0},
			c.Shipping:     map[string]any{"title": "Shipping", "type": "number", "minimum": 0, "default": 0},
			c.Total:        map[string]any{"title": "Total", "type": "number", "minimum": 0},
			c.Status:       map[string]any{"title": "Status", "type": "string", "default": "pending", "description": "pending | paid | shipped | delivered | cancelled"},
			c.PaymentID:    map[string]any{"title": "Payment Id", "type": []string{"string", "null"}, "description": "External payment reference"},
			c.ShippingInfo: map[string]any{"$ref": "#/$defs/ShippingInfo"},
		},
		"required": []string{c.UserID, c.Items, c.Subtotal, c.Total, c.ShippingInfo},
	}
}
