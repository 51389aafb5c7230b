package schema

// UserCollection describes the 'user' collection document layout.
type UserCollection struct {
	Collection   string
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         string
	IsActive     string
}

// User is the schema definition for the user collection.
var User = UserCollection{
	Collection:   "user",
	ID:           "_id",
	Name:         "name",
	Email:        "email",
	PasswordHash: "password_hash",
	Address:      "address",
	Role:         "role",
	IsActive:     "is_active",
}

// Fields returns all document field names, excluding the store-assigned id.
func (c UserCollection) Fields() []string {
	return []string{c.Name, c.Email, c.PasswordHash, c.Address, c.Role, c.IsActive}
}

// JSONSchema returns the JSON Schema document for user records, as served
// by the GET /schema contract-introspection endpoint.
func (c UserCollection) JSONSchema() map[string]any {
	return map[string]any{
		"title":       "User",
		"description": "Account document. Collection name: \"user\".",
		"type":        "object",
		"properties": map[string]any{
			c.Name:         map[string]any{"title": "Name", "type": "string", "description": "Full name"},
			c.Email:        map[string]any{"title": "Email", "type": "string", "format": "email", "description": "Email address"},
			c.PasswordHash: map[string]any{"title": "Password Hash", "type": "string", "description": "Password hash (server-side)"},
			c.Address:      map[string]any{"title": "Address", "type": []string{"string", "null"}, "description": "Primary shipping address"},
			c.Role:         map[string]any{"title": "Role", "type": "string", "default": "customer", "description": "Role: customer | admin"},
			c.IsActive:     map[string]any{"title": "Is Active", "type": "boolean", "default": true, "description": "Whether user is active"},
		},
		"required": []string{c.Name, c.Email, c.PasswordHash},
	}
}
