// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

// End-to-end coverage of the assembled router: real middleware chain and
// token service, fake repositories, mock payment gateway.
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mercatolabs/mercato/internal/api"
	"github.com/mercatolabs/mercato/internal/core/catalog"
	"github.com/mercatolabs/mercato/internal/core/order"
	"github.com/mercatolabs/mercato/internal/core/payment"
	"github.com/mercatolabs/mercato/internal/platform/apperr"
	"github.com/mercatolabs/mercato/internal/platform/config"
	"github.com/mercatolabs/mercato/internal/platform/constants"
	"github.com/mercatolabs/mercato/internal/platform/sec"
	"github.com/mercatolabs/mercato/internal/users/auth"
)

// # In-Memory Stores

type fakeUserRepository struct {
	byEmail map[string]*auth.User
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := f.byEmail[email]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range f.byEmail {
		if user.ID.Hex() == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	user.ID = primitive.NewObjectID()
	clone := *user
	f.byEmail[user.Email] = &clone
	return nil
}

type fakeProductRepository struct {
	products []*catalog.Product
}

func (f *fakeProductRepository) List(_ context.Context, filter catalog.Filter, limit int) ([]*catalog.Product, error) {
	matches := []*catalog.Product{}
	for _, product := range f.products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(product.Title), strings.ToLower(filter.Query)) {
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

type fakeOrderRepository struct {
	orders []*order.Order
}

func (f *fakeOrderRepository) Create(_ context.Context, placed *order.Order) error {
	placed.ID = primitive.NewObjectID()
	clone := *placed
	f.orders = append(f.orders, &clone)
	return nil
}

func (f *fakeOrderRepository) ListByUserID(_ context.Context, userID string, limit int) ([]*order.Order, error) {
	matches := []*order.Order{}
	for _, placed := range f.orders {
		if placed.UserID != userID {
			continue
		}
		clone := *placed
		matches = append(matches, &clone)
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// # Test Harness

type testEnv struct {
	handler  http.Handler
	tokens   *sec.TokenService
	users    *fakeUserRepository
	products *fakeProductRepository
	orders   *fakeOrderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenService, err := sec.NewTokenService("e2e-test-secret", constants.AuthIssuer)
	require.NoError(t, err)

	users := &fakeUserRepository{byEmail: make(map[string]*auth.User)}
	products := &fakeProductRepository{}
	orders := &fakeOrderRepository{}

	root, diagnostic := api.NewOperationalHandlers(api.DiagnosticDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		ListCollections: func(context.Context) ([]string, error) {
			return []string{"user", "product", "order"}, nil
		},
		DatabaseURLSet:  true,
		DatabaseNameSet: true,
	}, logger)

	handlers := api.Handlers{
		Root:       root,
		Schema:     api.NewSchemaHandler(),
		Diagnostic: diagnostic,
		Auth:       auth.NewHandler(auth.NewService(users, tokenService)),
		Catalog:    catalog.NewHandler(catalog.NewService(products, logger)),
		Order:      order.NewHandler(order.NewService(orders, logger)),
		Payment:    payment.NewHandler(payment.NewService(payment.NewMockGateway(), logger)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "test"}
	server := api.NewServer(ctx, cfg, logger, tokenService, handlers)

	return &testEnv{
		handler:  server.Handler(),
		tokens:   tokenService,
		users:    users,
		products: products,
		orders:   orders,
	}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	env.handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target), "body: %s", recorder.Body.String())
}

type authPayload struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"user"`
}

type errorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (env *testEnv) register(t *testing.T, name, email, password string) authPayload {
	t.Helper()

	recorder := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, recorder.Code, "body: %s", recorder.Body.String())

	var payload authPayload
	decodeJSON(t, recorder, &payload)
	return payload
}

// adminToken provisions an admin the way operations does: the account is
// promoted directly in the store, then logs in for a fresh token.
func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	env.register(t, "Root Admin", "admin@mercato.app", "adminpass")
	env.users.byEmail["admin@mercato.app"].Role = sec.RoleAdmin

	recorder := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@mercato.app", "password": "adminpass",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload authPayload
	decodeJSON(t, recorder, &payload)
	require.Equal(t, string(sec.RoleAdmin), payload.User.Role)
	return payload.Token
}

func validOrderBody() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product_id": primitive.NewObjectID().Hex(), "title": "Casque Sans Fil Pro", "price": 129.0, "quantity": 1},
		},
		"subtotal": 129.0,
		"shipping": 0,
		"total":    129.0,
		"shipping_info": map[string]string{
			"full_name":   "Ana Duarte",
			"address":     "12 rue des Lilas",
			"city":        "Lyon",
			"postal_code": "69003",
			"country":     "FR",
		},
	}
}

// # Operational Endpoints

func TestRootMessage(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	decodeJSON(t, recorder, &body)
	assert.Equal(t, "E-commerce API is running", body["message"])
}

func TestSchemaEndpoint(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/schema", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]map[string]any
	decodeJSON(t, recorder, &body)

	require.Contains(t, body, "user")
	require.Contains(t, body, "product")
	require.Contains(t, body, "order")

	assert.Equal(t, "Product", body["product"]["title"])
	assert.Contains(t, body["order"], "$defs")
	properties, ok := body["user"]["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "password_hash")
}

func TestDiagnosticEndpoint(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/test", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Backend          string   `json:"backend"`
		Database         string   `json:"database"`
		DatabaseURL      string   `json:"database_url"`
		DatabaseName     string   `json:"database_name"`
		ConnectionStatus string   `json:"connection_status"`
		Collections      []string `json:"collections"`
	}
	decodeJSON(t, recorder, &body)

	assert.Equal(t, "✅ Running", body.Backend)
	assert.Equal(t, "✅ Connected & Working", body.Database)
	assert.Equal(t, "✅ Set", body.DatabaseURL)
	assert.Equal(t, "✅ Set", body.DatabaseName)
	assert.Equal(t, "Connected", body.ConnectionStatus)
	assert.Equal(t, []string{"user", "product", "order"}, body.Collections)
}

// # Authentication Flows

func TestRegisterLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	registered := env.register(t, "Ana", "ana@example.com", "s3cret-pass")
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "customer", registered.User.Role)

	// The issued token verifies against the live verifier
	identity, err := env.tokens.VerifyToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.UserID)

	// Wrong password is a uniform 400
	recorder := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var failure errorPayload
	decodeJSON(t, recorder, &failure)
	assert.Equal(t, "Invalid credentials", failure.Error)

	// Correct password issues a fresh token
	recorder = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Ana", "ana@example.com", "s3cret-pass")

	recorder := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Imposter", "email": "ana@example.com", "password": "other-pass",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var failure errorPayload
	decodeJSON(t, recorder, &failure)
	assert.Equal(t, "CONFLICT", failure.Code)
	assert.Equal(t, "Email already registered", failure.Error)
}

// # Catalog Flows

func TestCatalogListSeedsOnce(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var first []catalog.Product
	decodeJSON(t, recorder, &first)
	require.Len(t, first, 3)

	recorder = env.do(t, http.MethodGet, "/api/products", "", nil)
	var second []catalog.Product
	decodeJSON(t, recorder, &second)

	// Identical set, not a second seeding
	assert.Equal(t, first, second)
	assert.Len(t, env.products.products, 3)

	// Single product fetch round-trips through the same id
	recorder = env.do(t, http.MethodGet, "/api/products/"+first[0].ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var fetched catalog.Product
	decodeJSON(t, recorder, &fetched)
	assert.Equal(t, first[0].Title, fetched.Title)
}

func TestCatalogGetErrors(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/api/products/not-a-hex-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var malformed errorPayload
	decodeJSON(t, recorder, &malformed)
	assert.Equal(t, "Invalid product id", malformed.Error)

	recorder = env.do(t, http.MethodGet, "/api/products/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var missing errorPayload
	decodeJSON(t, recorder, &missing)
	assert.Equal(t, "Product not found", missing.Error)
}

func TestAdminProductCreation(t *testing.T) {
	env := newTestEnv(t)

	productBody := map[string]any{
		"title":    "Chaise Scandinave",
		"price":    89.0,
		"category": "Meubles",
		"stock":    12,
		"rating":   4.2,
	}

	// No token: 401 before the handler runs
	recorder := env.do(t, http.MethodPost, "/api/admin/products", "", productBody)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var unauthenticated errorPayload
	decodeJSON(t, recorder, &unauthenticated)
	assert.Equal(t, "Missing Authorization header", unauthenticated.Error)

	// Customer token: 403 with the pinned denial
	customer := env.register(t, "Ana", "ana@example.com", "s3cret-pass")
	recorder = env.do(t, http.MethodPost, "/api/admin/products", customer.Token, productBody)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	var denied errorPayload
	decodeJSON(t, recorder, &denied)
	assert.Equal(t, "Admin only", denied.Error)

	// Admin token: 200 with the new id
	recorder = env.do(t, http.MethodPost, "/api/admin/products", env.adminToken(t), productBody)
	require.Equal(t, http.StatusOK, recorder.Code, "body: %s", recorder.Body.String())

	var created map[string]string
	decodeJSON(t, recorder, &created)
	require.NotEmpty(t, created["id"])

	fetched, err := env.products.FindByID(context.Background(), created["id"])
	require.NoError(t, err)
	assert.Equal(t, "Chaise Scandinave", fetched.Title)
}

// # Checkout Flows

func TestOrderPlacementOwnership(t *testing.T) {
	env := newTestEnv(t)

	// No token at all falls back to the "guest" owner
	recorder := env.do(t, http.MethodPost, "/api/orders", "", validOrderBody())
	require.Equal(t, http.StatusOK, recorder.Code, "body: %s", recorder.Body.String())

	var acknowledged struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeJSON(t, recorder, &acknowledged)
	assert.NotEmpty(t, acknowledged.ID)
	assert.Equal(t, "created", acknowledged.Status)

	require.Len(t, env.orders.orders, 1)
	assert.Equal(t, order.GuestUserID, env.orders.orders[0].UserID)
	assert.Equal(t, order.StatusPending, env.orders.orders[0].Status)

	// A verified identity owns the order even when the payload claims otherwise
	customer := env.register(t, "Ana", "ana@example.com", "s3cret-pass")
	body := validOrderBody()
	body["user_id"] = "someone-else"

	recorder = env.do(t, http.MethodPost, "/api/orders", customer.Token, body)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.Len(t, env.orders.orders, 2)
	assert.Equal(t, customer.User.ID, env.orders.orders[1].UserID)
}

func TestOrderGuestSentinelHeader(t *testing.T) {
	env := newTestEnv(t)

	encoded, err := json.Marshal(validOrderBody())
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(encoded))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(constants.HeaderAuthorization, "Bearer guest-token")

	recorder := httptest.NewRecorder()
	env.handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code, "body: %s", recorder.Body.String())
	require.Len(t, env.orders.orders, 1)
	assert.Equal(t, order.GuestUserID, env.orders.orders[0].UserID)
}

func TestOrderRejectsEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	body := validOrderBody()
	body["items"] = []map[string]any{}

	recorder := env.do(t, http.MethodPost, "/api/orders", "", body)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var failure errorPayload
	decodeJSON(t, recorder, &failure)
	assert.Equal(t, "Invalid order", failure.Error)
	assert.Empty(t, env.orders.orders)
}

func TestOrderHistoryRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/api/orders/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var failure errorPayload
	decodeJSON(t, recorder, &failure)
	assert.Equal(t, "Missing Authorization header", failure.Error)

	// Tampered token is refused with the uniform message
	recorder = env.do(t, http.MethodGet, "/api/orders/mine", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	decodeJSON(t, recorder, &failure)
	assert.Equal(t, "Invalid or expired token", failure.Error)
}

func TestOrderHistoryScopedToOwner(t *testing.T) {
	env := newTestEnv(t)

	ana := env.register(t, "Ana", "ana@example.com", "s3cret-pass")
	ben := env.register(t, "Ben", "ben@example.com", "s3cret-pass")

	recorder := env.do(t, http.MethodPost, "/api/orders", ana.Token, validOrderBody())
	require.Equal(t, http.StatusOK, recorder.Code)
	recorder = env.do(t, http.MethodPost, "/api/orders", ben.Token, validOrderBody())
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.do(t, http.MethodGet, "/api/orders/mine", ana.Token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var mine []order.Order
	decodeJSON(t, recorder, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, ana.User.ID, mine[0].UserID)
}

// # Payment Flows

func TestCheckoutMockSecret(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodPost, "/api/checkout/create-payment-intent", "", map[string]any{
		"amount": 2490, "currency": "usd",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	decodeJSON(t, recorder, &body)
	assert.Equal(t, payment.MockClientSecret, body["clientSecret"])
}
