/*
Package catalog provides the HTTP interface for browsing and managing the storefront.

It exposes endpoints for listing products, retrieving single records, and
creating new entries by authorised personnel.

# Routing Strategy

  - Public: Discovery endpoints accessible to all visitors (GET /products).
  - Restricted: Mutative endpoints requiring the Admin role (POST /admin/products).

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mercatolabs/mercato/internal/platform/middleware"
	requestutil "github.com/mercatolabs/mercato/internal/platform/request"
	"github.com/mercatolabs/mercato/internal/platform/respond"
	"github.com/mercatolabs/mercato/internal/platform/sec"
	"github.com/mercatolabs/mercato/internal/platform/validate"
)

// # Handler Implementation

// Handler implements catalogue-related HTTP endpoints.
type Handler struct {
	catalogService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{catalogService: service}
}

// Routes returns a [chi.Router] with the public catalogue endpoints.
//
// # Endpoints
//   - GET /      : Lists products with optional q/category/limit filters.
//   - GET /{id}  : Retrieves one product by id.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	return router
}

// AdminRoutes returns a [chi.Router] with the restricted catalogue endpoints.
// Every route requires a verified identity carrying the admin role.
func (handler *Handler) AdminRoutes(requireAuth func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Use(requireAuth)
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/", handler.create)

	return router
}

// # Request Payloads

type createProductRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	Rating      float64  `json:"rating"`
}

/*
list returns the filtered product collection as a bare JSON array.

GET /api/products?q=&category=&limit=

Description: Seeds the demo catalogue on first contact with an empty store,
then applies the substring/category filters. The limit parameter is clamped
to the default when missing or non-positive.

Response:
  - 200: []Product
  - 400: Malformed limit parameter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	limit, err := requestutil.QueryInt(request, "limit", DefaultListLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		Query:    requestutil.Query(request, "q"),
		Category: requestutil.Query(request, "category"),
	}

	products, err := handler.catalogService.List(request.Context(), filter, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products)
}

/*
get returns a single product document.

GET /api/products/{id}

Response:
  - 200: Product
  - 400: "Invalid product id" for malformed ObjectID hex
  - 404: "Product not found"
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.catalogService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
create persists a new product on behalf of an administrator.

POST /api/admin/products

Request:
  - Body: createProductRequest

Response:
  - 200: {"id": "<hex>"}
  - 400: ErrInvalidJSON or field validation failures
  - 401: Missing/invalid token (middleware)
  - 403: "Admin only" for non-admin callers
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createProductRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	id, err := handler.catalogService.Create(request.Context(), requestutil.Identity(request), CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Images:      input.Images,
		Stock:       input.Stock,
		Rating:      input.Rating,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"id": id})
}
