package pizzeriaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context.
type ApiHandleFunctions struct {
	StorefrontAPI StorefrontAPI
	CatalogAPI    CatalogAPI
	CartAPI       CartAPI
	OrdersAPI     OrdersAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewInstrumentedRouter returns a router whose tracing middleware is installed
// before any route, so every handler runs inside a server span.
func NewInstrumentedRouter(handleFunctions ApiHandleFunctions, serviceName string, opts ...otelgin.Option) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), otelgin.Middleware(serviceName, opts...))
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"GetStorefrontStatus", http.MethodGet, "/v1/storefront/status", h.StorefrontAPI.GetStatus},
		{"GetStorefrontSchedule", http.MethodGet, "/v1/storefront/schedule", h.StorefrontAPI.GetSchedule},
		{"UpdateStorefrontSchedule", http.MethodPut, "/v1/storefront/schedule", h.StorefrontAPI.UpdateSchedule},
		{"ListCatalog", http.MethodGet, "/v1/catalog", h.CatalogAPI.ListCatalog},
		{"ListAdditions", http.MethodGet, "/v1/catalog/additions", h.CatalogAPI.ListAdditions},
		{"ViewCart", http.MethodGet, "/v1/carts/:sessionId", h.CartAPI.ViewCart},
		{"ClearCart", http.MethodDelete, "/v1/carts/:sessionId", h.CartAPI.ClearCart},
		{"AddCartItem", http.MethodPost, "/v1/carts/:sessionId/items", h.CartAPI.AddItem},
		{"UpdateCartItem", http.MethodPatch, "/v1/carts/:sessionId/items", h.CartAPI.UpdateItem},
		{"RemoveCartItem", http.MethodDelete, "/v1/carts/:sessionId/items", h.CartAPI.RemoveItem},
		{"Checkout", http.MethodPost, "/v1/carts/:sessionId/checkout", h.CartAPI.Checkout},
		{"ListOrders", http.MethodGet, "/v1/orders", h.OrdersAPI.ListOrders},
		{"GetOrder", http.MethodGet, "/v1/orders/:id", h.OrdersAPI.GetOrder},
		{"AdvanceOrder", http.MethodPost, "/v1/orders/:id/advance", h.OrdersAPI.AdvanceStatus},
		{"CancelOrder", http.MethodPost, "/v1/orders/:id/cancel", h.OrdersAPI.CancelOrder},
		{"ConfirmCashPayment", http.MethodPost, "/v1/orders/:id/payment/cash/confirm", h.OrdersAPI.ConfirmCashPayment},
		{"ConfirmPixPayment", http.MethodPost, "/v1/orders/:id/payment/pix/confirm", h.OrdersAPI.ConfirmPixPayment},
	}
}
