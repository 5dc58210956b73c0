package pizzeriaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartports "github.com/Apurer/go-gin-pizzeria/internal/domains/cart/ports"
	catalogmapper "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/adapters/http/mapper"
	ordermapper "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/http/mapper"
	apierrors "github.com/Apurer/go-gin-pizzeria/internal/shared/errors"
)

// Cart is the transport shape of a session cart.
type Cart struct {
	SessionID string               `json:"sessionId"`
	Items     []catalogmapper.Line `json:"items"`
	Total     string               `json:"total"`
}

// QuantityUpdate is the body of a quantity change. Zero or less removes the line.
type QuantityUpdate struct {
	BaseItemID string `json:"baseItemId" binding:"required"`
	Size       string `json:"size" binding:"required"`
	Quantity   int    `json:"quantity"`
}

// CartAPI serves session carts and checkout.
type CartAPI struct {
	service cartports.Service
}

func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

func fromView(view cartports.View) Cart {
	return Cart{SessionID: view.SessionID, Items: catalogmapper.FromLines(view.Lines), Total: view.Total.StringFixed(2)}
}

// Get /v1/carts/:sessionId
func (api *CartAPI) ViewCart(c *gin.Context) {
	var sessionID string
	if !bindPathParam(c, "sessionId", &sessionID) {
		return
	}
	view, err := api.service.View(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromView(view))
}

// Delete /v1/carts/:sessionId
func (api *CartAPI) ClearCart(c *gin.Context) {
	var sessionID string
	if !bindPathParam(c, "sessionId", &sessionID) {
		return
	}
	if err := api.service.Clear(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/carts/:sessionId/items
// Composes a line and merges it into the cart by item and size
func (api *CartAPI) AddItem(c *gin.Context) {
	var sessionID string
	if !bindPathParam(c, "sessionId", &sessionID) {
		return
	}
	var payload catalogmapper.ComposeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	view, err := api.service.AddItem(c.Request.Context(), sessionID, catalogmapper.ToComposeInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromView(view))
}

// Patch /v1/carts/:sessionId/items
func (api *CartAPI) UpdateItem(c *gin.Context) {
	var sessionID string
	if !bindPathParam(c, "sessionId", &sessionID) {
		return
	}
	var payload QuantityUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	key, err := catalogmapper.ToLineKey(payload.BaseItemID, payload.Size)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	view, err := api.service.UpdateQuantity(c.Request.Context(), sessionID, key, payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromView(view))
}

// Delete /v1/carts/:sessionId/items?id=&size=
func (api *CartAPI) RemoveItem(c *gin.Context) {
	var sessionID, itemID, size string
	if !bindPathParam(c, "sessionId", &sessionID) ||
		!bindQueryParam(c, "id", true, &itemID) ||
		!bindQueryParam(c, "size", true, &size) {
		return
	}
	key, err := catalogmapper.ToLineKey(itemID, size)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	view, err := api.service.RemoveItem(c.Request.Context(), sessionID, key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromView(view))
}

// Post /v1/carts/:sessionId/checkout
// Submits the cart as an order and clears it on success
func (api *CartAPI) Checkout(c *gin.Context) {
	var sessionID string
	if !bindPathParam(c, "sessionId", &sessionID) {
		return
	}
	var payload ordermapper.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	payment, card, err := ordermapper.ToDomainPayment(payload.Payment)
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := api.service.Checkout(c.Request.Context(), sessionID, cartports.CheckoutInput{
		Customer: ordermapper.ToDomainCustomer(payload.Customer),
		Payment:  payment,
		Card:     card,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}
