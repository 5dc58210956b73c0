package pizzeriaserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

// OrdersAPI serves the staff side of the order lifecycle.
type OrdersAPI struct {
	service ordersports.Service
}

func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Get /v1/orders?status=
// Lists orders oldest first
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	var raw string
	if !bindQueryParam(c, "status", false, &raw) {
		return
	}
	filter := ordersports.ListFilter{}
	if raw != "" {
		status, err := ordersdomain.ParseStatus(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Status = status
	}
	orders, err := api.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /v1/orders/:id
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	api.handle(c, api.service.GetOrder)
}

// Post /v1/orders/:id/advance
// Moves the order one step along new, accepted, production, delivery, completed
func (api *OrdersAPI) AdvanceStatus(c *gin.Context) {
	api.handle(c, api.service.AdvanceStatus)
}

// Post /v1/orders/:id/cancel
func (api *OrdersAPI) CancelOrder(c *gin.Context) {
	api.handle(c, api.service.CancelOrder)
}

// Post /v1/orders/:id/payment/cash/confirm
func (api *OrdersAPI) ConfirmCashPayment(c *gin.Context) {
	api.handle(c, api.service.ConfirmCashPayment)
}

// Post /v1/orders/:id/payment/pix/confirm
// Called by the payment provider once the pix transfer settles
func (api *OrdersAPI) ConfirmPixPayment(c *gin.Context) {
	api.handle(c, api.service.ConfirmPixPayment)
}

func (api *OrdersAPI) handle(c *gin.Context, op func(ctx context.Context, id string) (*ordersdomain.Order, error)) {
	var id string
	if !bindPathParam(c, "id", &id) {
		return
	}
	order, err := op(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}
