package rest

import (
	"context"
	"foodRanking/domain"
	"foodRanking/pkg/logger"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		ordersService OrdersService
	}

	OrdersService interface {
		GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
		MarkDelivered(ctx context.Context, orderID uuid.UUID, deliveredAt time.Time) (domain.Order, error)
	}

	// DeliveredInput is optional; an empty body means delivered now.
	DeliveredInput struct {
		DeliveredAt *time.Time `json:"delivered_at"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
	}
}

// GET /api/v1/orders/:id
func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}

	order, err := h.ordersService.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		logger.Error("Failed to get order", "order_id", orderID, "error", err)
		return errorJSON(c, err)
	}

	userID, _ := currentUser(c)
	if !isAdmin(c) && order.CustomerID != userID {
		return c.JSON(http.StatusForbidden, ResponseError{Message: "you can only access your own orders"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

// PUT /api/v1/orders/:id/delivered
func (h *OrdersHandler) MarkDelivered(c echo.Context) error {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}

	var request DeliveredInput
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&request); err != nil {
			logger.Error("Invalid request body", "error", err)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
	}

	deliveredAt := time.Now().UTC()
	if request.DeliveredAt != nil {
		deliveredAt = request.DeliveredAt.UTC()
	}

	order, err := h.ordersService.MarkDelivered(c.Request().Context(), orderID, deliveredAt)
	if err != nil {
		logger.Error("Failed to mark order delivered", "order_id", orderID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
