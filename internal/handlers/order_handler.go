package handlers

import (
	"net/http"
	"strconv"

	"github.com/agamariel/transsupply/internal/auth"
	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/services"
	"github.com/labstack/echo/v4"
)

// OrderHandler обрабатывает HTTP-запросы для работы с заказами.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler создаёт новый экземпляр OrderHandler.
func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// List обрабатывает GET /api/orders.
func (h *OrderHandler) List(c echo.Context) error {
	p, err := auth.GetPrincipalFromContext(c)
	if err != nil {
		return err
	}

	filter := models.OrderFilter{
		Query:    c.QueryParam("q"),
		ClientID: c.QueryParam("client_id"),
	}
	if s := c.QueryParam("status"); s != "" {
		status, err := models.ParseOrderStatus(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.Status = status
	}

	return c.JSON(http.StatusOK, toResponses(h.orderService.ListOrders(p, filter)))
}

// Get обрабатывает GET /api/orders/:id. Чужой заказ для клиента выглядит как отсутствующий.
func (h *OrderHandler) Get(c echo.Context) error {
	p, err := auth.GetPrincipalFromContext(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		return serviceError(c, err, "failed to get order")
	}
	if !services.CanView(p, order) {
		return echo.NewHTTPError(http.StatusNotFound, services.ErrOrderNotFound.Error())
	}

	return c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// Create обрабатывает POST /api/orders.
func (h *OrderHandler) Create(c echo.Context) error {
	var req models.OrderInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "failed to create order")
	}

	return c.JSON(http.StatusCreated, models.NewOrderResponse(order))
}

// Update обрабатывает PATCH /api/orders/:id.
func (h *OrderHandler) Update(c echo.Context) error {
	var patch models.OrderPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	order, err := h.orderService.UpdateOrder(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return serviceError(c, err, "failed to update order")
	}

	return c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// SetStatus обрабатывает PUT /api/orders/:id/status.
func (h *OrderHandler) SetStatus(c echo.Context) error {
	var req models.SetStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return serviceError(c, err, "failed to set order status")
	}

	return c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// Delete обрабатывает DELETE /api/orders/:id. Удаление отсутствующего заказа успешно.
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orderService.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err, "failed to delete order")
	}
	return c.NoContent(http.StatusNoContent)
}

// AddPackage обрабатывает POST /api/orders/:id/packages.
func (h *OrderHandler) AddPackage(c echo.Context) error {
	var req models.PackageInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.AddPackageToOrder(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(c, err, "failed to add package")
	}

	return c.JSON(http.StatusCreated, models.NewOrderResponse(order))
}

// RemovePackage обрабатывает DELETE /api/orders/:id/packages/:packageID.
func (h *OrderHandler) RemovePackage(c echo.Context) error {
	order, err := h.orderService.RemovePackageFromOrder(c.Request().Context(), c.Param("id"), c.Param("packageID"))
	if err != nil {
		return serviceError(c, err, "failed to remove package")
	}

	return c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// AddPhoto обрабатывает POST /api/orders/:id/photos.
func (h *OrderHandler) AddPhoto(c echo.Context) error {
	var req models.AddPhotoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.AddPhoto(c.Request().Context(), c.Param("id"), req.URI)
	if err != nil {
		return serviceError(c, err, "failed to add photo")
	}

	return c.JSON(http.StatusCreated, models.NewOrderResponse(order))
}

// RemovePhoto обрабатывает DELETE /api/orders/:id/photos/:index.
func (h *OrderHandler) RemovePhoto(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid photo index")
	}

	order, err := h.orderService.RemovePhoto(c.Request().Context(), c.Param("id"), index)
	if err != nil {
		return serviceError(c, err, "failed to remove photo")
	}

	return c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// Stats обрабатывает GET /api/stats.
func (h *OrderHandler) Stats(c echo.Context) error {
	p, err := auth.GetPrincipalFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.orderService.Stats(p))
}

// Statuses обрабатывает GET /api/statuses.
func (h *OrderHandler) Statuses(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Pipeline())
}

func toResponses(orders []*models.Order) []*models.OrderResponse {
	resp := make([]*models.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, models.NewOrderResponse(o))
	}
	return resp
}
