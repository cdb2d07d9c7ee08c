package handlers

import (
	"context"
	"net/http"

	"github.com/agamariel/transsupply/internal/auth"
	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/services"
	"github.com/labstack/echo/v4"
)

// ClientHandler обрабатывает справочник клиентов.
type ClientHandler struct {
	orderService services.OrderService
	userService  services.UserService
}

// NewClientHandler создаёт новый экземпляр ClientHandler.
func NewClientHandler(orderService services.OrderService, userService services.UserService) *ClientHandler {
	return &ClientHandler{
		orderService: orderService,
		userService:  userService,
	}
}

// List обрабатывает GET /api/clients.
func (h *ClientHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.orderService.ListClients())
}

// Orders обрабатывает GET /api/clients/:id/orders.
func (h *ClientHandler) Orders(c echo.Context) error {
	p, err := auth.GetPrincipalFromContext(c)
	if err != nil {
		return err
	}

	clientID := c.Param("id")
	if _, err := h.orderService.GetClient(clientID); err != nil {
		return serviceError(c, err, "failed to get client")
	}

	return c.JSON(http.StatusOK, toResponses(h.orderService.OrdersByClient(p, clientID)))
}

// Create обрабатывает POST /api/clients. Если задан пароль, клиенту создаётся учётная запись;
// при ошибке её создания клиент не сохраняется.
func (h *ClientHandler) Create(c echo.Context) error {
	var req models.CreateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var onCreated func(ctx context.Context, client *models.Client) error
	if req.Password != "" {
		onCreated = func(ctx context.Context, client *models.Client) error {
			return h.userService.CreateClientAccount(ctx, client, req.Password)
		}
	}

	client, err := h.orderService.CreateClientWithAccount(c.Request().Context(), req, onCreated)
	if err != nil {
		return serviceError(c, err, "failed to create client")
	}

	return c.JSON(http.StatusCreated, client)
}
