package services

import (
	"context"

	"github.com/agamariel/transsupply/internal/models"
)

// OrderService определяет операции над заказами и клиентами, доступные обработчикам.
type OrderService interface {
	ListOrders(p models.Principal, filter models.OrderFilter) []*models.Order
	GetOrder(id string) (*models.Order, error)
	OrdersByClient(p models.Principal, clientID string) []*models.Order
	CreateOrder(ctx context.Context, input models.OrderInput) (*models.Order, error)
	UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	AddPackageToOrder(ctx context.Context, orderID string, input models.PackageInput) (*models.Order, error)
	RemovePackageFromOrder(ctx context.Context, orderID, packageID string) (*models.Order, error)
	AddPhoto(ctx context.Context, orderID, uri string) (*models.Order, error)
	RemovePhoto(ctx context.Context, orderID string, index int) (*models.Order, error)
	ListClients() []*models.Client
	GetClient(id string) (*models.Client, error)
	CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error)
	CreateClientWithAccount(ctx context.Context, req models.CreateClientRequest, onCreated func(ctx context.Context, client *models.Client) error) (*models.Client, error)
	Stats(p models.Principal) models.Stats
}

// UserService определяет интерфейс для работы с учётными записями.
type UserService interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	CreateClientAccount(ctx context.Context, client *models.Client, password string) error
}

// LocationService определяет интерфейс справочника мест забора.
type LocationService interface {
	List(ctx context.Context, query string) ([]models.Location, error)
	Create(ctx context.Context, loc models.Location) (*models.Location, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ OrderService    = (*OrderStore)(nil)
	_ UserService     = (*UserServiceImpl)(nil)
	_ LocationService = (*LocationServiceImpl)(nil)
)
