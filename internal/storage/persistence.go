package storage

import (
	"context"
	"errors"
	"time"

	"github.com/agamariel/transsupply/internal/models"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderExists       = errors.New("order already exists")
	ErrClientEmailExists = errors.New("client email already exists")
	ErrClientNotFound    = errors.New("client not found")
)

// Snapshot - полный набор данных, загружаемый при старте.
type Snapshot struct {
	Orders  []*models.Order
	Clients []*models.Client
}

// Persistence определяет хранилище заказов и клиентов.
// Каждый вызов атомарен сам по себе, транзакций между вызовами нет.
type Persistence interface {
	FetchAll(ctx context.Context) (*Snapshot, error)
	InsertOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, id string, patch models.OrderPatch, updatedAt time.Time) error
	DeleteOrder(ctx context.Context, id string) error
	// InsertPackage сохраняет место; order уже содержит пересчитанный вес.
	InsertPackage(ctx context.Context, order *models.Order, pkg models.Package) error
	DeletePackage(ctx context.Context, order *models.Order, packageID string) error
	InsertClient(ctx context.Context, client *models.Client) error
	// DeleteClient удаляет клиента без заказов. Отсутствующий клиент не ошибка.
	DeleteClient(ctx context.Context, id string) error
}
