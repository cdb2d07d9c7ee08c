package storage

import (
	"context"
	"time"

	"github.com/agamariel/transsupply/internal/models"
)

// MockPersistence - мок хранилища заказов. Незаданные функции завершаются успешно.
type MockPersistence struct {
	FetchAllFunc      func(ctx context.Context) (*Snapshot, error)
	InsertOrderFunc   func(ctx context.Context, order *models.Order) error
	UpdateOrderFunc   func(ctx context.Context, id string, patch models.OrderPatch, updatedAt time.Time) error
	DeleteOrderFunc   func(ctx context.Context, id string) error
	InsertPackageFunc func(ctx context.Context, order *models.Order, pkg models.Package) error
	DeletePackageFunc func(ctx context.Context, order *models.Order, packageID string) error
	InsertClientFunc  func(ctx context.Context, client *models.Client) error
	DeleteClientFunc  func(ctx context.Context, id string) error
}

func (m *MockPersistence) FetchAll(ctx context.Context) (*Snapshot, error) {
	if m.FetchAllFunc != nil {
		return m.FetchAllFunc(ctx)
	}
	return &Snapshot{}, nil
}

func (m *MockPersistence) InsertOrder(ctx context.Context, order *models.Order) error {
	if m.InsertOrderFunc != nil {
		return m.InsertOrderFunc(ctx, order)
	}
	return nil
}

func (m *MockPersistence) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch, updatedAt time.Time) error {
	if m.UpdateOrderFunc != nil {
		return m.UpdateOrderFunc(ctx, id, patch, updatedAt)
	}
	return nil
}

func (m *MockPersistence) DeleteOrder(ctx context.Context, id string) error {
	if m.DeleteOrderFunc != nil {
		return m.DeleteOrderFunc(ctx, id)
	}
	return nil
}

func (m *MockPersistence) InsertPackage(ctx context.Context, order *models.Order, pkg models.Package) error {
	if m.InsertPackageFunc != nil {
		return m.InsertPackageFunc(ctx, order, pkg)
	}
	return nil
}

func (m *MockPersistence) DeletePackage(ctx context.Context, order *models.Order, packageID string) error {
	if m.DeletePackageFunc != nil {
		return m.DeletePackageFunc(ctx, order, packageID)
	}
	return nil
}

func (m *MockPersistence) InsertClient(ctx context.Context, client *models.Client) error {
	if m.InsertClientFunc != nil {
		return m.InsertClientFunc(ctx, client)
	}
	return nil
}

func (m *MockPersistence) DeleteClient(ctx context.Context, id string) error {
	if m.DeleteClientFunc != nil {
		return m.DeleteClientFunc(ctx, id)
	}
	return nil
}
