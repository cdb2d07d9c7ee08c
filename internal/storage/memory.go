package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/agamariel/transsupply/internal/models"
)

// MemoryPersistence хранит заказы и клиентов в памяти процесса.
// Используется в демо-режиме, когда база данных не настроена.
type MemoryPersistence struct {
	mu      sync.Mutex
	orders  []*models.Order
	clients []*models.Client
}

// NewMemoryPersistence создаёт хранилище с начальным набором данных.
func NewMemoryPersistence(seed *Snapshot) *MemoryPersistence {
	m := &MemoryPersistence{}
	if seed != nil {
		for _, o := range seed.Orders {
			m.orders = append(m.orders, o.Clone())
		}
		for _, c := range seed.Clients {
			cc := *c
			m.clients = append(m.clients, &cc)
		}
	}
	return m
}

// FetchAll возвращает копию всех данных.
func (m *MemoryPersistence) FetchAll(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := &Snapshot{
		Orders:  make([]*models.Order, 0, len(m.orders)),
		Clients: make([]*models.Client, 0, len(m.clients)),
	}
	for _, o := range m.orders {
		snap.Orders = append(snap.Orders, o.Clone())
	}
	for _, c := range m.clients {
		cc := *c
		snap.Clients = append(snap.Clients, &cc)
	}
	return snap, nil
}

// InsertOrder сохраняет новый заказ вместе с местами.
func (m *MemoryPersistence) InsertOrder(ctx context.Context, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findOrder(order.ID) >= 0 {
		return ErrOrderExists
	}
	m.orders = append(m.orders, order.Clone())
	return nil
}

// UpdateOrder применяет патч к сохранённому заказу.
func (m *MemoryPersistence) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.findOrder(id)
	if i < 0 {
		return ErrOrderNotFound
	}
	patch.Apply(m.orders[i])
	m.orders[i].UpdatedAt = updatedAt
	return nil
}

// DeleteOrder удаляет заказ. Отсутствие заказа ошибкой не считается.
func (m *MemoryPersistence) DeleteOrder(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.findOrder(id); i >= 0 {
		m.orders = append(m.orders[:i], m.orders[i+1:]...)
	}
	return nil
}

// InsertPackage добавляет место и переносит пересчитанный вес заказа.
func (m *MemoryPersistence) InsertPackage(ctx context.Context, order *models.Order, pkg models.Package) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.findOrder(order.ID)
	if i < 0 {
		return ErrOrderNotFound
	}
	stored := m.orders[i]
	stored.Packages = append(stored.Packages, pkg)
	stored.TotalWeightKg = order.TotalWeightKg
	if order.UpdatedAt.After(stored.UpdatedAt) {
		stored.UpdatedAt = order.UpdatedAt
	}
	return nil
}

// DeletePackage удаляет место и переносит пересчитанный вес заказа.
func (m *MemoryPersistence) DeletePackage(ctx context.Context, order *models.Order, packageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.findOrder(order.ID)
	if i < 0 {
		return ErrOrderNotFound
	}
	stored := m.orders[i]
	kept := stored.Packages[:0]
	for _, p := range stored.Packages {
		if p.ID != packageID {
			kept = append(kept, p)
		}
	}
	stored.Packages = kept
	stored.TotalWeightKg = order.TotalWeightKg
	if order.UpdatedAt.After(stored.UpdatedAt) {
		stored.UpdatedAt = order.UpdatedAt
	}
	return nil
}

// InsertClient сохраняет клиента. Email уникален без учёта регистра.
func (m *MemoryPersistence) InsertClient(ctx context.Context, client *models.Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.clients {
		if strings.EqualFold(c.Email, client.Email) {
			return ErrClientEmailExists
		}
	}
	cc := *client
	m.clients = append(m.clients, &cc)
	return nil
}

// DeleteClient удаляет клиента по ID.
func (m *MemoryPersistence) DeleteClient(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.clients {
		if c.ID == id {
			m.clients = append(m.clients[:i], m.clients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryPersistence) findOrder(id string) int {
	for i, o := range m.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
