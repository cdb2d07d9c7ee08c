package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// validate проверяет адреса в патчах по тегам models.Address.
var validate = validator.New()

// OrderStoreConfig - зависимости OrderStore. Пустые поля заменяются значениями по умолчанию.
type OrderStoreConfig struct {
	Clock     Clock
	NewID     func() string
	Policy    TransitionPolicy
	Warehouse models.Address
}

// OrderStore держит заказы и клиентов в памяти и синхронизирует их с хранилищем.
// Все изменения проходят под одной блокировкой: сначала хранилище, затем память.
type OrderStore struct {
	mu          sync.RWMutex
	persistence storage.Persistence
	clock       Clock
	newID       func() string
	policy      TransitionPolicy
	warehouse   models.Address
	log         *zap.Logger

	orders  []*models.Order
	clients []*models.Client
}

// NewOrderStore создаёт пустой OrderStore. Данные загружаются вызовом Load.
func NewOrderStore(persistence storage.Persistence, cfg OrderStoreConfig, log *zap.Logger) *OrderStore {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Policy == nil {
		cfg.Policy = AllowAnyTransition
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &OrderStore{
		persistence: persistence,
		clock:       cfg.Clock,
		newID:       cfg.NewID,
		policy:      cfg.Policy,
		warehouse:   cfg.Warehouse,
		log:         log.Named("orders"),
	}
}

// Load заменяет содержимое памяти данными хранилища.
func (s *OrderStore) Load(ctx context.Context) error {
	snap, err := s.persistence.FetchAll(ctx)
	if err != nil {
		return persistenceError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = snap.Orders
	s.clients = snap.Clients
	s.log.Info("orders loaded",
		zap.Int("orders", len(s.orders)),
		zap.Int("clients", len(s.clients)),
	)
	return nil
}

// ListOrders возвращает видимые участнику заказы, подходящие под фильтр.
func (s *OrderStore) ListOrders(p models.Principal, filter models.OrderFilter) []*models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Order, 0)
	for _, o := range VisibleOrders(p, s.orders) {
		if filter.Matches(o) {
			result = append(result, o.Clone())
		}
	}
	return result
}

// GetOrder возвращает заказ по ID без учёта видимости.
func (s *OrderStore) GetOrder(id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrOrderNotFound
	}
	return s.orders[i].Clone(), nil
}

// OrdersByClient возвращает видимые участнику заказы клиента.
func (s *OrderStore) OrdersByClient(p models.Principal, clientID string) []*models.Order {
	return s.ListOrders(p, models.OrderFilter{ClientID: clientID})
}

// OrdersByStatus возвращает видимые участнику заказы в статусе status.
func (s *OrderStore) OrdersByStatus(p models.Principal, status models.OrderStatus) []*models.Order {
	return s.ListOrders(p, models.OrderFilter{Status: status})
}

// CreateOrder создаёт заказ. Пустой InternalRef заменяется сгенерированным номером,
// отсутствующий адрес получателя - адресом склада.
func (s *OrderStore) CreateOrder(ctx context.Context, input models.OrderInput) (*models.Order, error) {
	status := input.Status
	if status == "" {
		status = models.OrderStatusPickup
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %w", ErrValidation, models.ErrUnknownStatus)
	}
	if strings.TrimSpace(input.ReceiverName) == "" {
		return nil, fmt.Errorf("%w: receiver name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clientIndex(input.ClientID) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, input.ClientID)
	}

	now := s.clock.Now()
	order := &models.Order{
		ID:              s.newID(),
		ClientID:        input.ClientID,
		InternalRef:     strings.TrimSpace(input.InternalRef),
		Status:          status,
		PickupAddress:   input.PickupAddress,
		ReceiverAddress: s.warehouse,
		CollectionDate:  input.CollectionDate,
		ReceiverName:    input.ReceiverName,
		ReceiverPhone:   input.ReceiverPhone,
		TotalPrice:      input.TotalPrice,
		Packages:        make([]models.Package, 0, len(input.Packages)),
		Photos:          append([]string{}, input.Photos...),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.ReceiverAddress != nil {
		order.ReceiverAddress = *input.ReceiverAddress
	}

	if order.InternalRef == "" {
		order.InternalRef = GenerateInternalRef(now, s.orders)
	} else if _, err := ParseInternalRef(order.InternalRef); err != nil {
		s.log.Warn("internal ref does not follow a known format", zap.String("internal_ref", order.InternalRef))
	}

	for _, in := range input.Packages {
		pkg, err := s.newPackage(order.ID, in)
		if err != nil {
			return nil, err
		}
		order.Packages = append(order.Packages, pkg)
	}
	order.TotalWeightKg = TotalWeight(order.Packages)

	if err := s.persistence.InsertOrder(ctx, order); err != nil {
		if errors.Is(err, storage.ErrClientNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotFound, input.ClientID)
		}
		return nil, persistenceError(err)
	}

	s.orders = append(s.orders, order)
	s.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("internal_ref", order.InternalRef),
		zap.String("client_id", order.ClientID),
	)
	return order.Clone(), nil
}

// UpdateOrder применяет частичное обновление. Смена статуса проверяется политикой переходов.
func (s *OrderStore) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrOrderNotFound
	}
	return s.applyPatchLocked(ctx, i, patch)
}

// SetStatus переводит заказ в статус status.
func (s *OrderStore) SetStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	return s.UpdateOrder(ctx, id, models.OrderPatch{Status: &status})
}

// DeleteOrder удаляет заказ вместе с местами. Удаление отсутствующего заказа не является ошибкой.
func (s *OrderStore) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	if err := s.persistence.DeleteOrder(ctx, id); err != nil {
		return persistenceError(err)
	}

	s.orders = append(s.orders[:i], s.orders[i+1:]...)
	s.log.Info("order deleted", zap.String("order_id", id))
	return nil
}

// AddPackageToOrder добавляет место в конец списка и пересчитывает общий вес.
func (s *OrderStore) AddPackageToOrder(ctx context.Context, orderID string, input models.PackageInput) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return nil, ErrOrderNotFound
	}

	pkg, err := s.newPackage(orderID, input)
	if err != nil {
		return nil, err
	}

	updated := AddPackage(s.orders[i], pkg)
	updated.UpdatedAt = s.clock.Now()

	if err := s.persistence.InsertPackage(ctx, updated, pkg); err != nil {
		return nil, persistenceError(err)
	}

	s.orders[i] = updated
	return updated.Clone(), nil
}

// RemovePackageFromOrder удаляет место и пересчитывает общий вес.
func (s *OrderStore) RemovePackageFromOrder(ctx context.Context, orderID, packageID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return nil, ErrOrderNotFound
	}

	updated, err := RemovePackage(s.orders[i], packageID)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.clock.Now()

	if err := s.persistence.DeletePackage(ctx, updated, packageID); err != nil {
		return nil, persistenceError(err)
	}

	s.orders[i] = updated
	return updated.Clone(), nil
}

// AddPhoto добавляет фотографию в конец списка.
func (s *OrderStore) AddPhoto(ctx context.Context, orderID, uri string) (*models.Order, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("%w: photo uri is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return nil, ErrOrderNotFound
	}

	current := s.orders[i].Photos
	photos := make([]string, 0, len(current)+1)
	photos = append(photos, current...)
	photos = append(photos, uri)
	return s.applyPatchLocked(ctx, i, models.OrderPatch{Photos: &photos})
}

// RemovePhoto удаляет фотографию по позиции, порядок остальных сохраняется.
func (s *OrderStore) RemovePhoto(ctx context.Context, orderID string, index int) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return nil, ErrOrderNotFound
	}

	current := s.orders[i].Photos
	if index < 0 || index >= len(current) {
		return nil, ErrPhotoNotFound
	}
	photos := make([]string, 0, len(current)-1)
	photos = append(photos, current[:index]...)
	photos = append(photos, current[index+1:]...)
	return s.applyPatchLocked(ctx, i, models.OrderPatch{Photos: &photos})
}

// ListClients возвращает справочник клиентов. Справочник не фильтруется по роли.
func (s *OrderStore) ListClients() []*models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]*models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		cc := *c
		clients = append(clients, &cc)
	}
	return clients
}

// GetClient возвращает клиента по ID.
func (s *OrderStore) GetClient(id string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.clientIndex(id)
	if i < 0 {
		return nil, ErrClientNotFound
	}
	c := *s.clients[i]
	return &c, nil
}

// CreateClient добавляет клиента. Email должен быть уникален без учёта регистра.
func (s *OrderStore) CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	return s.CreateClientWithAccount(ctx, req, nil)
}

// CreateClientWithAccount добавляет клиента и вызывает onCreated до того, как клиент
// станет виден. Если onCreated вернул ошибку, клиент удаляется из хранилища.
func (s *OrderStore) CreateClientWithAccount(ctx context.Context, req models.CreateClientRequest, onCreated func(ctx context.Context, client *models.Client) error) (*models.Client, error) {
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: email and name are required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if strings.EqualFold(c.Email, email) {
			return nil, ErrClientEmailExists
		}
	}

	client := &models.Client{
		ID:        s.newID(),
		Email:     email,
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.persistence.InsertClient(ctx, client); err != nil {
		if errors.Is(err, storage.ErrClientEmailExists) {
			return nil, ErrClientEmailExists
		}
		return nil, persistenceError(err)
	}

	if onCreated != nil {
		c := *client
		if err := onCreated(ctx, &c); err != nil {
			if delErr := s.persistence.DeleteClient(ctx, client.ID); delErr != nil {
				s.log.Error("failed to remove client after account error",
					zap.String("client_id", client.ID), zap.Error(delErr))
				return nil, fmt.Errorf("%w: %w", err, persistenceError(delErr))
			}
			return nil, err
		}
	}

	s.clients = append(s.clients, client)
	s.log.Info("client created", zap.String("client_id", client.ID))
	c := *client
	return &c, nil
}

// Stats считает сводку только по видимым участнику заказам.
func (s *OrderStore) Stats(p models.Principal) models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{TotalRevenue: decimal.Zero}
	for _, o := range VisibleOrders(p, s.orders) {
		stats.TotalOrders++
		switch o.Status {
		case models.OrderStatusPickup:
			stats.PendingPickups++
		case models.OrderStatusWarehouse:
			stats.InWarehouse++
		case models.OrderStatusDelivered:
			stats.Delivered++
		}
		stats.TotalWeight += o.TotalWeightKg
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalPrice)
		stats.TotalPackages += o.PackageCount()
		stats.TotalColli += o.ColliCount()
	}
	return stats
}

// applyPatchLocked проверяет и сохраняет патч для заказа с индексом i. Вызывается под s.mu.
func (s *OrderStore) applyPatchLocked(ctx context.Context, i int, patch models.OrderPatch) (*models.Order, error) {
	current := s.orders[i]
	if patch.IsEmpty() {
		return current.Clone(), nil
	}

	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, fmt.Errorf("%w: %w", ErrValidation, models.ErrUnknownStatus)
		}
		if err := s.policy(current.Status, *patch.Status); err != nil {
			return nil, err
		}
	}
	if patch.ReceiverName != nil && strings.TrimSpace(*patch.ReceiverName) == "" {
		return nil, fmt.Errorf("%w: receiver name is required", ErrValidation)
	}
	if patch.InternalRef != nil && strings.TrimSpace(*patch.InternalRef) == "" {
		return nil, fmt.Errorf("%w: internal ref must not be empty", ErrValidation)
	}
	for _, addr := range []*models.Address{patch.PickupAddress, patch.ReceiverAddress} {
		if addr == nil {
			continue
		}
		if err := validate.Struct(addr); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	now := s.clock.Now()
	if err := s.persistence.UpdateOrder(ctx, current.ID, patch, now); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, persistenceError(err)
	}

	updated := current.Clone()
	patch.Apply(updated)
	updated.UpdatedAt = now
	s.orders[i] = updated

	if patch.Status != nil && *patch.Status != current.Status {
		s.log.Info("order status changed",
			zap.String("order_id", current.ID),
			zap.String("from", string(current.Status)),
			zap.String("to", string(*patch.Status)),
		)
	}
	return updated.Clone(), nil
}

func (s *OrderStore) newPackage(orderID string, in models.PackageInput) (models.Package, error) {
	pkg := models.Package{
		ID:         s.newID(),
		OrderID:    orderID,
		ClientRef:  in.ClientRef,
		Dimensions: in.Dimensions,
		WeightKg:   in.WeightKg,
		Colli:      in.Colli,
	}
	if err := pkg.Validate(); err != nil {
		return models.Package{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return pkg, nil
}

func (s *OrderStore) indexOf(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func (s *OrderStore) clientIndex(id string) int {
	for i, c := range s.clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
