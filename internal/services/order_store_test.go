package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	testWarehouse = models.Address{Street: "Baku Logistics Hub", City: "Baku", Country: "Azerbaijan"}
	adminP        = models.Principal{UserID: "admin-1", Role: models.RoleAdmin}
	clientC1      = models.Principal{UserID: "user-c1", Role: models.RoleClient, ClientID: "c1"}
	clientC2      = models.Principal{UserID: "user-c2", Role: models.RoleClient, ClientID: "c2"}
)

// testClock - управляемые часы для тестов.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testClients() []*models.Client {
	return []*models.Client{
		{ID: "c1", Email: "ops@c1.az", Name: "C1"},
		{ID: "c2", Email: "ops@c2.az", Name: "C2"},
	}
}

func newTestStore(t *testing.T, p storage.Persistence, policy TransitionPolicy) (*OrderStore, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)}
	store := NewOrderStore(p, OrderStoreConfig{
		Clock:     clock,
		NewID:     sequentialIDs(),
		Policy:    policy,
		Warehouse: testWarehouse,
	}, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))
	return store, clock
}

func newMemoryStore(t *testing.T) (*OrderStore, *testClock) {
	return newTestStore(t, storage.NewMemoryPersistence(&storage.Snapshot{Clients: testClients()}), nil)
}

func orderInput(clientID string) models.OrderInput {
	return models.OrderInput{
		ClientID:      clientID,
		PickupAddress: models.Address{City: "Vienna", Country: "Austria"},
		ReceiverName:  "Receiver " + clientID,
		TotalPrice:    decimal.NewFromInt(100),
	}
}

func TestOrderStore_CreateOrderDefaults(t *testing.T) {
	store, clock := newMemoryStore(t)
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, orderInput("c1"))
	require.NoError(t, err)

	assert.Equal(t, "id-1", order.ID)
	assert.Equal(t, "2026-01-0001", order.InternalRef)
	assert.Equal(t, models.OrderStatusPickup, order.Status)
	assert.Equal(t, testWarehouse, order.ReceiverAddress)
	assert.Equal(t, 0.0, order.TotalWeightKg)
	assert.Equal(t, clock.now, order.CreatedAt)
	assert.Equal(t, clock.now, order.UpdatedAt)
	assert.NotNil(t, order.Photos)

	second, err := store.CreateOrder(ctx, orderInput("c2"))
	require.NoError(t, err)
	assert.Equal(t, "2026-01-0002", second.InternalRef)

	persisted, err := store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, persisted)
}

func TestOrderStore_CreateOrderExplicitValues(t *testing.T) {
	store, _ := newMemoryStore(t)
	ctx := context.Background()

	receiver := models.Address{City: "Tbilisi", Country: "Georgia"}
	input := orderInput("c1")
	input.InternalRef = "2025Q2-090"
	input.Status = models.OrderStatusWarehouse
	input.ReceiverAddress = &receiver
	input.Packages = []models.PackageInput{
		{ClientRef: "N1", WeightKg: 12.5, Colli: 2},
		{ClientRef: "N2", WeightKg: 7.5},
	}

	order, err := store.CreateOrder(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, "2025Q2-090", order.InternalRef)
	assert.Equal(t, models.OrderStatusWarehouse, order.Status)
	assert.Equal(t, receiver, order.ReceiverAddress)
	assert.Equal(t, 20.0, order.TotalWeightKg)
	assert.Equal(t, 3, order.ColliCount())
	for _, p := range order.Packages {
		assert.Equal(t, order.ID, p.OrderID)
	}
}

func TestOrderStore_CreateOrderValidation(t *testing.T) {
	store, _ := newMemoryStore(t)
	ctx := context.Background()

	unknownClient := orderInput("c9")
	_, err := store.CreateOrder(ctx, unknownClient)
	assert.ErrorIs(t, err, ErrClientNotFound)

	badStatus := orderInput("c1")
	badStatus.Status = "lost"
	_, err = store.CreateOrder(ctx, badStatus)
	assert.ErrorIs(t, err, ErrValidation)

	badWeight := orderInput("c1")
	badWeight.Packages = []models.PackageInput{{WeightKg: -1}}
	_, err = store.CreateOrder(ctx, badWeight)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, models.ErrNegativeWeight)

	noReceiver := orderInput("c1")
	noReceiver.ReceiverName = " "
	_, err = store.CreateOrder(ctx, noReceiver)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, store.ListOrders(adminP, models.OrderFilter{}))
}

func TestOrderStore_PackageWeightScenario(t *testing.T) {
	store, clock := newMemoryStore(t)
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, orderInput("c1"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.TotalWeightKg)

	clock.advance(time.Minute)
	order, err = store.AddPackageToOrder(ctx, order.ID, models.PackageInput{ClientRef: "N1", WeightKg: 12.5, Colli: 2})
	require.NoError(t, err)
	assert.Equal(t, 12.5, order.TotalWeightKg)
	assert.Equal(t, 2, order.ColliCount())
	assert.Equal(t, clock.now, order.UpdatedAt)

	clock.advance(time.Minute)
	order, err = store.AddPackageToOrder(ctx, order.ID, models.PackageInput{ClientRef: "N2", WeightKg: 7.5, Colli: 1})
	require.NoError(t, err)
	assert.Equal(t, 20.0, order.TotalWeightKg)
	assert.Equal(t, 3, order.ColliCount())
	assert.Equal(t, 2, order.PackageCount())

	clock.advance(time.Minute)
	order, err = store.RemovePackageFromOrder(ctx, order.ID, order.Packages[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 7.5, order.TotalWeightKg)
	assert.Equal(t, 1, order.ColliCount())

	_, err = store.RemovePackageFromOrder(ctx, order.ID, "missing")
	assert.ErrorIs(t, err, ErrPackageNotFound)
	_, err = store.AddPackageToOrder(ctx, "missing", models.PackageInput{WeightKg: 1})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = store.AddPackageToOrder(ctx, order.ID, models.PackageInput{WeightKg: 1, Colli: -1})
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.5, stored.TotalWeightKg)
}

func TestOrderStore_VisibilityAndStats(t *testing.T) {
	store, _ := newMemoryStore(t)
	ctx := context.Background()

	for _, in := range []struct {
		client string
		status models.OrderStatus
		weight float64
		price  int64
	}{
		{"c1", models.OrderStatusPickup, 10, 100},
		{"c1", models.OrderStatusDelivered, 5, 50},
		{"c2", models.OrderStatusWarehouse, 100, 1000},
	} {
		input := orderInput(in.client)
		input.Status = in.status
		input.TotalPrice = decimal.NewFromInt(in.price)
		input.Packages = []models.PackageInput{{WeightKg: in.weight, Colli: 2}}
		_, err := store.CreateOrder(ctx, input)
		require.NoError(t, err)
	}

	c1Orders := store.ListOrders(clientC1, models.OrderFilter{})
	require.Len(t, c1Orders, 2)
	for _, o := range c1Orders {
		assert.Equal(t, "c1", o.ClientID)
	}
	assert.Len(t, store.ListOrders(adminP, models.OrderFilter{}), 3)
	assert.Empty(t, store.ListOrders(models.Principal{Role: "guest"}, models.OrderFilter{}))

	stats := store.Stats(clientC1)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingPickups)
	assert.Equal(t, 0, stats.InWarehouse)
	assert.Equal(t, 1, stats.Delivered)
	assert.Equal(t, 15.0, stats.TotalWeight)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(150)), stats.TotalRevenue.String())
	assert.Equal(t, 2, stats.TotalPackages)
	assert.Equal(t, 4, stats.TotalColli)

	adminStats := store.Stats(adminP)
	assert.Equal(t, 3, adminStats.TotalOrders)
	assert.Equal(t, 1, adminStats.InWarehouse)
	assert.True(t, adminStats.TotalRevenue.Equal(decimal.NewFromInt(1150)))

	guestStats := store.Stats(models.Principal{})
	assert.Zero(t, guestStats.TotalOrders)
	assert.True(t, guestStats.TotalRevenue.IsZero())

	// c1 не видит заказы c2 даже при явном фильтре по клиенту
	assert.Empty(t, store.OrdersByClient(clientC1, "c2"))
	assert.Len(t, store.OrdersByClient(adminP, "c2"), 1)
	assert.Len(t, store.OrdersByStatus(clientC2, models.OrderStatusWarehouse), 1)
	assert.Empty(t, store.OrdersByStatus(clientC2, models.OrderStatusPickup))
}

func TestOrderStore_ListOrdersSearch(t *testing.T) {
	store, _ := newMemoryStore(t)
	ctx := context.Background()

	milan := orderInput("c1")
	milan.PickupAddress = models.Address{City: "Milan", Country: "Italy"}
	_, err := store.CreateOrder(ctx, milan)
	require.NoError(t, err)
	_, err = store.CreateOrder(ctx, orderInput("c2"))
	require.NoError(t, err)

	found := store.ListOrders(adminP, models.OrderFilter{Query: "MILAN"})
	require.Len(t, found, 1)
	assert.Equal(t, "Milan", found[0].PickupAddress.City)

	assert.Len(t, store.ListOrders(adminP, models.OrderFilter{Query: "2026-01"}), 2)
	assert.Empty(t, store.ListOrders(clientC2, models.OrderFilter{Query: "milan"}))
}

func TestOrderStore_ReadsReturnCopies(t *testing.T) {
	store, _ := newMemoryStore(t)
	created, err := store.CreateOrder(context.Background(), orderInput("c1"))
	require.NoError(t, err)

	listed := store.ListOrders(adminP, models.OrderFilter{})
	listed[0].ReceiverName = "mutated"
	created.Status = models.OrderStatusDelivered

	stored, err := store.GetOrder(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Receiver c1", stored.ReceiverName)
	assert.Equal(t, models.OrderStatusPickup, stored.Status)
}

func TestOrderStore_UpdateOrder(t *testing.T) {
	store, clock := newMemoryStore(t)
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, orderInput("c1"))
	require.NoError(t, err)
	createdAt := order.UpdatedAt

	clock.advance(time.Hour)
	phone := "+994 12 345 6789"
	updated, err := store.UpdateOrder(ctx, order.ID, models.OrderPatch{ReceiverPhone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.ReceiverPhone)
	assert.Equal(t, order.ReceiverName, updated.ReceiverName)
	assert.True(t, updated.UpdatedAt.After(createdAt))
	assert.Equal(t, order.ClientID, updated.ClientID)

	clock.advance(time.Hour)
	same, err := store.UpdateOrder(ctx, order.ID, models.OrderPatch{})
	require.NoError(t, err)
	assert.Equal(t, updated.UpdatedAt, same.UpdatedAt)

	_, err = store.UpdateOrder(ctx, "missing", models.OrderPatch{ReceiverPhone: &phone})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	empty := ""
	_, err = store.UpdateOrder(ctx, order.ID, models.OrderPatch{ReceiverName: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderStore_SetStatus(t *testing.T) {
	store, _ := newMemoryStore(t)
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, orderInput("c1"))
	require.NoError(t, err)

	updated, err := store.SetStatus(ctx, order.ID, models.OrderStatusWarehouse)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusWarehouse, updated.Status)
	assert.InDelta(t, 2.0/3.0, updated.Status.Progress(), 1e-9)

	updated, err = store.SetStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)

	// по умолчанию возврат назад разрешён
	updated, err = store.SetStatus(ctx, order.ID, models.OrderStatusPickup)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPickup, updated.Status)

	_, err = store.SetStatus(ctx, order.ID, "lost")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = store.SetStatus(ctx, "missing", models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderStore_ForwardOnlyPolicy(t *testing.T) {
	p := storage.NewMemoryPersistence(&storage.Snapshot{Clients: testClients()})
	store, _ := newTestStore(t, p, ForwardOnly)
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, orderInput("c1"))
	require.NoError(t, err)

	_, err = store.SetStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)

	_, err = store.SetStatus(ctx, order.ID, models.OrderStatusPickup)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	stored, err := store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)
}

func TestOrderStore_DeleteIsIdempotent(t *testing.T) {
	store, _ := newMemoryStore(t)
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, orderInput("c1"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteOrder(ctx, order.ID))
	require.NoError(t, store.DeleteOrder(ctx, order.ID))
	require.NoError(t, store.DeleteOrder(ctx, "never-existed"))

	_, err = store.GetOrder(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Empty(t, store.ListOrders(adminP, models.OrderFilter{}))
}

func TestOrderStore_Photos(t *testing.T) {
	store, _ := newMemoryStore(t)
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, orderInput("c1"))
	require.NoError(t, err)

	for _, uri := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		order, err = store.AddPhoto(ctx, order.ID, uri)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, order.Photos)

	order, err = store.RemovePhoto(ctx, order.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, order.Photos)

	_, err = store.RemovePhoto(ctx, order.ID, 5)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
	_, err = store.RemovePhoto(ctx, order.ID, -1)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
	_, err = store.AddPhoto(ctx, order.ID, "  ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = store.AddPhoto(ctx, "missing", "d.jpg")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	stored, err := store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, stored.Photos)
}

func TestOrderStore_Clients(t *testing.T) {
	store, clock := newMemoryStore(t)
	ctx := context.Background()

	client, err := store.CreateClient(ctx, models.CreateClientRequest{Email: " ops@gpc.ge ", Name: "GPC"})
	require.NoError(t, err)
	assert.Equal(t, "ops@gpc.ge", client.Email)
	assert.Equal(t, clock.now, client.CreatedAt)

	_, err = store.CreateClient(ctx, models.CreateClientRequest{Email: "OPS@GPC.GE", Name: "Dup"})
	assert.ErrorIs(t, err, ErrClientEmailExists)
	_, err = store.CreateClient(ctx, models.CreateClientRequest{Email: "x@y.z"})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Len(t, store.ListClients(), 3)
	got, err := store.GetClient(client.ID)
	require.NoError(t, err)
	assert.Equal(t, "GPC", got.Name)
	_, err = store.GetClient("missing")
	assert.ErrorIs(t, err, ErrClientNotFound)

	// новый клиент сразу может владеть заказами
	_, err = store.CreateOrder(ctx, orderInput(client.ID))
	assert.NoError(t, err)
}

func TestOrderStore_CreateClientWithAccount(t *testing.T) {
	ctx := context.Background()
	accountErr := errors.New("account email taken")

	tests := []struct {
		name          string
		onCreated     func(ctx context.Context, client *models.Client) error
		deleteErr     error
		wantErr       error
		expectedCount int
	}{
		{
			name:          "account created",
			onCreated:     func(ctx context.Context, client *models.Client) error { return nil },
			expectedCount: 3,
		},
		{
			name:          "account failure removes client",
			onCreated:     func(ctx context.Context, client *models.Client) error { return accountErr },
			wantErr:       accountErr,
			expectedCount: 2,
		},
		{
			name:          "cleanup failure reported",
			onCreated:     func(ctx context.Context, client *models.Client) error { return accountErr },
			deleteErr:     errors.New("connection reset"),
			wantErr:       ErrPersistence,
			expectedCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memory := storage.NewMemoryPersistence(&storage.Snapshot{Clients: testClients()})
			mock := &storage.MockPersistence{
				FetchAllFunc:     memory.FetchAll,
				InsertClientFunc: memory.InsertClient,
				DeleteClientFunc: func(ctx context.Context, id string) error {
					if tt.deleteErr != nil {
						return tt.deleteErr
					}
					return memory.DeleteClient(ctx, id)
				},
			}
			store, _ := newTestStore(t, mock, nil)

			_, err := store.CreateClientWithAccount(ctx, models.CreateClientRequest{Email: "new@c3.az", Name: "C3"}, tt.onCreated)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Len(t, store.ListClients(), tt.expectedCount)

			if tt.deleteErr == nil {
				snap, err := memory.FetchAll(ctx)
				require.NoError(t, err)
				assert.Len(t, snap.Clients, tt.expectedCount)
			}
		})
	}
}

func TestOrderStore_UpdateOrderRejectsInvalidFields(t *testing.T) {
	store, _ := newMemoryStore(t)
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, orderInput("c1"))
	require.NoError(t, err)

	blank := "  "
	tests := []struct {
		name  string
		patch models.OrderPatch
	}{
		{name: "blank internal ref", patch: models.OrderPatch{InternalRef: &blank}},
		{name: "blank receiver name", patch: models.OrderPatch{ReceiverName: &blank}},
		{name: "pickup without city", patch: models.OrderPatch{PickupAddress: &models.Address{Country: "Austria"}}},
		{name: "pickup without country", patch: models.OrderPatch{PickupAddress: &models.Address{City: "Vienna"}}},
		{name: "receiver without city", patch: models.OrderPatch{ReceiverAddress: &models.Address{Country: "Azerbaijan"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.UpdateOrder(ctx, order.ID, tt.patch)
			assert.ErrorIs(t, err, ErrValidation)

			got, err := store.GetOrder(order.ID)
			require.NoError(t, err)
			assert.Equal(t, order, got)
		})
	}
}

func TestOrderStore_PersistenceFailureLeavesMemoryUntouched(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection reset")
	existing := &models.Order{
		ID:            "o1",
		ClientID:      "c1",
		InternalRef:   "2026-01-0001",
		Status:        models.OrderStatusPickup,
		ReceiverName:  "Receiver",
		Packages:      []models.Package{{ID: "p1", OrderID: "o1", WeightKg: 12.5, Colli: 2}},
		TotalWeightKg: 12.5,
		Photos:        []string{"a.jpg"},
	}

	mock := &storage.MockPersistence{
		FetchAllFunc: func(ctx context.Context) (*storage.Snapshot, error) {
			return &storage.Snapshot{Orders: []*models.Order{existing.Clone()}, Clients: testClients()}, nil
		},
		InsertOrderFunc:   func(ctx context.Context, order *models.Order) error { return dbErr },
		UpdateOrderFunc:   func(ctx context.Context, id string, patch models.OrderPatch, at time.Time) error { return dbErr },
		DeleteOrderFunc:   func(ctx context.Context, id string) error { return dbErr },
		InsertPackageFunc: func(ctx context.Context, order *models.Order, pkg models.Package) error { return dbErr },
		DeletePackageFunc: func(ctx context.Context, order *models.Order, id string) error { return dbErr },
		InsertClientFunc:  func(ctx context.Context, client *models.Client) error { return dbErr },
	}
	store, _ := newTestStore(t, mock, nil)

	_, err := store.CreateOrder(ctx, orderInput("c1"))
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, dbErr)

	_, err = store.SetStatus(ctx, "o1", models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrPersistence)

	_, err = store.AddPackageToOrder(ctx, "o1", models.PackageInput{WeightKg: 7.5})
	assert.ErrorIs(t, err, ErrPersistence)

	_, err = store.RemovePackageFromOrder(ctx, "o1", "p1")
	assert.ErrorIs(t, err, ErrPersistence)

	_, err = store.AddPhoto(ctx, "o1", "b.jpg")
	assert.ErrorIs(t, err, ErrPersistence)

	assert.ErrorIs(t, store.DeleteOrder(ctx, "o1"), ErrPersistence)

	_, err = store.CreateClient(ctx, models.CreateClientRequest{Email: "new@c3.az", Name: "C3"})
	assert.ErrorIs(t, err, ErrPersistence)

	orders := store.ListOrders(adminP, models.OrderFilter{})
	require.Len(t, orders, 1)
	assert.Equal(t, existing, orders[0])
	assert.Len(t, store.ListClients(), 2)
}

func TestOrderStore_LoadFailure(t *testing.T) {
	mock := &storage.MockPersistence{
		FetchAllFunc: func(ctx context.Context) (*storage.Snapshot, error) {
			return nil, errors.New("timeout")
		},
	}
	store := NewOrderStore(mock, OrderStoreConfig{}, nil)

	err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, store.ListOrders(adminP, models.OrderFilter{}))
}

func TestOrderStore_LogsStatusChange(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := storage.NewMemoryPersistence(&storage.Snapshot{Clients: testClients()})
	store := NewOrderStore(p, OrderStoreConfig{Warehouse: testWarehouse}, zap.New(core))
	ctx := context.Background()
	require.NoError(t, store.Load(ctx))

	order, err := store.CreateOrder(ctx, orderInput("c1"))
	require.NoError(t, err)
	_, err = store.SetStatus(ctx, order.ID, models.OrderStatusWarehouse)
	require.NoError(t, err)

	changed := logs.FilterMessage("order status changed").All()
	require.Len(t, changed, 1)
	fields := changed[0].ContextMap()
	assert.Equal(t, "pickup", fields["from"])
	assert.Equal(t, "warehouse", fields["to"])
}
