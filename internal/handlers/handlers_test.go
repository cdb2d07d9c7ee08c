package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agamariel/transsupply/internal/auth"
	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/services"
	"github.com/agamariel/transsupply/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	adminPrincipal = models.Principal{UserID: "admin-1", Email: "admin@transsupply.eu", Role: models.RoleAdmin}
	c1Principal    = models.Principal{UserID: "user-c1", Email: "ops@c1.az", Role: models.RoleClient, ClientID: "c1"}
	c2Principal    = models.Principal{UserID: "user-c2", Email: "ops@c2.az", Role: models.RoleClient, ClientID: "c2"}
	testWarehouse  = models.Address{Street: "Baku Logistics Hub", City: "Baku", Country: "Azerbaijan"}
)

func testSnapshot() *storage.Snapshot {
	created := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)
	return &storage.Snapshot{
		Clients: []*models.Client{
			{ID: "c1", Email: "ops@c1.az", Name: "C1"},
			{ID: "c2", Email: "ops@c2.az", Name: "C2"},
		},
		Orders: []*models.Order{
			{
				ID:              "o1",
				ClientID:        "c1",
				InternalRef:     "2026-01-0001",
				Status:          models.OrderStatusPickup,
				PickupAddress:   models.Address{City: "Vienna", Country: "Austria"},
				ReceiverAddress: testWarehouse,
				ReceiverName:    "Receiver One",
				Packages: []models.Package{
					{ID: "p1", OrderID: "o1", WeightKg: 12.5, Colli: 2},
				},
				TotalWeightKg: 12.5,
				TotalPrice:    decimal.NewFromInt(100),
				Photos:        []string{"a.jpg", "b.jpg"},
				CreatedAt:     created,
				UpdatedAt:     created,
			},
			{
				ID:              "o2",
				ClientID:        "c2",
				InternalRef:     "2026-01-0002",
				Status:          models.OrderStatusWarehouse,
				PickupAddress:   models.Address{City: "Graz", Country: "Austria"},
				ReceiverAddress: testWarehouse,
				ReceiverName:    "Receiver Two",
				Packages:        []models.Package{},
				TotalPrice:      decimal.NewFromInt(50),
				Photos:          []string{},
				CreatedAt:       created.Add(time.Hour),
				UpdatedAt:       created.Add(time.Hour),
			},
		},
	}
}

func newTestOrderStore(t *testing.T, p storage.Persistence) *services.OrderStore {
	t.Helper()
	store := services.NewOrderStore(p, services.OrderStoreConfig{Warehouse: testWarehouse}, zap.NewNop())
	require.NoError(t, store.Load(context.Background()))
	return store
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

// newTestContext собирает контекст запроса с участником сессии и параметрами пути.
func newTestContext(e *echo.Echo, method, target, body string, p *models.Principal, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if p != nil {
		c.Set(string(auth.PrincipalKey), *p)
	}

	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	return c, rec
}

// statusOf возвращает HTTP-статус ответа или ошибки обработчика.
func statusOf(err error, rec *httptest.ResponseRecorder) int {
	if err == nil {
		return rec.Code
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
