package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agamariel/transsupply/internal/auth"
	"github.com/agamariel/transsupply/internal/config"
	"github.com/agamariel/transsupply/internal/handlers"
	"github.com/agamariel/transsupply/internal/logger"
	"github.com/agamariel/transsupply/internal/migrations"
	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/services"
	"github.com/agamariel/transsupply/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// App структура для управления приложением и его зависимостями.
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	dbPool *pgxpool.Pool
	echo   *echo.Echo

	persistence storage.Persistence
	users       storage.UserStorage
	locations   storage.LocationStorage

	store       *services.OrderStore
	userService *services.UserServiceImpl

	// Handlers
	userHandler     *handlers.UserHandler
	orderHandler    *handlers.OrderHandler
	clientHandler   *handlers.ClientHandler
	locationHandler *handlers.LocationHandler
}

// NewApp создаёт и инициализирует новое приложение.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	app := &App{
		cfg: cfg,
		log: log,
	}

	if err := app.initStorage(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initDependencies(ctx); err != nil {
		app.closeStorage()
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app.initServer()

	return app, nil
}

// warehouse возвращает адрес склада назначения из конфигурации.
func (app *App) warehouse() models.Address {
	return models.Address{
		Street:  app.cfg.WarehouseName,
		City:    app.cfg.WarehouseCity,
		Country: app.cfg.WarehouseCountry,
	}
}

// initStorage выбирает хранилище: PostgreSQL, если задан DATABASE_URI, иначе демо-данные в памяти.
func (app *App) initStorage(ctx context.Context) error {
	if app.cfg.UseDemoData() {
		app.log.Warn("DATABASE_URI is not set, using in-memory demo data")
		app.persistence = storage.NewMemoryPersistence(storage.DemoSnapshot(app.warehouse()))
		app.users = storage.NewMemoryUserStorage()
		app.locations = storage.NewMemoryLocationStorage(storage.DemoLocations())
		return nil
	}

	if err := app.initDatabase(ctx); err != nil {
		return err
	}
	app.persistence = storage.NewPostgresPersistence(app.dbPool)
	app.users = storage.NewPostgresUserStorage(app.dbPool)
	app.locations = storage.NewPostgresLocationStorage(app.dbPool)
	return nil
}

// initDatabase подключается к базе данных и выполняет миграции.
func (app *App) initDatabase(ctx context.Context) error {
	app.log.Info("running database migrations")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB, app.log); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	dbPool, err := pgxpool.New(ctx, app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	app.log.Info("connected to database")

	return nil
}

// initDependencies собирает сервисы и обработчики, загружает заказы в память.
func (app *App) initDependencies(ctx context.Context) error {
	var policy services.TransitionPolicy = services.AllowAnyTransition
	if app.cfg.StrictStatusTransitions {
		policy = services.ForwardOnly
	}

	app.store = services.NewOrderStore(app.persistence, services.OrderStoreConfig{
		Policy:    policy,
		Warehouse: app.warehouse(),
	}, app.log)
	if err := app.store.Load(ctx); err != nil {
		return err
	}

	app.userService = services.NewUserService(app.users, app.cfg.JWTSecret, app.cfg.TokenExpiration, app.log)
	if app.cfg.AdminPassword != "" {
		if err := app.userService.EnsureAdmin(ctx, app.cfg.AdminEmail, app.cfg.AdminPassword); err != nil {
			return fmt.Errorf("failed to ensure admin account: %w", err)
		}
	} else {
		app.log.Warn("ADMIN_PASSWORD is not set, admin account is not created")
	}

	if app.cfg.UseDemoData() && app.cfg.DemoClientPassword != "" {
		if err := app.userService.SeedClientAccounts(ctx, app.store.ListClients(), app.cfg.DemoClientPassword); err != nil {
			return err
		}
	}

	app.userHandler = handlers.NewUserHandler(app.userService, app.cfg.TokenExpiration)
	app.orderHandler = handlers.NewOrderHandler(app.store)
	app.clientHandler = handlers.NewClientHandler(app.store, app.userService)
	app.locationHandler = handlers.NewLocationHandler(services.NewLocationService(app.locations))

	return nil
}

// initServer инициализирует HTTP-сервер и настраивает маршруты.
func (app *App) initServer() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewRequestValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.EchoMiddleware(app.log))
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	loginLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(app.cfg.LoginRateLimit),
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		},
	})

	// Публичные маршруты
	e.POST("/api/auth/login", app.userHandler.Login, loginLimiter)
	e.GET("/api/statuses", app.orderHandler.Statuses)

	// Защищённые маршруты
	api := e.Group("/api", auth.JWTMiddleware(app.cfg.JWTSecret))
	admin := auth.RequireRole(models.RoleAdmin)

	api.GET("/me", app.userHandler.Me)
	api.GET("/stats", app.orderHandler.Stats)

	api.GET("/orders", app.orderHandler.List)
	api.GET("/orders/:id", app.orderHandler.Get)
	api.POST("/orders", app.orderHandler.Create, admin)
	api.PATCH("/orders/:id", app.orderHandler.Update, admin)
	api.PUT("/orders/:id/status", app.orderHandler.SetStatus, admin)
	api.DELETE("/orders/:id", app.orderHandler.Delete, admin)
	api.POST("/orders/:id/packages", app.orderHandler.AddPackage, admin)
	api.DELETE("/orders/:id/packages/:packageID", app.orderHandler.RemovePackage, admin)
	api.POST("/orders/:id/photos", app.orderHandler.AddPhoto, admin)
	api.DELETE("/orders/:id/photos/:index", app.orderHandler.RemovePhoto, admin)

	api.GET("/clients", app.clientHandler.List)
	api.GET("/clients/:id/orders", app.clientHandler.Orders)
	api.POST("/clients", app.clientHandler.Create, admin)

	api.GET("/locations", app.locationHandler.List)
	api.POST("/locations", app.locationHandler.Create, admin)
	api.DELETE("/locations/:id", app.locationHandler.Delete, admin)

	app.echo = e
}

// Start запускает HTTP-сервер и блокируется до его остановки.
func (app *App) Start() error {
	app.log.Info("starting server", zap.String("address", app.cfg.RunAddress))
	if err := app.echo.Start(app.cfg.RunAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Shutdown корректно завершает работу приложения.
func (app *App) Shutdown(ctx context.Context) error {
	app.log.Info("shutting down server")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	app.closeStorage()

	app.log.Info("server gracefully stopped")
	return nil
}

func (app *App) closeStorage() {
	if app.dbPool != nil {
		app.dbPool.Close()
	}
}
