package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRunAddress       = "localhost:8080"
	defaultJWTSecret        = "default-secret-change-in-production"
	defaultTokenExpiration  = 24 * time.Hour
	defaultAdminEmail       = "admin@transsupply.eu"
	defaultWarehouseName    = "Baku Logistics Hub"
	defaultWarehouseCity    = "Baku"
	defaultWarehouseCountry = "Azerbaijan"
	defaultLoginRateLimit   = 2.0
)

// Config содержит конфигурацию приложения.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	AppEnv          string
	JWTSecret       string
	TokenExpiration time.Duration

	// Учётная запись администратора, создаётся при старте, если её нет.
	AdminEmail    string
	AdminPassword string
	// Пароль демо-клиентов (только при работе без базы данных).
	DemoClientPassword string

	// Адрес склада назначения, общий для всех заказов.
	WarehouseName    string
	WarehouseCity    string
	WarehouseCountry string

	StrictStatusTransitions bool
	// Запросов на вход в секунду с одного адреса.
	LoginRateLimit float64
}

// Load загружает конфигурацию из флагов командной строки и переменных окружения.
// Приоритет: переменные окружения (в том числе из .env) > флаги > значения по умолчанию.
func Load() *Config {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "адрес и порт запуска сервиса")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "строка подключения к PostgreSQL (пусто - демо-данные в памяти)")
	flag.DurationVar(&cfg.TokenExpiration, "t", defaultTokenExpiration, "время жизни токена")
	flag.BoolVar(&cfg.StrictStatusTransitions, "strict-status", false, "запретить откат статуса заказа назад")
	flag.Parse()

	if v := os.Getenv("RUN_ADDRESS"); v != "" {
		cfg.RunAddress = v
	}
	if v := os.Getenv("DATABASE_URI"); v != "" {
		cfg.DatabaseURI = v
	}
	if v := os.Getenv("TOKEN_EXPIRATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TokenExpiration = d
		}
	}
	if v := os.Getenv("STRICT_STATUS_TRANSITIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.StrictStatusTransitions = b
		}
	}

	cfg.AppEnv = os.Getenv("APP_ENV")
	cfg.JWTSecret = envOrDefault("JWT_SECRET", defaultJWTSecret)
	cfg.AdminEmail = envOrDefault("ADMIN_EMAIL", defaultAdminEmail)
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.DemoClientPassword = os.Getenv("DEMO_CLIENT_PASSWORD")
	cfg.WarehouseName = envOrDefault("WAREHOUSE_NAME", defaultWarehouseName)
	cfg.WarehouseCity = envOrDefault("WAREHOUSE_CITY", defaultWarehouseCity)
	cfg.WarehouseCountry = envOrDefault("WAREHOUSE_COUNTRY", defaultWarehouseCountry)

	cfg.LoginRateLimit = defaultLoginRateLimit
	if v := os.Getenv("LOGIN_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.LoginRateLimit = f
		}
	}

	return cfg
}

// UseDemoData сообщает, что приложение работает на демо-данных в памяти.
func (c *Config) UseDemoData() bool {
	return c.DatabaseURI == ""
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
