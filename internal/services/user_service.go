package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agamariel/transsupply/internal/auth"
	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/storage"
	"go.uber.org/zap"
)

// UserServiceImpl реализует UserService.
type UserServiceImpl struct {
	userStorage     storage.UserStorage
	jwtSecret       string
	tokenExpiration time.Duration
	log             *zap.Logger
}

// NewUserService создаёт новый экземпляр UserService.
func NewUserService(userStorage storage.UserStorage, jwtSecret string, tokenExpiration time.Duration, log *zap.Logger) *UserServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserServiceImpl{
		userStorage:     userStorage,
		jwtSecret:       jwtSecret,
		tokenExpiration: tokenExpiration,
		log:             log.Named("users"),
	}
}

// Login аутентифицирует пользователя и выдаёт токен.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrEmptyCredentials
	}

	user, err := s.userStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// EnsureAdmin создаёт учётную запись администратора, если её ещё нет.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}

	_, err := s.userStorage.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.createAccount(ctx, email, "Administrator", password, models.RoleAdmin, ""); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			return nil
		}
		return err
	}
	s.log.Info("admin account created", zap.String("email", email))
	return nil
}

// CreateClientAccount создаёт учётную запись для входа клиента.
func (s *UserServiceImpl) CreateClientAccount(ctx context.Context, client *models.Client, password string) error {
	if password == "" {
		return ErrEmptyCredentials
	}

	err := s.createAccount(ctx, client.Email, client.Name, password, models.RoleClient, client.ID)
	if errors.Is(err, storage.ErrEmailExists) {
		return ErrClientEmailExists
	}
	return err
}

// SeedClientAccounts создаёт учётные записи для клиентов, у которых их ещё нет.
func (s *UserServiceImpl) SeedClientAccounts(ctx context.Context, clients []*models.Client, password string) error {
	created := 0
	for _, c := range clients {
		err := s.CreateClientAccount(ctx, c, password)
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrClientEmailExists):
		default:
			return fmt.Errorf("seed account for client %s: %w", c.ID, err)
		}
	}
	s.log.Info("client accounts seeded", zap.Int("created", created))
	return nil
}

func (s *UserServiceImpl) createAccount(ctx context.Context, email, name, password string, role models.Role, clientID string) error {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		ClientID:     clientID,
	}

	if err := s.userStorage.Create(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			return storage.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// generateToken генерирует JWT токен для пользователя.
func (s *UserServiceImpl) generateToken(user *models.User) (string, error) {
	exp := s.tokenExpiration
	if exp <= 0 {
		exp = 24 * time.Hour
	}
	return auth.GenerateToken(user.Principal(), s.jwtSecret, exp)
}
