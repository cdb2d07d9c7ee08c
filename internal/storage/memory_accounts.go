package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/google/uuid"
)

// MemoryUserStorage хранит учётные записи в памяти процесса.
type MemoryUserStorage struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewMemoryUserStorage создаёт пустое хранилище учётных записей.
func NewMemoryUserStorage() *MemoryUserStorage {
	return &MemoryUserStorage{users: make(map[string]*models.User)}
}

// Create сохраняет пользователя. Email уникален без учёта регистра.
func (s *MemoryUserStorage) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrEmailExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	u := *user
	s.users[u.ID] = &u
	return nil
}

// GetByEmail ищет пользователя по email без учёта регистра.
func (s *MemoryUserStorage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found := *u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByID ищет пользователя по ID.
func (s *MemoryUserStorage) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := *u
	return &found, nil
}

// MemoryLocationStorage хранит справочник мест в памяти процесса.
type MemoryLocationStorage struct {
	mu   sync.RWMutex
	locs []models.Location
}

// NewMemoryLocationStorage создаёт справочник с начальными местами.
func NewMemoryLocationStorage(seed []models.Location) *MemoryLocationStorage {
	locs := make([]models.Location, len(seed))
	copy(locs, seed)
	return &MemoryLocationStorage{locs: locs}
}

// List возвращает копию справочника.
func (s *MemoryLocationStorage) List(ctx context.Context) ([]models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locs := make([]models.Location, len(s.locs))
	copy(locs, s.locs)
	return locs, nil
}

// Create добавляет место.
func (s *MemoryLocationStorage) Create(ctx context.Context, loc *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}
	s.locs = append(s.locs, *loc)
	return nil
}

// Delete удаляет место по ID.
func (s *MemoryLocationStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.locs {
		if l.ID == id {
			s.locs = append(s.locs[:i], s.locs[i+1:]...)
			return nil
		}
	}
	return ErrLocationNotFound
}
