package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/storage"
)

// LocationServiceImpl реализует LocationService.
type LocationServiceImpl struct {
	locationStorage storage.LocationStorage
}

// NewLocationService создаёт сервис справочника мест забора.
func NewLocationService(locationStorage storage.LocationStorage) *LocationServiceImpl {
	return &LocationServiceImpl{locationStorage: locationStorage}
}

// List возвращает места, название которых содержит query.
func (s *LocationServiceImpl) List(ctx context.Context, query string) ([]models.Location, error) {
	locs, err := s.locationStorage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return locs, nil
	}

	matched := make([]models.Location, 0, len(locs))
	for _, l := range locs {
		if l.MatchesName(query) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

// Create добавляет место в справочник.
func (s *LocationServiceImpl) Create(ctx context.Context, loc models.Location) (*models.Location, error) {
	loc.Name = strings.TrimSpace(loc.Name)
	if loc.Name == "" {
		return nil, fmt.Errorf("%w: location name is required", ErrValidation)
	}
	if math.IsNaN(loc.Lat) || loc.Lat < -90 || loc.Lat > 90 ||
		math.IsNaN(loc.Lng) || loc.Lng < -180 || loc.Lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}

	if err := s.locationStorage.Create(ctx, &loc); err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return &loc, nil
}

// Delete удаляет место из справочника.
func (s *LocationServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.locationStorage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrLocationNotFound) {
			return ErrLocationNotFound
		}
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
