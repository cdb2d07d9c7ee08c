package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/agamariel/transsupply/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrLocationNotFound = errors.New("location not found")

// LocationStorage определяет интерфейс справочника мест забора.
type LocationStorage interface {
	List(ctx context.Context) ([]models.Location, error)
	Create(ctx context.Context, loc *models.Location) error
	Delete(ctx context.Context, id string) error
}

// PostgresLocationStorage реализует LocationStorage для PostgreSQL.
type PostgresLocationStorage struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

// NewPostgresLocationStorage создаёт новый экземпляр PostgresLocationStorage.
func NewPostgresLocationStorage(pool *pgxpool.Pool) *PostgresLocationStorage {
	return &PostgresLocationStorage{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// List возвращает все места, упорядоченные по названию.
func (s *PostgresLocationStorage) List(ctx context.Context) ([]models.Location, error) {
	query, args, err := s.psql.Select("id", "name", "lat", "lng").
		From("locations").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locs := make([]models.Location, 0)
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Lat, &loc.Lng); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locs = append(locs, loc)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return locs, nil
}

// Create сохраняет новое место.
func (s *PostgresLocationStorage) Create(ctx context.Context, loc *models.Location) error {
	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}

	query, args, err := s.psql.Insert("locations").
		Columns("id", "name", "lat", "lng").
		Values(loc.ID, loc.Name, loc.Lat, loc.Lng).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

// Delete удаляет место по ID.
func (s *PostgresLocationStorage) Delete(ctx context.Context, id string) error {
	query, args, err := s.psql.Delete("locations").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}
