package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/agamariel/transsupply/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPersistence реализует Persistence для PostgreSQL.
type PostgresPersistence struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

// NewPostgresPersistence создаёт новый экземпляр PostgresPersistence.
func NewPostgresPersistence(pool *pgxpool.Pool) *PostgresPersistence {
	return &PostgresPersistence{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FetchAll читает клиентов, заказы и места. Заказы упорядочены по created_at.
func (s *PostgresPersistence) FetchAll(ctx context.Context) (*Snapshot, error) {
	clients, err := s.fetchClients(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.fetchOrders(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	packages, err := s.fetchPackages(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range packages {
		if o, ok := byID[p.OrderID]; ok {
			o.Packages = append(o.Packages, p)
		}
	}

	return &Snapshot{Orders: orders, Clients: clients}, nil
}

func (s *PostgresPersistence) fetchClients(ctx context.Context) ([]*models.Client, error) {
	query, args, err := s.psql.Select("id", "email", "name", "created_at").
		From("clients").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Email, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, &c)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return clients, nil
}

func (s *PostgresPersistence) fetchOrders(ctx context.Context) ([]*models.Order, error) {
	query, args, err := s.psql.Select(orderColumns...).
		From("orders").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		var row OrderRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, row.Order())
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return orders, nil
}

func (s *PostgresPersistence) fetchPackages(ctx context.Context) ([]models.Package, error) {
	query, args, err := s.psql.Select(packageColumns...).
		From("order_packages").
		OrderBy("order_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		var r PackageRow
		if err := rows.Scan(&r.ID, &r.OrderID, &r.ClientRef, &r.Dimensions, &r.WeightKg, &r.Colli); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, r.Package())
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return packages, nil
}

// InsertOrder сохраняет заказ и его места в одной транзакции.
func (s *PostgresPersistence) InsertOrder(ctx context.Context, order *models.Order) error {
	row := NewOrderRow(order)
	query, args, err := s.psql.Insert("orders").
		Columns(orderColumns...).
		Values(row.values()...).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return ErrOrderExists
			case "23503": // foreign_key_violation
				return ErrClientNotFound
			}
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	for _, p := range order.Packages {
		if err := s.insertPackageTx(ctx, tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateOrder записывает заданные поля патча.
func (s *PostgresPersistence) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch, updatedAt time.Time) error {
	query, args, err := s.psql.Update("orders").
		SetMap(patchColumns(patch)).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// DeleteOrder удаляет заказ, места удаляются каскадно.
func (s *PostgresPersistence) DeleteOrder(ctx context.Context, id string) error {
	query, args, err := s.psql.Delete("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// InsertPackage добавляет место в конец списка и обновляет вес заказа.
func (s *PostgresPersistence) InsertPackage(ctx context.Context, order *models.Order, pkg models.Package) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.insertPackageTx(ctx, tx, pkg); err != nil {
		return err
	}
	if err := s.updateTotalsTx(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeletePackage удаляет место и обновляет вес заказа.
func (s *PostgresPersistence) DeletePackage(ctx context.Context, order *models.Order, packageID string) error {
	query, args, err := s.psql.Delete("order_packages").
		Where(sq.Eq{"id": packageID, "order_id": order.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if err := s.updateTotalsTx(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// InsertClient сохраняет клиента.
func (s *PostgresPersistence) InsertClient(ctx context.Context, client *models.Client) error {
	query, args, err := s.psql.Insert("clients").
		Columns("id", "email", "name", "created_at").
		Values(client.ID, client.Email, client.Name, client.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrClientEmailExists
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// DeleteClient удаляет клиента. Клиент с заказами не удаляется (внешний ключ).
func (s *PostgresPersistence) DeleteClient(ctx context.Context, id string) error {
	query, args, err := s.psql.Delete("clients").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// insertPackageTx ставит место после последнего места заказа.
func (s *PostgresPersistence) insertPackageTx(ctx context.Context, tx pgx.Tx, p models.Package) error {
	row := NewPackageRow(p)
	query, args, err := s.psql.Insert("order_packages").
		Columns(packageInsertColumns()...).
		Values(row.ID, row.OrderID, row.ClientRef, row.Dimensions, row.WeightKg, row.Colli,
			sq.Expr("(SELECT COALESCE(MAX(position), -1) + 1 FROM order_packages WHERE order_id = ?)", row.OrderID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (s *PostgresPersistence) updateTotalsTx(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	query, args, err := s.psql.Update("orders").
		Set("total_weight_kg", order.TotalWeightKg).
		Set("updated_at", sq.Expr("GREATEST(updated_at, ?)", order.UpdatedAt)).
		Where(sq.Eq{"id": order.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order totals: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}
