// Package postgres implementa la persistencia de la réplica de lectura.
// Mismo patrón de escrituras diferidas que el lado comando, pero sobre el
// tipo Product propio de la réplica y su propia base de datos física.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/almacen-api/internal/domain"
	platformpg "github.com/jhoicas/almacen-api/internal/platform/postgres"
	"github.com/jhoicas/almacen-api/internal/query/entity"
	"github.com/jhoicas/almacen-api/internal/query/service"
)

var _ service.ProductRepository = (*Store)(nil)
var _ service.UnitOfWork = (*Store)(nil)

// Store repositorio + unidad de trabajo de la réplica. Una instancia por
// evento consumido o petición de lectura; no es segura para uso concurrente.
type Store struct {
	pool    *pgxpool.Pool
	inserts []*entity.Product
	deletes []*entity.Product
	tracked map[uuid.UUID]*trackedProduct
}

type trackedProduct struct {
	product     *entity.Product
	loadedStock int
}

// NewStore construye un Store ligado al pool de la réplica.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, tracked: make(map[uuid.UUID]*trackedProduct)}
}

// Add registra la inserción pendiente.
func (s *Store) Add(p *entity.Product) {
	s.inserts = append(s.inserts, p)
}

// Remove registra la eliminación pendiente.
func (s *Store) Remove(p *entity.Product) {
	s.deletes = append(s.deletes, p)
	delete(s.tracked, p.ID())
}

// GetByID lectura con seguimiento.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if t, ok := s.tracked[id]; ok {
		return t.product, nil
	}
	p, err := s.queryOne(ctx, `SELECT id, code, stock FROM products WHERE id = $1`, id)
	if err != nil || p == nil {
		return nil, err
	}
	s.tracked[id] = &trackedProduct{product: p, loadedStock: p.Stock()}
	return p, nil
}

// GetByIDDetached lectura sin seguimiento.
func (s *Store) GetByIDDetached(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.queryOne(ctx, `SELECT id, code, stock FROM products WHERE id = $1`, id)
}

// GetByCode busca por código (chequeo de unicidad de la réplica).
func (s *Store) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return s.queryOne(ctx, `SELECT id, code, stock FROM products WHERE code = $1`, code)
}

// List lecturas con seguimiento de todos los productos.
func (s *Store) List(ctx context.Context) ([]*entity.Product, error) {
	list, err := s.queryAll(ctx)
	if err != nil {
		return nil, err
	}
	for i, p := range list {
		if t, ok := s.tracked[p.ID()]; ok {
			list[i] = t.product
			continue
		}
		s.tracked[p.ID()] = &trackedProduct{product: p, loadedStock: p.Stock()}
	}
	return list, nil
}

// ListDetached lecturas sin seguimiento.
func (s *Store) ListDetached(ctx context.Context) ([]*entity.Product, error) {
	return s.queryAll(ctx)
}

// Commit vuelca las mutaciones pendientes en una sola transacción. El
// índice único de code protege contra re-entregas concurrentes de un mismo
// ProductCreated: el duplicado sale como domain.ErrDuplicate.
func (s *Store) Commit(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range s.inserts {
		_, err := tx.Exec(ctx,
			`INSERT INTO products (id, code, stock) VALUES ($1, $2, $3)`,
			p.ID(), p.Code(), p.Stock(),
		)
		if err != nil {
			if platformpg.IsUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert product: %w", err)
		}
	}
	for _, t := range s.tracked {
		if t.product.Stock() == t.loadedStock {
			continue
		}
		_, err := tx.Exec(ctx,
			`UPDATE products SET stock = $2 WHERE id = $1`,
			t.product.ID(), t.product.Stock(),
		)
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
	}
	for _, p := range s.deletes {
		if _, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, p.ID()); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if platformpg.IsUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.inserts = nil
	s.deletes = nil
	for _, t := range s.tracked {
		t.loadedStock = t.product.Stock()
	}
	return nil
}

func (s *Store) queryOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var (
		id    uuid.UUID
		code  string
		stock int
	)
	err := s.pool.QueryRow(ctx, query, arg).Scan(&id, &code, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return entity.Restore(id, code, stock), nil
}

func (s *Store) queryAll(ctx context.Context) ([]*entity.Product, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, code, stock FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var (
			id    uuid.UUID
			code  string
			stock int
		)
		if err := rows.Scan(&id, &code, &stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, entity.Restore(id, code, stock))
	}
	return list, rows.Err()
}
