package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/almacen-api/internal/command/entity"
	"github.com/jhoicas/almacen-api/internal/command/service"
)

var _ service.ProductRepository = (*Store)(nil)
var _ service.UnitOfWork = (*Store)(nil)

// Store implementa el repositorio y la unidad de trabajo del lado comando
// sobre PostgreSQL con escrituras diferidas: Add/Remove y los cambios de
// stock de las lecturas con seguimiento se vuelcan en una sola transacción
// al llamar Commit. Una instancia por petición; no es segura para uso
// concurrente.
type Store struct {
	pool    *pgxpool.Pool
	inserts []*entity.Product
	deletes []*entity.Product
	tracked map[uuid.UUID]*trackedProduct
}

// trackedProduct recuerda el stock con el que se cargó el producto para
// detectar en Commit si hay que emitir un UPDATE.
type trackedProduct struct {
	product     *entity.Product
	loadedStock int
}

// NewStore construye un Store ligado al pool. Crear uno por petición.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:    pool,
		tracked: make(map[uuid.UUID]*trackedProduct),
	}
}

// Add registra la inserción pendiente.
func (s *Store) Add(p *entity.Product) {
	s.inserts = append(s.inserts, p)
}

// Remove registra la eliminación pendiente y saca el producto del
// seguimiento para no emitirle un UPDATE.
func (s *Store) Remove(p *entity.Product) {
	s.deletes = append(s.deletes, p)
	delete(s.tracked, p.ID())
}

// GetByID lectura con seguimiento: los cambios de stock del producto
// devuelto se persisten en el próximo Commit.
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

// GetByCode busca por código (chequeo de unicidad; sin seguimiento).
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
			// Ya rastreado: conservar la instancia con mutaciones en curso.
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
