package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	platformpg "github.com/jhoicas/almacen-api/internal/platform/postgres"
)

// Commit vuelca las mutaciones pendientes (inserciones, cambios de stock de
// productos rastreados, eliminaciones) en una sola transacción y limpia el
// estado pendiente. Una violación del índice único de code se traduce a
// domain.ErrDuplicate: es el camino esperado cuando dos inserciones
// concurrentes pasan el pre-chequeo a la vez.
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
