package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/command/entity"
	"github.com/jhoicas/almacen-api/internal/event"
)

// ProductRepository es el puerto de persistencia del lado comando (DIP).
// Add y Remove solo registran la mutación pendiente; UnitOfWork.Commit la
// confirma. Las variantes Detached devuelven copias fuera del seguimiento
// de cambios. No encontrado se representa como (nil, nil).
type ProductRepository interface {
	Add(p *entity.Product)
	Remove(p *entity.Product)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDDetached(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListDetached(ctx context.Context) ([]*entity.Product, error)
}

// UnitOfWork confirma atómicamente las mutaciones pendientes hechas a
// través del repositorio desde el último Commit.
type UnitOfWork interface {
	Commit(ctx context.Context) error
}

// EventPublisher publica un evento de dominio con entrega
// al-menos-una-vez y sin garantía de orden entre tipos de evento.
// Se invoca únicamente después de que el commit local tuvo éxito.
type EventPublisher interface {
	Publish(ctx context.Context, evt event.Event) error
}
