package service

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/command/entity"
	"github.com/jhoicas/almacen-api/internal/validation"
)

// ProductValidator agrupa las reglas de negocio que requieren consultas al
// repositorio y por eso no pueden vivir en la entidad.
type ProductValidator struct {
	repo ProductRepository
}

// NewProductValidator construye el validador.
func NewProductValidator(repo ProductRepository) *ProductValidator {
	return &ProductValidator{repo: repo}
}

// ValidateInsert verifica la unicidad del código. Es un pre-chequeo de
// mejor esfuerzo con ventana TOCTOU: bajo inserciones concurrentes la
// garantía real es el índice único del almacén.
func (v *ProductValidator) ValidateInsert(ctx context.Context, p *entity.Product) (validation.List, error) {
	existing, err := v.repo.GetByCode(ctx, p.Code())
	if err != nil {
		return nil, fmt.Errorf("validate insert: %w", err)
	}
	if existing != nil {
		return validation.List{validation.NewError(
			"Code",
			fmt.Sprintf("A product with code '%s' already exists.", p.Code()),
		)}, nil
	}
	return nil, nil
}
