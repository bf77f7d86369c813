package entity

import (
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/validation"
)

// CodeLength es la longitud exacta exigida al código de producto.
const CodeLength = 8

// Product es la réplica de lectura de un artículo de bodega. Solo muta al
// aplicar eventos consumidos del lado comando: no expone incrementos ni
// decrementos, únicamente la asignación absoluta que transporta
// ProductUpdated.
type Product struct {
	id    uuid.UUID
	code  string
	stock int
}

// NewProduct construye la réplica de un producto recién creado (stock 0)
// re-validando los atributos del evento: la réplica no confía a ciegas en
// un evento posiblemente viejo o malformado.
func NewProduct(id uuid.UUID, code string) (*Product, validation.List) {
	var errs validation.List
	if code == "" {
		errs = append(errs, validation.NewError("Code", "Code field is required."))
	} else if utf8.RuneCountInString(code) != CodeLength {
		errs = append(errs, validation.NewError("Code", "Code must be exactly 8 characters."))
	}
	if errs.HasErrors() {
		return nil, errs
	}
	return &Product{id: id, code: code}, nil
}

// Restore rehidrata un producto desde el almacén de la réplica.
func Restore(id uuid.UUID, code string, stock int) *Product {
	return &Product{id: id, code: code, stock: stock}
}

func (p *Product) ID() uuid.UUID { return p.id }
func (p *Product) Code() string  { return p.code }
func (p *Product) Stock() int    { return p.stock }

// UpdateStock asigna el valor absoluto que transporta el evento; aplicar
// dos veces el mismo evento deja el mismo resultado.
func (p *Product) UpdateStock(stock int) {
	p.stock = stock
}

// ValidateUpdateStock verifica que el valor del evento sea legal.
func (p *Product) ValidateUpdateStock(stock int) validation.List {
	if stock < 0 {
		return validation.List{validation.NewError("Stock", "Stock cannot be negative.")}
	}
	return nil
}

// ValidateRemove verifica que el producto pueda eliminarse de la réplica:
// solo es legal con el stock en cero.
func (p *Product) ValidateRemove() validation.List {
	if p.stock != 0 {
		return validation.List{validation.NewError("Stock", "Cannot remove a product when stock level is zero.")}
	}
	return nil
}
