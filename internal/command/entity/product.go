package entity

import (
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/validation"
)

// CodeLength es la longitud exacta exigida al código de producto.
const CodeLength = 8

// Product es el agregado autoritativo de un artículo de bodega.
// Code es inmutable tras la construcción; Stock solo cambia vía
// AddStock/RemoveStock/UpdateStock y nunca queda negativo: las operaciones
// validan antes de mutar, nunca aplican y revierten.
type Product struct {
	id    uuid.UUID
	code  string
	stock int
}

// NewProduct construye un producto con stock 0 validando los atributos.
// Si id es el UUID cero se genera uno nuevo.
func NewProduct(id uuid.UUID, code string) (*Product, validation.List) {
	if errs := ValidateCode(code); errs.HasErrors() {
		return nil, errs
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Product{id: id, code: code}, nil
}

// Restore rehidrata un producto desde el almacén sin re-validar.
func Restore(id uuid.UUID, code string, stock int) *Product {
	return &Product{id: id, code: code, stock: stock}
}

// ValidateCode aplica las reglas de forma del código.
func ValidateCode(code string) validation.List {
	if code == "" {
		return validation.List{validation.NewError("Code", "Code field is required.")}
	}
	if utf8.RuneCountInString(code) != CodeLength {
		return validation.List{validation.NewError("Code", "Code must be exactly 8 characters.")}
	}
	return nil
}

func (p *Product) ID() uuid.UUID { return p.id }
func (p *Product) Code() string  { return p.code }
func (p *Product) Stock() int    { return p.stock }

// AddStock incrementa el stock en 1. Siempre es legal.
func (p *Product) AddStock() {
	p.stock++
}

// RemoveStock decrementa el stock en 1. Llamarlo con stock en cero es una
// violación de contrato del llamador (no entrada de usuario) y provoca
// panic; quien quiera un chequeo recuperable usa ValidateRemoveStock antes.
func (p *Product) RemoveStock() {
	if p.stock <= 0 {
		panic("entity: cannot remove stock when stock level is zero")
	}
	p.stock--
}

// UpdateStock asigna el valor absoluto. El llamador valida antes con
// ValidateUpdateStock.
func (p *Product) UpdateStock(stock int) {
	p.stock = stock
}

// ValidateRemoveStock verifica que se pueda decrementar el stock.
func (p *Product) ValidateRemoveStock() validation.List {
	if p.stock <= 0 {
		return validation.List{validation.NewError("Stock", "Cannot remove stock when stock level is zero.")}
	}
	return nil
}

// ValidateRemove verifica que el producto pueda eliminarse: solo es legal
// con el stock en cero (regla distinta a la de RemoveStock).
func (p *Product) ValidateRemove() validation.List {
	if p.stock != 0 {
		return validation.List{validation.NewError("Stock", "Cannot remove a product when stock level is zero.")}
	}
	return nil
}

// ValidateUpdateStock verifica que el nuevo valor absoluto sea legal.
func (p *Product) ValidateUpdateStock(stock int) validation.List {
	if stock < 0 {
		return validation.List{validation.NewError("Stock", "Stock cannot be negative.")}
	}
	return nil
}
