package http

import (
	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/command/entity"
)

// CreateProductRequest cuerpo de creación. El id es opcional: si viene en
// cero se genera uno nuevo.
type CreateProductRequest struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

// ProductResponse representa un producto en las respuestas JSON.
type ProductResponse struct {
	ID    uuid.UUID `json:"id"`
	Code  string    `json:"code"`
	Stock int       `json:"stock"`
}

// ErrorResponse error genérico de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID(), Code: p.Code(), Stock: p.Stock()}
}

func toProductListResponse(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}
