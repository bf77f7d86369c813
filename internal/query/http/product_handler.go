// Package http expone la API de solo lectura de la réplica. Las mutaciones
// llegan únicamente por el bus de eventos, nunca por HTTP.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/query/entity"
	"github.com/jhoicas/almacen-api/internal/query/service"
)

// ProductResponse representa un producto de la réplica en JSON.
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

// ProductHandler maneja las lecturas sobre la réplica.
type ProductHandler struct {
	services service.Factory
}

// NewProductHandler construye el handler.
func NewProductHandler(services service.Factory) *ProductHandler {
	return &ProductHandler{services: services}
}

// GetByID godoc
// @Summary      Obtener producto por ID (réplica)
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  ProductResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}

	p, err := h.services().GetProduct(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(toProductResponse(p))
}

// List godoc
// @Summary      Listar productos (réplica)
// @Tags         products
// @Produce      json
// @Success      200  {array}  ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.services().GetProducts(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(out)
}

func toProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID(), Code: p.Code(), Stock: p.Stock()}
}

// RouterDeps dependencias para el router de la réplica.
type RouterDeps struct {
	Products service.Factory
}

// Router registra las rutas de lectura.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	h := NewProductHandler(deps.Products)
	products.Get("/", h.List)
	products.Get("/:id", h.GetByID)
}
