package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/command/service"
)

// RouterDeps dependencias para el router del lado comando.
type RouterDeps struct {
	Products service.Factory
}

// Router registra las rutas de la API de comando.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	h := NewProductHandler(deps.Products)
	products.Get("/", h.List)
	products.Post("/", h.Create)
	products.Get("/:id", h.GetByID)
	products.Delete("/:id", h.Delete)
	products.Post("/:id/stock", h.AddStock)
	products.Delete("/:id/stock", h.RemoveStock)
}
