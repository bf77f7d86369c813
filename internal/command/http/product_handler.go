package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/command/entity"
	"github.com/jhoicas/almacen-api/internal/command/service"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP del lado comando. Cada petición
// obtiene su propio servicio (y con él su propia unidad de trabajo) a
// través de la factory.
type ProductHandler struct {
	services service.Factory
}

// NewProductHandler construye el handler.
func NewProductHandler(services service.Factory) *ProductHandler {
	return &ProductHandler{services: services}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  ProductResponse
// @Failure      422   {array}   validation.Error
// @Failure      409   {object}  ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	p, verrs := entity.NewProduct(in.ID, in.Code)
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(verrs)
	}

	out, verrs, err := h.services().TryInsert(c.UserContext(), p)
	if err != nil {
		return h.storeError(c, err)
	}
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(verrs)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(out))
}

// GetByID godoc
// @Summary      Obtener producto por ID
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
		return h.storeError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(toProductResponse(p))
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.services().GetProducts(c.UserContext())
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(toProductListResponse(list))
}

// Delete godoc
// @Summary      Eliminar producto (solo con stock en cero)
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {array}   validation.Error
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}

	p, verrs, err := h.services().TryDelete(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(verrs)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddStock godoc
// @Summary      Incrementar stock en 1
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      201  {object}  ProductResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/products/{id}/stock [post]
func (h *ProductHandler) AddStock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}

	p, _, err := h.services().TryAddStock(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
}

// RemoveStock godoc
// @Summary      Decrementar stock en 1
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {array}   validation.Error
// @Router       /api/products/{id}/stock [delete]
func (h *ProductHandler) RemoveStock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}

	p, verrs, err := h.services().TryRemoveStock(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(verrs)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// storeError traduce errores de infraestructura. El duplicado que se coló
// más allá del pre-chequeo es un conflicto, no un error de validación.
func (h *ProductHandler) storeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Code: "DUPLICATE", Message: "el código ya existe"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
