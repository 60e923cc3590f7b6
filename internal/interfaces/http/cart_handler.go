package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// CartHandler maneja el carrito del visitante. El carrito guarda la foto del
// producto al agregarlo (incluido file_url para el snapshot del checkout), por
// eso consulta el puerto de productos y no el caso de uso del catálogo.
type CartHandler struct {
	carts    *cart.Store
	products repository.ProductRepository
}

// NewCartHandler construye el handler.
func NewCartHandler(carts *cart.Store, products repository.ProductRepository) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

// Get godoc
// @Summary      Estado del carrito
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(cartResponse(h.carts.For(GetClientID(c))))
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "Producto a agregar"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	p, err := h.products.GetByID(in.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	cr := h.carts.For(GetClientID(c))
	cr.Add(*p)
	return c.JSON(cartResponse(cr))
}

// RemoveItem godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{productID} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	cr := h.carts.For(GetClientID(c))
	cr.Remove(c.Params("productID"))
	return c.JSON(cartResponse(cr))
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	cr := h.carts.For(GetClientID(c))
	cr.Clear()
	return c.JSON(cartResponse(cr))
}

func cartResponse(cr *cart.Cart) dto.CartResponse {
	items := cr.Items()
	out := dto.CartResponse{
		Items:     make([]dto.CartItemResponse, 0, len(items)),
		ItemCount: cr.ItemCount(),
		Total:     cr.Total(),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.CartItemResponse{
			ProductID: it.Product.ID,
			Title:     it.Product.Title,
			Category:  it.Product.Category,
			Price:     it.Product.Price,
			ImageURL:  it.Product.ImageURL,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal(),
		})
	}
	return out
}
