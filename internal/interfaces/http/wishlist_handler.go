package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// WishlistHandler maneja la lista de deseos del usuario autenticado.
type WishlistHandler struct {
	uc *usecase.WishlistUseCase
}

// NewWishlistHandler construye el handler.
func NewWishlistHandler(uc *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

// List godoc
// @Summary      Productos en la wishlist
// @Tags         wishlist
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WishlistResponse
// @Router       /api/wishlist [get]
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Marcar un producto
// @Tags         wishlist
// @Security     Bearer
// @Accept       json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/wishlist [post]
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	var in dto.WishlistToggleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	if err := h.uc.Add(GetUserID(c), in.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Remove godoc
// @Summary      Desmarcar un producto
// @Tags         wishlist
// @Security     Bearer
// @Param        productID  path  string  true  "ID del producto"
// @Success      204
// @Router       /api/wishlist/{productID} [delete]
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(GetUserID(c), c.Params("productID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Contains godoc
// @Summary      Consultar si un producto está marcado
// @Tags         wishlist
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.WishlistContainsResponse
// @Router       /api/wishlist/{productID} [get]
func (h *WishlistHandler) Contains(c *fiber.Ctx) error {
	ok, err := h.uc.Contains(GetUserID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.WishlistContainsResponse{InWishlist: ok})
}
