package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// ReviewHandler maneja las reseñas de productos.
type ReviewHandler struct {
	uc *usecase.ReviewUseCase
}

// NewReviewHandler construye el handler.
func NewReviewHandler(uc *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// ListByProduct godoc
// @Summary      Reseñas de un producto
// @Tags         reviews
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {array}  dto.ReviewResponse
// @Router       /api/products/{productID}/reviews [get]
func (h *ReviewHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Agregados de reseñas de un producto
// @Tags         reviews
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReviewStatsResponse
// @Router       /api/products/{productID}/reviews/stats [get]
func (h *ReviewHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CanReview godoc
// @Summary      Elegibilidad para reseñar (compró y aún no reseñó)
// @Tags         reviews
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReviewEligibilityResponse
// @Router       /api/products/{productID}/reviews/eligibility [get]
func (h *ReviewHandler) CanReview(c *fiber.Ctx) error {
	ok, err := h.uc.CanReview(GetUserID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReviewEligibilityResponse{CanReview: ok})
}

// Create godoc
// @Summary      Reseñar un producto comprado
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "Reseña"
// @Success      201   {object}  dto.ReviewResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar la reseña propia
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reseña"
// @Param        body  body  dto.UpdateReviewRequest  true  "Cambios"
// @Success      200   {object}  dto.ReviewResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reviews/{id} [put]
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reseña no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar reseña (autor o admin)
// @Tags         reviews
// @Security     Bearer
// @Param        id  path  string  true  "ID de la reseña"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
