package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/checkout"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/session"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// CheckoutHandler confirma la compra del carrito del visitante.
type CheckoutHandler struct {
	uc       *checkout.UseCase
	sessions *session.Registry
	carts    *cart.Store
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.UseCase, sessions *session.Registry, carts *cart.Store) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, sessions: sessions, carts: carts}
}

// Process godoc
// @Summary      Confirmar compra del carrito
// @Tags         checkout
// @Produce      json
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Process(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	m := h.sessions.For(c.Context(), clientID)
	cr := h.carts.For(clientID)

	order, items, err := h.uc.Process(c.Context(), m, cr)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orderResponse(order, items))
}

// orderResponse arma el DTO de una orden. Las URLs de descarga solo se
// incluyen cuando la orden está completed.
func orderResponse(o *entity.Order, items []*entity.OrderItem) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Total:     o.Total,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
	for _, it := range items {
		item := dto.OrderItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductTitle: it.ProductTitle,
			ProductPrice: it.ProductPrice,
			ImageURL:     it.ProductImageURL,
			Quantity:     it.Quantity,
		}
		if o.Status == entity.OrderStatusCompleted {
			item.FileURL = it.ProductFileURL
		}
		out.Items = append(out.Items, item)
	}
	return out
}
