// Package checkout orquesta la confirmación de compra: exige sesión, simula el
// pago (solo una espera fija, no hay pasarela real), persiste la orden con sus
// items en una transacción y vacía el carrito únicamente al confirmar.
package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/session"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// TxRunner ejecuta el callback con un repositorio de órdenes atado a una
// transacción; commit si fn devuelve nil, rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// UseCase caso de uso de checkout.
type UseCase struct {
	tx           TxRunner
	paymentDelay time.Duration
	log          *logger.Logger
}

// NewUseCase construye el caso de uso. paymentDelay es la espera del pago simulado.
func NewUseCase(tx TxRunner, paymentDelay time.Duration, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, paymentDelay: paymentDelay, log: log}
}

// Process confirma la compra del carrito del visitante.
// Lee ambos contenedores: sin sesión autenticada no procede; con éxito la orden
// queda persistida y el carrito se vacía. Si la persistencia falla el carrito
// se conserva para reintentar.
func (uc *UseCase) Process(ctx context.Context, m *session.Manager, c *cart.Cart) (*entity.Order, []*entity.OrderItem, error) {
	st, ident := m.Snapshot()
	if st != session.StateAuthenticated {
		return nil, nil, domain.E(domain.KindUnauthorized, "You must be signed in to check out")
	}
	items := c.Items()
	if len(items) == 0 {
		return nil, nil, domain.E(domain.KindValidation, "Your cart is empty")
	}

	// Pago simulado: espera fija, cancelable por contexto.
	if uc.paymentDelay > 0 {
		select {
		case <-time.After(uc.paymentDelay):
		case <-ctx.Done():
			return nil, nil, domain.Wrap(domain.KindCollaborator, "Checkout cancelled", ctx.Err())
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		UserID:    ident.ID,
		Total:     c.Total(),
		Status:    entity.OrderStatusCompleted,
		CreatedAt: now,
	}
	orderItems := make([]*entity.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, &entity.OrderItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ProductID:       it.Product.ID,
			ProductTitle:    it.Product.Title,
			ProductPrice:    it.Product.Price,
			ProductImageURL: it.Product.ImageURL,
			ProductFileURL:  it.Product.FileURL,
			Quantity:        it.Quantity,
			CreatedAt:       now,
		})
	}

	err := uc.tx.Run(ctx, func(orders repository.OrderRepository) error {
		if err := orders.Create(order); err != nil {
			return err
		}
		return orders.CreateItems(orderItems)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", ident.ID).Msg("persistencia de orden falló")
		return nil, nil, domain.Wrap(domain.KindCollaborator, "Failed to create order", err)
	}

	// Solo con la orden confirmada se vacía el carrito.
	c.Clear()
	uc.log.Info().Str("order_id", order.ID).Str("user_id", ident.ID).Msg("orden confirmada")
	return order, orderItems, nil
}
