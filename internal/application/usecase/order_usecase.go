package usecase

import (
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// OrderUseCase consulta de órdenes (descargas del comprador y back-office).
type OrderUseCase struct {
	repo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// ListByUser devuelve las órdenes del usuario con sus items, más reciente
// primero. Las URLs de descarga solo se incluyen en órdenes completed.
func (uc *OrderUseCase) ListByUser(userID string) ([]dto.OrderResponse, error) {
	orders, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items, err := uc.repo.ItemsByOrder(o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toOrderResponse(o, items))
	}
	return out, nil
}

// GetByID devuelve una orden con items. requesterID limita el acceso al dueño;
// un admin pasa requesterID vacío y ve cualquiera.
func (uc *OrderUseCase) GetByID(orderID, requesterID string) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	if requesterID != "" && o.UserID != requesterID {
		return nil, domain.E(domain.KindForbidden, "la orden pertenece a otro usuario")
	}
	items, err := uc.repo.ItemsByOrder(o.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o, items), nil
}

// List devuelve órdenes paginadas para el back-office (sin items, la tabla no los muestra).
func (uc *OrderUseCase) List(limit, offset int) (*dto.OrderListResponse, error) {
	orders, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateStatus cambia el estado de una orden desde el back-office.
func (uc *OrderUseCase) UpdateStatus(orderID, status string) error {
	if !entity.ValidOrderStatus(status) {
		return domain.E(domain.KindValidation, "estado de orden desconocido: "+status)
	}
	o, err := uc.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	return uc.repo.UpdateStatus(orderID, status)
}

func toOrderResponse(o *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	out := &dto.OrderResponse{
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
		// La descarga se habilita solo con la orden completed.
		if o.Status == entity.OrderStatusCompleted {
			item.FileURL = it.ProductFileURL
		}
		out.Items = append(out.Items, item)
	}
	return out
}
