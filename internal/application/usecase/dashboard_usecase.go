package usecase

import (
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// DashboardUseCase contadores del panel de administración.
type DashboardUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(p repository.ProductRepository, c repository.CategoryRepository, o repository.OrderRepository) *DashboardUseCase {
	return &DashboardUseCase{products: p, categories: c, orders: o}
}

// Stats devuelve los totales de productos, categorías y órdenes.
func (uc *DashboardUseCase) Stats() (*dto.DashboardResponse, error) {
	products, err := uc.products.Count()
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.Count()
	if err != nil {
		return nil, err
	}
	orders, err := uc.orders.Count()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalProducts:   products,
		TotalCategories: categories,
		TotalOrders:     orders,
	}, nil
}
