package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// WishlistUseCase casos de uso de la lista de deseos.
type WishlistUseCase struct {
	repo     repository.WishlistRepository
	products repository.ProductRepository
}

// NewWishlistUseCase construye el caso de uso.
func NewWishlistUseCase(repo repository.WishlistRepository, products repository.ProductRepository) *WishlistUseCase {
	return &WishlistUseCase{repo: repo, products: products}
}

// Add marca un producto. Si ya estaba marcado es no-op (el botón es un toggle
// y el doble click no debe fallar).
func (uc *WishlistUseCase) Add(userID, productID string) error {
	p, err := uc.products.GetByID(productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	already, err := uc.repo.Contains(userID, productID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}
	return uc.repo.Add(&entity.WishlistItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	})
}

// Remove quita la marca. No-op si no estaba.
func (uc *WishlistUseCase) Remove(userID, productID string) error {
	return uc.repo.Remove(userID, productID)
}

// List devuelve los productos marcados, más reciente primero.
func (uc *WishlistUseCase) List(userID string) (*dto.WishlistResponse, error) {
	products, err := uc.repo.ListProducts(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.WishlistResponse{Items: items, Count: len(items)}, nil
}

// Contains indica si el producto está marcado por el usuario.
func (uc *WishlistUseCase) Contains(userID, productID string) (bool, error) {
	return uc.repo.Contains(userID, productID)
}

// Count devuelve la cantidad de productos marcados (badge de la barra).
func (uc *WishlistUseCase) Count(userID string) (int, error) {
	return uc.repo.Count(userID)
}
