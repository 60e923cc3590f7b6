package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// WishlistRepository define el puerto de persistencia para Wishlist (DIP).
type WishlistRepository interface {
	Add(item *entity.WishlistItem) error
	Remove(userID, productID string) error
	// ListProducts devuelve los productos marcados por el usuario, más reciente primero.
	ListProducts(userID string) ([]*entity.Product, error)
	Contains(userID, productID string) (bool, error)
	Count(userID string) (int, error)
}
