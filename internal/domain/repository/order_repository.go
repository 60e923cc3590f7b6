package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus items (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItems(items []*entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	ItemsByOrder(orderID string) ([]*entity.OrderItem, error)
	ListByUser(userID string) ([]*entity.Order, error)
	List(limit, offset int) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
	Count() (int, error)
	// UserPurchasedProduct indica si el usuario tiene el producto en alguna orden
	// (habilita descargas y la elegibilidad para reseñar).
	UserPurchasedProduct(userID, productID string) (bool, error)
}
