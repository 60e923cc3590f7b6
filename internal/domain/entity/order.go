package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de una orden.
const (
	OrderStatusCompleted = "completed"
	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancelled"
)

// Order es una compra confirmada. El pago es simulado, por lo que las órdenes
// nacen en estado completed; el back-office puede cambiar el estado después.
type Order struct {
	ID        string
	UserID    string
	Total     decimal.Decimal
	Status    string
	CreatedAt time.Time
}

// OrderItem es la foto del producto al momento de la compra (título, precio e
// imagen se copian para que ediciones posteriores del catálogo no la alteren).
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	ProductTitle    string
	ProductPrice    decimal.Decimal
	ProductImageURL string
	ProductFileURL  string
	Quantity        int
	CreatedAt       time.Time
}

// ValidOrderStatus indica si s es un estado de orden conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusCompleted, OrderStatusPending, OrderStatusCancelled:
		return true
	}
	return false
}
