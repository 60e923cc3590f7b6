package entity

import "github.com/shopspring/decimal"

// CartItem es un producto dentro del carrito más su contador de cantidad.
// Invariante: la cantidad siempre es >= 1; quitar un item elimina la entrada.
type CartItem struct {
	Product  Product
	Quantity int
}

// Subtotal devuelve precio × cantidad del item.
func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
