// Package cart implementa el carrito de compras en memoria.
//
// El carrito vive solo lo que vive el proceso: no se persiste ni se sincroniza
// entre dispositivos. La colección de items es la única fuente de verdad;
// ItemCount y Total se calculan sobre ella en cada lectura, nunca se llevan
// contadores aparte que puedan desincronizarse.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// Cart es el contenedor de estado del carrito de un visitante.
// Invariantes: un item por ID de producto (agregar un producto presente
// incrementa su cantidad); cantidad siempre >= 1 (quitar elimina la entrada).
type Cart struct {
	mu    sync.Mutex
	items []*entity.CartItem
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{}
}

// Add agrega un producto. Si ya está en el carrito incrementa su cantidad en 1;
// si no, lo agrega al final con cantidad 1. Nunca falla ni tiene límite de capacidad.
func (c *Cart) Add(p entity.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.Product.ID == p.ID {
			it.Quantity++
			return
		}
	}
	c.items = append(c.items, &entity.CartItem{Product: p, Quantity: 1})
}

// Remove elimina la entrada del producto indicado. Si no está, no hace nada.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if it.Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear vacía el carrito incondicionalmente.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items devuelve una copia de los items en orden de inserción.
func (c *Cart) Items() []entity.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.CartItem, len(c.items))
	for i, it := range c.items {
		out[i] = *it
	}
	return out
}

// ItemCount devuelve Σ cantidad sobre los items presentes.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total devuelve Σ (precio × cantidad) sobre los items presentes.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Empty indica si el carrito no tiene items.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}
