package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func producto(id, title string, price string) entity.Product {
	return entity.Product{
		ID:    id,
		Title: title,
		Price: decimal.RequireFromString(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Add
// ──────────────────────────────────────────────────────────────────────────────

// Agregar N veces el mismo producto deja una sola entrada con cantidad N.
func TestCart_AddRepetido_IncrementaCantidad(t *testing.T) {
	c := cart.New()
	p := producto("a", "Poster retro", "10.00")

	for i := 0; i < 5; i++ {
		c.Add(p)
	}

	items := c.Items()
	require.Len(t, items, 1, "el mismo ID no debe duplicar entradas")
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, c.ItemCount())
}

// Escenario literal: carrito = [{id:"a", price:10, qty:1}], se agrega {id:"a", price:10}
// → [{id:"a", price:10, qty:2}], total = 20.00, itemCount = 2.
func TestCart_AddExistente_Escenario(t *testing.T) {
	c := cart.New()
	p := producto("a", "UI Kit oscuro", "10.00")

	c.Add(p)
	c.Add(p)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, c.ItemCount())
	assert.True(t, c.Total().Equal(decimal.RequireFromString("20.00")),
		"total esperado 20.00, obtenido %s", c.Total())
}

// Productos distintos conservan el orden de inserción.
func TestCart_AddDistintos_ConservaOrden(t *testing.T) {
	c := cart.New()
	c.Add(producto("a", "Poster", "5.00"))
	c.Add(producto("b", "Banner", "7.50"))
	c.Add(producto("c", "Template", "12.00"))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Product.ID)
	assert.Equal(t, "b", items[1].Product.ID)
	assert.Equal(t, "c", items[2].Product.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Remove / Clear
// ──────────────────────────────────────────────────────────────────────────────

// Remove elimina la entrada completa aunque la cantidad sea > 1 (nunca queda cantidad 0).
func TestCart_Remove_EliminaEntradaCompleta(t *testing.T) {
	c := cart.New()
	p := producto("a", "Poster", "10.00")
	c.Add(p)
	c.Add(p)
	c.Add(producto("b", "Banner", "3.00"))

	c.Remove("a")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Product.ID)
	assert.Equal(t, 1, c.ItemCount())
}

// Remove de un ID ausente es no-op, no un error.
func TestCart_RemoveAusente_NoOp(t *testing.T) {
	c := cart.New()
	c.Add(producto("a", "Poster", "10.00"))

	c.Remove("zzz")

	assert.Equal(t, 1, c.ItemCount())
}

// Clear seguido de cualquier lectura da cero, sin importar el estado previo.
func TestCart_Clear_DejaTodoEnCero(t *testing.T) {
	c := cart.New()
	c.Add(producto("a", "Poster", "10.00"))
	c.Add(producto("b", "Banner", "3.99"))
	c.Add(producto("a", "Poster", "10.00"))

	c.Clear()

	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.Total().IsZero())
	assert.Empty(t, c.Items())
	assert.True(t, c.Empty())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests derivados: ItemCount y Total nunca derivan de contadores separados
// ──────────────────────────────────────────────────────────────────────────────

// Tras cualquier secuencia de add/remove, ItemCount == Σ cantidades presentes.
func TestCart_ItemCount_SinDrift(t *testing.T) {
	c := cart.New()
	a := producto("a", "Poster", "1.00")
	b := producto("b", "Banner", "2.00")

	c.Add(a)
	c.Add(b)
	c.Add(a)
	c.Remove("b")
	c.Add(a)
	c.Add(b)

	suma := 0
	for _, it := range c.Items() {
		suma += it.Quantity
	}
	assert.Equal(t, suma, c.ItemCount())
	assert.Equal(t, 4, c.ItemCount()) // a×3 + b×1
}

// Un item de 9.99 con cantidad 3 aporta exactamente 29.97 al total (decimal, sin flotantes).
func TestCart_Total_PrecisionDecimal(t *testing.T) {
	c := cart.New()
	caro := producto("x", "Branding pack", "100.00")
	barato := producto("y", "Sticker", "9.99")

	c.Add(caro)
	c.Add(barato)
	c.Add(barato)
	c.Add(barato)

	esperado := decimal.RequireFromString("129.97")
	assert.True(t, c.Total().Equal(esperado),
		"total esperado %s, obtenido %s", esperado, c.Total())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Store
// ──────────────────────────────────────────────────────────────────────────────

// Cada visitante tiene su propio carrito; For es idempotente por client ID.
func TestStore_CarritosPorVisitante(t *testing.T) {
	s := cart.NewStore()

	s.For("cliente-1").Add(producto("a", "Poster", "10.00"))
	s.For("cliente-2").Add(producto("b", "Banner", "5.00"))

	assert.Equal(t, 1, s.For("cliente-1").ItemCount())
	assert.Equal(t, "b", s.For("cliente-2").Items()[0].Product.ID)
}

func TestStore_Drop_DescartaEstado(t *testing.T) {
	s := cart.NewStore()
	s.For("cliente-1").Add(producto("a", "Poster", "10.00"))

	s.Drop("cliente-1")

	assert.Equal(t, 0, s.For("cliente-1").ItemCount(), "tras Drop el carrito arranca vacío")
}
