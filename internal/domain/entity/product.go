package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto digital del catálogo.
// FileURL solo se expone al comprador después de la compra (página de descargas).
type Product struct {
	ID          string
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
	FileURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PlaceholderImageURL se usa cuando el producto no tiene imagen cargada.
const PlaceholderImageURL = "https://placehold.co/400x600/1e293b/94a3b8?text=No+Image"
