package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemResponse item de una orden (foto del producto al comprar).
// FileURL solo se incluye cuando la orden está completed (descargas).
type OrderItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ImageURL     string          `json:"image_url"`
	FileURL      string          `json:"file_url,omitempty"`
	Quantity     int             `json:"quantity"`
}

// OrderResponse orden con sus items.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Total     decimal.Decimal     `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items,omitempty"`
}

// OrderListResponse lista de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateOrderStatusRequest cambio de estado desde el back-office.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed pending cancelled"`
}
