package entity

import "time"

// WishlistItem es la marca "lo quiero" de un usuario sobre un producto.
// Única por par (user, product).
type WishlistItem struct {
	ID        string
	UserID    string
	ProductID string
	CreatedAt time.Time
}
