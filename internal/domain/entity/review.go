package entity

import "time"

// Review es la reseña de un usuario sobre un producto comprado.
// Invariante: una reseña por par (user, product); rating en 1..5.
type Review struct {
	ID        string
	UserID    string
	ProductID string
	Rating    int
	Comment   string
	UserEmail string // denormalizado desde el join con el perfil; "Anonymous" si falta
	CreatedAt time.Time
	UpdatedAt time.Time
}
