package dto

// WishlistToggleRequest entrada para agregar/quitar un producto de la wishlist.
type WishlistToggleRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistResponse productos marcados por el usuario.
type WishlistResponse struct {
	Items []ProductResponse `json:"items"`
	Count int               `json:"count"`
}

// WishlistContainsResponse indica si el producto está en la wishlist.
type WishlistContainsResponse struct {
	InWishlist bool `json:"in_wishlist"`
}
