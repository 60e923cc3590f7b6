package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// ReviewRepository define el puerto de persistencia para Review (DIP).
type ReviewRepository interface {
	Create(review *entity.Review) error
	GetByID(id string) (*entity.Review, error)
	GetByUserAndProduct(userID, productID string) (*entity.Review, error)
	// ListByProduct incluye el email del autor (join con perfiles), más reciente primero.
	ListByProduct(productID string) ([]*entity.Review, error)
	// RatingsByProduct devuelve solo los ratings, para calcular agregados.
	RatingsByProduct(productID string) ([]int, error)
	Update(review *entity.Review) error
	Delete(id string) error
}
