package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List devuelve el catálogo completo ordenado por created_at descendente,
	// opcionalmente filtrado por categoría. Búsqueda y orden fino se aplican en el caso de uso.
	List(category string) ([]*entity.Product, error)
	Delete(id string) error
	Count() (int, error)
}
