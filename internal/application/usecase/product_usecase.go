package usecase

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// Valores de orden aceptados por el catálogo.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// ProductUseCase casos de uso del catálogo y del CRUD de productos (back-office).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List devuelve el catálogo filtrado: categoría exacta, búsqueda insensible a
// mayúsculas y tildes sobre título y descripción, y orden newest / price-low /
// price-high. El filtrado fino se hace en memoria sobre el catálogo (es chico).
func (uc *ProductUseCase) List(in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(in.Category)
	if err != nil {
		return nil, err
	}

	if q := foldSearch(in.Search); q != "" {
		filtered := list[:0]
		for _, p := range list {
			if strings.Contains(foldSearch(p.Title), q) || strings.Contains(foldSearch(p.Description), q) {
				filtered = append(filtered, p)
			}
		}
		list = filtered
	}

	switch in.Sort {
	case SortPriceLow:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price.LessThan(list[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(list, func(i, j int) bool { return list[j].Price.LessThan(list[i].Price) })
	default:
		// newest: el repo ya devuelve created_at descendente.
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// Create crea un producto nuevo. Sin imagen se usa el placeholder.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, domain.E(domain.KindValidation, "title y category son requeridos")
	}
	if in.Price.IsNegative() {
		return nil, domain.E(domain.KindValidation, "el precio no puede ser negativo")
	}
	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = entity.PlaceholderImageURL
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		ImageURL:    imageURL,
		FileURL:     in.FileURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update actualiza un producto existente (solo los campos presentes).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.E(domain.KindValidation, "el precio no puede ser negativo")
		}
		p.Price = *in.Price
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.FileURL != nil {
		p.FileURL = *in.FileURL
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// foldSearch normaliza para búsqueda: minúsculas y sin marcas diacríticas,
// para que "diseño" matchee "DISENO" y viceversa.
func foldSearch(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
