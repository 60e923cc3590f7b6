package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────
// Fake de ProductRepository en memoria
// ─────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products []*entity.Product
	created  []*entity.Product
	updated  []*entity.Product
	deleted  []string
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.created = append(f.created, p)
	f.products = append(f.products, p)
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.updated = append(f.updated, p)
	return nil
}

func (f *fakeProductRepo) List(category string) ([]*entity.Product, error) {
	if category == "" {
		out := make([]*entity.Product, len(f.products))
		copy(out, f.products)
		return out, nil
	}
	var out []*entity.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeProductRepo) Count() (int, error) { return len(f.products), nil }

func producto(id, title, category, price string) *entity.Product {
	return &entity.Product{
		ID:        id,
		Title:     title,
		Category:  category,
		Price:     decimal.RequireFromString(price),
		CreatedAt: time.Now(),
	}
}

// ─────────────────────────────────────────────────────────────
// Tests de catálogo (List)
// ─────────────────────────────────────────────────────────────

func TestProductList_FiltraPorCategoria(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		producto("p1", "Curso de Go", "cursos", "25.00"),
		producto("p2", "Plantilla CV", "plantillas", "5.00"),
	}}
	uc := NewProductUseCase(repo)

	out, err := uc.List(dto.ProductListRequest{Category: "cursos"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "p1", out.Items[0].ID)
	assert.Equal(t, 1, out.Total)
}

func TestProductList_BusquedaInsensibleAMayusculasYTildes(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		producto("p1", "Curso de Diseño Gráfico", "cursos", "25.00"),
		producto("p2", "Plantilla CV", "plantillas", "5.00"),
		{ID: "p3", Title: "Fotografía", Description: "edición de DISENO avanzado", Category: "cursos", Price: decimal.RequireFromString("10.00")},
	}}
	uc := NewProductUseCase(repo)

	// "DISENO" sin tilde matchea "Diseño" y también la descripción de p3.
	out, err := uc.List(dto.ProductListRequest{Search: "DISENO"})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "p1", out.Items[0].ID)
	assert.Equal(t, "p3", out.Items[1].ID)

	// Y al revés: buscar con tilde encuentra texto sin tilde.
	out, err = uc.List(dto.ProductListRequest{Search: "diseño"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
}

func TestProductList_OrdenPorPrecio(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		producto("p1", "A", "cursos", "25.00"),
		producto("p2", "B", "cursos", "5.00"),
		producto("p3", "C", "cursos", "10.00"),
	}}
	uc := NewProductUseCase(repo)

	out, err := uc.List(dto.ProductListRequest{Sort: SortPriceLow})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3", "p1"}, ids(out.Items))

	out, err = uc.List(dto.ProductListRequest{Sort: SortPriceHigh})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3", "p2"}, ids(out.Items))
}

func TestProductList_NewestConservaElOrdenDelRepo(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		producto("reciente", "A", "cursos", "1.00"),
		producto("viejo", "B", "cursos", "2.00"),
	}}
	uc := NewProductUseCase(repo)

	out, err := uc.List(dto.ProductListRequest{Sort: SortNewest})
	require.NoError(t, err)
	assert.Equal(t, []string{"reciente", "viejo"}, ids(out.Items))
}

func ids(items []dto.ProductResponse) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

// ─────────────────────────────────────────────────────────────
// Tests de CRUD (back-office)
// ─────────────────────────────────────────────────────────────

func TestProductCreate_SinImagenUsaPlaceholder(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := NewProductUseCase(repo)

	out, err := uc.Create(dto.CreateProductRequest{
		Title:    "Ebook",
		Category: "ebooks",
		Price:    decimal.RequireFromString("9.99"),
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, entity.PlaceholderImageURL, out.ImageURL)
	assert.NotEmpty(t, out.ID)
}

func TestProductCreate_ValidaCamposRequeridos(t *testing.T) {
	uc := NewProductUseCase(&fakeProductRepo{})

	_, err := uc.Create(dto.CreateProductRequest{Title: "  ", Category: "ebooks"})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestProductCreate_RechazaPrecioNegativo(t *testing.T) {
	uc := NewProductUseCase(&fakeProductRepo{})

	_, err := uc.Create(dto.CreateProductRequest{
		Title:    "Ebook",
		Category: "ebooks",
		Price:    decimal.RequireFromString("-1"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestProductUpdate_SoloCamposPresentes(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		producto("p1", "Original", "cursos", "25.00"),
	}}
	uc := NewProductUseCase(repo)

	nuevo := "Editado"
	out, err := uc.Update("p1", dto.UpdateProductRequest{Title: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "Editado", out.Title)
	assert.Equal(t, "cursos", out.Category)
	assert.True(t, decimal.RequireFromString("25.00").Equal(out.Price))
	require.Len(t, repo.updated, 1)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc := NewProductUseCase(&fakeProductRepo{})

	out, err := uc.Update("nope", dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, out)
}
