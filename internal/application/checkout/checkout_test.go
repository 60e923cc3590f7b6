package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/checkout"
	"github.com/jhoicas/Tienda-api/internal/application/session"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeOrders acumula lo insertado dentro de la "transacción".
type fakeOrders struct {
	orders    []*entity.Order
	items     []*entity.OrderItem
	createErr error
	itemsErr  error
}

func (f *fakeOrders) Create(o *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrders) CreateItems(items []*entity.OrderItem) error {
	if f.itemsErr != nil {
		return f.itemsErr
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeOrders) GetByID(string) (*entity.Order, error)                 { return nil, nil }
func (f *fakeOrders) ItemsByOrder(string) ([]*entity.OrderItem, error)      { return nil, nil }
func (f *fakeOrders) ListByUser(string) ([]*entity.Order, error)            { return nil, nil }
func (f *fakeOrders) List(int, int) ([]*entity.Order, error)                { return nil, nil }
func (f *fakeOrders) UpdateStatus(string, string) error                     { return nil }
func (f *fakeOrders) Count() (int, error)                                   { return 0, nil }
func (f *fakeOrders) UserPurchasedProduct(string, string) (bool, error)     { return false, nil }

// fakeTx simula el runner: rollback = descartar lo acumulado.
type fakeTx struct {
	orders *fakeOrders
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.OrderRepository) error) error {
	antes := len(f.orders.orders)
	antesItems := len(f.orders.items)
	if err := fn(f.orders); err != nil {
		f.orders.orders = f.orders.orders[:antes]
		f.orders.items = f.orders.items[:antesItems]
		return err
	}
	return nil
}

// sesión autenticada mínima: provider fake con sesión vigente y perfil existente.
type stubAuth struct {
	sess *entity.Session
}

func (s *stubAuth) GetSession(context.Context) (*entity.Session, error) { return s.sess, nil }
func (s *stubAuth) SignUp(context.Context, string, string) (string, error) {
	return "", errors.New("no usado")
}
func (s *stubAuth) SignInWithPassword(context.Context, string, string) (*entity.Session, error) {
	return nil, errors.New("no usado")
}
func (s *stubAuth) SignOut(context.Context) error { return nil }
func (s *stubAuth) OnAuthStateChange(repository.AuthChangeHandler) func() {
	return func() {}
}

type stubProfiles struct{ p *entity.Profile }

func (s *stubProfiles) Create(*entity.Profile) error            { return nil }
func (s *stubProfiles) GetByID(string) (*entity.Profile, error) { return nil, nil }
func (s *stubProfiles) GetByEmail(string) (*entity.Profile, error) {
	return s.p, nil
}
func (s *stubProfiles) Update(*entity.Profile) error { return nil }

func managerAutenticado(t *testing.T) *session.Manager {
	t.Helper()
	auth := &stubAuth{sess: &entity.Session{
		UserID:    "auth-1",
		Email:     "ana@tienda.co",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	profiles := &stubProfiles{p: &entity.Profile{ID: "u-1", Email: "ana@tienda.co", Name: "Ana", Role: entity.RoleUser}}
	m := session.NewManager(auth, profiles, session.NewMemRoleCache(), logger.Nop())
	t.Cleanup(m.Close)
	m.Start(context.Background())
	return m
}

func managerAnonimo(t *testing.T) *session.Manager {
	t.Helper()
	m := session.NewManager(&stubAuth{}, &stubProfiles{}, session.NewMemRoleCache(), logger.Nop())
	t.Cleanup(m.Close)
	m.Start(context.Background())
	return m
}

func carritoCon(precios ...string) *cart.Cart {
	c := cart.New()
	for i, p := range precios {
		c.Add(entity.Product{ID: string(rune('a' + i)), Title: "Item", Price: decimal.RequireFromString(p)})
	}
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Checkout exitoso: orden completed con el total del carrito, items con la foto
// del producto y carrito vacío al confirmar.
func TestCheckout_Exitoso_PersisteYVaciaCarrito(t *testing.T) {
	repo := &fakeOrders{}
	uc := checkout.NewUseCase(&fakeTx{orders: repo}, 0, logger.Nop())
	c := carritoCon("10.00", "9.99")

	order, items, err := uc.Process(context.Background(), managerAutenticado(t), c)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	assert.Equal(t, "u-1", order.UserID)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("19.99")))
	require.Len(t, items, 2)
	assert.Equal(t, order.ID, items[0].OrderID)

	assert.Len(t, repo.orders, 1)
	assert.Len(t, repo.items, 2)
	assert.True(t, c.Empty(), "el carrito se vacía solo al confirmar")
}

// Sin sesión no se procede: error etiquetado Unauthorized y carrito intacto.
func TestCheckout_SinSesion_NoProcede(t *testing.T) {
	repo := &fakeOrders{}
	uc := checkout.NewUseCase(&fakeTx{orders: repo}, 0, logger.Nop())
	c := carritoCon("10.00")

	_, _, err := uc.Process(context.Background(), managerAnonimo(t), c)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
	assert.Empty(t, repo.orders)
	assert.Equal(t, 1, c.ItemCount())
}

func TestCheckout_CarritoVacio_Rechazado(t *testing.T) {
	uc := checkout.NewUseCase(&fakeTx{orders: &fakeOrders{}}, 0, logger.Nop())

	_, _, err := uc.Process(context.Background(), managerAutenticado(t), cart.New())
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// Si la persistencia falla, la transacción se revierte y el carrito se conserva.
func TestCheckout_FalloDePersistencia_ConservaCarrito(t *testing.T) {
	repo := &fakeOrders{itemsErr: errors.New("insert items failed")}
	uc := checkout.NewUseCase(&fakeTx{orders: repo}, 0, logger.Nop())
	c := carritoCon("10.00")

	_, _, err := uc.Process(context.Background(), managerAutenticado(t), c)
	require.Error(t, err)
	assert.Equal(t, domain.KindCollaborator, domain.KindOf(err))
	assert.Empty(t, repo.orders, "rollback: no debe quedar orden a medias")
	assert.Equal(t, 1, c.ItemCount(), "con fallo el carrito no se toca")
}

// El pago simulado respeta la cancelación del contexto.
func TestCheckout_ContextoCancelado_Aborta(t *testing.T) {
	uc := checkout.NewUseCase(&fakeTx{orders: &fakeOrders{}}, 5*time.Second, logger.Nop())
	c := carritoCon("10.00")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := uc.Process(ctx, managerAutenticado(t), c)
	require.Error(t, err)
	assert.Equal(t, 1, c.ItemCount())
}
