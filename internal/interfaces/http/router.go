package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/checkout"
	"github.com/jhoicas/Tienda-api/internal/application/session"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	ReviewUC    *usecase.ReviewUseCase
	WishlistUC  *usecase.WishlistUseCase
	OrderUC     *usecase.OrderUseCase
	DashboardUC *usecase.DashboardUseCase
	CheckoutUC  *checkout.UseCase

	Sessions *session.Registry
	Carts    *cart.Store

	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Profiles repository.ProfileRepository

	Receipts *pdf.ReceiptGenerator
	Storage  *storage.Client

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ClientMiddleware())

	// Auth (público; la sesión vive en el manager del cliente)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Sessions)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)

	// Catálogo (público)
	productHandler := NewProductHandler(deps.ProductUC, deps.Storage)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/categories", categoryHandler.List)

	// Reseñas (lectura pública)
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	api.Get("/products/:productID/reviews", reviewHandler.ListByProduct)
	api.Get("/products/:productID/reviews/stats", reviewHandler.Stats)

	// Carrito y checkout (por visitante, no requieren login; el checkout
	// verifica la sesión internamente)
	cartHandler := NewCartHandler(deps.Carts, deps.Products)
	api.Get("/cart", cartHandler.Get)
	api.Delete("/cart", cartHandler.Clear)
	api.Post("/cart/items", cartHandler.AddItem)
	api.Delete("/cart/items/:productID", cartHandler.RemoveItem)

	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC, deps.Sessions, deps.Carts)
	api.Post("/checkout", checkoutHandler.Process)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/products/:productID/reviews/eligibility", reviewHandler.CanReview)
	protected.Post("/reviews", reviewHandler.Create)
	protected.Put("/reviews/:id", reviewHandler.Update)
	protected.Delete("/reviews/:id", reviewHandler.Delete)

	wishlistHandler := NewWishlistHandler(deps.WishlistUC)
	protected.Get("/wishlist", wishlistHandler.List)
	protected.Post("/wishlist", wishlistHandler.Add)
	protected.Get("/wishlist/:productID", wishlistHandler.Contains)
	protected.Delete("/wishlist/:productID", wishlistHandler.Remove)

	orderHandler := NewOrderHandler(deps.OrderUC, deps.Orders, deps.Profiles, deps.Receipts)
	protected.Get("/orders", orderHandler.ListMine)
	protected.Get("/orders/:id", orderHandler.GetByID)
	protected.Get("/orders/:id/receipt", orderHandler.Receipt)

	// Back-office (requiere rol admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))

	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)
	admin.Post("/products/images", productHandler.UploadImage)

	admin.Post("/categories", categoryHandler.Create)
	admin.Put("/categories/:id", categoryHandler.Update)
	admin.Delete("/categories/:id", categoryHandler.Delete)

	admin.Get("/orders", orderHandler.List)
	admin.Put("/orders/:id/status", orderHandler.UpdateStatus)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	admin.Get("/dashboard", dashboardHandler.Stats)
}
