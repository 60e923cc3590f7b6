package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/checkout"
	"github.com/jhoicas/Tienda-api/internal/application/session"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	infraauth "github.com/jhoicas/Tienda-api/internal/infrastructure/auth"
	infrapdf "github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	infrastorage "github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("auth_mode", cfg.Auth.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, orderRepo)
	wishlistUC := usecase.NewWishlistUseCase(wishlistRepo, productRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo)
	dashboardUC := usecase.NewDashboardUseCase(productRepo, categoryRepo, orderRepo)

	paymentDelay := time.Duration(cfg.Checkout.PaymentDelayMs) * time.Millisecond
	checkoutUC := checkout.NewUseCase(txRunner, paymentDelay, log)

	// Colaborador de auth: una instancia nueva por cliente conectado, con su
	// propio estado de sesión (como el cliente que cada navegador instancia).
	var newProvider session.ProviderFactory
	switch cfg.Auth.Mode {
	case "hosted":
		newProvider = func() repository.AuthProvider {
			return infraauth.NewHostedProvider(cfg.Auth)
		}
	default:
		accounts := infraauth.NewLocalAccounts(profileRepo)
		newProvider = func() repository.AuthProvider {
			return infraauth.NewLocalProvider(accounts, profileRepo, cfg.JWT)
		}
	}
	sessions := session.NewRegistry(newProvider, profileRepo, log)
	defer sessions.Close()

	carts := cart.NewStore()
	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name)

	var storageClient *infrastorage.Client
	if cfg.Storage.BaseURL != "" {
		storageClient = infrastorage.NewClient(cfg.Storage)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda Digital API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		ReviewUC:    reviewUC,
		WishlistUC:  wishlistUC,
		OrderUC:     orderUC,
		DashboardUC: dashboardUC,
		CheckoutUC:  checkoutUC,
		Sessions:    sessions,
		Carts:       carts,
		Products:    productRepo,
		Orders:      orderRepo,
		Profiles:    profileRepo,
		Receipts:    receipts,
		Storage:     storageClient,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
