package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/velora/storefront-backend/internal/address"
	"github.com/velora/storefront-backend/internal/brand"
	"github.com/velora/storefront-backend/internal/cart"
	"github.com/velora/storefront-backend/internal/coupon"
	"github.com/velora/storefront-backend/internal/hamper"
	"github.com/velora/storefront-backend/internal/notification"
	"github.com/velora/storefront-backend/internal/order"
	"github.com/velora/storefront-backend/internal/platform/cache"
	"github.com/velora/storefront-backend/internal/platform/config"
	"github.com/velora/storefront-backend/internal/platform/events"
	"github.com/velora/storefront-backend/internal/platform/logging"
	"github.com/velora/storefront-backend/internal/product"
	"github.com/velora/storefront-backend/internal/review"
	"github.com/velora/storefront-backend/internal/user"
	"github.com/velora/storefront-backend/internal/wishlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		logger.Fatal("schema setup failed", zap.Error(err))
	}

	// optional product cache
	var productCache product.Cache
	if cfg.RedisAddr != "" {
		redisCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, catalog cache disabled", zap.Error(err))
		} else {
			productCache = redisCache
			defer redisCache.Close()
		}
	}

	// optional order event stream
	var publisher order.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	app := fiber.New()
	setupCORS(app)
	app.Use(logging.RequestLogger(logger))

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	productService := product.NewService(product.NewPostgresRepository(db), productCache, logger)
	productHandler := product.NewHandler(productService)

	addressService := address.NewService(address.NewPostgresRepository(db))
	addressHandler := address.NewHandler(addressService)

	cartService := cart.NewService(cart.NewPostgresRepository(db))
	cartHandler := cart.NewHandler(cartService, productService)

	wishlistHandler := wishlist.NewHandler(wishlist.NewService(wishlist.NewPostgresRepository(db)), productService)

	notificationService := notification.NewService(notification.NewPostgresRepository(db))
	notificationHandler := notification.NewHandler(notificationService)

	orderService := order.NewService(order.NewPostgresRepository(db), productService, addressService,
		notificationService, publisher, logger)
	orderHandler := order.NewHandler(orderService)

	hamperService := hamper.NewService(hamper.NewPostgresRepository(db), productService, cartService, logger)
	hamperHandler := hamper.NewHandler(hamperService)

	couponHandler := coupon.NewHandler(coupon.NewService(coupon.NewPostgresRepository(db)))

	reviewHandler := review.NewHandler(review.NewService(review.NewPostgresRepository(db), productService))

	brandHandler := brand.NewHandler(brand.NewService(brand.NewPostgresRepository(db)))

	userHandler.RegisterPublicRoutes(app)
	brandHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	hamperHandler.RegisterProtectedRoutes(app)
	couponHandler.RegisterProtectedRoutes(app)
	notificationHandler.RegisterProtectedRoutes(app)
	brandHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)

	logger.Info("starting server", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}
