package main

import (
	"database/sql"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/velora/storefront-backend/internal/brand"
	"github.com/velora/storefront-backend/internal/platform/logging"
)

// Seeds the brands table and a starter catalog, including the packaging
// items the hamper builder depends on. Safe to run more than once.
func main() {
	_ = godotenv.Load()

	logger, err := logging.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal("ping database", zap.Error(err))
	}

	now := time.Now().Format(time.RFC3339)

	brands := []brand.Brand{
		{Slug: "velora", Name: "Velora", Tagline: "Everyday gifting"},
		{Slug: "maison-noor", Name: "Maison Noor", Tagline: "Artisanal hampers"},
	}
	for _, b := range brands {
		if _, err := db.Exec(
			`INSERT INTO brands (slug, name, tagline, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $4) ON CONFLICT (slug) DO NOTHING`,
			b.Slug, b.Name, b.Tagline, now); err != nil {
			logger.Fatal("seed brand", zap.String("slug", b.Slug), zap.Error(err))
		}
	}

	type seedProduct struct {
		name, desc, styleID, storefront, category string
		mrp, selling, purchase                    float64
		stock                                     int
		packaging                                 bool
	}
	catalog := []seedProduct{
		{name: "Classic Gift Box", desc: "Kraft box with magnetic lid", storefront: "velora", category: "packaging", mrp: 12, selling: 9.5, purchase: 4, stock: 200, packaging: true},
		{name: "Jute Carry Bag", desc: "Reusable jute bag", storefront: "velora", category: "packaging", mrp: 6, selling: 4.5, purchase: 2, stock: 300, packaging: true},
		{name: "Sea Salt Caramels", desc: "Box of twelve", styleID: "caramel", storefront: "velora", category: "confectionery", mrp: 18, selling: 15, purchase: 7, stock: 80},
		{name: "Dark Chocolate Caramels", desc: "Box of twelve", styleID: "caramel", storefront: "velora", category: "confectionery", mrp: 18, selling: 16, purchase: 7.5, stock: 60},
		{name: "Single Origin Coffee", desc: "250g whole bean", storefront: "maison-noor", category: "pantry", mrp: 22, selling: 19, purchase: 9, stock: 45},
	}
	inserted := 0
	for _, p := range catalog {
		var exists int
		err := db.QueryRow(`SELECT COUNT(*) FROM products WHERE product_name = $1 AND storefront = $2`,
			p.name, p.storefront).Scan(&exists)
		if err != nil {
			logger.Fatal("check product", zap.String("name", p.name), zap.Error(err))
		}
		if exists > 0 {
			continue
		}
		if _, err := db.Exec(
			`INSERT INTO products (product_name, product_desc, mrp, selling_price, purchase_price,
				stock, style_id, storefront, category, is_packaging, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
			p.name, p.desc, p.mrp, p.selling, p.purchase, p.stock, p.styleID,
			p.storefront, p.category, p.packaging, now); err != nil {
			logger.Fatal("seed product", zap.String("name", p.name), zap.Error(err))
		}
		inserted++
	}

	logger.Info("seed complete",
		zap.Int("brands", len(brands)),
		zap.Int("productsInserted", inserted),
	)
}
