package main

import "database/sql"

// ensureSchema creates every table the app reads and writes. Statements are
// idempotent so restarts against an existing database are safe.
func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'customer',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			product_name TEXT NOT NULL,
			product_desc TEXT NOT NULL DEFAULT '',
			mrp DOUBLE PRECISION NOT NULL DEFAULT 0,
			selling_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			purchase_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			style_id TEXT NOT NULL DEFAULT '',
			storefront TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			image_url TEXT,
			is_packaging BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS addresses (
			address_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			recipient TEXT NOT NULL DEFAULT '',
			line1 TEXT NOT NULL DEFAULT '',
			line2 TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			postcode TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			user_id INT NOT NULL,
			product_id INT NOT NULL,
			quantity INT NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS wishlist_items (
			user_id INT NOT NULL,
			product_id INT NOT NULL,
			PRIMARY KEY (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			order_ref TEXT NOT NULL UNIQUE,
			user_id INT NOT NULL,
			storefront TEXT NOT NULL DEFAULT '',
			lines JSONB NOT NULL DEFAULT '[]',
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			shipping JSONB NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS hampers (
			hamper_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			occasion TEXT NOT NULL DEFAULT '',
			box_product_id INT,
			bag_product_id INT,
			product_ids INT[] NOT NULL DEFAULT '{}',
			note TEXT NOT NULL DEFAULT '',
			is_complete BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		// one draft per user; completed hampers are history and unconstrained
		`CREATE UNIQUE INDEX IF NOT EXISTS hampers_draft_per_user
			ON hampers (user_id) WHERE NOT is_complete`,
		`CREATE TABLE IF NOT EXISTS coupons (
			coupon_id SERIAL PRIMARY KEY,
			code TEXT NOT NULL,
			type TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL DEFAULT 0,
			min_subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
			expires_at TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS coupons_code_unique ON coupons (LOWER(code))`,
		`CREATE TABLE IF NOT EXISTS notifications (
			notification_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			read BOOLEAN NOT NULL DEFAULT FALSE,
			batch_id TEXT,
			created_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			review_id SERIAL PRIMARY KEY,
			product_id INT NOT NULL,
			user_id INT NOT NULL,
			rating INT NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT '',
			UNIQUE (product_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS brands (
			brand_id SERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			tagline TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
