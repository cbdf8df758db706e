package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `product_id, product_name, product_desc, mrp, selling_price, purchase_price, stock, style_id, storefront, category, image_url, is_packaging, created_at, updated_at`

	listByIDsQuery = `
        SELECT ` + productColumns + `
        FROM products
        WHERE product_id = ANY($1::int[])
        ORDER BY array_position($1::int[], product_id)
    `
	insertProductQuery = `
        INSERT INTO products (product_name, product_desc, mrp, selling_price, purchase_price, stock, style_id, storefront, category, image_url, is_packaging, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING ` + productColumns + `
    `
	updateProductQuery = `
        UPDATE products
        SET product_name=$2, product_desc=$3, mrp=$4, selling_price=$5, purchase_price=$6, stock=$7, style_id=$8, storefront=$9, category=$10, image_url=$11, is_packaging=$12, updated_at=$13
        WHERE product_id=$1
        RETURNING ` + productColumns + `
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProduct(row interface{ Scan(...interface{}) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.MRP, &p.SellingPrice, &p.PurchasePrice,
		&p.Stock, &p.StyleID, &p.Storefront, &p.Category, &p.ImageURL, &p.IsPackaging,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepository) List(f Filter) ([]Product, error) {
	// filters are fixed-position optional predicates; empty string matches all
	query := `
        SELECT ` + productColumns + `
        FROM products
        WHERE ($1 = '' OR storefront = $1)
          AND ($2 = '' OR category = $2)
          AND ($3 = '' OR style_id = $3)
          AND (NOT $4 OR is_packaging)
        ORDER BY product_id
    `
	rows, err := r.db.Query(query, f.Storefront, f.Category, f.StyleID, f.PackagingOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE product_id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.Query(listByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	row := r.db.QueryRow(insertProductQuery,
		p.Name, p.Description, p.MRP, p.SellingPrice, p.PurchasePrice, p.Stock,
		p.StyleID, p.Storefront, p.Category, p.ImageURL, p.IsPackaging,
		p.CreatedAt, p.UpdatedAt)
	return scanProduct(row)
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	row := r.db.QueryRow(updateProductQuery,
		id, p.Name, p.Description, p.MRP, p.SellingPrice, p.PurchasePrice, p.Stock,
		p.StyleID, p.Storefront, p.Category, p.ImageURL, p.IsPackaging, p.UpdatedAt)
	updated, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return updated, err
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
