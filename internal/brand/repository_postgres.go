package brand

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const brandColumns = "brand_id, slug, name, tagline, created_at, updated_at"

const (
	listBrandsQuery   = "SELECT " + brandColumns + " FROM brands ORDER BY brand_id"
	getBySlugQuery    = "SELECT " + brandColumns + " FROM brands WHERE slug = $1"
	createBrandQuery  = `
		INSERT INTO brands (slug, name, tagline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + brandColumns
	updateBrandQuery = `
		UPDATE brands SET slug = $2, name = $3, tagline = $4, updated_at = $5
		WHERE brand_id = $1
		RETURNING ` + brandColumns
	deleteBrandQuery = "DELETE FROM brands WHERE brand_id = $1"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func scanBrand(row interface{ Scan(...interface{}) error }) (Brand, error) {
	var b Brand
	err := row.Scan(&b.BrandID, &b.Slug, &b.Name, &b.Tagline, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *PostgresRepository) List() ([]Brand, error) {
	rows, err := r.db.Query(listBrandsQuery)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []Brand{}
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *PostgresRepository) GetBySlug(slug string) (Brand, error) {
	b, err := scanBrand(r.db.QueryRow(getBySlugQuery, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return Brand{}, ErrNotFound
	}
	if err != nil {
		return Brand{}, fmt.Errorf("get brand: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) Create(b Brand) (Brand, error) {
	created, err := scanBrand(r.db.QueryRow(createBrandQuery,
		b.Slug, b.Name, b.Tagline, b.CreatedAt, b.UpdatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Brand{}, ErrSlugExists
		}
		return Brand{}, fmt.Errorf("create brand: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(b Brand) (Brand, error) {
	updated, err := scanBrand(r.db.QueryRow(updateBrandQuery,
		b.BrandID, b.Slug, b.Name, b.Tagline, b.UpdatedAt))
	if errors.Is(err, sql.ErrNoRows) {
		return Brand{}, ErrNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Brand{}, ErrSlugExists
		}
		return Brand{}, fmt.Errorf("update brand: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteBrandQuery, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
