package coupon

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const couponColumns = "coupon_id, code, type, value, min_subtotal, expires_at, active, created_at, updated_at"

const (
	listCouponsQuery     = "SELECT " + couponColumns + " FROM coupons ORDER BY coupon_id"
	getCouponByCodeQuery = "SELECT " + couponColumns + " FROM coupons WHERE LOWER(code) = LOWER($1)"
	createCouponQuery    = `
		INSERT INTO coupons (code, type, value, min_subtotal, expires_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + couponColumns
	updateCouponQuery = `
		UPDATE coupons SET code = $2, type = $3, value = $4, min_subtotal = $5,
			expires_at = $6, active = $7, updated_at = $8
		WHERE coupon_id = $1
		RETURNING ` + couponColumns
	deleteCouponQuery = "DELETE FROM coupons WHERE coupon_id = $1"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func scanCoupon(row interface{ Scan(...interface{}) error }) (Coupon, error) {
	var c Coupon
	err := row.Scan(&c.CouponID, &c.Code, &c.Type, &c.Value, &c.MinSubtotal,
		&c.ExpiresAt, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PostgresRepository) List() ([]Coupon, error) {
	rows, err := r.db.Query(listCouponsQuery)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *PostgresRepository) GetByCode(code string) (Coupon, error) {
	c, err := scanCoupon(r.db.QueryRow(getCouponByCodeQuery, code))
	if errors.Is(err, sql.ErrNoRows) {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		return Coupon{}, fmt.Errorf("get coupon: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(c Coupon) (Coupon, error) {
	created, err := scanCoupon(r.db.QueryRow(createCouponQuery,
		c.Code, c.Type, c.Value, c.MinSubtotal, c.ExpiresAt, c.Active, c.CreatedAt, c.UpdatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Coupon{}, ErrCodeExists
		}
		return Coupon{}, fmt.Errorf("create coupon: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(c Coupon) (Coupon, error) {
	updated, err := scanCoupon(r.db.QueryRow(updateCouponQuery,
		c.CouponID, c.Code, c.Type, c.Value, c.MinSubtotal, c.ExpiresAt, c.Active, c.UpdatedAt))
	if errors.Is(err, sql.ErrNoRows) {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Coupon{}, ErrCodeExists
		}
		return Coupon{}, fmt.Errorf("update coupon: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteCouponQuery, id)
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
