package wishlist

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]int, error) {
	rows, err := r.db.Query(`SELECT product_id FROM wishlist_items WHERE user_id = $1 ORDER BY product_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int, 0)
	for rows.Next() {
		var pid int
		if err := rows.Scan(&pid); err != nil {
			return nil, err
		}
		out = append(out, pid)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(userID, productID int) ([]int, error) {
	if _, err := r.db.Exec(`INSERT INTO wishlist_items (user_id, product_id) VALUES ($1,$2)`, userID, productID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyListed
		}
		return nil, err
	}
	return r.List(userID)
}

func (r *PostgresRepository) Remove(userID, productID int) ([]int, error) {
	res, err := r.db.Exec(`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.List(userID)
}
