package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	// merge-or-insert; the follow-up delete drops lines that fell to zero
	upsertItemQuery = `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, product_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
    `
	dropEmptyLinesQuery = `DELETE FROM cart_items WHERE user_id = $1 AND quantity <= 0`

	getCartQuery = `
        SELECT product_id, quantity
        FROM cart_items
        WHERE user_id = $1
        ORDER BY product_id
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) ([]Item, error) {
	rows, err := r.db.Query(getCartQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(userID, productID, qty int) ([]Item, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(upsertItemQuery, userID, productID, qty); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(dropEmptyLinesQuery, userID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.Get(userID)
}

func (r *PostgresRepository) Remove(userID, productID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
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

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

var _ Repository = (*PostgresRepository)(nil)
var _ Repository = (*InMemoryRepository)(nil)
