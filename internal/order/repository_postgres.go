package order

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `order_id, order_ref, user_id, storefront, lines, total_amount, status, shipping, created_at, updated_at`

	insertOrderQuery = `
        INSERT INTO orders (order_ref, user_id, storefront, lines, total_amount, status, shipping, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING ` + orderColumns + `
    `
	// decrement applies only while enough stock remains; zero rows affected
	// means the stock race was lost
	decrementStockQuery = `
        UPDATE products
        SET stock = stock - $2
        WHERE product_id = $1 AND stock >= $2
    `
	restockQuery = `
        UPDATE products
        SET stock = stock + $2
        WHERE product_id = $1
    `
	cancelOrderQuery = `
        UPDATE orders
        SET status = $2, updated_at = $3
        WHERE order_id = $1 AND status = ANY($4)
        RETURNING ` + orderColumns + `
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func statusStrings(in []Status) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func scanOrder(row interface{ Scan(...interface{}) error }) (Order, error) {
	var (
		ord          Order
		linesJSON    []byte
		shippingJSON []byte
	)
	err := row.Scan(&ord.OrderID, &ord.OrderRef, &ord.UserID, &ord.Storefront, &linesJSON,
		&ord.TotalAmount, &ord.Status, &shippingJSON, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(linesJSON, &ord.Lines); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(shippingJSON, &ord.Shipping); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) Place(ord Order) (Order, error) {
	linesJSON, err := json.Marshal(ord.Lines)
	if err != nil {
		return Order{}, err
	}
	shippingJSON, err := json.Marshal(ord.Shipping)
	if err != nil {
		return Order{}, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	created, err := scanOrder(tx.QueryRow(insertOrderQuery,
		ord.OrderRef, ord.UserID, ord.Storefront, linesJSON, ord.TotalAmount,
		string(ord.Status), shippingJSON, ord.CreatedAt, ord.UpdatedAt))
	if err != nil {
		return Order{}, err
	}

	for _, ln := range ord.Lines {
		if ln.ProductID == FreeGiftProductID {
			continue
		}
		res, err := tx.Exec(decrementStockQuery, ln.ProductID, ln.Quantity)
		if err != nil {
			return Order{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return Order{}, err
		}
		if n == 0 {
			return Order{}, fmt.Errorf("%w: product %d", ErrInsufficientStock, ln.ProductID)
		}
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, ord.UserID); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return created, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.list(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_id DESC`, userID)
}

func (r *PostgresRepository) ListAll(storefront string, status Status) ([]Order, error) {
	return r.list(`
        SELECT `+orderColumns+`
        FROM orders
        WHERE ($1 = '' OR storefront = $1)
          AND ($2 = '' OR status = $2)
        ORDER BY order_id DESC`, storefront, string(status))
}

func (r *PostgresRepository) list(query string, args ...interface{}) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Cancel(orderID int) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	cancelled, err := scanOrder(tx.QueryRow(cancelOrderQuery,
		orderID, string(StatusCancelled), now, pq.Array(statusStrings(cancellableStatuses))))
	if err == sql.ErrNoRows {
		// swap failed: missing order or a state that no longer allows it
		var exists bool
		if err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, orderID).Scan(&exists); err != nil {
			return Order{}, err
		}
		if !exists {
			return Order{}, ErrNotFound
		}
		return Order{}, ErrNotCancellable
	}
	if err != nil {
		return Order{}, err
	}

	for _, ln := range cancelled.Lines {
		if ln.ProductID == FreeGiftProductID {
			continue
		}
		if _, err := tx.Exec(restockQuery, ln.ProductID, ln.Quantity); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return cancelled, nil
}

func (r *PostgresRepository) UpdateStatus(orderID int, next Status) (Order, error) {
	if next == StatusCancelled {
		return r.Cancel(orderID)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	updated, err := scanOrder(r.db.QueryRow(`
        UPDATE orders
        SET status = $2, updated_at = $3
        WHERE order_id = $1 AND status = ANY($4)
        RETURNING `+orderColumns,
		orderID, string(next), now, pq.Array(statusStrings(predecessorsOf(next)))))
	if err == sql.ErrNoRows {
		var exists bool
		if err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, orderID).Scan(&exists); err != nil {
			return Order{}, err
		}
		if !exists {
			return Order{}, ErrNotFound
		}
		return Order{}, ErrBadTransition
	}
	return updated, err
}

var _ Repository = (*PostgresRepository)(nil)
var _ Repository = (*InMemoryRepository)(nil)
