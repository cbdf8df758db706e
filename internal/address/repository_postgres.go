package address

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	addressColumns = `address_id, user_id, recipient, line1, line2, city, postcode, phone, created_at, updated_at`

	insertAddressQuery = `
        INSERT INTO addresses (user_id, recipient, line1, line2, city, postcode, phone, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING ` + addressColumns + `
    `
	updateAddressQuery = `
        UPDATE addresses
        SET recipient=$3, line1=$4, line2=$5, city=$6, postcode=$7, phone=$8, updated_at=$9
        WHERE user_id=$1 AND address_id=$2
        RETURNING ` + addressColumns + `
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAddress(row interface{ Scan(...interface{}) error }) (Address, error) {
	var a Address
	err := row.Scan(&a.AddressID, &a.UserID, &a.Recipient, &a.Line1, &a.Line2, &a.City, &a.Postcode, &a.Phone, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY address_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(userID, addressID int) (Address, error) {
	a, err := scanAddress(r.db.QueryRow(`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 AND address_id = $2`, userID, addressID))
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	return scanAddress(r.db.QueryRow(insertAddressQuery,
		a.UserID, a.Recipient, a.Line1, a.Line2, a.City, a.Postcode, a.Phone, a.CreatedAt, a.UpdatedAt))
}

func (r *PostgresRepository) Update(userID, addressID int, a Address) (Address, error) {
	updated, err := scanAddress(r.db.QueryRow(updateAddressQuery,
		userID, addressID, a.Recipient, a.Line1, a.Line2, a.City, a.Postcode, a.Phone, a.UpdatedAt))
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return updated, err
}

func (r *PostgresRepository) Delete(userID, addressID int) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE user_id = $1 AND address_id = $2`, userID, addressID)
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
