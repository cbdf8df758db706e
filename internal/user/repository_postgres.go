package user

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	userColumns = `user_id, email, password, first_name, last_name, phone, role, created_at, updated_at`

	insertUserQuery = `
        INSERT INTO users (email, password, first_name, last_name, phone, role, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING ` + userColumns + `
    `
	updateUserQuery = `
        UPDATE users
        SET first_name=$2, last_name=$3, phone=$4, updated_at=$5
        WHERE user_id=$1
        RETURNING ` + userColumns + `
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row interface{ Scan(...interface{}) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) Create(u User) (User, error) {
	created, err := scanUser(r.db.QueryRow(insertUserQuery,
		u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Role, u.CreatedAt, u.UpdatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return created, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	updated, err := scanUser(r.db.QueryRow(updateUserQuery,
		id, u.FirstName, u.LastName, u.Phone, u.UpdatedAt))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return updated, err
}

func (r *PostgresRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
