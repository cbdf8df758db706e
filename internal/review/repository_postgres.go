package review

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const reviewColumns = "review_id, product_id, user_id, rating, comment, created_at"

const (
	listByProductQuery = "SELECT " + reviewColumns + " FROM reviews WHERE product_id = $1 ORDER BY review_id DESC"

	summarizeQuery = `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0), COUNT(*)
		FROM reviews WHERE product_id = $1`

	createReviewQuery = `
		INSERT INTO reviews (product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reviewColumns

	deleteReviewQuery = "DELETE FROM reviews WHERE review_id = $1 AND user_id = $2"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func scanReview(row interface{ Scan(...interface{}) error }) (Review, error) {
	var rv Review
	err := row.Scan(&rv.ReviewID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	return rv, err
}

func (r *PostgresRepository) ListByProduct(productID int) ([]Review, error) {
	rows, err := r.db.Query(listByProductQuery, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) Summarize(productID int) (Summary, error) {
	s := Summary{ProductID: productID}
	err := r.db.QueryRow(summarizeQuery, productID).Scan(&s.AverageRating, &s.ReviewCount)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize reviews: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Create(rv Review) (Review, error) {
	created, err := scanReview(r.db.QueryRow(createReviewQuery,
		rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Review{}, ErrAlreadyReviewed
		}
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Delete(userID, reviewID int) error {
	res, err := r.db.Exec(deleteReviewQuery, reviewID, userID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
