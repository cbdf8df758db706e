package hamper

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const hamperColumns = "hamper_id, user_id, occasion, box_product_id, bag_product_id, product_ids, note, is_complete, created_at, updated_at"

const getDraftQuery = "SELECT " + hamperColumns + " FROM hampers WHERE user_id = $1 AND NOT is_complete"

// upsertDraftQuery relies on the partial unique index on (user_id) WHERE NOT
// is_complete, so each user has at most one draft. NULL patch fields leave
// the stored value untouched via COALESCE.
const upsertDraftQuery = `
	INSERT INTO hampers (user_id, occasion, box_product_id, bag_product_id, product_ids, note, is_complete, created_at, updated_at)
	VALUES ($1, COALESCE($2, ''), $3, $4, COALESCE($5, '{}'::int[]), COALESCE($6, ''), FALSE, $7, $7)
	ON CONFLICT (user_id) WHERE NOT is_complete DO UPDATE SET
		occasion       = COALESCE($2, hampers.occasion),
		box_product_id = COALESCE($3, hampers.box_product_id),
		bag_product_id = COALESCE($4, hampers.bag_product_id),
		product_ids    = COALESCE($5, hampers.product_ids),
		note           = COALESCE($6, hampers.note),
		updated_at     = $7
	RETURNING ` + hamperColumns

const deleteDraftQuery = "DELETE FROM hampers WHERE user_id = $1 AND NOT is_complete"

const finalizeDraftQuery = `
	UPDATE hampers SET is_complete = TRUE, updated_at = $2
	WHERE user_id = $1 AND NOT is_complete
	RETURNING ` + hamperColumns

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func scanHamper(row interface{ Scan(...interface{}) error }) (Hamper, error) {
	var h Hamper
	var ids pq.Int64Array
	err := row.Scan(&h.HamperID, &h.UserID, &h.Occasion, &h.BoxProductID, &h.BagProductID,
		&ids, &h.Note, &h.IsComplete, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return Hamper{}, err
	}
	h.ProductIDs = make([]int, len(ids))
	for i, id := range ids {
		h.ProductIDs[i] = int(id)
	}
	return h, nil
}

func (r *PostgresRepository) GetDraft(userID int) (Hamper, error) {
	h, err := scanHamper(r.db.QueryRow(getDraftQuery, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Hamper{}, ErrNoDraft
	}
	if err != nil {
		return Hamper{}, fmt.Errorf("get draft hamper: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) Upsert(userID int, p Patch, now string) (Hamper, error) {
	var ids interface{}
	if p.ProductIDs != nil {
		arr := make(pq.Int64Array, len(p.ProductIDs))
		for i, id := range p.ProductIDs {
			arr[i] = int64(id)
		}
		ids = arr
	}
	h, err := scanHamper(r.db.QueryRow(upsertDraftQuery,
		userID, p.Occasion, p.BoxProductID, p.BagProductID, ids, p.Note, now))
	if err != nil {
		return Hamper{}, fmt.Errorf("upsert draft hamper: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) DeleteDraft(userID int) error {
	res, err := r.db.Exec(deleteDraftQuery, userID)
	if err != nil {
		return fmt.Errorf("delete draft hamper: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoDraft
	}
	return nil
}

func (r *PostgresRepository) Finalize(userID int, now string) (Hamper, error) {
	h, err := scanHamper(r.db.QueryRow(finalizeDraftQuery, userID, now))
	if errors.Is(err, sql.ErrNoRows) {
		return Hamper{}, ErrNoDraft
	}
	if err != nil {
		return Hamper{}, fmt.Errorf("finalize hamper: %w", err)
	}
	return h, nil
}
