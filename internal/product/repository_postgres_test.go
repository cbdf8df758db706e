package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows(ids ...int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"product_id", "product_name", "product_desc", "mrp", "selling_price", "purchase_price",
		"stock", "style_id", "storefront", "category", "image_url", "is_packaging",
		"created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(id, "Sea Salt Caramels", "Box of twelve", 18.0, 15.0, 7.0,
			10, "caramel", "velora", "confectionery", nil, false,
			"2026-01-01T00:00:00Z", "2026-01-01T00:00:00Z")
	}
	return rows
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM products WHERE product_id").
		WithArgs(1).
		WillReturnRows(productRows(1))

	repo := NewPostgresRepository(db)
	p, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Sea Salt Caramels", p.Name)
	assert.Nil(t, p.ImageURL)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE product_id").
		WithArgs(99).
		WillReturnRows(productRows())

	_, err = repo.GetByID(99)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("ANY\\(\\$1::int\\[\\]\\)").
		WillReturnRows(productRows(2, 1))

	repo := NewPostgresRepository(db)
	got, err := repo.ListByIDs([]int{2, 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	// database preserves the requested order
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 1, got[1].ID)

	// no round trip for an empty id list
	empty, err := repo.ListByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM products").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM products").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.Delete(1))
	require.ErrorIs(t, repo.Delete(99), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
