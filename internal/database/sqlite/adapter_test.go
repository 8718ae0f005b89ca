package sqlite

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	a := NewWithDB(db)

	exists, err := a.TableExists(context.Background(), "orders")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = a.TableExists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMaxIDMissingTableIsZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	a := NewWithDB(db)
	max, err := a.MaxID(context.Background(), "orders", "order_id")
	require.NoError(t, err)
	assert.Equal(t, int64(0), max)
}

func TestBulkInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO suppliers").
		WithArgs(1, "TechSupply Co").
		WillReturnResult(sqlmock.NewResult(0, 1))

	a := NewWithDB(db)
	n, err := a.BulkInsert(context.Background(), "suppliers", []string{"supplier_id", "name"},
		[][]interface{}{{1, "TechSupply Co"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
