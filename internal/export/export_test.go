package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/martgen/internal/database/common"
	"github.com/Lumos-Labs-HQ/martgen/internal/database/mysql"
)

func TestWriteCSVStartsWithBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppliers.csv")

	result := &common.QueryResult{
		Columns: []string{"supplier_id", "name", "country"},
		Rows: [][]interface{}{
			{1, "TechSupply Co", "USA"},
			{2, "NordicTech AB", nil},
		},
	}
	require.NoError(t, writeCSV(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, utf8BOM), "CSV must start with a UTF-8 BOM")

	body := string(data[len(utf8BOM):])
	assert.Equal(t, "supplier_id,name,country\n1,TechSupply Co,USA\n2,NordicTech AB,\n", body)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", formatValue(nil))
	assert.Equal(t, "hello", formatValue("hello"))
	assert.Equal(t, "hello", formatValue([]byte("hello")))
	assert.Equal(t, "42", formatValue(int64(42)))
	assert.Equal(t, "19.99", formatValue(19.99))
	assert.Equal(t, "true", formatValue(true))

	ts := time.Date(2026, 8, 1, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "2026-08-01 14:30:05", formatValue(ts))
}

func TestAnalyticsQueries(t *testing.T) {
	for _, provider := range []string{"postgresql", "mysql", "sqlite"} {
		queries := AnalyticsQueries(provider)
		require.Len(t, queries, 4, "provider %s", provider)

		names := make([]string, len(queries))
		for i, q := range queries {
			names[i] = q.Name
			assert.NotEmpty(t, q.SQL)
		}
		assert.Equal(t, []string{
			"revenue_by_channel_month",
			"product_performance",
			"customer_segments",
			"competitor_price_comparison",
		}, names)
	}
}

func TestMonthExprPerProvider(t *testing.T) {
	assert.Equal(t, "TO_CHAR(order_date, 'YYYY-MM')", monthExpr("postgresql", "order_date"))
	assert.Equal(t, "DATE_FORMAT(order_date, '%Y-%m')", monthExpr("mysql", "order_date"))
	assert.Equal(t, "strftime('%Y-%m', order_date)", monthExpr("sqlite", "order_date"))
}

func TestExportQueryWritesFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"supplier_id", "name"}).
			AddRow(1, "TechSupply Co"))

	dir := t.TempDir()
	e := New(mysql.NewWithDB(db), "mysql", dir)

	res := &Result{}
	require.NoError(t, e.exportQuery(context.Background(), "suppliers", "SELECT supplier_id, name FROM suppliers", res))

	assert.Equal(t, 1, res.Files)
	assert.Equal(t, int64(1), res.Rows)

	data, err := os.ReadFile(filepath.Join(dir, "suppliers.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, utf8BOM))
	assert.Contains(t, string(data), "TechSupply Co")
}

func TestRunFailsOnMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").WithArgs("suppliers").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	e := New(mysql.NewWithDB(db), "mysql", t.TempDir())
	_, err = e.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "suppliers")
}
